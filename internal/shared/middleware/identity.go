package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"draftbook-backend/pkg/idtoken"
)

const (
	// Context keys for the decoded identity.
	IdentityNameKey  = "identity_name"
	IdentityEmailKey = "identity_email"
)

// Identity decodes a Google ID token from the Authorization header and
// stashes the (name, email) pair in the request context. The header is
// optional; a present-but-undecodable token is rejected so a broken
// sign-in never reaches the profile handlers.
func Identity(verifier idtoken.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		identity, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "MALFORMED_TOKEN",
					"message": err.Error(),
				},
			})
			return
		}

		c.Set(IdentityNameKey, identity.Name)
		c.Set(IdentityEmailKey, identity.Email)
		c.Next()
	}
}
