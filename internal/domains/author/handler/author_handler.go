package handler

import (
	"errors"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"draftbook-backend/internal/domains/author"
	"draftbook-backend/internal/shared/response"
)

const authorListPath = "/catalog/authors"

type AuthorHandler struct {
	service author.Service
}

func NewAuthorHandler(svc author.Service) *AuthorHandler {
	return &AuthorHandler{
		service: svc,
	}
}

// List - GET /catalog/authors
// Ordered ascending by email for deterministic listings.
func (h *AuthorHandler) List(c *gin.Context) {
	authors, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, err.Error())
		return
	}

	response.Success(c, http.StatusOK, authors)
}

// Detail - GET /catalog/authors/:id
// Returns the author together with their books.
func (h *AuthorHandler) Detail(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid author id")
		return
	}

	a, books, err := h.service.GetDetail(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, author.ErrAuthorNotFound) {
			response.NotFound(c, "Author not found")
		} else {
			response.InternalServerError(c, err.Error())
		}
		return
	}

	response.Success(c, http.StatusOK, author.AuthorDetailResponse{Author: a, Books: books})
}

// Create - POST /catalog/authors
// Persists a new author record unconditionally; a second request with
// the same email creates a second record (no upsert).
func (h *AuthorHandler) Create(c *gin.Context) {
	var req author.CreateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	created, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		if fields, ok := asFieldErrors(err); ok {
			response.ValidationFailed(c, fields)
			return
		}
		response.InternalServerError(c, err.Error())
		return
	}

	response.Success(c, http.StatusCreated, created)
}

// DeleteConfirm - GET /catalog/authors/:id/delete
// The confirmation view: the author plus any books that would block the
// delete. A missing author redirects back to the listing instead of 404,
// matching the list-view convention.
func (h *AuthorHandler) DeleteConfirm(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Redirect(http.StatusFound, authorListPath)
		return
	}

	a, books, err := h.service.DeletePreview(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, author.ErrAuthorNotFound) {
			c.Redirect(http.StatusFound, authorListPath)
		} else {
			response.InternalServerError(c, err.Error())
		}
		return
	}

	response.Success(c, http.StatusOK, author.AuthorDetailResponse{Author: a, Books: books})
}

// DeleteSubmit - POST /catalog/authors/:id/delete
// Deletes the id posted in the form body. When books still reference
// the author the confirmation payload is returned again instead of
// deleting; on success the client is redirected to the listing.
func (h *AuthorHandler) DeleteSubmit(c *gin.Context) {
	var req author.DeleteAuthorRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	id, err := uuid.Parse(req.AuthorID)
	if err != nil {
		response.BadRequest(c, "Invalid author id")
		return
	}

	a, books, err := h.service.DeletePreview(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, author.ErrAuthorNotFound) {
			c.Redirect(http.StatusFound, authorListPath)
		} else {
			response.InternalServerError(c, err.Error())
		}
		return
	}

	if len(books) > 0 {
		// Re-render the confirmation with the blocking dependents.
		response.Success(c, http.StatusOK, author.AuthorDetailResponse{Author: a, Books: books})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, author.ErrAuthorHasBooks) {
			response.Conflict(c, err.Error())
		} else if errors.Is(err, author.ErrAuthorNotFound) {
			c.Redirect(http.StatusFound, authorListPath)
		} else {
			response.InternalServerError(c, err.Error())
		}
		return
	}

	c.Redirect(http.StatusFound, authorListPath)
}

// UpdateSummary - PUT/POST /catalog/authors/summary
// Replaces the summary of the author identified by email.
func (h *AuthorHandler) UpdateSummary(c *gin.Context) {
	var req author.UpdateSummaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	updated, err := h.service.UpdateSummary(c.Request.Context(), &req)
	if err != nil {
		if fields, ok := asFieldErrors(err); ok {
			response.ValidationFailed(c, fields)
			return
		}
		if errors.Is(err, author.ErrAuthorNotFound) {
			response.NotFound(c, "Author not found with the provided email")
			return
		}
		response.InternalServerError(c, err.Error())
		return
	}

	response.Success(c, http.StatusOK, updated)
}

// SummaryLookup - POST /catalog/authors/summary/lookup
// The client's cache-miss path: fetch the stored summary for an email.
func (h *AuthorHandler) SummaryLookup(c *gin.Context) {
	var req author.SummaryLookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	req.Normalize()
	if err := req.Validate(); err != nil {
		if fields, ok := asFieldErrors(err); ok {
			response.ValidationFailed(c, fields)
			return
		}
		response.BadRequest(c, err.Error())
		return
	}

	summary, err := h.service.GetSummaryByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, author.ErrAuthorNotFound) {
			response.NotFound(c, "Author not found with the provided email")
		} else {
			response.InternalServerError(c, err.Error())
		}
		return
	}

	response.Success(c, http.StatusOK, author.SummaryResponse{Summary: summary})
}

// asFieldErrors flattens ozzo validation errors into the field+message
// list clients render. Fields are sorted for stable output.
func asFieldErrors(err error) ([]response.FieldError, bool) {
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return nil, false
	}

	fields := make([]string, 0, len(verrs))
	for field := range verrs {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	out := make([]response.FieldError, 0, len(verrs))
	for _, field := range fields {
		out = append(out, response.FieldError{
			Field:   field,
			Message: verrs[field].Error(),
		})
	}
	return out, true
}
