package author

import (
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"draftbook-backend/internal/domains/book"
)

// Letters, digits and spaces only. Matches the form-level rule the
// frontend renders ("Name has non-alphanumeric characters.").
var nameFormat = regexp.MustCompile(`^[a-zA-Z0-9 ]+$`)

// CreateAuthorRequest - POST /catalog/authors
type CreateAuthorRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Summary string `json:"summary"`
}

// Normalize trims all fields. Must run before Validate so that
// whitespace-only input fails the required checks.
func (r *CreateAuthorRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Summary = strings.TrimSpace(r.Summary)
}

func (r CreateAuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("Name must be specified."),
			validation.Match(nameFormat).Error("Name has non-alphanumeric characters."),
		),
		validation.Field(&r.Email,
			validation.Required.Error("A valid email must be specified."),
			is.Email.Error("A valid email must be specified."),
		),
		validation.Field(&r.Summary,
			validation.Required.Error("Summary must be specified."),
		),
	)
}

// UpdateSummaryRequest - PUT /catalog/authors/summary
// The email identifies the record; only the summary changes.
type UpdateSummaryRequest struct {
	Email   string `json:"email"`
	Summary string `json:"summary"`
}

func (r *UpdateSummaryRequest) Normalize() {
	r.Email = strings.TrimSpace(r.Email)
	r.Summary = strings.TrimSpace(r.Summary)
}

func (r UpdateSummaryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email,
			validation.Required.Error("A valid email must be specified."),
			is.Email.Error("A valid email must be specified."),
		),
		validation.Field(&r.Summary,
			validation.Required.Error("Summary must be specified."),
		),
	)
}

// SummaryLookupRequest - POST /catalog/authors/summary/lookup
type SummaryLookupRequest struct {
	Email string `json:"email"`
}

func (r *SummaryLookupRequest) Normalize() {
	r.Email = strings.TrimSpace(r.Email)
}

func (r SummaryLookupRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email,
			validation.Required.Error("A valid email must be specified."),
			is.Email.Error("A valid email must be specified."),
		),
	)
}

// DeleteAuthorRequest - POST /catalog/authors/:id/delete
// The form posts the id it confirmed, which is the one that gets deleted.
type DeleteAuthorRequest struct {
	AuthorID string `json:"authorid" form:"authorid"`
}

// AuthorDetailResponse - author together with their books, the payload of
// both the detail page and the delete confirmation page.
type AuthorDetailResponse struct {
	Author *Author     `json:"author"`
	Books  []book.Book `json:"books"`
}

// SummaryResponse - the cached-or-fetched summary for a signed-in email.
type SummaryResponse struct {
	Summary string `json:"summary"`
}
