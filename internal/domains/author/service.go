package author

import (
	"context"

	"github.com/google/uuid"

	"draftbook-backend/internal/domains/book"
)

// Service defines business logic for the Author domain.
type Service interface {
	// Create validates, sanitizes and persists a new author.
	// It does NOT dedup by email: two creations with the same email
	// produce two records with distinct ids.
	// Errors: validation.Errors on bad input
	Create(ctx context.Context, req *CreateAuthorRequest) (*Author, error)

	// GetAll lists authors ordered ascending by email.
	GetAll(ctx context.Context) ([]Author, error)

	// GetDetail fetches the author and their books in parallel.
	// Errors: ErrAuthorNotFound
	GetDetail(ctx context.Context, id uuid.UUID) (*Author, []book.Book, error)

	// GetSummaryByEmail returns the stored summary for an email.
	// Errors: ErrAuthorNotFound
	GetSummaryByEmail(ctx context.Context, email string) (string, error)

	// UpdateSummary validates and replaces the summary of the author
	// identified by email. Last write wins.
	// Errors: validation.Errors, ErrAuthorNotFound
	UpdateSummary(ctx context.Context, req *UpdateSummaryRequest) (*Author, error)

	// DeletePreview fetches the data for the delete confirmation view:
	// the author and any dependent books.
	// Errors: ErrAuthorNotFound
	DeletePreview(ctx context.Context, id uuid.UUID) (*Author, []book.Book, error)

	// Delete removes an author only when no books reference them.
	// The check and the delete are read-then-act; the race window
	// between them is accepted (no transaction is taken).
	// Errors: ErrAuthorNotFound, ErrAuthorHasBooks
	Delete(ctx context.Context, id uuid.UUID) error
}
