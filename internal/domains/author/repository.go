package author

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines data access for Author records.
// Keyed by id for detail/delete, by email for the sign-in flow.
type Repository interface {
	// Create inserts a new author and returns it with the
	// store-assigned id and timestamps. It never checks for an
	// existing author with the same email; duplicate creation is
	// the documented behavior of the creation endpoint.
	Create(ctx context.Context, a *Author) (*Author, error)

	// GetByID retrieves an author by id.
	// Errors: ErrAuthorNotFound
	GetByID(ctx context.Context, id uuid.UUID) (*Author, error)

	// GetByEmail retrieves an author by email. When duplicates exist
	// for the email, the oldest record wins.
	// Errors: ErrAuthorNotFound
	GetByEmail(ctx context.Context, email string) (*Author, error)

	// GetAll lists every author ordered ascending by email, so
	// listings are deterministic.
	GetAll(ctx context.Context) ([]Author, error)

	// UpdateSummaryByEmail replaces the summary of the author(s) with
	// this email in a single statement and returns the updated record.
	// Last write wins under concurrency; no conflict is raised.
	// Errors: ErrAuthorNotFound when no author has the email
	UpdateSummaryByEmail(ctx context.Context, email, summary string) (*Author, error)

	// Delete removes an author by id. The dependent-book check lives
	// in the service layer, before this call.
	// Errors: ErrAuthorNotFound
	Delete(ctx context.Context, id uuid.UUID) error
}
