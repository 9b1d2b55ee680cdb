package book

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines read access to the books of an author.
type Repository interface {
	// ListByAuthor returns the books referencing an author, newest first.
	ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]Book, error)

	// CountByAuthor returns the number of books referencing an author.
	// Used as the referential-integrity check before author deletion.
	CountByAuthor(ctx context.Context, authorID uuid.UUID) (int, error)
}
