package book

import (
	"time"

	"github.com/google/uuid"
)

// Book is a dependent record referencing an Author. Its presence blocks
// author deletion. Only the read paths are exposed here; book authoring
// lives outside this service.
type Book struct {
	ID        uuid.UUID `json:"id" db:"id"`
	AuthorID  uuid.UUID `json:"author_id" db:"author_id"`
	Title     string    `json:"title" db:"title"`
	Summary   string    `json:"summary" db:"summary"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
