package author

import (
	"time"

	"github.com/google/uuid"
)

// Author is the persisted profile entity. The store assigns the ID on
// creation; it is immutable afterwards. Email is the external lookup key
// for summary updates but is NOT unique at the schema level: the sign-in
// flow treats it as unique, the database does not enforce it.
type Author struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Summary   string    `json:"summary" db:"summary"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
