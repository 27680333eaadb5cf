package domain

import (
	"time"

	"github.com/google/uuid"
)

// Host is an owned machine entry. OwnerID is fixed at creation and never
// updated. Folder is a plain grouping label, not a reference to a stored
// entity; the empty string is a valid folder value.
type Host struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Address   string    `json:"address" db:"address"`
	OwnerID   string    `json:"owner_id" db:"owner_id"`
	Folder    string    `json:"folder" db:"folder"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
