package domain

import (
	"github.com/google/uuid"
)

// Provenance records why a host is visible to a user. When a host is
// reachable through more than one grant, the reported provenance follows a
// fixed priority: ownership, then a direct host share, then a folder share.
type Provenance struct {
	IsOwner       bool       `json:"is_owner"`
	IsShared      bool       `json:"is_shared"`
	ShareID       *uuid.UUID `json:"share_id,omitempty"`
	ActualOwnerID string     `json:"actual_owner_id,omitempty"`
}

type AccessibleHost struct {
	Host       Host       `json:"host"`
	Provenance Provenance `json:"provenance"`
}
