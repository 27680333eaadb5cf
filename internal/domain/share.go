package domain

import (
	"time"

	"github.com/google/uuid"
)

type AccessLevel string

// AccessLevelRead is the only level ever written today. The column exists so
// a future level does not need a migration; nothing may branch on its value
// beyond equality, and no value of it grants write access.
const AccessLevelRead AccessLevel = "read"

// HostShare grants one user read access to one host. OwnerID is copied from
// the host at creation time and kept for audit even though host ownership
// never changes. At most one active row exists per (HostID, SharedWith).
type HostShare struct {
	ID          uuid.UUID   `json:"id" db:"id"`
	HostID      uuid.UUID   `json:"host_id" db:"host_id"`
	OwnerID     string      `json:"owner_id" db:"owner_id"`
	SharedWith  string      `json:"shared_with" db:"shared_with"`
	AccessLevel AccessLevel `json:"access_level" db:"access_level"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`
	CreatedBy   string      `json:"created_by" db:"created_by"`
}

// FolderShare grants one user read access to every host of one owner that
// carries the same folder label. Membership is resolved at read time, so
// hosts added to the folder later are covered and hosts moved out of it stop
// being covered immediately. Renaming a folder label on hosts silently
// detaches shares keyed to the old name (pending product review).
type FolderShare struct {
	ID          uuid.UUID   `json:"id" db:"id"`
	Folder      string      `json:"folder" db:"folder"`
	OwnerID     string      `json:"owner_id" db:"owner_id"`
	SharedWith  string      `json:"shared_with" db:"shared_with"`
	AccessLevel AccessLevel `json:"access_level" db:"access_level"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`
	CreatedBy   string      `json:"created_by" db:"created_by"`
}

// UserShares lists every share naming one user as recipient.
type UserShares struct {
	HostShares   []HostShare   `json:"host_shares"`
	FolderShares []FolderShare `json:"folder_shares"`
}
