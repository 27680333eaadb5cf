package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/gravitational/trace"
	"github.com/jmoiron/sqlx"

	"hostvault/internal/domain"
)

// SharedHost is a host row joined with the id of the share that exposes it.
type SharedHost struct {
	domain.Host
	ShareID uuid.UUID `db:"share_id"`
}

type ShareRepository struct {
	db *sqlx.DB
}

func NewShareRepository(db *sqlx.DB) *ShareRepository {
	return &ShareRepository{db: db}
}

// CreateHostShare inserts a new host share. The unique index on
// (host_id, shared_with) makes the insert an atomic create-if-absent: under
// concurrent identical requests exactly one row is created and the loser
// observes AlreadyExists.
func (r *ShareRepository) CreateHostShare(ctx context.Context, share *domain.HostShare) error {
	query := `
        INSERT INTO host_shares (
            id, host_id, owner_id, shared_with, access_level, created_by
        ) VALUES (
            $1, $2, $3, $4, $5, $6
        ) RETURNING created_at`

	err := r.db.QueryRowContext(
		ctx,
		query,
		share.ID,
		share.HostID,
		share.OwnerID,
		share.SharedWith,
		share.AccessLevel,
		share.CreatedBy,
	).Scan(&share.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return trace.AlreadyExists("host %q is already shared with user %q",
				share.HostID, share.SharedWith)
		}
		return trace.Wrap(err)
	}

	return nil
}

// CreateFolderShare inserts a new folder share, guarded the same way by the
// unique index on (folder, owner_id, shared_with).
func (r *ShareRepository) CreateFolderShare(ctx context.Context, share *domain.FolderShare) error {
	query := `
        INSERT INTO folder_shares (
            id, folder, owner_id, shared_with, access_level, created_by
        ) VALUES (
            $1, $2, $3, $4, $5, $6
        ) RETURNING created_at`

	err := r.db.QueryRowContext(
		ctx,
		query,
		share.ID,
		share.Folder,
		share.OwnerID,
		share.SharedWith,
		share.AccessLevel,
		share.CreatedBy,
	).Scan(&share.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return trace.AlreadyExists("folder %q of user %q is already shared with user %q",
				share.Folder, share.OwnerID, share.SharedWith)
		}
		return trace.Wrap(err)
	}

	return nil
}

// DeleteHostShare removes a share row. Revocation is a hard delete; an
// unknown id is NotFound whether it never existed or was already revoked.
func (r *ShareRepository) DeleteHostShare(ctx context.Context, shareID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM host_shares WHERE id = $1`, shareID)
	if err != nil {
		return trace.Wrap(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return trace.Wrap(err)
	}
	if rows == 0 {
		return trace.NotFound("host share %q not found", shareID)
	}

	return nil
}

func (r *ShareRepository) DeleteFolderShare(ctx context.Context, shareID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM folder_shares WHERE id = $1`, shareID)
	if err != nil {
		return trace.Wrap(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return trace.Wrap(err)
	}
	if rows == 0 {
		return trace.NotFound("folder share %q not found", shareID)
	}

	return nil
}

func (r *ShareRepository) ListHostSharesByHost(ctx context.Context, hostID uuid.UUID) ([]domain.HostShare, error) {
	query := `SELECT * FROM host_shares WHERE host_id = $1 ORDER BY created_at DESC, id`

	var shares []domain.HostShare
	if err := r.db.SelectContext(ctx, &shares, query, hostID); err != nil {
		return nil, trace.Wrap(err)
	}

	return shares, nil
}

func (r *ShareRepository) ListFolderShares(ctx context.Context, ownerID, folder string) ([]domain.FolderShare, error) {
	query := `
        SELECT * FROM folder_shares
        WHERE owner_id = $1 AND folder = $2
        ORDER BY created_at DESC, id`

	var shares []domain.FolderShare
	if err := r.db.SelectContext(ctx, &shares, query, ownerID, folder); err != nil {
		return nil, trace.Wrap(err)
	}

	return shares, nil
}

func (r *ShareRepository) ListHostSharesForUser(ctx context.Context, userID string) ([]domain.HostShare, error) {
	query := `SELECT * FROM host_shares WHERE shared_with = $1 ORDER BY created_at DESC, id`

	var shares []domain.HostShare
	if err := r.db.SelectContext(ctx, &shares, query, userID); err != nil {
		return nil, trace.Wrap(err)
	}

	return shares, nil
}

func (r *ShareRepository) ListFolderSharesForUser(ctx context.Context, userID string) ([]domain.FolderShare, error) {
	query := `SELECT * FROM folder_shares WHERE shared_with = $1 ORDER BY created_at DESC, id`

	var shares []domain.FolderShare
	if err := r.db.SelectContext(ctx, &shares, query, userID); err != nil {
		return nil, trace.Wrap(err)
	}

	return shares, nil
}

// ListSharedHosts returns the hosts directly shared with a user.
func (r *ShareRepository) ListSharedHosts(ctx context.Context, userID string) ([]SharedHost, error) {
	query := `
        SELECT h.*, s.id AS share_id
        FROM hosts h
        JOIN host_shares s ON s.host_id = h.id
        WHERE s.shared_with = $1
        ORDER BY h.name, h.id`

	var hosts []SharedHost
	if err := r.db.SelectContext(ctx, &hosts, query, userID); err != nil {
		return nil, trace.Wrap(err)
	}

	return hosts, nil
}

// ListFolderSharedHosts returns the hosts a user can see through folder
// shares. Membership is a computed predicate on (owner_id, folder), so a
// host enters or leaves coverage the moment its folder label changes; only
// currently existing hosts can match.
func (r *ShareRepository) ListFolderSharedHosts(ctx context.Context, userID string) ([]SharedHost, error) {
	query := `
        SELECT h.*, s.id AS share_id
        FROM hosts h
        JOIN folder_shares s
            ON s.owner_id = h.owner_id AND s.folder = h.folder
        WHERE s.shared_with = $1
        ORDER BY h.name, h.id`

	var hosts []SharedHost
	if err := r.db.SelectContext(ctx, &hosts, query, userID); err != nil {
		return nil, trace.Wrap(err)
	}

	return hosts, nil
}

// GetHostShareByKey returns the active share for (hostID, sharedWith), or
// nil when none exists.
func (r *ShareRepository) GetHostShareByKey(ctx context.Context, hostID uuid.UUID, sharedWith string) (*domain.HostShare, error) {
	query := `SELECT * FROM host_shares WHERE host_id = $1 AND shared_with = $2`

	var share domain.HostShare
	err := r.db.GetContext(ctx, &share, query, hostID, sharedWith)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, trace.Wrap(err)
	}

	return &share, nil
}

// GetFolderShareByKey returns the active share for the folder triple, or nil
// when none exists. An empty folder value is a regular key and matches the
// owner's hosts that have no folder assigned.
func (r *ShareRepository) GetFolderShareByKey(ctx context.Context, folder, ownerID, sharedWith string) (*domain.FolderShare, error) {
	query := `
        SELECT * FROM folder_shares
        WHERE folder = $1 AND owner_id = $2 AND shared_with = $3`

	var share domain.FolderShare
	err := r.db.GetContext(ctx, &share, query, folder, ownerID, sharedWith)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, trace.Wrap(err)
	}

	return &share, nil
}
