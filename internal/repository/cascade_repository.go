package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/gravitational/trace"
	"github.com/jmoiron/sqlx"
)

// CascadeRepository keeps share records consistent when the entity they
// reference disappears. Each operation deletes the entity together with its
// dependent share rows in one transaction, so a concurrent resolve never
// observes a deleted entity with a live share row or the reverse. The schema
// foreign keys carry ON DELETE CASCADE as a durable backstop.
type CascadeRepository struct {
	db *sqlx.DB
}

func NewCascadeRepository(db *sqlx.DB) *CascadeRepository {
	return &CascadeRepository{db: db}
}

// OnHostDeleted removes a host and every host share referencing it. Folder
// shares are untouched: they reference a folder label, not a host id, and
// simply stop covering the host once its row is gone.
func (r *CascadeRepository) OnHostDeleted(ctx context.Context, hostID uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return trace.Wrap(err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM host_shares WHERE host_id = $1`, hostID); err != nil {
		return trace.Wrap(err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM hosts WHERE id = $1`, hostID)
	if err != nil {
		return trace.Wrap(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return trace.Wrap(err)
	}
	if rows == 0 {
		return trace.NotFound("host %q not found", hostID)
	}

	return trace.Wrap(tx.Commit())
}

// OnUserDeleted removes a user and every share naming them, whether as
// recipient or as owner. Shares tied to the user's hosts follow the host
// deletion path when those hosts are removed separately.
func (r *CascadeRepository) OnUserDeleted(ctx context.Context, userID string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return trace.Wrap(err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM host_shares WHERE shared_with = $1 OR owner_id = $1`, userID); err != nil {
		return trace.Wrap(err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM folder_shares WHERE shared_with = $1 OR owner_id = $1`, userID); err != nil {
		return trace.Wrap(err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return trace.Wrap(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return trace.Wrap(err)
	}
	if rows == 0 {
		return trace.NotFound("user %q not found", userID)
	}

	return trace.Wrap(tx.Commit())
}
