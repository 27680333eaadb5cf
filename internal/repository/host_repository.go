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

type HostRepository struct {
	db *sqlx.DB
}

func NewHostRepository(db *sqlx.DB) *HostRepository {
	return &HostRepository{db: db}
}

func (r *HostRepository) Create(ctx context.Context, host *domain.Host) error {
	query := `
        INSERT INTO hosts (id, name, address, owner_id, folder)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(
		ctx,
		query,
		host.ID,
		host.Name,
		host.Address,
		host.OwnerID,
		host.Folder,
	).Scan(&host.CreatedAt, &host.UpdatedAt)
	if err != nil {
		return trace.Wrap(err)
	}

	return nil
}

func (r *HostRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Host, error) {
	query := `SELECT * FROM hosts WHERE id = $1`

	var host domain.Host
	if err := r.db.GetContext(ctx, &host, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, trace.NotFound("host %q not found", id)
		}
		return nil, trace.Wrap(err)
	}

	return &host, nil
}

func (r *HostRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Host, error) {
	query := `SELECT * FROM hosts WHERE owner_id = $1 ORDER BY name, id`

	var hosts []domain.Host
	if err := r.db.SelectContext(ctx, &hosts, query, ownerID); err != nil {
		return nil, trace.Wrap(err)
	}

	return hosts, nil
}

// Update rewrites the mutable columns only. owner_id is immutable after
// creation and deliberately absent from the statement.
func (r *HostRepository) Update(ctx context.Context, host *domain.Host) error {
	query := `
        UPDATE hosts
        SET name = $1, address = $2, folder = $3, updated_at = CURRENT_TIMESTAMP
        WHERE id = $4
        RETURNING updated_at`

	err := r.db.QueryRowContext(
		ctx,
		query,
		host.Name,
		host.Address,
		host.Folder,
		host.ID,
	).Scan(&host.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return trace.NotFound("host %q not found", host.ID)
		}
		return trace.Wrap(err)
	}

	return nil
}
