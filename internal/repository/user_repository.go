package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gravitational/trace"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"hostvault/internal/domain"
)

// uniqueViolation is the postgres error code raised when an insert hits a
// unique index.
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
        INSERT INTO users (id, name, is_admin)
        VALUES ($1, $2, $3)
        RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query, user.ID, user.Name, user.IsAdmin).
		Scan(&user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return trace.AlreadyExists("user %q already exists", user.ID)
		}
		return trace.Wrap(err)
	}

	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT * FROM users WHERE id = $1`

	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, trace.NotFound("user %q not found", id)
		}
		return nil, trace.Wrap(err)
	}

	return &user, nil
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	query := `SELECT * FROM users ORDER BY id`

	var users []domain.User
	if err := r.db.SelectContext(ctx, &users, query); err != nil {
		return nil, trace.Wrap(err)
	}

	return users, nil
}
