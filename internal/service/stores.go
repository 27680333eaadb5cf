package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/gravitational/trace"

	"hostvault/internal/domain"
	"hostvault/internal/repository"
)

// Store interfaces are satisfied by the repository types. Services depend on
// them rather than on *sqlx.DB so the access and policy logic can be
// exercised without a database.

type UserStore interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}

type HostStore interface {
	Create(ctx context.Context, host *domain.Host) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Host, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Host, error)
	Update(ctx context.Context, host *domain.Host) error
}

type ShareStore interface {
	CreateHostShare(ctx context.Context, share *domain.HostShare) error
	CreateFolderShare(ctx context.Context, share *domain.FolderShare) error
	DeleteHostShare(ctx context.Context, shareID uuid.UUID) error
	DeleteFolderShare(ctx context.Context, shareID uuid.UUID) error
	ListHostSharesByHost(ctx context.Context, hostID uuid.UUID) ([]domain.HostShare, error)
	ListFolderShares(ctx context.Context, ownerID, folder string) ([]domain.FolderShare, error)
	ListHostSharesForUser(ctx context.Context, userID string) ([]domain.HostShare, error)
	ListFolderSharesForUser(ctx context.Context, userID string) ([]domain.FolderShare, error)
	ListSharedHosts(ctx context.Context, userID string) ([]repository.SharedHost, error)
	ListFolderSharedHosts(ctx context.Context, userID string) ([]repository.SharedHost, error)
	GetHostShareByKey(ctx context.Context, hostID uuid.UUID, sharedWith string) (*domain.HostShare, error)
	GetFolderShareByKey(ctx context.Context, folder, ownerID, sharedWith string) (*domain.FolderShare, error)
}

type CascadeStore interface {
	OnHostDeleted(ctx context.Context, hostID uuid.UUID) error
	OnUserDeleted(ctx context.Context, userID string) error
}

// requireAdmin rejects any requester that does not exist or is not an
// administrator. An unknown requester surfaces as AccessDenied, not
// NotFound, so the error never leaks whether the id is real.
func requireAdmin(ctx context.Context, users UserStore, requesterID string) error {
	user, err := users.GetByID(ctx, requesterID)
	if err != nil {
		if trace.IsNotFound(err) {
			return trace.AccessDenied("administrator privileges required")
		}
		return trace.Wrap(err)
	}
	if !user.IsAdmin {
		return trace.AccessDenied("administrator privileges required")
	}
	return nil
}
