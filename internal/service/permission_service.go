package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/gravitational/trace"

	"hostvault/internal/domain"
)

// PermissionService gates operations on hosts. Read authorization delegates
// to the access resolver; mutation authorization is strictly narrower and
// belongs to the owner alone.
type PermissionService struct {
	hostRepo HostStore
	access   *AccessService
}

func NewPermissionService(hostRepo HostStore, access *AccessService) *PermissionService {
	return &PermissionService{
		hostRepo: hostRepo,
		access:   access,
	}
}

// AuthorizeMutation permits a write, update or delete on a host only for its
// owner. A share, of any kind and whatever its access level says, never
// confers mutation rights; there is no override path.
func (s *PermissionService) AuthorizeMutation(ctx context.Context, requesterID string, hostID uuid.UUID) error {
	host, err := s.hostRepo.GetByID(ctx, hostID)
	if err != nil {
		return trace.Wrap(err)
	}
	if host.OwnerID != requesterID {
		return trace.AccessDenied("user %q is not the owner of host %q", requesterID, hostID)
	}
	return nil
}

// AuthorizeRead answers whether the requester may read the host, returning
// the host with its provenance when allowed.
func (s *PermissionService) AuthorizeRead(ctx context.Context, requesterID string, hostID uuid.UUID) (*domain.AccessibleHost, error) {
	return s.access.ResolveHostAccess(ctx, requesterID, hostID)
}
