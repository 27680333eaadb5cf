package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/gravitational/trace"

	"hostvault/internal/domain"
)

type HostService struct {
	hostRepo   HostStore
	userRepo   UserStore
	permission *PermissionService
	cascade    CascadeStore
}

func NewHostService(
	hostRepo HostStore,
	userRepo UserStore,
	permission *PermissionService,
	cascade CascadeStore,
) *HostService {
	return &HostService{
		hostRepo:   hostRepo,
		userRepo:   userRepo,
		permission: permission,
		cascade:    cascade,
	}
}

func (s *HostService) Create(ctx context.Context, ownerID, name, address, folder string) (*domain.Host, error) {
	if name == "" {
		return nil, trace.BadParameter("host name is required")
	}

	if _, err := s.userRepo.GetByID(ctx, ownerID); err != nil {
		return nil, trace.Wrap(err)
	}

	host := &domain.Host{
		ID:      uuid.New(),
		Name:    name,
		Address: address,
		OwnerID: ownerID,
		Folder:  folder,
	}
	if err := s.hostRepo.Create(ctx, host); err != nil {
		return nil, trace.Wrap(err)
	}

	return host, nil
}

// Update changes the mutable fields of a host. Moving a host to another
// folder label takes it out of coverage of folder shares keyed to the old
// label on the next resolve; no share record is touched.
func (s *HostService) Update(ctx context.Context, requesterID string, hostID uuid.UUID, name, address, folder string) (*domain.Host, error) {
	if err := s.permission.AuthorizeMutation(ctx, requesterID, hostID); err != nil {
		return nil, trace.Wrap(err)
	}

	if name == "" {
		return nil, trace.BadParameter("host name is required")
	}

	host, err := s.hostRepo.GetByID(ctx, hostID)
	if err != nil {
		return nil, trace.Wrap(err)
	}

	host.Name = name
	host.Address = address
	host.Folder = folder
	if err := s.hostRepo.Update(ctx, host); err != nil {
		return nil, trace.Wrap(err)
	}

	return host, nil
}

// Delete removes a host and, through the cascade, every host share
// referencing it.
func (s *HostService) Delete(ctx context.Context, requesterID string, hostID uuid.UUID) error {
	if err := s.permission.AuthorizeMutation(ctx, requesterID, hostID); err != nil {
		return trace.Wrap(err)
	}
	return trace.Wrap(s.cascade.OnHostDeleted(ctx, hostID))
}
