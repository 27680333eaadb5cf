package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/gravitational/trace"

	"hostvault/internal/domain"
)

// ShareService creates, lists and revokes access grants. Every management
// operation requires an administrator; recipients may only list what was
// shared with them.
type ShareService struct {
	shareRepo ShareStore
	hostRepo  HostStore
	userRepo  UserStore
}

func NewShareService(shareRepo ShareStore, hostRepo HostStore, userRepo UserStore) *ShareService {
	return &ShareService{
		shareRepo: shareRepo,
		hostRepo:  hostRepo,
		userRepo:  userRepo,
	}
}

// checkAccessLevel accepts the empty value as the default. "read" is the
// only level the system writes today; anything else is rejected outright
// instead of being stored and silently ignored.
func checkAccessLevel(level domain.AccessLevel) (domain.AccessLevel, error) {
	switch level {
	case "", domain.AccessLevelRead:
		return domain.AccessLevelRead, nil
	default:
		return "", trace.BadParameter("unsupported access level %q", level)
	}
}

func (s *ShareService) CreateHostShare(
	ctx context.Context,
	requesterID string,
	hostID uuid.UUID,
	sharedWith string,
	level domain.AccessLevel,
) (*domain.HostShare, error) {
	if err := requireAdmin(ctx, s.userRepo, requesterID); err != nil {
		return nil, trace.Wrap(err)
	}

	level, err := checkAccessLevel(level)
	if err != nil {
		return nil, trace.Wrap(err)
	}

	if _, err := s.userRepo.GetByID(ctx, sharedWith); err != nil {
		return nil, trace.Wrap(err)
	}

	host, err := s.hostRepo.GetByID(ctx, hostID)
	if err != nil {
		return nil, trace.Wrap(err)
	}

	if host.OwnerID == sharedWith {
		return nil, trace.BadParameter("host %q is already owned by user %q", hostID, sharedWith)
	}

	share := &domain.HostShare{
		ID:          uuid.New(),
		HostID:      hostID,
		OwnerID:     host.OwnerID,
		SharedWith:  sharedWith,
		AccessLevel: level,
		CreatedBy:   requesterID,
	}
	if err := s.shareRepo.CreateHostShare(ctx, share); err != nil {
		return nil, trace.Wrap(err)
	}

	return share, nil
}

// CreateFolderShare grants access to a folder by its (owner, label) key. The
// folder need not contain any hosts yet: the share takes effect on whatever
// hosts carry the label when a resolve runs.
func (s *ShareService) CreateFolderShare(
	ctx context.Context,
	requesterID string,
	folder string,
	ownerID string,
	sharedWith string,
	level domain.AccessLevel,
) (*domain.FolderShare, error) {
	if err := requireAdmin(ctx, s.userRepo, requesterID); err != nil {
		return nil, trace.Wrap(err)
	}

	level, err := checkAccessLevel(level)
	if err != nil {
		return nil, trace.Wrap(err)
	}

	if _, err := s.userRepo.GetByID(ctx, ownerID); err != nil {
		return nil, trace.Wrap(err)
	}
	if _, err := s.userRepo.GetByID(ctx, sharedWith); err != nil {
		return nil, trace.Wrap(err)
	}

	if ownerID == sharedWith {
		return nil, trace.BadParameter("cannot share folder %q of user %q with its owner", folder, ownerID)
	}

	share := &domain.FolderShare{
		ID:          uuid.New(),
		Folder:      folder,
		OwnerID:     ownerID,
		SharedWith:  sharedWith,
		AccessLevel: level,
		CreatedBy:   requesterID,
	}
	if err := s.shareRepo.CreateFolderShare(ctx, share); err != nil {
		return nil, trace.Wrap(err)
	}

	return share, nil
}

func (s *ShareService) RevokeHostShare(ctx context.Context, requesterID string, shareID uuid.UUID) error {
	if err := requireAdmin(ctx, s.userRepo, requesterID); err != nil {
		return trace.Wrap(err)
	}
	return trace.Wrap(s.shareRepo.DeleteHostShare(ctx, shareID))
}

func (s *ShareService) RevokeFolderShare(ctx context.Context, requesterID string, shareID uuid.UUID) error {
	if err := requireAdmin(ctx, s.userRepo, requesterID); err != nil {
		return trace.Wrap(err)
	}
	return trace.Wrap(s.shareRepo.DeleteFolderShare(ctx, shareID))
}

func (s *ShareService) ListHostShares(ctx context.Context, requesterID string, hostID uuid.UUID) ([]domain.HostShare, error) {
	if err := requireAdmin(ctx, s.userRepo, requesterID); err != nil {
		return nil, trace.Wrap(err)
	}

	if _, err := s.hostRepo.GetByID(ctx, hostID); err != nil {
		return nil, trace.Wrap(err)
	}

	return s.shareRepo.ListHostSharesByHost(ctx, hostID)
}

func (s *ShareService) ListFolderShares(ctx context.Context, requesterID string, ownerID, folder string) ([]domain.FolderShare, error) {
	if err := requireAdmin(ctx, s.userRepo, requesterID); err != nil {
		return nil, trace.Wrap(err)
	}

	return s.shareRepo.ListFolderShares(ctx, ownerID, folder)
}

// ListSharedWithUser returns every share naming the user as recipient.
func (s *ShareService) ListSharedWithUser(ctx context.Context, userID string) (*domain.UserShares, error) {
	hostShares, err := s.shareRepo.ListHostSharesForUser(ctx, userID)
	if err != nil {
		return nil, trace.Wrap(err)
	}

	folderShares, err := s.shareRepo.ListFolderSharesForUser(ctx, userID)
	if err != nil {
		return nil, trace.Wrap(err)
	}

	return &domain.UserShares{
		HostShares:   hostShares,
		FolderShares: folderShares,
	}, nil
}
