package service

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/gravitational/trace"

	"hostvault/internal/domain"
)

// AccessService computes which hosts a user may read and why. It is the
// single source of read authorization: the per-host check and the full
// listing are built from the same grants and always agree.
type AccessService struct {
	hostRepo  HostStore
	shareRepo ShareStore
}

func NewAccessService(hostRepo HostStore, shareRepo ShareStore) *AccessService {
	return &AccessService{
		hostRepo:  hostRepo,
		shareRepo: shareRepo,
	}
}

// ResolveAccessible returns every host visible to the user, de-duplicated by
// host id. A host reachable through more than one grant is reported once,
// with provenance priority owner > host share > folder share. The result is
// sorted by name then id, so it is stable for a fixed store state.
func (s *AccessService) ResolveAccessible(ctx context.Context, userID string) ([]domain.AccessibleHost, error) {
	byID := make(map[uuid.UUID]domain.AccessibleHost)

	owned, err := s.hostRepo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	for _, host := range owned {
		byID[host.ID] = domain.AccessibleHost{
			Host:       host,
			Provenance: domain.Provenance{IsOwner: true},
		}
	}

	shared, err := s.shareRepo.ListSharedHosts(ctx, userID)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	for _, row := range shared {
		if _, ok := byID[row.Host.ID]; ok {
			continue
		}
		byID[row.Host.ID] = sharedEntry(row.Host, row.ShareID)
	}

	folderShared, err := s.shareRepo.ListFolderSharedHosts(ctx, userID)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	for _, row := range folderShared {
		if _, ok := byID[row.Host.ID]; ok {
			continue
		}
		byID[row.Host.ID] = sharedEntry(row.Host, row.ShareID)
	}

	result := make([]domain.AccessibleHost, 0, len(byID))
	for _, entry := range byID {
		result = append(result, entry)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Host.Name != result[j].Host.Name {
			return result[i].Host.Name < result[j].Host.Name
		}
		return result[i].Host.ID.String() < result[j].Host.ID.String()
	})

	return result, nil
}

// ResolveHostAccess authorizes a read of a single host. It checks the same
// three grant paths as ResolveAccessible, in the same priority order, so a
// host is readable here exactly when it appears in the user's listing.
func (s *AccessService) ResolveHostAccess(ctx context.Context, userID string, hostID uuid.UUID) (*domain.AccessibleHost, error) {
	host, err := s.hostRepo.GetByID(ctx, hostID)
	if err != nil {
		return nil, trace.Wrap(err)
	}

	if host.OwnerID == userID {
		return &domain.AccessibleHost{
			Host:       *host,
			Provenance: domain.Provenance{IsOwner: true},
		}, nil
	}

	hostShare, err := s.shareRepo.GetHostShareByKey(ctx, hostID, userID)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	if hostShare != nil {
		entry := sharedEntry(*host, hostShare.ID)
		return &entry, nil
	}

	folderShare, err := s.shareRepo.GetFolderShareByKey(ctx, host.Folder, host.OwnerID, userID)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	if folderShare != nil {
		entry := sharedEntry(*host, folderShare.ID)
		return &entry, nil
	}

	return nil, trace.AccessDenied("user %q has no access to host %q", userID, hostID)
}

func sharedEntry(host domain.Host, shareID uuid.UUID) domain.AccessibleHost {
	id := shareID
	return domain.AccessibleHost{
		Host: host,
		Provenance: domain.Provenance{
			IsShared:      true,
			ShareID:       &id,
			ActualOwnerID: host.OwnerID,
		},
	}
}
