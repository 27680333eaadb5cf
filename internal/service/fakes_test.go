package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/gravitational/trace"

	"hostvault/internal/domain"
	"hostvault/internal/repository"
)

// memStore is an in-memory stand-in for the repository types. It mirrors
// their semantics: unique-key conflicts, not-found on delete, nil results
// for absent key lookups, and transactional-looking cascades.
type memStore struct {
	users        map[string]domain.User
	hosts        map[uuid.UUID]domain.Host
	hostShares   map[uuid.UUID]domain.HostShare
	folderShares map[uuid.UUID]domain.FolderShare
}

func newMemStore() *memStore {
	return &memStore{
		users:        make(map[string]domain.User),
		hosts:        make(map[uuid.UUID]domain.Host),
		hostShares:   make(map[uuid.UUID]domain.HostShare),
		folderShares: make(map[uuid.UUID]domain.FolderShare),
	}
}

func (m *memStore) addUser(id string, isAdmin bool) domain.User {
	user := domain.User{ID: id, Name: id, IsAdmin: isAdmin, CreatedAt: time.Now()}
	m.users[id] = user
	return user
}

func (m *memStore) addHost(ownerID, name, folder string) domain.Host {
	host := domain.Host{
		ID:      uuid.New(),
		Name:    name,
		OwnerID: ownerID,
		Folder:  folder,
	}
	m.hosts[host.ID] = host
	return host
}

// UserStore

func (m *memStore) Create(ctx context.Context, user *domain.User) error {
	if _, ok := m.users[user.ID]; ok {
		return trace.AlreadyExists("user %q already exists", user.ID)
	}
	user.CreatedAt = time.Now()
	m.users[user.ID] = *user
	return nil
}

func (m *memStore) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, trace.NotFound("user %q not found", id)
	}
	return &user, nil
}

func (m *memStore) List(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	for _, user := range m.users {
		users = append(users, user)
	}
	return users, nil
}

// HostStore — wrapped in a separate type because Create/GetByID signatures
// collide with UserStore.

type memHostStore struct {
	m *memStore
}

func (s memHostStore) Create(ctx context.Context, host *domain.Host) error {
	host.CreatedAt = time.Now()
	host.UpdatedAt = host.CreatedAt
	s.m.hosts[host.ID] = *host
	return nil
}

func (s memHostStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Host, error) {
	host, ok := s.m.hosts[id]
	if !ok {
		return nil, trace.NotFound("host %q not found", id)
	}
	return &host, nil
}

func (s memHostStore) ListByOwner(ctx context.Context, ownerID string) ([]domain.Host, error) {
	var hosts []domain.Host
	for _, host := range s.m.hosts {
		if host.OwnerID == ownerID {
			hosts = append(hosts, host)
		}
	}
	return hosts, nil
}

func (s memHostStore) Update(ctx context.Context, host *domain.Host) error {
	if _, ok := s.m.hosts[host.ID]; !ok {
		return trace.NotFound("host %q not found", host.ID)
	}
	host.UpdatedAt = time.Now()
	s.m.hosts[host.ID] = *host
	return nil
}

// ShareStore

func (m *memStore) CreateHostShare(ctx context.Context, share *domain.HostShare) error {
	for _, existing := range m.hostShares {
		if existing.HostID == share.HostID && existing.SharedWith == share.SharedWith {
			return trace.AlreadyExists("host %q is already shared with user %q",
				share.HostID, share.SharedWith)
		}
	}
	share.CreatedAt = time.Now()
	m.hostShares[share.ID] = *share
	return nil
}

func (m *memStore) CreateFolderShare(ctx context.Context, share *domain.FolderShare) error {
	for _, existing := range m.folderShares {
		if existing.Folder == share.Folder &&
			existing.OwnerID == share.OwnerID &&
			existing.SharedWith == share.SharedWith {
			return trace.AlreadyExists("folder %q of user %q is already shared with user %q",
				share.Folder, share.OwnerID, share.SharedWith)
		}
	}
	share.CreatedAt = time.Now()
	m.folderShares[share.ID] = *share
	return nil
}

func (m *memStore) DeleteHostShare(ctx context.Context, shareID uuid.UUID) error {
	if _, ok := m.hostShares[shareID]; !ok {
		return trace.NotFound("host share %q not found", shareID)
	}
	delete(m.hostShares, shareID)
	return nil
}

func (m *memStore) DeleteFolderShare(ctx context.Context, shareID uuid.UUID) error {
	if _, ok := m.folderShares[shareID]; !ok {
		return trace.NotFound("folder share %q not found", shareID)
	}
	delete(m.folderShares, shareID)
	return nil
}

func (m *memStore) ListHostSharesByHost(ctx context.Context, hostID uuid.UUID) ([]domain.HostShare, error) {
	var shares []domain.HostShare
	for _, share := range m.hostShares {
		if share.HostID == hostID {
			shares = append(shares, share)
		}
	}
	return shares, nil
}

func (m *memStore) ListFolderShares(ctx context.Context, ownerID, folder string) ([]domain.FolderShare, error) {
	var shares []domain.FolderShare
	for _, share := range m.folderShares {
		if share.OwnerID == ownerID && share.Folder == folder {
			shares = append(shares, share)
		}
	}
	return shares, nil
}

func (m *memStore) ListHostSharesForUser(ctx context.Context, userID string) ([]domain.HostShare, error) {
	var shares []domain.HostShare
	for _, share := range m.hostShares {
		if share.SharedWith == userID {
			shares = append(shares, share)
		}
	}
	return shares, nil
}

func (m *memStore) ListFolderSharesForUser(ctx context.Context, userID string) ([]domain.FolderShare, error) {
	var shares []domain.FolderShare
	for _, share := range m.folderShares {
		if share.SharedWith == userID {
			shares = append(shares, share)
		}
	}
	return shares, nil
}

func (m *memStore) ListSharedHosts(ctx context.Context, userID string) ([]repository.SharedHost, error) {
	var hosts []repository.SharedHost
	for _, share := range m.hostShares {
		if share.SharedWith != userID {
			continue
		}
		host, ok := m.hosts[share.HostID]
		if !ok {
			continue
		}
		hosts = append(hosts, repository.SharedHost{Host: host, ShareID: share.ID})
	}
	return hosts, nil
}

func (m *memStore) ListFolderSharedHosts(ctx context.Context, userID string) ([]repository.SharedHost, error) {
	var hosts []repository.SharedHost
	for _, share := range m.folderShares {
		if share.SharedWith != userID {
			continue
		}
		for _, host := range m.hosts {
			if host.OwnerID == share.OwnerID && host.Folder == share.Folder {
				hosts = append(hosts, repository.SharedHost{Host: host, ShareID: share.ID})
			}
		}
	}
	return hosts, nil
}

func (m *memStore) GetHostShareByKey(ctx context.Context, hostID uuid.UUID, sharedWith string) (*domain.HostShare, error) {
	for _, share := range m.hostShares {
		if share.HostID == hostID && share.SharedWith == sharedWith {
			s := share
			return &s, nil
		}
	}
	return nil, nil
}

func (m *memStore) GetFolderShareByKey(ctx context.Context, folder, ownerID, sharedWith string) (*domain.FolderShare, error) {
	for _, share := range m.folderShares {
		if share.Folder == folder && share.OwnerID == ownerID && share.SharedWith == sharedWith {
			s := share
			return &s, nil
		}
	}
	return nil, nil
}

// CascadeStore

func (m *memStore) OnHostDeleted(ctx context.Context, hostID uuid.UUID) error {
	if _, ok := m.hosts[hostID]; !ok {
		return trace.NotFound("host %q not found", hostID)
	}
	for id, share := range m.hostShares {
		if share.HostID == hostID {
			delete(m.hostShares, id)
		}
	}
	delete(m.hosts, hostID)
	return nil
}

func (m *memStore) OnUserDeleted(ctx context.Context, userID string) error {
	if _, ok := m.users[userID]; !ok {
		return trace.NotFound("user %q not found", userID)
	}
	for id, share := range m.hostShares {
		if share.SharedWith == userID || share.OwnerID == userID {
			delete(m.hostShares, id)
		}
	}
	for id, share := range m.folderShares {
		if share.SharedWith == userID || share.OwnerID == userID {
			delete(m.folderShares, id)
		}
	}
	delete(m.users, userID)
	return nil
}

// newTestServices wires the full service graph over one memStore.
func newTestServices(m *memStore) (*AccessService, *PermissionService, *ShareService, *HostService, *UserService) {
	hosts := memHostStore{m: m}
	access := NewAccessService(hosts, m)
	permission := NewPermissionService(hosts, access)
	shares := NewShareService(m, hosts, m)
	hostSvc := NewHostService(hosts, m, permission, m)
	userSvc := NewUserService(m, m)
	return access, permission, shares, hostSvc, userSvc
}
