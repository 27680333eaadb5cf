package service

import (
	"context"
	"testing"

	"github.com/gravitational/trace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteHostCascadesShares(t *testing.T) {
	ctx := context.Background()
	m := newMemStore()
	access, _, shares, hostSvc, _ := newTestServices(m)

	m.addUser("admin", true)
	m.addUser("u1", false)
	m.addUser("u2", false)
	h1 := m.addHost("u1", "alpha", "prod")

	_, err := shares.CreateHostShare(ctx, "admin", h1.ID, "u2", "")
	require.NoError(t, err)
	folderShare, err := shares.CreateFolderShare(ctx, "admin", "prod", "u1", "u2", "")
	require.NoError(t, err)

	// Only the owner may delete.
	err = hostSvc.Delete(ctx, "u2", h1.ID)
	assert.True(t, trace.IsAccessDenied(err))

	require.NoError(t, hostSvc.Delete(ctx, "u1", h1.ID))

	assert.Empty(t, m.hostShares, "host shares must follow the host")
	assert.Contains(t, m.folderShares, folderShare.ID,
		"folder shares reference a label, not a host, and survive")

	hosts, err := access.ResolveAccessible(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, hosts)
}

func TestDeleteUserCascadesShares(t *testing.T) {
	ctx := context.Background()
	m := newMemStore()
	access, _, shares, _, userSvc := newTestServices(m)

	m.addUser("admin", true)
	m.addUser("u1", false)
	m.addUser("u2", false)
	m.addUser("u3", false)
	h1 := m.addHost("u1", "alpha", "prod")
	h2 := m.addHost("u3", "beta", "")

	// u2 is recipient of one share, u1 is owner named by another.
	_, err := shares.CreateHostShare(ctx, "admin", h1.ID, "u2", "")
	require.NoError(t, err)
	_, err = shares.CreateFolderShare(ctx, "admin", "prod", "u1", "u3", "")
	require.NoError(t, err)
	_, err = shares.CreateHostShare(ctx, "admin", h2.ID, "u1", "")
	require.NoError(t, err)

	err = userSvc.Delete(ctx, "u2", "u1")
	assert.True(t, trace.IsAccessDenied(err), "only administrators delete users")

	require.NoError(t, userSvc.Delete(ctx, "admin", "u1"))

	// Every share naming u1 as owner or recipient is gone.
	assert.Empty(t, m.hostShares)
	assert.Empty(t, m.folderShares)

	hosts, err := access.ResolveAccessible(ctx, "u3")
	require.NoError(t, err)
	require.Len(t, hosts, 1)
	assert.Equal(t, h2.ID, hosts[0].Host.ID)

	err = userSvc.Delete(ctx, "admin", "ghost")
	assert.True(t, trace.IsNotFound(err))
}
