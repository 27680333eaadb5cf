package service

import (
	"context"
	"testing"

	"github.com/gravitational/trace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateHost(t *testing.T) {
	ctx := context.Background()
	m := newMemStore()
	_, _, _, hostSvc, _ := newTestServices(m)

	m.addUser("u1", false)

	host, err := hostSvc.Create(ctx, "u1", "alpha", "10.0.0.5:22", "prod")
	require.NoError(t, err)
	assert.Equal(t, "u1", host.OwnerID)
	assert.Equal(t, "prod", host.Folder)

	_, err = hostSvc.Create(ctx, "u1", "", "", "")
	assert.True(t, trace.IsBadParameter(err))

	_, err = hostSvc.Create(ctx, "ghost", "beta", "", "")
	assert.True(t, trace.IsNotFound(err))
}

func TestUpdateHost(t *testing.T) {
	ctx := context.Background()
	m := newMemStore()
	access, _, shares, hostSvc, _ := newTestServices(m)

	m.addUser("admin", true)
	m.addUser("u1", false)
	m.addUser("u2", false)
	h1 := m.addHost("u1", "alpha", "prod")

	_, err := shares.CreateFolderShare(ctx, "admin", "prod", "u1", "u2", "")
	require.NoError(t, err)

	// Recipients cannot mutate, whatever they were shared.
	_, err = hostSvc.Update(ctx, "u2", h1.ID, "renamed", "", "prod")
	assert.True(t, trace.IsAccessDenied(err))

	// The owner moving the host to another folder silently takes it out of
	// the old folder share's coverage.
	updated, err := hostSvc.Update(ctx, "u1", h1.ID, "alpha", "10.0.0.5:22", "staging")
	require.NoError(t, err)
	assert.Equal(t, "staging", updated.Folder)
	assert.Equal(t, "u1", updated.OwnerID)

	hosts, err := access.ResolveAccessible(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, hosts)
}

func TestUserServiceAdminGate(t *testing.T) {
	ctx := context.Background()
	m := newMemStore()
	_, _, _, _, userSvc := newTestServices(m)

	m.addUser("admin", true)
	m.addUser("u1", false)

	_, err := userSvc.Create(ctx, "u1", "u2", "User Two", false)
	assert.True(t, trace.IsAccessDenied(err))

	user, err := userSvc.Create(ctx, "admin", "u2", "User Two", false)
	require.NoError(t, err)
	assert.False(t, user.IsAdmin)

	_, err = userSvc.Create(ctx, "admin", "u2", "User Two", false)
	assert.True(t, trace.IsAlreadyExists(err))

	_, err = userSvc.Create(ctx, "admin", "", "Nameless", false)
	assert.True(t, trace.IsBadParameter(err))

	users, err := userSvc.List(ctx, "admin")
	require.NoError(t, err)
	assert.Len(t, users, 3)

	_, err = userSvc.List(ctx, "u1")
	assert.True(t, trace.IsAccessDenied(err))
}
