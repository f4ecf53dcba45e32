package service

import (
	"context"
	"testing"

	"athar/internal/domain"
	"athar/internal/models"
	"athar/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeAdmin(t *testing.T, e *testEnv, name string) *models.User {
	t.Helper()
	u := testutil.CreateUser(t, e.db, name)
	require.NoError(t, e.db.Model(&models.User{}).Where("id = ?", u.ID).Update("role", domain.RoleAdmin).Error)
	u.Role = domain.RoleAdmin
	return u
}

func TestBanAndUnban(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	admin := makeAdmin(t, e, "Admin")
	peer := makeAdmin(t, e, "Peer")
	u := testutil.CreateUser(t, e.db, "User")

	assert.ErrorIs(t, e.admin.Ban(ctx, admin.ID, admin.ID, ""), ErrSelfReference)
	assert.ErrorIs(t, e.admin.Ban(ctx, admin.ID, peer.ID, ""), ErrForbidden)
	assert.ErrorIs(t, e.admin.Ban(ctx, admin.ID, 9999, ""), ErrUserNotFound)

	require.NoError(t, e.admin.Ban(ctx, admin.ID, u.ID, "spam"))
	row, err := e.admin.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, row.IsBanned)
	require.NotNil(t, row.BanReason)
	assert.Equal(t, "spam", *row.BanReason)

	require.NoError(t, e.admin.Unban(ctx, admin.ID, u.ID))
	row, err = e.admin.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, row.IsBanned)
	assert.Nil(t, row.BanReason)
}

func TestAdminDeleteUser(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	admin := makeAdmin(t, e, "Admin")
	u := testutil.CreateUser(t, e.db, "User")
	p := testutil.CreatePost(t, e.db, u.ID, "post")
	_, err := e.comments.Create(ctx, admin.ID, p.ID, "note", nil)
	require.NoError(t, err)

	require.NoError(t, e.admin.DeleteUser(ctx, admin.ID, u.ID))
	assert.EqualValues(t, 1, e.count(t, &models.User{}))
	assert.Zero(t, e.count(t, &models.Post{}))
	assert.Zero(t, e.count(t, &models.Comment{}))

	assert.ErrorIs(t, e.admin.DeleteUser(ctx, admin.ID, u.ID), ErrUserNotFound)
}

func TestAdminStatsAndBroadcast(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	admin := makeAdmin(t, e, "Admin")
	u := testutil.CreateUser(t, e.db, "User")
	testutil.CreatePost(t, e.db, u.ID, "post")

	stats, err := e.admin.Stats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.TotalUsers)
	assert.EqualValues(t, 1, stats.TotalPosts)
	require.Len(t, stats.PostsByType, 1)
	assert.Equal(t, domain.PostTypeText, stats.PostsByType[0].Key)

	_, err = e.admin.Broadcast(ctx, admin.ID, nil, " ", "body", nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
	n, err := e.admin.Broadcast(ctx, admin.ID, []uint{u.ID}, "Update", "New version", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Len(t, e.notifications(t, u.ID), 1)
}
