package service

import (
	"context"
	"strings"
	"testing"

	"athar/internal/domain"
	"athar/internal/models"
	"athar/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentAndReply(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	owner := testutil.CreateUser(t, e.db, "Owner")
	guest := testutil.CreateUser(t, e.db, "Guest")
	p := testutil.CreatePost(t, e.db, owner.ID, "post")

	top, err := e.comments.Create(ctx, guest.ID, p.ID, "  nice  ", nil)
	require.NoError(t, err)
	assert.Equal(t, "nice", top.Content)

	reply, err := e.comments.Create(ctx, owner.ID, p.ID, "thanks", &top.ID)
	require.NoError(t, err)
	require.NotNil(t, reply.ParentID)

	// Only the guest's comment notifies the owner.
	list := e.notifications(t, owner.ID)
	require.Len(t, list, 1)
	assert.Equal(t, domain.NotificationComment, list[0].Type)

	rows, total, err := e.comments.ListTopLevel(ctx, 0, p.ID, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, rows, 1)
	assert.EqualValues(t, 1, rows[0].RepliesCount)

	replies, _, err := e.comments.ListReplies(ctx, 0, top.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, replies, 1)
	assert.Equal(t, "thanks", replies[0].Content)
}

func TestReplyParentMustBeTopLevelOnSamePost(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	u := testutil.CreateUser(t, e.db, "U")
	p1 := testutil.CreatePost(t, e.db, u.ID, "one")
	p2 := testutil.CreatePost(t, e.db, u.ID, "two")

	top, err := e.comments.Create(ctx, u.ID, p1.ID, "top", nil)
	require.NoError(t, err)
	reply, err := e.comments.Create(ctx, u.ID, p1.ID, "reply", &top.ID)
	require.NoError(t, err)

	_, err = e.comments.Create(ctx, u.ID, p2.ID, "cross", &top.ID)
	assert.ErrorIs(t, err, ErrParentNotFound)
	_, err = e.comments.Create(ctx, u.ID, p1.ID, "deep", &reply.ID)
	assert.ErrorIs(t, err, ErrParentNotFound)
	missing := uint(9999)
	_, err = e.comments.Create(ctx, u.ID, p1.ID, "orphan", &missing)
	assert.ErrorIs(t, err, ErrParentNotFound)

	assert.EqualValues(t, 2, e.count(t, &models.Comment{}))
}

func TestCommentValidation(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	u := testutil.CreateUser(t, e.db, "U")
	p := testutil.CreatePost(t, e.db, u.ID, "post")

	_, err := e.comments.Create(ctx, u.ID, p.ID, "   ", nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = e.comments.Create(ctx, u.ID, p.ID, strings.Repeat("x", maxCommentLength+1), nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = e.comments.Create(ctx, u.ID, 9999, "hi", nil)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestCommentDeletePermissions(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	author := testutil.CreateUser(t, e.db, "Author")
	stranger := testutil.CreateUser(t, e.db, "Stranger")
	mod := testutil.CreateUser(t, e.db, "Mod")
	mod.Role = domain.RoleModerator
	p := testutil.CreatePost(t, e.db, author.ID, "post")

	top, err := e.comments.Create(ctx, author.ID, p.ID, "top", nil)
	require.NoError(t, err)
	_, err = e.comments.Create(ctx, stranger.ID, p.ID, "reply", &top.ID)
	require.NoError(t, err)

	_, err = e.comments.Update(ctx, stranger.ID, top.ID, "hijack")
	assert.ErrorIs(t, err, ErrForbidden)
	updated, err := e.comments.Update(ctx, author.ID, top.ID, "edited")
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)

	assert.ErrorIs(t, e.comments.Delete(ctx, stranger, top.ID), ErrForbidden)
	require.NoError(t, e.comments.Delete(ctx, mod, top.ID))
	assert.Zero(t, e.count(t, &models.Comment{}))

	assert.ErrorIs(t, e.comments.Delete(ctx, mod, top.ID), ErrCommentNotFound)
	assert.ErrorIs(t, e.comments.ForceDelete(ctx, top.ID), ErrCommentNotFound)
}
