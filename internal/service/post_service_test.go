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

func TestCreatePostValidation(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	u := testutil.CreateUser(t, e.db, "U")

	_, err := e.posts.Create(ctx, u.ID, PostInput{Type: "poll", Title: "x"})
	assert.ErrorIs(t, err, ErrInvalidType)
	_, err = e.posts.Create(ctx, u.ID, PostInput{Title: "   "})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = e.posts.Create(ctx, u.ID, PostInput{Type: domain.PostTypeImage, Title: "pic"})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = e.posts.Create(ctx, u.ID, PostInput{Type: domain.PostTypeLink, Title: "link"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	v, err := e.posts.Create(ctx, u.ID, PostInput{Title: " Trace ", Content: "body", Category: "travel"})
	require.NoError(t, err)
	assert.Equal(t, domain.PostTypeText, v.Type)
	assert.Equal(t, "Trace", v.Title)
	assert.Equal(t, "U", v.Author.Name)
	assert.Zero(t, v.LikesCount)
}

func TestPostVisibility(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	owner := testutil.CreateUser(t, e.db, "Owner")
	other := testutil.CreateUser(t, e.db, "Other")

	public, err := e.posts.Create(ctx, owner.ID, PostInput{Title: "public", Content: "sun"})
	require.NoError(t, err)
	private, err := e.posts.Create(ctx, owner.ID, PostInput{Title: "private", Content: "sun", IsPrivate: true})
	require.NoError(t, err)

	_, err = e.posts.Get(ctx, other.ID, private.ID)
	assert.ErrorIs(t, err, ErrPostNotFound)
	got, err := e.posts.Get(ctx, owner.ID, private.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, got.ViewsCount)

	feed, total, err := e.posts.Feed(ctx, other.ID, "", "", 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, public.ID, feed[0].ID)

	found, _, err := e.posts.Search(ctx, owner.ID, "sun", 1, 10)
	require.NoError(t, err)
	assert.Len(t, found, 1)
	_, _, err = e.posts.Search(ctx, owner.ID, " ", 1, 10)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, total, err = e.posts.UserPosts(ctx, other.ID, owner.ID, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	_, total, err = e.posts.UserPosts(ctx, owner.ID, owner.ID, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	_, _, err = e.posts.UserPosts(ctx, owner.ID, 9999, 1, 10)
	assert.ErrorIs(t, err, ErrUserNotFound)

	mine, _, err := e.posts.MyPrivate(ctx, owner.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, private.ID, mine[0].ID)
}

func TestArchiveAndPublish(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	owner := testutil.CreateUser(t, e.db, "Owner")
	other := testutil.CreateUser(t, e.db, "Other")
	p, err := e.posts.Create(ctx, owner.ID, PostInput{Title: "draft", IsPrivate: true})
	require.NoError(t, err)

	assert.ErrorIs(t, e.posts.Publish(ctx, other.ID, p.ID), ErrForbidden)
	require.NoError(t, e.posts.Publish(ctx, owner.ID, p.ID))
	assert.ErrorIs(t, e.posts.Publish(ctx, owner.ID, p.ID), ErrAlreadyPublic)

	require.NoError(t, e.posts.Archive(ctx, owner.ID, p.ID))
	assert.ErrorIs(t, e.posts.Archive(ctx, owner.ID, p.ID), ErrAlreadyArchived)

	_, err = e.posts.Get(ctx, other.ID, p.ID)
	assert.ErrorIs(t, err, ErrPostNotFound)
	archived, total, err := e.posts.MyArchived(ctx, owner.ID, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, p.ID, archived[0].ID)
	_, total, err = e.posts.MyPosts(ctx, owner.ID, 1, 10)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestUpdateAndDeletePost(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	owner := testutil.CreateUser(t, e.db, "Owner")
	other := testutil.CreateUser(t, e.db, "Other")
	admin := testutil.CreateUser(t, e.db, "Admin")
	admin.Role = domain.RoleAdmin
	p, err := e.posts.Create(ctx, owner.ID, PostInput{Title: "old"})
	require.NoError(t, err)

	title := "new"
	_, err = e.posts.Update(ctx, other.ID, p.ID, PostUpdate{Title: &title})
	assert.ErrorIs(t, err, ErrForbidden)
	v, err := e.posts.Update(ctx, owner.ID, p.ID, PostUpdate{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "new", v.Title)
	blank := " "
	_, err = e.posts.Update(ctx, owner.ID, p.ID, PostUpdate{Title: &blank})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = e.comments.Create(ctx, other.ID, p.ID, "comment", nil)
	require.NoError(t, err)
	_, err = e.rel.ToggleLike(ctx, other.ID, p.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, e.posts.Delete(ctx, other, p.ID), ErrForbidden)
	require.NoError(t, e.posts.Delete(ctx, admin, p.ID))
	assert.ErrorIs(t, e.posts.Delete(ctx, admin, p.ID), ErrPostNotFound)
	assert.Zero(t, e.count(t, &models.Comment{}))
	assert.Zero(t, e.count(t, &models.Like{}))
}

func TestLikedListAndViewerFlags(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	owner := testutil.CreateUser(t, e.db, "Owner")
	fan := testutil.CreateUser(t, e.db, "Fan")
	p1 := testutil.CreatePost(t, e.db, owner.ID, "one")
	p2 := testutil.CreatePost(t, e.db, owner.ID, "two")

	_, err := e.rel.ToggleLike(ctx, fan.ID, p1.ID)
	require.NoError(t, err)

	liked, total, err := e.posts.Liked(ctx, fan.ID, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, liked, 1)
	assert.Equal(t, p1.ID, liked[0].ID)
	assert.True(t, liked[0].IsLiked)

	feed, _, err := e.posts.Feed(ctx, fan.ID, "", "", 1, 10)
	require.NoError(t, err)
	flags := map[uint]bool{}
	for _, v := range feed {
		flags[v.ID] = v.IsLiked
	}
	assert.True(t, flags[p1.ID])
	assert.False(t, flags[p2.ID])

	anon, _, err := e.posts.Feed(ctx, 0, "", "", 1, 10)
	require.NoError(t, err)
	for _, v := range anon {
		assert.False(t, v.IsLiked)
	}
}
