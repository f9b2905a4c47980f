package posts_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/internal/auth"
	"inkwell/internal/posts"
	"inkwell/internal/store"
)

func newTestService() *posts.Service {
	return posts.NewService(store.NewMemory())
}

func TestCreateAndGet(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "author-1", posts.CreateInput{
		Title:   "First post",
		Content: "hello",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "author-1", created.AuthorID)
	assert.False(t, created.Published)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestGetUnknown(t *testing.T) {
	svc := newTestService()

	_, err := svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, posts.ErrNotFound)
}

func TestListPublishedExcludesDrafts(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, "author-1", posts.CreateInput{Title: "Draft", Content: "x"})
	require.NoError(t, err)
	pub, err := svc.Create(ctx, "author-1", posts.CreateInput{Title: "Live", Content: "x", Published: true})
	require.NoError(t, err)

	list, err := svc.ListPublished(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, pub.ID, list[0].ID)
}

func TestUpdateOwnership(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "author-1", posts.CreateInput{Title: "Original", Content: "x"})
	require.NoError(t, err)

	title := "Edited"
	_, err = svc.Update(ctx, created.ID, "someone-else", auth.RoleUser, posts.UpdateInput{Title: &title})
	assert.ErrorIs(t, err, posts.ErrNotAllowed)

	updated, err := svc.Update(ctx, created.ID, "author-1", auth.RoleUser, posts.UpdateInput{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Edited", updated.Title)
	assert.Equal(t, "x", updated.Content)
}

func TestAdminMayUpdateAnyPost(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "author-1", posts.CreateInput{Title: "Original", Content: "x"})
	require.NoError(t, err)

	published := true
	updated, err := svc.Update(ctx, created.ID, "admin-1", auth.RoleAdmin, posts.UpdateInput{Published: &published})
	require.NoError(t, err)
	assert.True(t, updated.Published)
}

func TestDeleteOwnership(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "author-1", posts.CreateInput{Title: "Doomed", Content: "x"})
	require.NoError(t, err)

	err = svc.Delete(ctx, created.ID, "someone-else", auth.RoleUser)
	assert.ErrorIs(t, err, posts.ErrNotAllowed)

	require.NoError(t, svc.Delete(ctx, created.ID, "author-1", auth.RoleUser))

	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, posts.ErrNotFound)
}
