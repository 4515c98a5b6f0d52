package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Postboard/internal/core/posts"
)

func newPost(id string, at time.Time) *posts.Post {
	return &posts.Post{
		ID:        id,
		Owner:     "u1",
		Text:      "Hello there",
		Likes:     []posts.Like{},
		Comments:  []posts.Comment{},
		CreatedAt: at,
	}
}

func TestPostRepo_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewPostRepository()
	post := newPost("p1", time.Now().UTC())

	require.NoError(t, repo.Create(ctx, post))
	assert.NotEmpty(t, post.CID)

	got, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, post.CID, got.CID)

	// returned posts are copies
	got.Likes = append(got.Likes, posts.Like{User: "u2"})
	again, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Empty(t, again.Likes)

	err = repo.Create(ctx, newPost("p1", time.Now().UTC()))
	assert.Error(t, err)
}

func TestPostRepo_GetMissing(t *testing.T) {
	_, err := NewPostRepository().GetByID(context.Background(), "nope")
	assert.True(t, posts.IsNotFound(err))
}

func TestPostRepo_ListOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewPostRepository()
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, newPost("old", base)))
	require.NoError(t, repo.Create(ctx, newPost("new", base.Add(time.Hour))))
	require.NoError(t, repo.Create(ctx, newPost("tie-a", base.Add(30*time.Minute))))
	require.NoError(t, repo.Create(ctx, newPost("tie-b", base.Add(30*time.Minute))))

	all, err := repo.List(ctx)
	require.NoError(t, err)

	ids := make([]string, 0, len(all))
	for _, p := range all {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"new", "tie-b", "tie-a", "old"}, ids)
}

func TestPostRepo_SaveIfUnchanged(t *testing.T) {
	ctx := context.Background()
	repo := NewPostRepository()
	post := newPost("p1", time.Now().UTC())
	require.NoError(t, repo.Create(ctx, post))
	original := post.CID

	t.Run("matching cid saves and advances", func(t *testing.T) {
		update, err := repo.GetByID(ctx, "p1")
		require.NoError(t, err)
		update.Likes = []posts.Like{{User: "u2"}}

		require.NoError(t, repo.SaveIfUnchanged(ctx, update, original))
		assert.NotEqual(t, original, update.CID)

		stored, err := repo.GetByID(ctx, "p1")
		require.NoError(t, err)
		assert.Equal(t, update.CID, stored.CID)
		assert.Equal(t, []posts.Like{{User: "u2"}}, stored.Likes)
	})

	t.Run("stale cid is rejected", func(t *testing.T) {
		stale, err := repo.GetByID(ctx, "p1")
		require.NoError(t, err)
		stale.Comments = []posts.Comment{{ID: "c1", User: "u3", Text: "lost update"}}

		err = repo.SaveIfUnchanged(ctx, stale, original)
		assert.ErrorIs(t, err, posts.ErrConcurrentModification)

		stored, err := repo.GetByID(ctx, "p1")
		require.NoError(t, err)
		assert.Empty(t, stored.Comments)
	})

	t.Run("content fields are not writable", func(t *testing.T) {
		update, err := repo.GetByID(ctx, "p1")
		require.NoError(t, err)
		update.Text = "rewritten text"
		update.Owner = "someone else"

		require.NoError(t, repo.SaveIfUnchanged(ctx, update, update.CID))

		stored, err := repo.GetByID(ctx, "p1")
		require.NoError(t, err)
		assert.Equal(t, "Hello there", stored.Text)
		assert.Equal(t, "u1", stored.Owner)
	})

	t.Run("deleted post", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, "p1"))

		err := repo.SaveIfUnchanged(ctx, newPost("p1", time.Now().UTC()), original)
		assert.True(t, posts.IsNotFound(err))
		assert.True(t, posts.IsNotFound(repo.Delete(ctx, "p1")))
	})
}
