package posts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddComment_PrependsNewest(t *testing.T) {
	post := &Post{Comments: []Comment{}}
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	AddComment(post, NewComment("c1", "u1", ContentInput{Text: "first comment"}, at))
	AddComment(post, NewComment("c2", "u2", ContentInput{Text: "second comment", Name: "Bob"}, at.Add(time.Minute)))

	require.Len(t, post.Comments, 2)
	assert.Equal(t, "c2", post.Comments[0].ID)
	assert.Equal(t, "Bob", post.Comments[0].Name)
	assert.Equal(t, "u2", post.Comments[0].User)
	assert.Equal(t, "c1", post.Comments[1].ID)
}

func TestRemoveComment(t *testing.T) {
	newPost := func() *Post {
		return &Post{Comments: []Comment{
			{ID: "c3", User: "u1", Text: "third"},
			{ID: "c2", User: "u2", Text: "second"},
			{ID: "c1", User: "u1", Text: "first"},
		}}
	}

	t.Run("removes exactly one and keeps order", func(t *testing.T) {
		post := newPost()

		removed, err := RemoveComment(post, "c2")

		require.NoError(t, err)
		assert.Equal(t, "c2", removed.ID)
		require.Len(t, post.Comments, 2)
		assert.Equal(t, "c3", post.Comments[0].ID)
		assert.Equal(t, "c1", post.Comments[1].ID)
	})

	t.Run("unknown id leaves comments untouched", func(t *testing.T) {
		post := newPost()

		_, err := RemoveComment(post, "missing")

		require.Error(t, err)
		assert.True(t, IsNotFound(err))
		assert.Equal(t, ResourceComment, NotFoundResource(err))
		assert.Len(t, post.Comments, 3)
	})
}

func TestFindComment(t *testing.T) {
	post := &Post{Comments: []Comment{{ID: "c1", User: "u1"}}}

	c, ok := FindComment(post, "c1")
	assert.True(t, ok)
	assert.Equal(t, "u1", c.User)

	_, ok = FindComment(post, "c2")
	assert.False(t, ok)
}

func TestAuthorize(t *testing.T) {
	assert.True(t, Authorize("u1", "u1"))
	assert.False(t, Authorize("u1", "u2"))
	assert.False(t, Authorize("", ""))
	assert.False(t, Authorize("u1", ""))
}

func TestCanRemoveComment(t *testing.T) {
	post := &Post{Owner: "owner"}
	comment := Comment{ID: "c1", User: "author"}

	assert.True(t, canRemoveComment(post, comment, "author"))
	assert.True(t, canRemoveComment(post, comment, "owner"))
	assert.False(t, canRemoveComment(post, comment, "stranger"))
	assert.False(t, canRemoveComment(post, comment, ""))
}
