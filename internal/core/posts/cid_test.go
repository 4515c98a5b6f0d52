package posts

import (
	"testing"
	"time"

	"github.com/ipfs/go-cid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeCID(t *testing.T) {
	post := &Post{
		ID:        "3l5abc",
		Owner:     "u1",
		Text:      "Hello there",
		Likes:     []Like{},
		Comments:  []Comment{},
		CreatedAt: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	first, err := ComputeCID(post)
	require.NoError(t, err)

	parsed, err := cid.Decode(first)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), parsed.Version())
	assert.Equal(t, uint64(cid.Raw), parsed.Type())

	t.Run("stable and ignores the stored cid", func(t *testing.T) {
		post.CID = "bafy-something-else"
		again, err := ComputeCID(post)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	})

	t.Run("changes with likes", func(t *testing.T) {
		liked := post.Clone()
		ToggleLike(liked, "u2")
		changed, err := ComputeCID(liked)
		require.NoError(t, err)
		assert.NotEqual(t, first, changed)

		// toggling back restores the same content and the same cid
		ToggleLike(liked, "u2")
		restored, err := ComputeCID(liked)
		require.NoError(t, err)
		assert.Equal(t, first, restored)
	})
}

func TestPostClone(t *testing.T) {
	post := &Post{
		Likes:    []Like{{User: "u1"}},
		Comments: []Comment{{ID: "c1"}},
	}

	c := post.Clone()
	c.Likes[0].User = "changed"
	c.Comments = append(c.Comments, Comment{ID: "c2"})

	assert.Equal(t, "u1", post.Likes[0].User)
	assert.Len(t, post.Comments, 1)
	assert.Nil(t, (*Post)(nil).Clone())
}
