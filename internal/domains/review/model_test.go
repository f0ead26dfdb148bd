package review

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleLike_RoundTrip(t *testing.T) {
	rv := &Review{}
	actor := uuid.New()

	liked := rv.ToggleLike(actor)
	assert.True(t, liked)
	assert.Equal(t, 1, rv.LikeCount())

	liked = rv.ToggleLike(actor)
	assert.False(t, liked)
	assert.Equal(t, 0, rv.LikeCount())
}

func TestToggleLike_NoDuplicates(t *testing.T) {
	rv := &Review{}
	a := uuid.New()
	b := uuid.New()

	rv.ToggleLike(a)
	rv.ToggleLike(b)
	rv.ToggleLike(a) // unlike
	rv.ToggleLike(a) // like again

	assert.Equal(t, 2, rv.LikeCount())
	seen := map[uuid.UUID]bool{}
	for _, id := range rv.Likes {
		assert.False(t, seen[id], "like set must not contain duplicates")
		seen[id] = true
	}
}

func TestAddComment(t *testing.T) {
	rv := &Review{}
	author := uuid.New()
	now := time.Now()

	c := rv.AddComment(author, "loved this take", now)

	require.Equal(t, 1, rv.CommentCount())
	assert.NotEqual(t, uuid.Nil, c.ID)
	assert.Equal(t, author, c.User)
	assert.Equal(t, now, c.CreatedAt)
}

func TestHelpfulCounters(t *testing.T) {
	rv := &Review{}

	rv.MarkHelpful()
	rv.MarkHelpful()
	rv.MarkNotHelpful()

	assert.Equal(t, 2, rv.Helpful)
	assert.Equal(t, 1, rv.NotHelpful)
}
