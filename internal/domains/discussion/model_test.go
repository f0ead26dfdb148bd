package discussion

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newThread(t *testing.T, replies int) *Discussion {
	t.Helper()
	d := &Discussion{
		ID:       uuid.New(),
		Author:   uuid.New(),
		Title:    "best opening chapters",
		Category: CategoryGeneral,
		IsActive: true,
	}
	for i := 0; i < replies; i++ {
		_, err := d.AddReply(uuid.New(), "a reply", time.Now())
		require.NoError(t, err)
	}
	return d
}

func TestAddReply(t *testing.T) {
	d := newThread(t, 0)
	author := uuid.New()

	reply, err := d.AddReply(author, "great thread", time.Now())
	require.NoError(t, err)

	assert.Equal(t, 1, d.ReplyCount())
	assert.Equal(t, author, reply.Author)
	assert.NotEqual(t, uuid.Nil, reply.ID)
	assert.False(t, reply.IsSolution)
	assert.Empty(t, reply.Likes)
}

func TestAddReply_Locked(t *testing.T) {
	d := newThread(t, 1)
	d.IsLocked = true

	_, err := d.AddReply(uuid.New(), "too late", time.Now())
	assert.ErrorIs(t, err, ErrDiscussionLocked)
	assert.Equal(t, 1, d.ReplyCount())
}

func TestMarkSolution_ExactlyOne(t *testing.T) {
	d := newThread(t, 3)

	// seed a stale solution flag on the first reply
	d.Replies[0].IsSolution = true

	require.NoError(t, d.MarkSolution(d.Replies[1].ID))

	solutions := 0
	for i := range d.Replies {
		if d.Replies[i].IsSolution {
			solutions++
			assert.Equal(t, d.Replies[1].ID, d.Replies[i].ID)
		}
	}
	assert.Equal(t, 1, solutions, "exactly one reply may be the solution")
}

func TestMarkSolution_Remark(t *testing.T) {
	d := newThread(t, 3)

	require.NoError(t, d.MarkSolution(d.Replies[0].ID))
	require.NoError(t, d.MarkSolution(d.Replies[2].ID))

	assert.False(t, d.Replies[0].IsSolution)
	assert.False(t, d.Replies[1].IsSolution)
	assert.True(t, d.Replies[2].IsSolution)
}

func TestMarkSolution_UnknownReply(t *testing.T) {
	d := newThread(t, 2)
	err := d.MarkSolution(uuid.New())
	assert.ErrorIs(t, err, ErrReplyNotFound)
}

func TestToggleLike_RoundTrip(t *testing.T) {
	d := newThread(t, 0)
	actor := uuid.New()

	assert.True(t, d.ToggleLike(actor))
	assert.Equal(t, 1, d.LikeCount())

	assert.False(t, d.ToggleLike(actor))
	assert.Equal(t, 0, d.LikeCount())
}

func TestToggleReplyLike(t *testing.T) {
	d := newThread(t, 2)
	actor := uuid.New()
	replyID := d.Replies[0].ID

	liked, err := d.ToggleReplyLike(replyID, actor)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Len(t, d.Replies[0].Likes, 1)
	assert.Empty(t, d.Replies[1].Likes)

	liked, err = d.ToggleReplyLike(replyID, actor)
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Empty(t, d.Replies[0].Likes)
}

func TestToggleReplyLike_UnknownReply(t *testing.T) {
	d := newThread(t, 1)
	_, err := d.ToggleReplyLike(uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrReplyNotFound)
}

func TestIncrementView(t *testing.T) {
	d := newThread(t, 0)
	d.IncrementView()
	d.IncrementView()
	assert.Equal(t, 2, d.ViewCount)
}

func TestCategoryIsValid(t *testing.T) {
	assert.True(t, CategoryGeneral.IsValid())
	assert.True(t, CategoryBookClub.IsValid())
	assert.False(t, Category("memes").IsValid())
}
