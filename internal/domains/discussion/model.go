package discussion

import (
	"time"

	"github.com/google/uuid"
)

// Category tags a discussion topic.
type Category string

const (
	CategoryGeneral        Category = "general"
	CategoryBookClub       Category = "bookClub"
	CategoryRecommendation Category = "recommendations"
	CategoryAuthorTalk     Category = "authorTalk"
	CategoryOffTopic       Category = "offTopic"
)

func (c Category) IsValid() bool {
	switch c {
	case CategoryGeneral, CategoryBookClub, CategoryRecommendation, CategoryAuthorTalk, CategoryOffTopic:
		return true
	}
	return false
}

// Reply is an embedded response in a discussion thread.
type Reply struct {
	ID         uuid.UUID   `json:"id"`
	Author     uuid.UUID   `json:"author"`
	Content    string      `json:"content"`
	Likes      []uuid.UUID `json:"likes"`
	IsSolution bool        `json:"is_solution"`
	CreatedAt  time.Time   `json:"created_at"`
}

// Discussion is an engagement document. Replies and likes are embedded and
// written back whole, so clear-then-set solution marking stays atomic at the
// document level.
type Discussion struct {
	ID       uuid.UUID  `json:"id" db:"id"`
	Author   uuid.UUID  `json:"author" db:"author"`
	Title    string     `json:"title" db:"title"`
	Content  string     `json:"content" db:"content"`
	Category Category   `json:"category" db:"category"`
	BookID   *uuid.UUID `json:"book_id,omitempty" db:"book_id"`

	Replies []Reply     `json:"replies" db:"replies"`
	Likes   []uuid.UUID `json:"likes" db:"likes"`

	ViewCount int  `json:"view_count" db:"view_count"`
	IsPinned  bool `json:"is_pinned" db:"is_pinned"`
	IsLocked  bool `json:"is_locked" db:"is_locked"`
	IsActive  bool `json:"is_active" db:"is_active"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// AddReply appends a reply. Locked discussions accept no new replies.
func (d *Discussion) AddReply(author uuid.UUID, content string, now time.Time) (*Reply, error) {
	if d.IsLocked {
		return nil, ErrDiscussionLocked
	}

	r := Reply{
		ID:        uuid.New(),
		Author:    author,
		Content:   content,
		Likes:     []uuid.UUID{},
		CreatedAt: now,
	}
	d.Replies = append(d.Replies, r)
	return &d.Replies[len(d.Replies)-1], nil
}

// MarkSolution flags one reply as the accepted answer. Every other reply is
// cleared first so at most one solution exists, whatever the prior state.
func (d *Discussion) MarkSolution(replyID uuid.UUID) error {
	target := -1
	for i := range d.Replies {
		if d.Replies[i].ID == replyID {
			target = i
		}
	}
	if target == -1 {
		return ErrReplyNotFound
	}

	for i := range d.Replies {
		d.Replies[i].IsSolution = false
	}
	d.Replies[target].IsSolution = true
	return nil
}

// ToggleLike flips actor membership in the discussion-level like set and
// reports the new state.
func (d *Discussion) ToggleLike(actor uuid.UUID) bool {
	var liked bool
	d.Likes, liked = toggleMember(d.Likes, actor)
	return liked
}

// ToggleReplyLike flips actor membership in one reply's like set.
func (d *Discussion) ToggleReplyLike(replyID, actor uuid.UUID) (bool, error) {
	for i := range d.Replies {
		if d.Replies[i].ID == replyID {
			var liked bool
			d.Replies[i].Likes, liked = toggleMember(d.Replies[i].Likes, actor)
			return liked, nil
		}
	}
	return false, ErrReplyNotFound
}

// IncrementView bumps the monotonic view counter.
func (d *Discussion) IncrementView() {
	d.ViewCount++
}

// ReplyCount is computed from the sequence, never stored.
func (d *Discussion) ReplyCount() int {
	return len(d.Replies)
}

func (d *Discussion) LikeCount() int {
	return len(d.Likes)
}

func toggleMember(set []uuid.UUID, member uuid.UUID) ([]uuid.UUID, bool) {
	for i, id := range set {
		if id == member {
			return append(set[:i], set[i+1:]...), false
		}
	}
	return append(set, member), true
}
