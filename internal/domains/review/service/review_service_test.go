package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookclub-backend/internal/domains/book"
	"bookclub-backend/internal/domains/review"
	"bookclub-backend/internal/domains/user"
)

// ========================================
// IN-MEMORY FAKES
// ========================================

type fakeReviewRepo struct {
	reviews map[uuid.UUID]*review.Review
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: map[uuid.UUID]*review.Review{}}
}

func (f *fakeReviewRepo) Insert(_ context.Context, rv *review.Review) (uuid.UUID, error) {
	for _, existing := range f.reviews {
		if existing.UserID == rv.UserID && existing.BookID == rv.BookID {
			return uuid.Nil, review.ErrDuplicateReview
		}
	}
	rv.ID = uuid.New()
	cp := *rv
	f.reviews[rv.ID] = &cp
	return rv.ID, nil
}

func (f *fakeReviewRepo) FindByID(_ context.Context, id uuid.UUID) (*review.Review, error) {
	rv, ok := f.reviews[id]
	if !ok {
		return nil, review.ErrReviewNotFound
	}
	cp := *rv
	return &cp, nil
}

func (f *fakeReviewRepo) ListByBook(_ context.Context, bookID uuid.UUID, _, _ int) ([]*review.Review, int, error) {
	var out []*review.Review
	for _, rv := range f.reviews {
		if rv.BookID == bookID {
			cp := *rv
			out = append(out, &cp)
		}
	}
	return out, len(out), nil
}

func (f *fakeReviewRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]*review.Review, error) {
	var out []*review.Review
	for _, rv := range f.reviews {
		if rv.UserID == userID {
			cp := *rv
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeReviewRepo) Update(_ context.Context, rv *review.Review) error {
	if _, ok := f.reviews[rv.ID]; !ok {
		return review.ErrReviewNotFound
	}
	cp := *rv
	f.reviews[rv.ID] = &cp
	return nil
}

func (f *fakeReviewRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.reviews[id]; !ok {
		return review.ErrReviewNotFound
	}
	delete(f.reviews, id)
	return nil
}

type fakeBookRepo struct {
	books map[uuid.UUID]*book.Book
}

func newFakeBookRepo() *fakeBookRepo {
	return &fakeBookRepo{books: map[uuid.UUID]*book.Book{}}
}

func (f *fakeBookRepo) add(b *book.Book) *book.Book {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	f.books[b.ID] = b
	return b
}

func (f *fakeBookRepo) Insert(_ context.Context, b *book.Book) (uuid.UUID, error) {
	f.add(b)
	return b.ID, nil
}

func (f *fakeBookRepo) FindByID(_ context.Context, id uuid.UUID) (*book.Book, error) {
	b, ok := f.books[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBookRepo) List(_ context.Context, _ book.ListFilter) ([]*book.Book, int, error) {
	return nil, 0, nil
}

func (f *fakeBookRepo) Update(_ context.Context, b *book.Book) error {
	cp := *b
	f.books[b.ID] = &cp
	return nil
}

func (f *fakeBookRepo) UpdateRatingStats(_ context.Context, b *book.Book) error {
	stored, ok := f.books[b.ID]
	if !ok {
		return book.ErrBookNotFound
	}
	stored.AverageRating = b.AverageRating
	stored.TotalRatings = b.TotalRatings
	stored.TotalReviews = b.TotalReviews
	return nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]*user.User{}}
}

func (f *fakeUserRepo) add() *user.User {
	u := &user.User{ID: uuid.New(), IsActive: true}
	f.users[u.ID] = u
	return u
}

func (f *fakeUserRepo) Insert(_ context.Context, u *user.User) (uuid.UUID, error) {
	u.ID = uuid.New()
	f.users[u.ID] = u
	return u.ID, nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, _ string) (*user.User, error) {
	return nil, user.ErrUserNotFound
}

func (f *fakeUserRepo) Update(_ context.Context, u *user.User) error {
	if _, ok := f.users[u.ID]; !ok {
		return user.ErrUserNotFound
	}
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) UpdateLastLogin(_ context.Context, _ uuid.UUID) error { return nil }

func (f *fakeUserRepo) ReconcileReviewCounts(_ context.Context, _ int) (int, error) {
	return 0, nil
}

func newTestService() (review.Service, *fakeReviewRepo, *fakeBookRepo, *fakeUserRepo) {
	reviews := newFakeReviewRepo()
	books := newFakeBookRepo()
	users := newFakeUserRepo()
	svc := NewReviewService(reviews, books, users, nil)
	return svc, reviews, books, users
}

func createReq(bookID uuid.UUID, rating int) review.CreateReviewRequest {
	return review.CreateReviewRequest{
		BookID:  bookID,
		Rating:  rating,
		Title:   "a title",
		Content: "some thoughts on the book",
	}
}

// ========================================
// TESTS
// ========================================

func TestCreateReview_AggregateIsMean(t *testing.T) {
	svc, _, books, users := newTestService()
	b := books.add(&book.Book{Title: "Midnight Library"})

	ratings := []int{5, 3, 4, 1, 5}
	sum := 0
	for _, r := range ratings {
		u := users.add()
		_, err := svc.CreateReview(context.Background(), u.ID, createReq(b.ID, r))
		require.NoError(t, err)
		sum += r
	}

	got, err := books.FindByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, len(ratings), got.TotalRatings)
	assert.Equal(t, len(ratings), got.TotalReviews)
	assert.InDelta(t, float64(sum)/float64(len(ratings)), got.AverageRating, 1e-9)
}

func TestCreateReview_DuplicateRejected(t *testing.T) {
	svc, _, books, users := newTestService()
	b := books.add(&book.Book{Title: "Dune"})
	u := users.add()

	_, err := svc.CreateReview(context.Background(), u.ID, createReq(b.ID, 4))
	require.NoError(t, err)

	_, err = svc.CreateReview(context.Background(), u.ID, createReq(b.ID, 2))
	assert.ErrorIs(t, err, review.ErrDuplicateReview)

	// the aggregate reflects exactly one contribution
	got, err := books.FindByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.TotalRatings)
	assert.InDelta(t, 4.0, got.AverageRating, 1e-9)
}

func TestCreateReview_BumpsAuthorCounter(t *testing.T) {
	svc, _, books, users := newTestService()
	b := books.add(&book.Book{Title: "Dune"})
	u := users.add()

	_, err := svc.CreateReview(context.Background(), u.ID, createReq(b.ID, 5))
	require.NoError(t, err)

	got, err := users.FindByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Stats.ReviewsWritten)
}

func TestCreateReview_UnknownBook(t *testing.T) {
	svc, _, _, users := newTestService()
	u := users.add()

	_, err := svc.CreateReview(context.Background(), u.ID, createReq(uuid.New(), 3))
	assert.ErrorIs(t, err, book.ErrBookNotFound)
}

func TestUpdateRating_SwapsContribution(t *testing.T) {
	svc, _, books, users := newTestService()
	b := books.add(&book.Book{Title: "Dune"})

	u1 := users.add()
	u2 := users.add()
	rv, err := svc.CreateReview(context.Background(), u1.ID, createReq(b.ID, 5))
	require.NoError(t, err)
	_, err = svc.CreateReview(context.Background(), u2.ID, createReq(b.ID, 3))
	require.NoError(t, err)

	_, err = svc.UpdateRating(context.Background(), rv.ID, u1.ID, review.UpdateRatingRequest{Rating: 1})
	require.NoError(t, err)

	got, err := books.FindByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.TotalRatings, "edit must not change the contribution count")
	assert.InDelta(t, 2.0, got.AverageRating, 1e-9) // (1+3)/2
}

func TestUpdateRating_OnlyOwner(t *testing.T) {
	svc, _, books, users := newTestService()
	b := books.add(&book.Book{Title: "Dune"})
	owner := users.add()
	intruder := users.add()

	rv, err := svc.CreateReview(context.Background(), owner.ID, createReq(b.ID, 5))
	require.NoError(t, err)

	_, err = svc.UpdateRating(context.Background(), rv.ID, intruder.ID, review.UpdateRatingRequest{Rating: 1})
	assert.ErrorIs(t, err, review.ErrNotReviewOwner)
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func TestUpdateReview_EditsContentAndSwapsRating(t *testing.T) {
	svc, _, books, users := newTestService()
	b := books.add(&book.Book{Title: "Dune"})
	u := users.add()

	rv, err := svc.CreateReview(context.Background(), u.ID, createReq(b.ID, 5))
	require.NoError(t, err)

	got, err := svc.UpdateReview(context.Background(), rv.ID, u.ID, review.UpdateReviewRequest{
		Title:   strPtr("second read"),
		Content: strPtr("held up better than I remembered"),
		Rating:  intPtr(3),
	})
	require.NoError(t, err)
	assert.Equal(t, "second read", got.Title)
	assert.Equal(t, "held up better than I remembered", got.Content)
	assert.Equal(t, 3, got.Rating)

	stored, err := books.FindByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.TotalRatings)
	assert.InDelta(t, 3.0, stored.AverageRating, 1e-9)
}

func TestUpdateReview_ContentOnlyKeepsAggregate(t *testing.T) {
	svc, _, books, users := newTestService()
	b := books.add(&book.Book{Title: "Dune"})
	u := users.add()

	rv, err := svc.CreateReview(context.Background(), u.ID, createReq(b.ID, 4))
	require.NoError(t, err)

	_, err = svc.UpdateReview(context.Background(), rv.ID, u.ID, review.UpdateReviewRequest{
		Content: strPtr("fixed a typo"),
	})
	require.NoError(t, err)

	stored, err := books.FindByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.TotalRatings)
	assert.InDelta(t, 4.0, stored.AverageRating, 1e-9)
}

func TestUpdateReview_OnlyOwner(t *testing.T) {
	svc, _, books, users := newTestService()
	b := books.add(&book.Book{Title: "Dune"})
	owner := users.add()
	intruder := users.add()

	rv, err := svc.CreateReview(context.Background(), owner.ID, createReq(b.ID, 5))
	require.NoError(t, err)

	_, err = svc.UpdateReview(context.Background(), rv.ID, intruder.ID, review.UpdateReviewRequest{
		Content: strPtr("mine now"),
	})
	assert.ErrorIs(t, err, review.ErrNotReviewOwner)
}

func TestDeleteReview_KeepsRatingAggregate(t *testing.T) {
	svc, _, books, users := newTestService()
	b := books.add(&book.Book{Title: "Dune"})
	u := users.add()

	rv, err := svc.CreateReview(context.Background(), u.ID, createReq(b.ID, 4))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteReview(context.Background(), rv.ID, u.ID))

	got, err := books.FindByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.TotalReviews)
	// the rating contribution survives deletion
	assert.Equal(t, 1, got.TotalRatings)
	assert.InDelta(t, 4.0, got.AverageRating, 1e-9)
}

func TestToggleLike_RoundTripThroughService(t *testing.T) {
	svc, _, books, users := newTestService()
	b := books.add(&book.Book{Title: "Dune"})
	author := users.add()
	liker := users.add()

	rv, err := svc.CreateReview(context.Background(), author.ID, createReq(b.ID, 4))
	require.NoError(t, err)

	resp, err := svc.ToggleLike(context.Background(), rv.ID, liker.ID)
	require.NoError(t, err)
	assert.True(t, resp.Liked)
	assert.Equal(t, 1, resp.LikeCount)

	resp, err = svc.ToggleLike(context.Background(), rv.ID, liker.ID)
	require.NoError(t, err)
	assert.False(t, resp.Liked)
	assert.Equal(t, 0, resp.LikeCount)
}

func TestAddComment_Persisted(t *testing.T) {
	svc, reviews, books, users := newTestService()
	b := books.add(&book.Book{Title: "Dune"})
	author := users.add()
	commenter := users.add()

	rv, err := svc.CreateReview(context.Background(), author.ID, createReq(b.ID, 4))
	require.NoError(t, err)

	c, err := svc.AddComment(context.Background(), rv.ID, commenter.ID, review.AddCommentRequest{Content: "agreed"})
	require.NoError(t, err)
	assert.Equal(t, commenter.ID, c.User)

	stored, err := reviews.FindByID(context.Background(), rv.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.CommentCount())
}
