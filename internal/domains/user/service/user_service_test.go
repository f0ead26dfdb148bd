package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookclub-backend/internal/domains/book"
	"bookclub-backend/internal/domains/user"
)

// ========================================
// IN-MEMORY FAKES
// ========================================

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
	if _, ok := f.books[b.ID]; !ok {
		return book.ErrBookNotFound
	}
	return nil
}

func newTestService() (user.Service, *fakeUserRepo, *fakeBookRepo) {
	users := newFakeUserRepo()
	books := newFakeBookRepo()
	svc := NewUserService(users, books, nil, nil)
	return svc, users, books
}

// ========================================
// TESTS
// ========================================

func TestMoveToShelf_UnknownBook(t *testing.T) {
	svc, users, _ := newTestService()
	u := users.add()

	err := svc.MoveToShelf(context.Background(), u.ID, user.ShelfToRead, user.MoveToShelfRequest{BookID: uuid.New()})
	assert.ErrorIs(t, err, book.ErrBookNotFound)

	got, err := users.FindByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Shelves.ToRead, "a failed move must leave the shelves untouched")
}

func TestMoveToShelf_KnownBook(t *testing.T) {
	svc, users, books := newTestService()
	u := users.add()
	b := books.add(&book.Book{Title: "Dune"})

	require.NoError(t, svc.MoveToShelf(context.Background(), u.ID, user.ShelfToRead, user.MoveToShelfRequest{BookID: b.ID}))

	got, err := users.FindByID(context.Background(), u.ID)
	require.NoError(t, err)
	shelf, ok := got.ShelfFor(b.ID)
	require.True(t, ok)
	assert.Equal(t, user.ShelfToRead, shelf)
}

func TestStartReading_UnknownBook(t *testing.T) {
	svc, users, _ := newTestService()
	u := users.add()

	err := svc.StartReading(context.Background(), u.ID, uuid.New())
	assert.ErrorIs(t, err, book.ErrBookNotFound)
}

func TestMoveToShelf_FinishClearsCurrentlyReading(t *testing.T) {
	svc, users, books := newTestService()
	u := users.add()
	b := books.add(&book.Book{Title: "Dune"})

	require.NoError(t, svc.StartReading(context.Background(), u.ID, b.ID))
	require.NoError(t, svc.MoveToShelf(context.Background(), u.ID, user.ShelfRead, user.MoveToShelfRequest{BookID: b.ID}))

	got, err := users.FindByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Empty(t, got.CurrentlyReading, "shelving a book as read retires its reading entry")
	shelf, ok := got.ShelfFor(b.ID)
	require.True(t, ok)
	assert.Equal(t, user.ShelfRead, shelf)
	assert.Equal(t, 1, got.Stats.BooksRead)
}
