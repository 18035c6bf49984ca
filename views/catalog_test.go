package views

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-client/api"
	"library-client/library"
	"library-client/session"
	"library-client/views/mocks"
)

var (
	student   = &library.User{ID: 1, StudentID: "STU001", Name: "Ada Lovelace", Email: "ada@uni.edu", Role: library.RoleStudent}
	librarian = &library.User{ID: 9, StudentID: "LIB001", Name: "Grace Hopper", Email: "grace@uni.edu", Role: library.RoleLibrarian}
)

func onePage(books ...library.Book) library.BookPage {
	return library.BookPage{
		Books:      books,
		Pagination: library.Pagination{Page: 1, Pages: 1, Total: len(books)},
	}
}

func TestCatalogLoadSendsPageAndLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mocks.NewMockCatalogAPI(ctrl)
	c := NewCatalog(m, session.Fixed(nil))
	defer c.Close()

	m.EXPECT().
		ListBooks(gomock.Any(), library.BookQuery{Page: 1, Limit: DefaultPageSize}).
		Return(onePage(library.Book{ID: 1, Title: "Clean Code"}), nil)

	require.NoError(t, c.Load(context.Background()))
	snap := c.Snapshot()
	assert.Equal(t, StateReady, snap.State)
	assert.Len(t, snap.Books, 1)
	assert.False(t, snap.ShowPagination())
}

func TestCatalogSelectCategoryResetsPageAndQuery(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mocks.NewMockCatalogAPI(ctrl)
	c := NewCatalog(m, session.Fixed(nil), WithPageSize(5))
	defer c.Close()

	gomock.InOrder(
		m.EXPECT().ListBooks(gomock.Any(), library.BookQuery{Page: 1, Limit: 5}).
			Return(library.BookPage{Pagination: library.Pagination{Page: 1, Pages: 2, HasNext: true}}, nil),
		m.EXPECT().ListBooks(gomock.Any(), library.BookQuery{Page: 2, Limit: 5}).
			Return(library.BookPage{Pagination: library.Pagination{Page: 2, Pages: 2, HasPrev: true}}, nil),
		m.EXPECT().ListBooks(gomock.Any(), library.BookQuery{Page: 1, Limit: 5, Category: "AI"}).
			Return(onePage(library.Book{ID: 3, Category: "AI"}), nil),
	)

	ctx := context.Background()
	require.NoError(t, c.Load(ctx))
	require.NoError(t, c.NextPage(ctx))
	c.SetQuery("half typed")

	require.NoError(t, c.SelectCategory(ctx, "AI"))
	snap := c.Snapshot()
	assert.Equal(t, "AI", snap.Category)
	assert.Equal(t, 1, snap.Page)
	assert.Empty(t, snap.Query)
}

func TestCatalogPaginationFollowsServerFlags(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mocks.NewMockCatalogAPI(ctrl)
	c := NewCatalog(m, session.Fixed(nil))
	defer c.Close()

	m.EXPECT().ListBooks(gomock.Any(), gomock.Any()).
		Return(library.BookPage{Pagination: library.Pagination{Page: 1, Pages: 3, Total: 30, HasNext: true}}, nil)

	ctx := context.Background()
	require.NoError(t, c.Load(ctx))
	snap := c.Snapshot()
	assert.True(t, snap.ShowPagination())
	assert.Equal(t, "Page 1 of 3", snap.PageLabel())
	assert.False(t, snap.CanPrev())
	assert.True(t, snap.CanNext())

	// Previous is disabled on page 1, so no request goes out.
	assert.ErrorIs(t, c.PrevPage(ctx), ErrControlDisabled)
	assert.Equal(t, 1, c.Snapshot().Page)
}

func TestCatalogSearch(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mocks.NewMockCatalogAPI(ctrl)
	c := NewCatalog(m, session.Fixed(nil))
	defer c.Close()

	m.EXPECT().SearchBooks(gomock.Any(), "python").
		Return(library.SearchResult{Books: []library.Book{{ID: 4, Title: "Fluent Python"}}, Query: "python", Count: 1}, nil)
	m.EXPECT().ListBooks(gomock.Any(), library.BookQuery{Page: 1, Limit: DefaultPageSize}).
		Return(onePage(), nil)

	ctx := context.Background()
	require.NoError(t, c.Search(ctx, "python"))
	snap := c.Snapshot()
	assert.True(t, snap.Searching)
	assert.False(t, snap.ShowPagination())
	assert.Equal(t, "Fluent Python", snap.Books[0].Title)

	// A blank query goes back to the listing.
	require.NoError(t, c.Search(ctx, "   "))
	assert.False(t, c.Snapshot().Searching)
}

func TestCatalogLoadFailureKeepsMessage(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mocks.NewMockCatalogAPI(ctrl)
	c := NewCatalog(m, session.Fixed(nil))
	defer c.Close()

	m.EXPECT().ListBooks(gomock.Any(), gomock.Any()).Return(library.BookPage{}, errors.New("connection refused"))
	m.EXPECT().SearchBooks(gomock.Any(), "go").Return(library.SearchResult{}, errors.New("timeout"))

	ctx := context.Background()
	assert.Error(t, c.Load(ctx))
	snap := c.Snapshot()
	assert.Equal(t, StateError, snap.State)
	assert.Equal(t, "Failed to load books", snap.Err)

	assert.Error(t, c.Search(ctx, "go"))
	assert.Equal(t, "Search failed", c.Snapshot().Err)
}

func TestCatalogBorrowWithoutLoginMakesNoCall(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mocks.NewMockCatalogAPI(ctrl)
	c := NewCatalog(m, session.Fixed(nil))
	defer c.Close()

	err := c.Borrow(context.Background(), 1)
	assert.ErrorIs(t, err, ErrLoginRequired)
	snap := c.Snapshot()
	assert.Equal(t, BannerError, snap.Banner.Kind)
	assert.Equal(t, "Please login to borrow books", snap.Banner.Text)
}

func TestCatalogBorrowRefreshesListing(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mocks.NewMockCatalogAPI(ctrl)
	c := NewCatalog(m, session.Fixed(student))
	defer c.Close()

	gomock.InOrder(
		m.EXPECT().ListBooks(gomock.Any(), gomock.Any()).
			Return(onePage(library.Book{ID: 1, AvailableCopies: 2, IsAvailable: true}), nil),
		m.EXPECT().Borrow(gomock.Any(), int64(1), int64(1)).
			Return(library.BorrowResult{Message: "Book borrowed successfully"}, nil),
		m.EXPECT().ListBooks(gomock.Any(), gomock.Any()).
			Return(onePage(library.Book{ID: 1, AvailableCopies: 1, IsAvailable: true}), nil),
	)

	ctx := context.Background()
	require.NoError(t, c.Load(ctx))
	require.NoError(t, c.Borrow(ctx, 1))

	snap := c.Snapshot()
	assert.Equal(t, "Book borrowed successfully!", snap.Banner.Text)
	assert.Equal(t, BannerSuccess, snap.Banner.Kind)
	assert.Equal(t, 1, snap.Books[0].AvailableCopies)
	assert.False(t, snap.Submitting)
}

func TestCatalogBorrowRejectedBannerExpires(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mocks.NewMockCatalogAPI(ctrl)
	c := NewCatalog(m, session.Fixed(student), WithMessageTTL(50*time.Millisecond))
	defer c.Close()

	m.EXPECT().Borrow(gomock.Any(), int64(1), int64(42)).
		Return(library.BorrowResult{}, &api.Error{Status: 400, Message: "Book not available"})

	err := c.Borrow(context.Background(), 42)
	assert.Equal(t, 400, api.StatusOf(err))
	assert.Equal(t, "Book not available", c.Snapshot().Banner.Text)

	assert.Eventually(t, func() bool {
		return c.Snapshot().Banner.Empty()
	}, time.Second, 10*time.Millisecond)
}

func TestCatalogBorrowTransportErrorUsesFallback(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mocks.NewMockCatalogAPI(ctrl)
	c := NewCatalog(m, session.Fixed(student))
	defer c.Close()

	m.EXPECT().Reserve(gomock.Any(), int64(1), int64(2)).
		Return(library.ReserveResult{}, errors.New("dial tcp: connection refused"))

	assert.Error(t, c.Reserve(context.Background(), 2))
	assert.Equal(t, "Failed to reserve book", c.Snapshot().Banner.Text)
}

func TestCatalogRejectsSecondActionWhileSubmitting(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mocks.NewMockCatalogAPI(ctrl)
	c := NewCatalog(m, session.Fixed(student))
	defer c.Close()

	started := make(chan struct{})
	release := make(chan struct{})
	m.EXPECT().Borrow(gomock.Any(), int64(1), int64(1)).
		DoAndReturn(func(context.Context, int64, int64) (library.BorrowResult, error) {
			close(started)
			<-release
			return library.BorrowResult{}, &api.Error{Status: 400, Message: "Book not available"}
		})

	done := make(chan error, 1)
	go func() { done <- c.Borrow(context.Background(), 1) }()
	<-started

	assert.True(t, c.Snapshot().Submitting)
	assert.ErrorIs(t, c.Borrow(context.Background(), 1), ErrSubmitting)

	close(release)
	assert.Error(t, <-done)
	assert.False(t, c.Snapshot().Submitting)
}

func TestCatalogDiscardsStaleResponse(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mocks.NewMockCatalogAPI(ctrl)
	c := NewCatalog(m, session.Fixed(nil))
	defer c.Close()

	started := make(chan struct{})
	release := make(chan struct{})
	m.EXPECT().ListBooks(gomock.Any(), library.BookQuery{Page: 1, Limit: DefaultPageSize}).
		DoAndReturn(func(context.Context, library.BookQuery) (library.BookPage, error) {
			close(started)
			<-release
			return onePage(library.Book{ID: 1, Title: "Stale"}), nil
		})
	m.EXPECT().ListBooks(gomock.Any(), library.BookQuery{Page: 1, Limit: DefaultPageSize, Category: "Database"}).
		Return(onePage(library.Book{ID: 2, Title: "Fresh"}), nil)

	ctx := context.Background()
	done := make(chan error, 1)
	go func() { done <- c.Load(ctx) }()
	<-started

	require.NoError(t, c.SelectCategory(ctx, "Database"))
	close(release)
	assert.ErrorIs(t, <-done, ErrSuperseded)

	snap := c.Snapshot()
	require.Len(t, snap.Books, 1)
	assert.Equal(t, "Fresh", snap.Books[0].Title)
	assert.Equal(t, StateReady, snap.State)
}

func TestCatalogCategoryAfterSearchRefreshesListing(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mocks.NewMockCatalogAPI(ctrl)
	c := NewCatalog(m, session.Fixed(student))
	defer c.Close()

	aiPage1 := library.BookQuery{Page: 1, Limit: DefaultPageSize, Category: "AI"}
	gomock.InOrder(
		m.EXPECT().SearchBooks(gomock.Any(), "go").
			Return(library.SearchResult{Books: []library.Book{{ID: 1, Title: "The Go Programming Language"}}}, nil),
		m.EXPECT().ListBooks(gomock.Any(), aiPage1).
			Return(library.BookPage{}, errors.New("connection reset")),
		m.EXPECT().Borrow(gomock.Any(), student.ID, int64(1)).
			Return(library.BorrowResult{}, nil),
		m.EXPECT().ListBooks(gomock.Any(), aiPage1).
			Return(onePage(library.Book{ID: 5, Category: "AI"}), nil),
	)

	ctx := context.Background()
	require.NoError(t, c.Search(ctx, "go"))
	assert.Error(t, c.SelectCategory(ctx, "AI"))

	snap := c.Snapshot()
	assert.False(t, snap.Searching)
	assert.Empty(t, snap.Query)
	assert.Equal(t, "AI", snap.Category)

	require.NoError(t, c.Borrow(ctx, 1))
	snap = c.Snapshot()
	assert.False(t, snap.Searching)
	assert.Empty(t, snap.Query)
	require.Len(t, snap.Books, 1)
	assert.Equal(t, int64(5), snap.Books[0].ID)
}
