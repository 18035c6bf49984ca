package views

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-client/library"
	"library-client/session"
	"library-client/views/mocks"
)

func sampleStats() library.Statistics {
	var s library.Statistics
	s.Books.Total, s.Books.Available, s.Books.Borrowed = 20, 15, 5
	s.Users.Total, s.Users.Students, s.Users.Librarians = 12, 10, 2
	s.Borrowings.Total, s.Borrowings.Active, s.Borrowings.Overdue = 40, 5, 1
	s.Reservations.Active = 2
	s.GeneratedAt = library.Timestamp{Time: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	return s
}

func TestAdminRedirectsNonLibrarians(t *testing.T) {
	for name, u := range map[string]*library.User{"anonymous": nil, "student": student} {
		t.Run(name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			m := mocks.NewMockAdminAPI(ctrl)
			a := NewAdmin(m, session.Fixed(u))

			assert.ErrorIs(t, a.Load(context.Background()), ErrNotLibrarian)
			snap := a.Snapshot()
			assert.Equal(t, StateRedirect, snap.State)
			assert.Nil(t, snap.Stats)
			assert.Empty(t, snap.Rows)
		})
	}
}

func TestAdminLoad(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mocks.NewMockAdminAPI(ctrl)
	a := NewAdmin(m, session.Fixed(librarian))

	due := library.Timestamp{Time: time.Date(2024, 2, 20, 12, 0, 0, 0, time.UTC)}
	m.EXPECT().Statistics(gomock.Any()).Return(sampleStats(), nil)
	m.EXPECT().OverdueBooks(gomock.Any()).Return(library.OverdueReport{
		OverdueBooks: []library.OverdueLoan{{
			Borrowing: library.Borrowing{ID: 3, DueDate: due, IsOverdue: true, DaysOverdue: 10},
			Book:      library.Book{ID: 1, Title: "Clean Code", Author: "Robert C. Martin"},
			User:      *student,
		}},
		Count: 1,
	}, nil)

	require.NoError(t, a.Load(context.Background()))
	snap := a.Snapshot()
	assert.Equal(t, StateReady, snap.State)
	require.NotNil(t, snap.Stats)
	assert.Equal(t, 15, snap.Stats.Books.Available)
	assert.Equal(t, 2, snap.Stats.Reservations.Active)
	assert.True(t, snap.GeneratedAt.Equal(sampleStats().GeneratedAt.Time))

	require.Len(t, snap.Rows, 1)
	row := snap.Rows[0]
	assert.Equal(t, "Clean Code", row.BookTitle)
	assert.Equal(t, "Ada Lovelace", row.Borrower)
	assert.Equal(t, "STU001", row.StudentID)
	assert.Equal(t, 10, row.DaysOverdue)
	assert.Equal(t, "mailto:ada@uni.edu", row.Contact)
	assert.Equal(t, library.FormatDate(due), row.DueDate)
}

func TestAdminPartialFailureShowsNoData(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mocks.NewMockAdminAPI(ctrl)
	a := NewAdmin(m, session.Fixed(librarian))

	m.EXPECT().Statistics(gomock.Any()).Return(sampleStats(), nil)
	m.EXPECT().OverdueBooks(gomock.Any()).Return(library.OverdueReport{}, errors.New("503"))

	assert.Error(t, a.Load(context.Background()))
	snap := a.Snapshot()
	assert.Equal(t, StateError, snap.State)
	assert.Equal(t, "Failed to load admin data", snap.Err)
	assert.Nil(t, snap.Stats)
	assert.Empty(t, snap.Rows)
}

func TestAdminFetchesConcurrently(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mocks.NewMockAdminAPI(ctrl)
	a := NewAdmin(m, session.Fixed(librarian))

	// Each fetch waits for the other to start.
	statsIn := make(chan struct{})
	overdueIn := make(chan struct{})
	m.EXPECT().Statistics(gomock.Any()).DoAndReturn(func(context.Context) (library.Statistics, error) {
		close(statsIn)
		<-overdueIn
		return sampleStats(), nil
	})
	m.EXPECT().OverdueBooks(gomock.Any()).DoAndReturn(func(context.Context) (library.OverdueReport, error) {
		close(overdueIn)
		<-statsIn
		return library.OverdueReport{}, nil
	})

	done := make(chan error, 1)
	go func() { done <- a.Load(context.Background()) }()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("admin fetches did not run concurrently")
	}
}
