package views

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"library-client/library"
	"library-client/session"
)

type AdminAPI interface {
	Statistics(ctx context.Context) (library.Statistics, error)
	OverdueBooks(ctx context.Context) (library.OverdueReport, error)
}

// Admin is the librarian's read-only dashboard.
type Admin struct {
	api     AdminAPI
	session session.Provider

	mu      sync.Mutex
	gen     generation
	state   State
	stats   *library.Statistics
	overdue []library.OverdueLoan
	loadErr string
}

func NewAdmin(a AdminAPI, sess session.Provider) *Admin {
	return &Admin{api: a, session: sess}
}

// OverdueRow is one line of the overdue report table.
type OverdueRow struct {
	BorrowingID int64
	BookTitle   string
	BookAuthor  string
	Borrower    string
	StudentID   string
	DueDate     string
	DaysOverdue int
	Contact     string
}

type AdminSnapshot struct {
	State  State
	Viewer *library.User
	Stats  *library.Statistics
	Rows   []OverdueRow
	Err    string

	// GeneratedAt is when the server computed Stats.
	GeneratedAt library.Timestamp
}

func (a *Admin) Snapshot() AdminSnapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	snap := AdminSnapshot{
		State:  a.state,
		Viewer: a.session.User(),
		Err:    a.loadErr,
	}
	if a.stats != nil {
		cp := *a.stats
		snap.Stats = &cp
		snap.GeneratedAt = cp.GeneratedAt
	}
	snap.Rows = make([]OverdueRow, 0, len(a.overdue))
	for _, o := range a.overdue {
		snap.Rows = append(snap.Rows, OverdueRow{
			BorrowingID: o.Borrowing.ID,
			BookTitle:   o.Book.Title,
			BookAuthor:  o.Book.Author,
			Borrower:    o.User.Name,
			StudentID:   o.User.StudentID,
			DueDate:     library.FormatDate(o.Borrowing.DueDate),
			DaysOverdue: o.Borrowing.DaysOverdue,
			Contact:     "mailto:" + o.User.Email,
		})
	}
	return snap
}

// Load redirects non-librarians without fetching. Otherwise it fetches the
// statistics and the overdue report concurrently; both must succeed or the
// view shows a single error and no data.
func (a *Admin) Load(ctx context.Context) error {
	if !a.session.IsLibrarian() {
		a.mu.Lock()
		a.gen.next()
		a.state = StateRedirect
		a.stats = nil
		a.overdue = nil
		a.loadErr = ""
		a.mu.Unlock()
		return ErrNotLibrarian
	}

	a.mu.Lock()
	a.state = StateLoading
	a.loadErr = ""
	token := a.gen.next()
	a.mu.Unlock()

	var (
		stats  library.Statistics
		report library.OverdueReport
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stats, err = a.api.Statistics(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		report, err = a.api.OverdueBooks(gctx)
		return err
	})
	err := g.Wait()

	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.gen.current(token) {
		return ErrSuperseded
	}
	if err != nil {
		a.state = StateError
		a.stats = nil
		a.overdue = nil
		a.loadErr = "Failed to load admin data"
		return fmt.Errorf("load admin data: %w", err)
	}
	a.state = StateReady
	a.stats = &stats
	a.overdue = report.OverdueBooks
	return nil
}
