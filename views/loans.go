package views

import (
	"context"
	"fmt"
	"sync"

	"library-client/api"
	"library-client/library"
	"library-client/session"
)

type LoansAPI interface {
	BorrowedBooks(ctx context.Context, userID int64) (library.BorrowedBooks, error)
	ReturnBook(ctx context.Context, borrowingID int64) (library.BorrowResult, error)
}

// Loans is the signed-in user's dashboard of active loans.
type Loans struct {
	api     LoansAPI
	session session.Provider
	opts    options
	banner  bannerSlot

	mu         sync.Mutex
	gen        generation
	state      State
	owner      *library.User
	loans      []library.BorrowedBook
	loadErr    string
	submitting bool
}

func NewLoans(a LoansAPI, sess session.Provider, opts ...Option) *Loans {
	return &Loans{api: a, session: sess, opts: buildOptions(opts)}
}

type LoansSnapshot struct {
	State      State
	User       *library.User
	Loans      []library.BorrowedBook
	Err        string
	Banner     Banner
	Submitting bool
}

// LimitLabel is the borrowing-limit reminder. The server enforces the limit.
func (s LoansSnapshot) LimitLabel() string {
	return fmt.Sprintf("Current: %d / %d", len(s.Loans), BorrowingLimit)
}

func (l *Loans) Snapshot() LoansSnapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	loans := make([]library.BorrowedBook, len(l.loans))
	copy(loans, l.loans)
	var owner *library.User
	if l.owner != nil {
		cp := *l.owner
		owner = &cp
	}
	return LoansSnapshot{
		State:      l.state,
		User:       owner,
		Loans:      loans,
		Err:        l.loadErr,
		Banner:     l.banner.get(),
		Submitting: l.submitting,
	}
}

// Load fetches the active loans of whoever is signed in now. Without an
// identity the view is reset and nothing is fetched.
func (l *Loans) Load(ctx context.Context) error {
	user := l.session.User()

	l.mu.Lock()
	if user == nil {
		l.gen.next()
		l.state = StateIdle
		l.owner = nil
		l.loans = nil
		l.loadErr = ""
		l.mu.Unlock()
		return ErrLoginRequired
	}
	if l.owner == nil || l.owner.ID != user.ID {
		l.loans = nil
	}
	l.owner = user
	l.state = StateLoading
	l.loadErr = ""
	token := l.gen.next()
	l.mu.Unlock()

	res, err := l.api.BorrowedBooks(ctx, user.ID)

	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.gen.current(token) {
		return ErrSuperseded
	}
	if err != nil {
		l.state = StateError
		l.loadErr = "Failed to load borrowed books"
		return fmt.Errorf("list borrowed books: %w", err)
	}
	l.state = StateReady
	l.loans = res.BorrowedBooks
	return nil
}

// Return closes a loan and re-fetches the list. The success message names
// the fine only when the server reports one.
func (l *Loans) Return(ctx context.Context, borrowingID int64) error {
	l.mu.Lock()
	if l.submitting {
		l.mu.Unlock()
		return ErrSubmitting
	}
	l.submitting = true
	l.mu.Unlock()

	res, err := l.api.ReturnBook(ctx, borrowingID)

	l.mu.Lock()
	l.submitting = false
	l.mu.Unlock()

	if err != nil {
		l.banner.failure(api.MessageOf(err, "Failed to return book"), l.opts.failureTTL)
		return err
	}

	l.banner.success(ReturnMessage(res.Borrowing), l.opts.returnTTL)
	_ = l.Load(ctx)
	return nil
}

// ReturnMessage is the banner text after a successful return.
func ReturnMessage(b library.Borrowing) string {
	if b.FineAmount > 0 {
		return "Book returned! Fine amount: " + library.FormatMoney(b.FineAmount)
	}
	return "Book returned successfully!"
}

// DueStatus describes where a loan stands against its due date.
type DueStatus struct {
	Text    string
	Overdue bool
	Warning bool // three days or fewer remain
}

func DueStatusOf(b library.BorrowedBook) DueStatus {
	if b.Borrowing.IsOverdue {
		return DueStatus{
			Text:    fmt.Sprintf("Overdue by %d days", b.Borrowing.DaysOverdue),
			Overdue: true,
		}
	}
	return DueStatus{
		Text:    fmt.Sprintf("%d days remaining", b.DaysRemaining),
		Warning: b.DaysRemaining <= 3,
	}
}

func (l *Loans) Close() { l.banner.stop() }
