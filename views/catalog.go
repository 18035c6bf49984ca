package views

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"library-client/api"
	"library-client/library"
	"library-client/session"
)

// Categories offered as catalog filters.
var Categories = []string{
	"Programming",
	"Web Development",
	"Database",
	"Computer Science",
	"AI",
	"Software Engineering",
	"Architecture",
	"Systems",
	"Interview Prep",
}

// CatalogAPI is the slice of the gateway the catalog needs.
type CatalogAPI interface {
	ListBooks(ctx context.Context, q library.BookQuery) (library.BookPage, error)
	SearchBooks(ctx context.Context, q string) (library.SearchResult, error)
	Borrow(ctx context.Context, userID, bookID int64) (library.BorrowResult, error)
	Reserve(ctx context.Context, userID, bookID int64) (library.ReserveResult, error)
}

// Catalog lists, filters and searches books and issues borrow and reserve
// requests. Category filter and free-text search exclude each other.
type Catalog struct {
	api     CatalogAPI
	session session.Provider
	opts    options
	banner  bannerSlot

	mu         sync.Mutex
	gen        generation
	state      State
	category   string
	page       int
	query      string
	searched   string // query behind the current results, "" for a listing
	books      []library.Book
	pagination library.Pagination
	loadErr    string
	submitting bool
}

func NewCatalog(a CatalogAPI, sess session.Provider, opts ...Option) *Catalog {
	return &Catalog{
		api:     a,
		session: sess,
		opts:    buildOptions(opts),
		page:    1,
	}
}

// CatalogSnapshot is a read-only copy of the catalog state.
type CatalogSnapshot struct {
	State      State
	Books      []library.Book
	Pagination library.Pagination
	Category   string
	Page       int
	Query      string
	Searching  bool
	Err        string
	Banner     Banner
	Submitting bool
}

// CanPrev and CanNext follow the server's flags only.
func (s CatalogSnapshot) CanPrev() bool { return s.Pagination.HasPrev }
func (s CatalogSnapshot) CanNext() bool { return s.Pagination.HasNext }

func (s CatalogSnapshot) ShowPagination() bool { return s.Pagination.Pages > 1 }

func (s CatalogSnapshot) PageLabel() string {
	return fmt.Sprintf("Page %d of %d", s.Pagination.Page, s.Pagination.Pages)
}

func (c *Catalog) Snapshot() CatalogSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	books := make([]library.Book, len(c.books))
	copy(books, c.books)
	return CatalogSnapshot{
		State:      c.state,
		Books:      books,
		Pagination: c.pagination,
		Category:   c.category,
		Page:       c.page,
		Query:      c.query,
		Searching:  c.searched != "",
		Err:        c.loadErr,
		Banner:     c.banner.get(),
		Submitting: c.submitting,
	}
}

// begin starts a fetch and returns its token. Caller holds c.mu.
func (c *Catalog) begin() uint64 {
	c.state = StateLoading
	c.loadErr = ""
	return c.gen.next()
}

// Load fetches the current page for the current category.
func (c *Catalog) Load(ctx context.Context) error {
	c.mu.Lock()
	q := library.BookQuery{Page: c.page, Limit: c.opts.pageSize, Category: c.category}
	token := c.begin()
	c.mu.Unlock()

	res, err := c.api.ListBooks(ctx, q)

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.gen.current(token) {
		return ErrSuperseded
	}
	if err != nil {
		c.state = StateError
		c.loadErr = "Failed to load books"
		return fmt.Errorf("list books: %w", err)
	}
	c.state = StateReady
	c.books = res.Books
	c.pagination = res.Pagination
	c.searched = ""
	return nil
}

// SelectCategory switches the filter, resets to page 1 and clears the search
// field before fetching. "" selects all categories.
func (c *Catalog) SelectCategory(ctx context.Context, category string) error {
	c.mu.Lock()
	c.category = category
	c.page = 1
	c.query = ""
	c.searched = ""
	c.mu.Unlock()
	return c.Load(ctx)
}

// SetQuery edits the search field without fetching.
func (c *Catalog) SetQuery(q string) {
	c.mu.Lock()
	c.query = q
	c.mu.Unlock()
}

// Search submits q. A blank query falls back to the regular listing.
func (c *Catalog) Search(ctx context.Context, q string) error {
	c.SetQuery(q)
	if strings.TrimSpace(q) == "" {
		return c.Load(ctx)
	}

	c.mu.Lock()
	token := c.begin()
	c.mu.Unlock()

	res, err := c.api.SearchBooks(ctx, q)

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.gen.current(token) {
		return ErrSuperseded
	}
	if err != nil {
		c.state = StateError
		c.loadErr = "Search failed"
		return fmt.Errorf("search books: %w", err)
	}
	c.state = StateReady
	c.books = res.Books
	c.pagination = library.Pagination{}
	c.searched = q
	return nil
}

func (c *Catalog) NextPage(ctx context.Context) error { return c.turn(ctx, 1) }
func (c *Catalog) PrevPage(ctx context.Context) error { return c.turn(ctx, -1) }

func (c *Catalog) turn(ctx context.Context, delta int) error {
	c.mu.Lock()
	allowed := c.pagination.HasNext
	if delta < 0 {
		allowed = c.pagination.HasPrev
	}
	if !allowed {
		c.mu.Unlock()
		return ErrControlDisabled
	}
	c.page += delta
	c.mu.Unlock()
	return c.Load(ctx)
}

// refresh re-runs whatever produced the current results.
func (c *Catalog) refresh(ctx context.Context) error {
	c.mu.Lock()
	q := c.searched
	c.mu.Unlock()
	if q != "" {
		return c.Search(ctx, q)
	}
	return c.Load(ctx)
}

// Borrow asks the server to lend bookID to the signed-in user. The server
// decides availability and the borrowing limit.
func (c *Catalog) Borrow(ctx context.Context, bookID int64) error {
	return c.act(ctx, action{
		login: "Please login to borrow books",
		ok:    "Book borrowed successfully!",
		fail:  "Failed to borrow book",
	}, func(userID int64) error {
		_, err := c.api.Borrow(ctx, userID, bookID)
		return err
	})
}

// Reserve queues the signed-in user for bookID.
func (c *Catalog) Reserve(ctx context.Context, bookID int64) error {
	return c.act(ctx, action{
		login: "Please login to reserve books",
		ok:    "Book reserved successfully!",
		fail:  "Failed to reserve book",
	}, func(userID int64) error {
		_, err := c.api.Reserve(ctx, userID, bookID)
		return err
	})
}

// action holds the banner texts of one catalog action.
type action struct {
	login, ok, fail string
}

func (c *Catalog) act(ctx context.Context, a action, do func(userID int64) error) error {
	user := c.session.User()
	if user == nil {
		c.banner.failure(a.login, 0)
		return ErrLoginRequired
	}

	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		return ErrSubmitting
	}
	c.submitting = true
	c.mu.Unlock()

	err := do(user.ID)

	c.mu.Lock()
	c.submitting = false
	c.mu.Unlock()

	if err != nil {
		c.banner.failure(api.MessageOf(err, a.fail), c.opts.failureTTL)
		return err
	}
	c.banner.success(a.ok, c.opts.successTTL)
	// A failed refresh shows up as the catalog's error state.
	_ = c.refresh(ctx)
	return nil
}

// Close stops the banner timer.
func (c *Catalog) Close() { c.banner.stop() }
