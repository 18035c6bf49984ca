// Package views holds the view models behind the catalog, the personal loans
// dashboard and the librarian dashboard. Each view owns its own state; a fetch
// replaces the previous snapshot wholesale and nothing is mutated locally.
package views

import (
	"errors"
	"sync"
	"time"
)

var (
	// ErrLoginRequired is returned, without any network call, when an action
	// needs a signed-in identity.
	ErrLoginRequired = errors.New("login required")
	// ErrNotLibrarian means the admin view redirected away without fetching.
	ErrNotLibrarian = errors.New("librarian role required")
	// ErrControlDisabled is returned when a pagination control the server
	// marked unavailable is used.
	ErrControlDisabled = errors.New("control disabled")
	// ErrSubmitting is returned while a previous action of the same view is
	// still in flight.
	ErrSubmitting = errors.New("action already in progress")
	// ErrSuperseded means a newer fetch was issued before this one resolved,
	// so its result was discarded.
	ErrSuperseded = errors.New("superseded by a newer request")
)

const (
	SuccessTTL = 3 * time.Second
	ReturnTTL  = 5 * time.Second
	FailureTTL = 3 * time.Second

	DefaultPageSize = 12
	BorrowingLimit  = 3
)

// State is the lifecycle shared by all views.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateError
	StateRedirect
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateError:
		return "error"
	case StateRedirect:
		return "redirect"
	default:
		return "unknown"
	}
}

type options struct {
	pageSize   int
	successTTL time.Duration
	returnTTL  time.Duration
	failureTTL time.Duration
}

func defaultOptions() options {
	return options{
		pageSize:   DefaultPageSize,
		successTTL: SuccessTTL,
		returnTTL:  ReturnTTL,
		failureTTL: FailureTTL,
	}
}

type Option func(*options)

// WithPageSize sets the catalog page size sent as the limit parameter.
func WithPageSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.pageSize = n
		}
	}
}

// WithMessageTTL overrides how long every transient banner stays visible.
func WithMessageTTL(d time.Duration) Option {
	return func(o *options) {
		o.successTTL, o.returnTTL, o.failureTTL = d, d, d
	}
}

func buildOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// generation hands out request tokens. Only the result of the most recently
// issued token may be applied. Callers hold the owning view's mutex.
type generation struct {
	n uint64
}

func (g *generation) next() uint64         { g.n++; return g.n }
func (g *generation) current(t uint64) bool { return g.n == t }

// ---------------------------------------------------------------------------
// Banner
// ---------------------------------------------------------------------------

type BannerKind int

const (
	BannerNone BannerKind = iota
	BannerSuccess
	BannerError
)

// Banner is the transient message a view shows after an action.
type Banner struct {
	Kind BannerKind
	Text string
}

func (b Banner) Empty() bool { return b.Kind == BannerNone }

// bannerSlot holds one message and a single timer handle. Showing a message
// stops the previous timer, and the generation check keeps a timer that
// already fired from clearing a newer message.
type bannerSlot struct {
	mu    sync.Mutex
	cur   Banner
	timer *time.Timer
	gen   uint64
}

// show replaces the message. ttl <= 0 keeps it until the next one.
func (s *bannerSlot) show(b Banner, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.gen++
	s.cur = b
	if ttl <= 0 {
		return
	}
	token := s.gen
	s.timer = time.AfterFunc(ttl, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.gen == token {
			s.cur = Banner{}
			s.timer = nil
		}
	})
}

func (s *bannerSlot) success(text string, ttl time.Duration) {
	s.show(Banner{Kind: BannerSuccess, Text: text}, ttl)
}

func (s *bannerSlot) failure(text string, ttl time.Duration) {
	s.show(Banner{Kind: BannerError, Text: text}, ttl)
}

func (s *bannerSlot) get() Banner {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur
}

func (s *bannerSlot) stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.gen++
	s.cur = Banner{}
}
