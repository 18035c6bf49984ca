package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/term"

	"library-client/api"
	"library-client/config"
	"library-client/library"
	"library-client/session"
	"library-client/views"
)

// app wires the gateway, the persisted session and the three views.
type app struct {
	cfg     config.Config
	log     zerolog.Logger
	client  *api.Client
	store   *session.Store
	session *session.Session

	catalog *views.Catalog
	loans   *views.Loans
	admin   *views.Admin

	out io.Writer
}

func newLogger(level zerolog.Level) zerolog.Logger {
	w := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		NoColor:    !term.IsTerminal(int(os.Stderr.Fd())),
		TimeFormat: "15:04:05",
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

func newApp(cfg config.Config, log zerolog.Logger, out io.Writer) (*app, error) {
	store, err := session.OpenStore(cfg.SessionPath)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}
	sess, err := session.New(store)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("restore session: %w", err)
	}

	client := api.New(cfg.APIURL, api.WithLogger(log.With().Str("component", "api").Logger()))
	log.Debug().Str("api_url", cfg.APIURL).Str("session_db", cfg.SessionPath).Msg("client ready")

	return &app{
		cfg:     cfg,
		log:     log,
		client:  client,
		store:   store,
		session: sess,
		catalog: views.NewCatalog(client, sess, views.WithPageSize(cfg.PageSize)),
		loans:   views.NewLoans(client, sess),
		admin:   views.NewAdmin(client, sess),
		out:     out,
	}, nil
}

func (a *app) Close() {
	a.catalog.Close()
	a.loans.Close()
	if err := a.store.Close(); err != nil {
		a.log.Warn().Err(err).Msg("close session store")
	}
}

// width is the terminal width used to size table columns.
func (a *app) width() int {
	if f, ok := a.out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
			return w
		}
	}
	return defaultWidth
}

// ------------------ Identity ------------------

func (a *app) login(ctx context.Context, studentID string) error {
	studentID = strings.TrimSpace(studentID)
	if studentID == "" {
		return errors.New("student ID is required")
	}
	res, err := a.client.Login(ctx, studentID)
	if err != nil {
		return fmt.Errorf("login failed: %s", api.MessageOf(err, err.Error()))
	}
	if err := a.session.Login(res.User); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	a.log.Info().Int64("user_id", res.User.ID).Str("role", res.User.Role).Msg("signed in")
	fmt.Fprintf(a.out, "Logged in as %s (%s, %s)\n", res.User.Name, res.User.StudentID, res.User.Role)
	return nil
}

func (a *app) logout() error {
	u := a.session.User()
	if err := a.session.Logout(); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Goodbye, %s!\n", u.Name)
	return nil
}

func (a *app) whoami() error {
	u := a.session.User()
	if u == nil {
		fmt.Fprintln(a.out, "Not logged in. Use 'login <student_id>'.")
		return session.ErrNotSignedIn
	}
	renderUser(a.out, *u)
	return nil
}

func (a *app) register(ctx context.Context, req library.RegisterRequest) error {
	res, err := a.client.Register(ctx, req)
	if err != nil {
		return fmt.Errorf("registration failed: %s", api.MessageOf(err, err.Error()))
	}
	fmt.Fprintf(a.out, "Registered %s with ID %d\n", res.User.Name, res.User.ID)
	return nil
}

// ------------------ Catalog ------------------

func (a *app) showCatalog() {
	renderCatalog(a.out, a.catalog.Snapshot(), a.width())
}

func (a *app) books(ctx context.Context, category string) error {
	err := a.catalog.SelectCategory(ctx, category)
	a.showCatalog()
	return shown(err)
}

func (a *app) search(ctx context.Context, q string) error {
	err := a.catalog.Search(ctx, q)
	a.showCatalog()
	return shown(err)
}

func (a *app) page(ctx context.Context, next bool) error {
	var err error
	if next {
		err = a.catalog.NextPage(ctx)
	} else {
		err = a.catalog.PrevPage(ctx)
	}
	if errors.Is(err, views.ErrControlDisabled) {
		fmt.Fprintln(a.out, "No more pages in that direction.")
		return err
	}
	a.showCatalog()
	return shown(err)
}

func (a *app) borrow(ctx context.Context, bookID int64) error {
	err := a.catalog.Borrow(ctx, bookID)
	renderBanner(a.out, a.catalog.Snapshot().Banner)
	return shown(err)
}

func (a *app) reserve(ctx context.Context, bookID int64) error {
	err := a.catalog.Reserve(ctx, bookID)
	renderBanner(a.out, a.catalog.Snapshot().Banner)
	return shown(err)
}

func (a *app) book(ctx context.Context, bookID int64) error {
	res, err := a.client.GetBook(ctx, bookID)
	if err != nil {
		return fmt.Errorf("book %d: %s", bookID, api.MessageOf(err, err.Error()))
	}
	renderBook(a.out, res.Book)
	return nil
}

func (a *app) popular(ctx context.Context, limit int) error {
	res, err := a.client.PopularBooks(ctx, limit)
	if err != nil {
		return fmt.Errorf("popular books: %s", api.MessageOf(err, err.Error()))
	}
	renderPopular(a.out, res.PopularBooks, a.width())
	return nil
}

// ------------------ Loans ------------------

func (a *app) showLoans(ctx context.Context) error {
	err := a.loans.Load(ctx)
	if errors.Is(err, views.ErrLoginRequired) {
		fmt.Fprintln(a.out, "Please login to view your borrowed books.")
		return err
	}
	renderLoans(a.out, a.loans.Snapshot(), a.width())
	return shown(err)
}

func (a *app) returnBook(ctx context.Context, borrowingID int64) error {
	err := a.loans.Return(ctx, borrowingID)
	snap := a.loans.Snapshot()
	renderBanner(a.out, snap.Banner)
	if err == nil && snap.State == views.StateReady {
		renderLoans(a.out, snap, a.width())
	}
	return shown(err)
}

// ------------------ Admin ------------------

func (a *app) showAdmin(ctx context.Context) error {
	err := a.admin.Load(ctx)
	if errors.Is(err, views.ErrNotLibrarian) {
		fmt.Fprintln(a.out, "The admin dashboard is only available to librarians.")
		return err
	}
	renderAdmin(a.out, a.admin.Snapshot(), a.width())
	return shown(err)
}

func (a *app) health(ctx context.Context) error {
	h, err := a.client.Health(ctx)
	if err != nil {
		return fmt.Errorf("API unreachable at %s: %w", a.cfg.APIURL, err)
	}
	fmt.Fprintf(a.out, "API %s (version %s) at %s\n", h.Status, h.Version, library.FormatDateTime(h.Timestamp))
	return nil
}
