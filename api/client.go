// Package api is the typed gateway to the library REST API. Every method
// issues exactly one request: there are no retries and no client-side
// timeouts beyond the caller's context.
package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"library-client/library"
)

const defaultPopularLimit = 10

// Client issues calls against one base URL, e.g. http://localhost:5000/api.
type Client struct {
	http *resty.Client
	log  zerolog.Logger
}

type Option func(*Client)

// WithLogger routes request diagnostics to log.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// New builds a client for baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(c)
	}

	c.http = resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetRetryCount(0).
		SetLogger(restyLogger{c.log})

	c.http.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		c.log.Debug().
			Str("method", resp.Request.Method).
			Str("url", resp.Request.URL).
			Int("status", resp.StatusCode()).
			Dur("took", resp.Time()).
			Msg("api call")
		return nil
	})
	return c
}

type call struct {
	method string
	path   string
	params map[string]string
	query  map[string]string
	body   any
}

// do performs c and decodes a 2xx body into out. Transport and decode
// failures are wrapped; non-2xx answers become *Error.
func (c *Client) do(ctx context.Context, cl call, out any) error {
	req := c.http.R().
		SetContext(ctx).
		SetError(&errorBody{})
	if out != nil {
		req.SetResult(out)
	}
	if len(cl.params) > 0 {
		req.SetPathParams(cl.params)
	}
	if len(cl.query) > 0 {
		req.SetQueryParams(cl.query)
	}
	if cl.body != nil {
		req.SetBody(cl.body)
	}

	resp, err := req.Execute(cl.method, cl.path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", cl.method, cl.path, err)
	}
	if resp.IsError() {
		body, _ := resp.Error().(*errorBody)
		return &Error{Status: resp.StatusCode(), Message: body.text()}
	}
	return nil
}

func id(v int64) string { return strconv.FormatInt(v, 10) }

// ------------------ Users ------------------

func (c *Client) Register(ctx context.Context, req library.RegisterRequest) (library.UserResult, error) {
	var out library.UserResult
	err := c.do(ctx, call{method: http.MethodPost, path: "/users/register", body: req}, &out)
	return out, err
}

// Login authenticates by student identifier only; the API has no passwords.
func (c *Client) Login(ctx context.Context, studentID string) (library.UserResult, error) {
	var out library.UserResult
	body := map[string]string{"student_id": studentID}
	err := c.do(ctx, call{method: http.MethodPost, path: "/users/login", body: body}, &out)
	return out, err
}

func (c *Client) GetUser(ctx context.Context, userID int64) (library.UserResult, error) {
	var out library.UserResult
	err := c.do(ctx, call{
		method: http.MethodGet,
		path:   "/users/{id}",
		params: map[string]string{"id": id(userID)},
	}, &out)
	return out, err
}

// ------------------ Books ------------------

func (c *Client) ListBooks(ctx context.Context, q library.BookQuery) (library.BookPage, error) {
	query := map[string]string{}
	if q.Page > 0 {
		query["page"] = strconv.Itoa(q.Page)
	}
	if q.Limit > 0 {
		query["limit"] = strconv.Itoa(q.Limit)
	}
	if q.Category != "" {
		query["category"] = q.Category
	}
	var out library.BookPage
	err := c.do(ctx, call{method: http.MethodGet, path: "/books", query: query}, &out)
	return out, err
}

func (c *Client) SearchBooks(ctx context.Context, q string) (library.SearchResult, error) {
	var out library.SearchResult
	err := c.do(ctx, call{
		method: http.MethodGet,
		path:   "/books/search",
		query:  map[string]string{"q": q},
	}, &out)
	return out, err
}

func (c *Client) GetBook(ctx context.Context, bookID int64) (library.BookResult, error) {
	var out library.BookResult
	err := c.do(ctx, call{
		method: http.MethodGet,
		path:   "/books/{id}",
		params: map[string]string{"id": id(bookID)},
	}, &out)
	return out, err
}

// PopularBooks lists the most borrowed titles; limit <= 0 asks for 10.
func (c *Client) PopularBooks(ctx context.Context, limit int) (library.PopularBooks, error) {
	if limit <= 0 {
		limit = defaultPopularLimit
	}
	var out library.PopularBooks
	err := c.do(ctx, call{
		method: http.MethodGet,
		path:   "/books/popular",
		query:  map[string]string{"limit": strconv.Itoa(limit)},
	}, &out)
	return out, err
}

// ------------------ Circulation ------------------

func (c *Client) Borrow(ctx context.Context, userID, bookID int64) (library.BorrowResult, error) {
	var out library.BorrowResult
	body := map[string]int64{"user_id": userID, "book_id": bookID}
	err := c.do(ctx, call{method: http.MethodPost, path: "/borrow", body: body}, &out)
	return out, err
}

// ReturnBook closes a loan. The returned borrowing carries the fine the
// server computed, if any.
func (c *Client) ReturnBook(ctx context.Context, borrowingID int64) (library.BorrowResult, error) {
	var out library.BorrowResult
	err := c.do(ctx, call{
		method: http.MethodPost,
		path:   "/return/{id}",
		params: map[string]string{"id": id(borrowingID)},
	}, &out)
	return out, err
}

func (c *Client) BorrowedBooks(ctx context.Context, userID int64) (library.BorrowedBooks, error) {
	var out library.BorrowedBooks
	err := c.do(ctx, call{
		method: http.MethodGet,
		path:   "/users/{id}/borrowed",
		params: map[string]string{"id": id(userID)},
	}, &out)
	return out, err
}

func (c *Client) OverdueBooks(ctx context.Context) (library.OverdueReport, error) {
	var out library.OverdueReport
	err := c.do(ctx, call{method: http.MethodGet, path: "/overdue"}, &out)
	return out, err
}

func (c *Client) Reserve(ctx context.Context, userID, bookID int64) (library.ReserveResult, error) {
	var out library.ReserveResult
	body := map[string]int64{"user_id": userID, "book_id": bookID}
	err := c.do(ctx, call{method: http.MethodPost, path: "/reserve", body: body}, &out)
	return out, err
}

// ------------------ Admin ------------------

func (c *Client) Statistics(ctx context.Context) (library.Statistics, error) {
	var out library.Statistics
	err := c.do(ctx, call{method: http.MethodGet, path: "/admin/stats"}, &out)
	return out, err
}

func (c *Client) Health(ctx context.Context) (library.Health, error) {
	var out library.Health
	err := c.do(ctx, call{method: http.MethodGet, path: "/health"}, &out)
	return out, err
}

// restyLogger adapts zerolog to resty's logger interface.
type restyLogger struct {
	log zerolog.Logger
}

func (l restyLogger) Errorf(format string, v ...interface{}) { l.log.Error().Msgf(format, v...) }
func (l restyLogger) Warnf(format string, v ...interface{})  { l.log.Warn().Msgf(format, v...) }
func (l restyLogger) Debugf(format string, v ...interface{}) { l.log.Debug().Msgf(format, v...) }
