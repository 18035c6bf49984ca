package api

import (
	"errors"
	"fmt"
	"strings"
)

// Error is an application-level rejection: the server answered with a
// non-2xx status, usually carrying {"error": "..."}.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: status %d", e.Status)
	}
	return fmt.Sprintf("api: status %d: %s", e.Status, e.Message)
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (b *errorBody) text() string {
	if b == nil {
		return ""
	}
	if s := strings.TrimSpace(b.Error); s != "" {
		return s
	}
	return strings.TrimSpace(b.Message)
}

// MessageOf returns the server-provided message carried by err, or fallback
// when err is a transport failure or the server sent no message.
func MessageOf(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// StatusOf returns the HTTP status behind err, or 0 if the request never got
// a response.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}
