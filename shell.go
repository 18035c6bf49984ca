package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"library-client/library"
	"library-client/views"
)

func printHelp(w io.Writer) {
	fmt.Fprintln(w, "Available commands:")
	fmt.Fprintln(w, "  Catalog:  books, category <name|all>, categories, search <query>, next, prev, book <id>, popular")
	fmt.Fprintln(w, "  Loans:    borrow <book id>, reserve <book id>, loans, return <loan id>")
	fmt.Fprintln(w, "  Account:  login <student id>, logout, whoami, register")
	fmt.Fprintln(w, "  Admin:    admin")
	fmt.Fprintln(w, "  System:   health, help, exit")
}

// runShell is the interactive loop. Errors are printed and the loop keeps going.
func runShell(ctx context.Context, a *app, in io.Reader) error {
	sc := bufio.NewScanner(in)

	fmt.Fprintln(a.out, "Welcome to the Library Management System!")
	if u := a.session.User(); u != nil {
		fmt.Fprintf(a.out, "Logged in as %s (%s)\n", u.Name, u.Role)
	}
	printHelp(a.out)

	for {
		if ctx.Err() != nil {
			return nil
		}
		fmt.Fprint(a.out, "\n> ")
		if !sc.Scan() {
			break
		}
		cmd, arg, _ := strings.Cut(strings.TrimSpace(sc.Text()), " ")
		arg = strings.TrimSpace(arg)

		var err error
		switch strings.ToLower(cmd) {
		case "":
			continue
		case "books":
			err = a.books(ctx, "")
		case "category":
			err = a.books(ctx, categoryArg(arg))
		case "categories":
			for _, c := range views.Categories {
				fmt.Fprintf(a.out, "  %s\n", c)
			}
		case "search":
			if arg == "" {
				arg = prompt(sc, a.out, "Query: ")
			}
			err = a.search(ctx, arg)
		case "next":
			err = a.page(ctx, true)
		case "prev":
			err = a.page(ctx, false)
		case "book":
			err = withID(sc, a.out, arg, "Book ID: ", func(id int64) error { return a.book(ctx, id) })
		case "popular":
			err = a.popular(ctx, 0)
		case "borrow":
			err = withID(sc, a.out, arg, "Book ID: ", func(id int64) error { return a.borrow(ctx, id) })
		case "reserve":
			err = withID(sc, a.out, arg, "Book ID: ", func(id int64) error { return a.reserve(ctx, id) })
		case "loans":
			err = a.showLoans(ctx)
		case "return":
			err = withID(sc, a.out, arg, "Loan ID: ", func(id int64) error { return a.returnBook(ctx, id) })
		case "admin":
			err = a.showAdmin(ctx)
		case "login":
			if arg == "" {
				arg = prompt(sc, a.out, "Student ID: ")
			}
			err = a.login(ctx, arg)
		case "logout":
			err = a.logout()
		case "whoami":
			err = a.whoami()
		case "register":
			err = a.register(ctx, promptRegistration(sc, a.out))
		case "health":
			err = a.health(ctx)
		case "help":
			printHelp(a.out)
		case "exit", "quit":
			fmt.Fprintln(a.out, "Goodbye!")
			return nil
		default:
			fmt.Fprintln(a.out, "Unknown command. Type 'help' to list the available commands.")
		}

		if err != nil {
			a.log.Debug().Err(err).Str("command", cmd).Msg("command failed")
			if !quietError(err) {
				fmt.Fprintf(a.out, "Error: %v\n", err)
			}
		}
	}
	return sc.Err()
}

// quietError reports errors the user has already seen as a banner or message.
func quietError(err error) bool {
	for _, target := range []error{
		views.ErrLoginRequired,
		views.ErrNotLibrarian,
		views.ErrControlDisabled,
		views.ErrSuperseded,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	var s shownError
	return errors.As(err, &s)
}

// shownError wraps a failure that was already rendered as a banner.
type shownError struct{ err error }

func (e shownError) Error() string { return e.err.Error() }
func (e shownError) Unwrap() error { return e.err }

func shown(err error) error {
	if err == nil {
		return nil
	}
	return shownError{err}
}

func prompt(sc *bufio.Scanner, w io.Writer, label string) string {
	fmt.Fprint(w, label)
	if !sc.Scan() {
		return ""
	}
	return strings.TrimSpace(sc.Text())
}

type errBadID string

func (e errBadID) Error() string { return fmt.Sprintf("invalid ID: %q", string(e)) }

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, errBadID(s)
	}
	return id, nil
}

func withID(sc *bufio.Scanner, w io.Writer, arg, label string, fn func(int64) error) error {
	if arg == "" {
		arg = prompt(sc, w, label)
	}
	id, err := parseID(arg)
	if err != nil {
		return err
	}
	return fn(id)
}

// categoryArg maps user input onto a known category, case-insensitively.
// "all" and "" clear the filter. Unknown names pass through as typed.
func categoryArg(s string) string {
	if s == "" || strings.EqualFold(s, "all") {
		return ""
	}
	for _, c := range views.Categories {
		if strings.EqualFold(c, s) {
			return c
		}
	}
	return s
}

func promptRegistration(sc *bufio.Scanner, w io.Writer) library.RegisterRequest {
	return library.RegisterRequest{
		StudentID: prompt(sc, w, "Student ID: "),
		Name:      prompt(sc, w, "Name: "),
		Email:     prompt(sc, w, "Email: "),
	}
}
