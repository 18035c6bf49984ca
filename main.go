package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"library-client/config"
	"library-client/library"
)

type rootFlags struct {
	apiURL    string
	sessionDB string
	debug     bool
}

// newRootCmd builds the command tree. The returned func releases the app
// once the command has finished.
func newRootCmd() (*cobra.Command, func()) {
	var (
		flags rootFlags
		a     *app
	)

	root := &cobra.Command{
		Use:           "library",
		Short:         "Terminal client for the library management API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if flags.apiURL != "" {
				cfg.APIURL = flags.apiURL
			}
			if flags.sessionDB != "" {
				cfg.SessionPath = flags.sessionDB
			}
			if flags.debug {
				cfg.LogLevel = zerolog.LevelDebugValue
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			a, err = newApp(cfg, newLogger(cfg.Level()), cmd.OutOrStdout())
			return err
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShell(cmd.Context(), a, cmd.InOrStdin())
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.apiURL, "api-url", "", "API base URL (overrides LIBRARY_API_URL)")
	pf.StringVar(&flags.sessionDB, "session-db", "", "session database path (overrides LIBRARY_SESSION_DB)")
	pf.BoolVar(&flags.debug, "debug", false, "log API requests to stderr")

	// app is only built once PersistentPreRunE has run, so every subcommand
	// reaches it through this accessor.
	get := func() *app { return a }

	root.AddCommand(
		&cobra.Command{
			Use:   "shell",
			Short: "Start the interactive shell (default)",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runShell(cmd.Context(), get(), cmd.InOrStdin())
			},
		},
		newLoginCmd(get),
		&cobra.Command{
			Use:   "logout",
			Short: "Forget the signed-in identity",
			Args:  cobra.NoArgs,
			RunE:  func(*cobra.Command, []string) error { return get().logout() },
		},
		&cobra.Command{
			Use:   "whoami",
			Short: "Show the signed-in identity",
			Args:  cobra.NoArgs,
			RunE:  func(*cobra.Command, []string) error { return get().whoami() },
		},
		newRegisterCmd(get),
		newBooksCmd(get),
		&cobra.Command{
			Use:   "search <query>",
			Short: "Search books by title, author or ISBN",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return get().search(cmd.Context(), args[0])
			},
		},
		idCmd("book <book-id>", "Show one book", get, (*app).book),
		newPopularCmd(get),
		idCmd("borrow <book-id>", "Borrow a book", get, (*app).borrow),
		idCmd("reserve <book-id>", "Reserve a book", get, (*app).reserve),
		idCmd("return <loan-id>", "Return a borrowed book", get, (*app).returnBook),
		&cobra.Command{
			Use:   "loans",
			Short: "List your borrowed books",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return get().showLoans(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "admin",
			Short: "Show the librarian dashboard",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return get().showAdmin(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "health",
			Short: "Check that the API is reachable",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return get().health(cmd.Context())
			},
		},
	)

	cleanup := func() {
		if a != nil {
			a.Close()
		}
	}
	return root, cleanup
}

func idCmd(use, short string, get func() *app, fn func(*app, context.Context, int64) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return fn(get(), cmd.Context(), id)
		},
	}
}

func newLoginCmd(get func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "login <student-id>",
		Short: "Sign in with a student ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return get().login(cmd.Context(), args[0])
		},
	}
}

func newRegisterCmd(get func() *app) *cobra.Command {
	var req library.RegisterRequest
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return get().register(cmd.Context(), req)
		},
	}
	cmd.Flags().StringVar(&req.StudentID, "student-id", "", "student ID")
	cmd.Flags().StringVar(&req.Name, "name", "", "full name")
	cmd.Flags().StringVar(&req.Email, "email", "", "email address")
	cmd.Flags().StringVar(&req.Role, "role", "", "student or librarian (server default: student)")
	for _, f := range []string{"student-id", "name", "email"} {
		_ = cmd.MarkFlagRequired(f)
	}
	return cmd
}

func newBooksCmd(get func() *app) *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "books",
		Short: "List the catalog, optionally filtered by category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return get().books(cmd.Context(), categoryArg(category))
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "category filter")
	return cmd
}

func newPopularCmd(get func() *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "popular [limit]",
		Short: "List the most borrowed books",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil || n <= 0 {
					return fmt.Errorf("invalid limit %q", args[0])
				}
				limit = n
			}
			return get().popular(cmd.Context(), limit)
		},
	}
	return cmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root, cleanup := newRootCmd()
	err := root.ExecuteContext(ctx)
	cleanup()
	if err != nil {
		if !quietError(err) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		stop()
		os.Exit(1)
	}
}
