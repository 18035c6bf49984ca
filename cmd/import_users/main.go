package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"library-client/api"
	"library-client/config"
	"library-client/library"
)

// registrar is the part of the API client the importer needs.
type registrar interface {
	Register(ctx context.Context, req library.RegisterRequest) (library.UserResult, error)
}

type summary struct {
	imported []library.User
	errors   int
}

// readUsers parses rows of student_id,name,email[,role]. A first row whose
// first cell is "student_id" is treated as a header.
func readUsers(r io.Reader) ([]library.RegisterRequest, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var reqs []library.RegisterRequest
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if line == 1 && strings.EqualFold(strings.TrimSpace(rec[0]), "student_id") {
			continue
		}
		if len(rec) < 3 || len(rec) > 4 {
			return nil, fmt.Errorf("line %d: want 3 or 4 columns, got %d", line, len(rec))
		}
		req := library.RegisterRequest{
			StudentID: strings.TrimSpace(rec[0]),
			Name:      strings.TrimSpace(rec[1]),
			Email:     strings.TrimSpace(rec[2]),
		}
		if len(rec) == 4 {
			req.Role = strings.ToLower(strings.TrimSpace(rec[3]))
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}

// importUsers registers every request and keeps going past failures.
func importUsers(ctx context.Context, reg registrar, reqs []library.RegisterRequest, out io.Writer) summary {
	var s summary
	for _, req := range reqs {
		fmt.Fprintf(out, "Registering: %s (%s)... ", req.Name, req.StudentID)
		res, err := reg.Register(ctx, req)
		if err != nil {
			fmt.Fprintf(out, "ERROR - %s\n", api.MessageOf(err, err.Error()))
			s.errors++
			continue
		}
		fmt.Fprintf(out, "SUCCESS (ID: %d)\n", res.User.ID)
		s.imported = append(s.imported, res.User)
	}
	return s
}

func printSummary(out io.Writer, s summary) {
	fmt.Fprintf(out, "\nImport complete!\n")
	fmt.Fprintf(out, "Successfully registered: %d users\n", len(s.imported))
	fmt.Fprintf(out, "Errors: %d\n", s.errors)

	if len(s.imported) == 0 {
		return
	}
	fmt.Fprintln(out, "\nRegistered users:")
	fmt.Fprintf(out, "%-5s %-12s %-30s %-10s\n", "ID", "Student ID", "Name", "Role")
	fmt.Fprintln(out, strings.Repeat("-", 60))
	for _, u := range s.imported {
		fmt.Fprintf(out, "%-5d %-12s %-30s %-10s\n", u.ID, u.StudentID, truncateString(u.Name, 30), u.Role)
	}
}

func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

// loadConfig applies the --api-url override and validates the result.
func loadConfig(apiURL string) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	if apiURL != "" {
		cfg.APIURL = apiURL
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func main() {
	var file, apiURL string

	cmd := &cobra.Command{
		Use:           "import_users",
		Short:         "Register users in bulk from a CSV file",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(apiURL)
			if err != nil {
				return err
			}
			log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(cfg.Level()).With().Timestamp().Logger()

			f, err := os.Open(file)
			if err != nil {
				return fmt.Errorf("open users file: %w", err)
			}
			defer f.Close()

			reqs, err := readUsers(f)
			if err != nil {
				return fmt.Errorf("read %s: %w", file, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Importing %d users from %s into %s...\n", len(reqs), file, cfg.APIURL)

			client := api.New(cfg.APIURL, api.WithLogger(log))
			s := importUsers(cmd.Context(), client, reqs, cmd.OutOrStdout())
			printSummary(cmd.OutOrStdout(), s)
			if s.errors > 0 {
				return fmt.Errorf("%d of %d users failed", s.errors, len(reqs))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "users.csv", "CSV file with student_id,name,email[,role] rows")
	cmd.Flags().StringVar(&apiURL, "api-url", "", "API base URL (overrides LIBRARY_API_URL)")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
