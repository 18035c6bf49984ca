package main

import (
	"fmt"
	"io"
	"strings"

	"library-client/library"
	"library-client/views"
)

const defaultWidth = 100

// titleWidth sizes the title column from whatever the fixed columns leave.
func titleWidth(width, fixed int) int {
	w := width - fixed
	if w < 20 {
		return 20
	}
	if w > 50 {
		return 50
	}
	return w
}

func renderBanner(w io.Writer, b views.Banner) {
	switch b.Kind {
	case views.BannerSuccess:
		fmt.Fprintf(w, "%s\n", b.Text)
	case views.BannerError:
		fmt.Fprintf(w, "Error: %s\n", b.Text)
	}
}

func renderUser(w io.Writer, u library.User) {
	fmt.Fprintf(w, "%-12s %s\n", "Name:", u.Name)
	fmt.Fprintf(w, "%-12s %s\n", "Student ID:", u.StudentID)
	fmt.Fprintf(w, "%-12s %s\n", "Email:", u.Email)
	fmt.Fprintf(w, "%-12s %s\n", "Role:", u.Role)
}

func renderCatalog(w io.Writer, s views.CatalogSnapshot, width int) {
	switch {
	case s.Searching:
		fmt.Fprintf(w, "Search results for '%s':\n", s.Query)
	case s.Category != "":
		fmt.Fprintf(w, "Books in %s:\n", s.Category)
	default:
		fmt.Fprintln(w, "All Categories:")
	}

	if s.State == views.StateError {
		fmt.Fprintf(w, "Error: %s\n", s.Err)
	}
	renderBanner(w, s.Banner)

	if len(s.Books) == 0 {
		if s.State != views.StateError {
			fmt.Fprintln(w, "No books found.")
		}
		return
	}

	tw := titleWidth(width, 72)
	fmt.Fprintf(w, "%-5s %-*s %-22s %-20s %-9s %s\n", "ID", tw, "Title", "Author", "Category", "Copies", "Status")
	fmt.Fprintln(w, strings.Repeat("-", tw+72))
	for _, b := range s.Books {
		status := "Available"
		if b.AvailableCopies <= 0 {
			status = "Unavailable"
		}
		fmt.Fprintf(w, "%-5d %-*s %-22s %-20s %-9s %s\n",
			b.ID,
			tw, truncateString(b.Title, tw),
			truncateString(b.Author, 22),
			truncateString(b.Category, 20),
			fmt.Sprintf("%d/%d", b.AvailableCopies, b.TotalCopies),
			status)
	}

	if s.ShowPagination() {
		var controls []string
		if s.CanPrev() {
			controls = append(controls, "'prev'")
		}
		if s.CanNext() {
			controls = append(controls, "'next'")
		}
		fmt.Fprintf(w, "\n%s", s.PageLabel())
		if len(controls) > 0 {
			fmt.Fprintf(w, "  (%s)", strings.Join(controls, " / "))
		}
		fmt.Fprintln(w)
	}
}

func renderBook(w io.Writer, b library.Book) {
	fmt.Fprintf(w, "%s\n", b.Title)
	fmt.Fprintf(w, "by %s\n\n", b.Author)
	fmt.Fprintf(w, "%-11s %s\n", "Category:", b.Category)
	fmt.Fprintf(w, "%-11s %s\n", "ISBN:", b.ISBN)
	fmt.Fprintf(w, "%-11s %d of %d copies\n", "Available:", b.AvailableCopies, b.TotalCopies)
	if b.Description != "" {
		fmt.Fprintf(w, "\n%s\n", b.Description)
	}
}

func renderPopular(w io.Writer, books []library.PopularBook, width int) {
	if len(books) == 0 {
		fmt.Fprintln(w, "No borrowing history yet.")
		return
	}
	tw := titleWidth(width, 44)
	fmt.Fprintf(w, "%-4s %-5s %-*s %-22s %s\n", "#", "ID", tw, "Title", "Author", "Borrows")
	fmt.Fprintln(w, strings.Repeat("-", tw+44))
	for i, b := range books {
		fmt.Fprintf(w, "%-4d %-5d %-*s %-22s %d\n",
			i+1, b.ID, tw, truncateString(b.Title, tw), truncateString(b.Author, 22), b.BorrowCount)
	}
}

func renderLoans(w io.Writer, s views.LoansSnapshot, width int) {
	fmt.Fprintf(w, "My Borrowed Books (%s)\n", s.LimitLabel())
	if s.State == views.StateError {
		fmt.Fprintf(w, "Error: %s\n", s.Err)
		return
	}
	if len(s.Loans) == 0 {
		fmt.Fprintln(w, "You have no borrowed books. Use 'books' to browse the catalog.")
		return
	}

	tw := titleWidth(width, 68)
	fmt.Fprintf(w, "%-6s %-*s %-20s %-13s %-13s %s\n", "Loan", tw, "Title", "Author", "Borrowed", "Due", "Status")
	fmt.Fprintln(w, strings.Repeat("-", tw+68))
	for _, l := range s.Loans {
		st := views.DueStatusOf(l)
		status := st.Text
		if st.Overdue || st.Warning {
			status = "! " + status
		}
		fmt.Fprintf(w, "%-6d %-*s %-20s %-13s %-13s %s\n",
			l.Borrowing.ID,
			tw, truncateString(l.Book.Title, tw),
			truncateString(l.Book.Author, 20),
			library.FormatDate(l.Borrowing.BorrowedDate),
			library.FormatDate(l.Borrowing.DueDate),
			status)
	}
	fmt.Fprintln(w, "\nUse 'return <loan>' to return a book.")
}

func renderAdmin(w io.Writer, s views.AdminSnapshot, width int) {
	fmt.Fprintln(w, "Librarian Dashboard")
	if s.State == views.StateError {
		fmt.Fprintf(w, "Error: %s\n", s.Err)
		return
	}
	if st := s.Stats; st != nil {
		fmt.Fprintf(w, "\n%-14s total %d, available %d, borrowed %d\n", "Books:", st.Books.Total, st.Books.Available, st.Books.Borrowed)
		fmt.Fprintf(w, "%-14s total %d, students %d, librarians %d\n", "Users:", st.Users.Total, st.Users.Students, st.Users.Librarians)
		fmt.Fprintf(w, "%-14s total %d, active %d, overdue %d\n", "Borrowings:", st.Borrowings.Total, st.Borrowings.Active, st.Borrowings.Overdue)
		fmt.Fprintf(w, "%-14s active %d\n", "Reservations:", st.Reservations.Active)
	}

	fmt.Fprintf(w, "\nOverdue Books (%d)\n", len(s.Rows))
	if len(s.Rows) == 0 {
		fmt.Fprintln(w, "No overdue books.")
	} else {
		tw := titleWidth(width, 78)
		fmt.Fprintf(w, "%-*s %-20s %-10s %-13s %-5s %s\n", tw, "Book", "Borrower", "Student", "Due", "Days", "Contact")
		fmt.Fprintln(w, strings.Repeat("-", tw+78))
		for _, r := range s.Rows {
			fmt.Fprintf(w, "%-*s %-20s %-10s %-13s %-5d %s\n",
				tw, truncateString(r.BookTitle, tw),
				truncateString(r.Borrower, 20),
				truncateString(r.StudentID, 10),
				r.DueDate,
				r.DaysOverdue,
				r.Contact)
		}
	}

	if !s.GeneratedAt.IsZero() {
		fmt.Fprintf(w, "\nLast updated: %s\n", library.FormatDateTime(s.GeneratedAt))
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
