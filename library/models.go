package library

const (
	RoleStudent   = "student"
	RoleLibrarian = "librarian"
)

// User is the identity the API returns for a registered student or librarian.
type User struct {
	ID        int64     `json:"id"`
	StudentID string    `json:"student_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt Timestamp `json:"created_at"`
	UpdatedAt Timestamp `json:"updated_at"`
}

// IsLibrarian reports whether the user may open the admin dashboard.
func (u User) IsLibrarian() bool { return u.Role == RoleLibrarian }

// Book represents catalog metadata and the server's current availability count.
// AvailableCopies is only ever changed by the server; clients re-fetch it.
type Book struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Author          string    `json:"author"`
	ISBN            string    `json:"isbn"`
	Category        string    `json:"category"`
	Description     string    `json:"description"`
	TotalCopies     int       `json:"total_copies"`
	AvailableCopies int       `json:"available_copies"`
	IsAvailable     bool      `json:"is_available"`
	CreatedAt       Timestamp `json:"created_at"`
	UpdatedAt       Timestamp `json:"updated_at"`
}

// PopularBook is a book annotated with how often it has been borrowed.
type PopularBook struct {
	Book
	BorrowCount int `json:"borrow_count"`
}

// Borrowing links one user to one book copy until it is returned.
type Borrowing struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	BookID       int64     `json:"book_id"`
	BorrowedDate Timestamp `json:"borrowed_date"`
	DueDate      Timestamp `json:"due_date"`
	ReturnedDate Timestamp `json:"returned_date"`
	Returned     bool      `json:"returned"`
	FineAmount   float64   `json:"fine_amount"`
	IsOverdue    bool      `json:"is_overdue"`
	DaysOverdue  int       `json:"days_overdue"`
}

// Reservation queues a user for a book that has no free copy.
type Reservation struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	BookID       int64     `json:"book_id"`
	ReservedDate Timestamp `json:"reserved_date"`
	Status       string    `json:"status"`
	Priority     int       `json:"priority"`
	Notified     bool      `json:"notified"`
}

// Pagination is recomputed by the server on every list call. The zero value
// means the listing is not paginated.
type Pagination struct {
	Page    int  `json:"page"`
	Pages   int  `json:"pages"`
	Total   int  `json:"total"`
	HasPrev bool `json:"has_prev"`
	HasNext bool `json:"has_next"`
}

// Statistics is a point-in-time aggregate computed by the server.
type Statistics struct {
	Books struct {
		Total     int `json:"total"`
		Available int `json:"available"`
		Borrowed  int `json:"borrowed"`
	} `json:"books"`
	Users struct {
		Total      int `json:"total"`
		Students   int `json:"students"`
		Librarians int `json:"librarians"`
	} `json:"users"`
	Borrowings struct {
		Total   int `json:"total"`
		Active  int `json:"active"`
		Overdue int `json:"overdue"`
	} `json:"borrowings"`
	Reservations struct {
		Active int `json:"active"`
	} `json:"reservations"`
	GeneratedAt Timestamp `json:"generated_at"`
}

// ---------------------------------------------------------------------------
// Request and response envelopes
// ---------------------------------------------------------------------------

type RegisterRequest struct {
	StudentID string `json:"student_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role,omitempty"`
}

// BookQuery filters the paginated catalog listing. An empty Category lists all.
type BookQuery struct {
	Page     int
	Limit    int
	Category string
}

type UserResult struct {
	Message string `json:"message"`
	User    User   `json:"user"`
}

type BookResult struct {
	Book Book `json:"book"`
}

type BookPage struct {
	Books      []Book     `json:"books"`
	Pagination Pagination `json:"pagination"`
}

type SearchResult struct {
	Books []Book `json:"books"`
	Query string `json:"query"`
	Count int    `json:"count"`
}

type PopularBooks struct {
	PopularBooks []PopularBook `json:"popular_books"`
}

type BorrowResult struct {
	Message   string    `json:"message"`
	Borrowing Borrowing `json:"borrowing"`
}

type ReserveResult struct {
	Message     string      `json:"message"`
	Reservation Reservation `json:"reservation"`
}

// BorrowedBook is one active loan as listed for its borrower.
type BorrowedBook struct {
	Borrowing     Borrowing `json:"borrowing"`
	Book          Book      `json:"book"`
	DaysRemaining int       `json:"days_remaining"`
}

type BorrowedBooks struct {
	BorrowedBooks []BorrowedBook `json:"borrowed_books"`
	Count         int            `json:"count"`
	UserID        int64          `json:"user_id"`
}

// OverdueLoan is one row of the librarian's overdue report.
type OverdueLoan struct {
	Borrowing Borrowing `json:"borrowing"`
	Book      Book      `json:"book"`
	User      User      `json:"user"`
}

type OverdueReport struct {
	OverdueBooks []OverdueLoan `json:"overdue_books"`
	Count        int           `json:"count"`
}

type Health struct {
	Status    string    `json:"status"`
	Version   string    `json:"version"`
	Timestamp Timestamp `json:"timestamp"`
}
