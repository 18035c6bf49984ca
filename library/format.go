package library

import "fmt"

const dateLayout = "Jan 2, 2006"

// FormatDate renders a short human date, or "-" when the timestamp is unset.
func FormatDate(ts Timestamp) string {
	if ts.IsZero() {
		return "-"
	}
	return ts.Local().Format(dateLayout)
}

// FormatDateTime is used for "last updated" style footers.
func FormatDateTime(ts Timestamp) string {
	if ts.IsZero() {
		return "-"
	}
	return ts.Local().Format("Jan 2, 2006 15:04:05")
}

// FormatMoney renders an amount in dollars with exactly two decimals.
func FormatMoney(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}
