package model

import "fmt"

// ReportDay is one day with report data available.
type ReportDay struct {
	Date string // "2021-07-22"
	Day  int
}

// ReportMonth groups the available days of one calendar month.
type ReportMonth struct {
	Date  string // "2021-07"
	Month int    // 1-12
	Year  int
	Name  string // display name, e.g. "July"
	Days  []ReportDay
}

// ReportMonths is the chronological date catalog. It is built once per
// session from the dates endpoint and read-only afterward.
type ReportMonths []ReportMonth

var monthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// MonthName returns the display name for a 1-based month number.
func MonthName(month int) (string, error) {
	if month < 1 || month > 12 {
		return "", fmt.Errorf("month %d out of range", month)
	}
	return monthNames[month-1], nil
}

// Granularity is the navigation target resolution.
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityMonth Granularity = "month"
)

// DateSyntaxError marks a navigation date that failed the format check.
type DateSyntaxError struct {
	Input string
}

func (e *DateSyntaxError) Error() string {
	return fmt.Sprintf("invalid report date %q (expected YYYY-MM or YYYY-MM-DD)", e.Input)
}

// ParseDate checks a navigation date against the accepted syntax and
// reports its granularity. Accepted shapes are "YYYY-MM" (month 1-12) and
// "YYYY-MM-DD" (day 1-31; days-in-month are not checked, matching the
// upstream contract).
func ParseDate(s string) (Granularity, error) {
	switch len(s) {
	case 7: // YYYY-MM
		if !digits(s[0:4]) || s[4] != '-' || !digits(s[5:7]) {
			return "", &DateSyntaxError{Input: s}
		}
		if m := atoi2(s[5:7]); m < 1 || m > 12 {
			return "", &DateSyntaxError{Input: s}
		}
		return GranularityMonth, nil
	case 10: // YYYY-MM-DD
		if _, err := ParseDate(s[0:7]); err != nil {
			return "", &DateSyntaxError{Input: s}
		}
		if s[7] != '-' || !digits(s[8:10]) {
			return "", &DateSyntaxError{Input: s}
		}
		if d := atoi2(s[8:10]); d < 1 || d > 31 {
			return "", &DateSyntaxError{Input: s}
		}
		return GranularityDay, nil
	default:
		return "", &DateSyntaxError{Input: s}
	}
}

// YearMonth returns the "YYYY-MM" prefix of an already-validated date.
func YearMonth(date string) string {
	if len(date) < 7 {
		return date
	}
	return date[0:7]
}

func digits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// atoi2 converts a two-digit numeric substring. Callers must have checked
// digits() first.
func atoi2(s string) int {
	return int(s[0]-'0')*10 + int(s[1]-'0')
}
