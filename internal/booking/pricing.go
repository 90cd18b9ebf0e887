package booking

import "time"

// DateLayout is the wire and storage format for rental dates.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string. Anything else fails with
// ErrInvalidDateRange.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDateRange
	}
	return t, nil
}

// RentalDays returns the number of billable days for an inclusive date
// range: (end - start in days) + 1, so a single-day rental counts as 1.
// It fails with ErrInvalidDateRange when end precedes start.
func RentalDays(start, end time.Time) (int64, error) {
	if end.Before(start) {
		return 0, ErrInvalidDateRange
	}
	return int64(end.Sub(start)/(24*time.Hour)) + 1, nil
}

// rentalDaysStr is RentalDays over raw date strings.
func rentalDaysStr(startStr, endStr string) (int64, error) {
	start, err := ParseDate(startStr)
	if err != nil {
		return 0, err
	}
	end, err := ParseDate(endStr)
	if err != nil {
		return 0, err
	}
	return RentalDays(start, end)
}
