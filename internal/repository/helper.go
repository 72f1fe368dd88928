package repository

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ParseTime parses a date string in "2006-01-02" or RFC3339 format.
func ParseTime(str string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if returnTime, err := time.Parse(layout, str); err == nil {
			return returnTime.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("failed to parse date: %q", str)
}

// ParseDecimal parses an exact decimal string as stored in money columns.
func ParseDecimal(str string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(str)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("failed to parse decimal: %w", err)
	}
	return d, nil
}

// FormatTime renders a timestamp the way mutation queries store it. RFC3339
// with nanoseconds keeps sub-second ordering for history records.
func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
