package date

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// MonthLayout is the layout used for monthly report names.
const MonthLayout = "2006-01"

// ErrInvalidMonth is returned for a month number outside 1-12 or a malformed YYYY-MM string.
var ErrInvalidMonth = errors.New("invalid month")

// YearMonth identifies a calendar month.
type YearMonth struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

// NewYearMonth validates month and returns the pair. The error wraps ErrInvalidMonth.
func NewYearMonth(year, month int) (YearMonth, error) {
	if month < 1 || month > 12 {
		return YearMonth{}, fmt.Errorf("%w %d, want 1-12", ErrInvalidMonth, month)
	}
	return YearMonth{Year: year, Month: time.Month(month)}, nil
}

// ParseYearMonth parses a YYYY-MM string.
func ParseYearMonth(s string) (YearMonth, error) {
	t, err := time.Parse(MonthLayout, s)
	if err != nil {
		return YearMonth{}, fmt.Errorf("%w %q, want format %s", ErrInvalidMonth, s, MonthLayout)
	}
	return YearMonth{Year: t.Year(), Month: t.Month()}, nil
}

// Days returns the number of days in the month, leap years included.
func (ym YearMonth) Days() int {
	return DaysIn(ym.Year, ym.Month)
}

// First returns the first day of the month.
func (ym YearMonth) First() Date { return New(ym.Year, ym.Month, 1) }

// Prev returns the month before ym.
func (ym YearMonth) Prev() YearMonth { return ym.First().Add(-1).YearMonth() }

// String formats the month as YYYY-MM.
func (ym YearMonth) String() string { return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month)) }

// Compare returns -1, 0 or +1.
func (ym YearMonth) Compare(x YearMonth) int {
	switch {
	case ym.Year < x.Year, ym.Year == x.Year && ym.Month < x.Month:
		return -1
	case ym == x:
		return 0
	}
	return 1
}

func (ym YearMonth) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Year  int `json:"year"`
		Month int `json:"month"`
	}{ym.Year, int(ym.Month)})
}

// DaysIn returns the number of days of month in year.
func DaysIn(year int, month time.Month) int {
	// day 0 of the following month is the last day of this one
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
