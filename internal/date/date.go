// Package date provides a day-granularity calendar date used to key IPO
// history buckets.
package date

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Layout is the ISO-8601 layout used for bucket names and query parameters.
const Layout = "2006-01-02"

// ErrInvalidDate is returned when a string is not a valid YYYY-MM-DD calendar date.
var ErrInvalidDate = errors.New("invalid date")

// Date represents a calendar date with no time of day.
type Date struct {
	y int
	m time.Month
	d int
}

// New returns a normalized Date. Out of range values roll over the way
// time.Date does (New(2025, 2, 30) is 2025-03-02).
func New(year int, month time.Month, day int) Date {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return Date{t.Year(), t.Month(), t.Day()}
}

// Today returns the current local date.
func Today() Date { return New(time.Now().Date()) }

// Parse parses a strict YYYY-MM-DD string. The returned error wraps ErrInvalidDate.
func Parse(s string) (Date, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w %q, want format %s", ErrInvalidDate, s, Layout)
	}
	return New(t.Date()), nil
}

// MustParse is like Parse but panics on error.
func MustParse(s string) Date {
	d, err := Parse(s)
	if err != nil {
		panic(err.Error())
	}
	return d
}

func (d Date) Year() int          { return d.y }
func (d Date) Month() time.Month  { return d.m }
func (d Date) Day() int           { return d.d }
func (d Date) IsZero() bool       { return d == Date{} }
func (d Date) Time() time.Time    { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }
func (d Date) Add(days int) Date  { return New(d.y, d.m, d.d+days) }
func (d Date) Before(x Date) bool { return d.Time().Before(x.Time()) }
func (d Date) After(x Date) bool  { return d.Time().After(x.Time()) }

// YearMonth returns the month the date falls in.
func (d Date) YearMonth() YearMonth { return YearMonth{Year: d.y, Month: d.m} }

// String formats the date as YYYY-MM-DD.
func (d Date) String() string { return d.Time().Format(Layout) }

// Compare returns -1, 0 or +1, suitable for slices.SortFunc.
func (d Date) Compare(x Date) int { return d.Time().Compare(x.Time()) }

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := Parse(s)
	if err != nil {
		return err
	}
	*d = v
	return nil
}

var (
	_ json.Marshaler   = Date{}
	_ json.Unmarshaler = (*Date)(nil)
)
