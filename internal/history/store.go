// Package history keeps the scraped IPO listings of each day, one bucket per
// calendar date, and answers day and month queries over them.
//
// Writing a bucket replaces it in full. A date with no bucket reads as an
// empty list. The store never looks at the clock: callers pass the date.
package history

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"

	"github.com/mauv0809/ipo-watch/internal/date"
	"github.com/mauv0809/ipo-watch/internal/models"
)

// ErrInvalidMonth is returned by ByMonth for a month outside 1-12.
var ErrInvalidMonth = date.ErrInvalidMonth

// Store is the date-partitioned IPO history.
type Store struct {
	backend Backend
	logger  *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// New wraps backend in a Store.
func New(backend Backend, opts ...Option) *Store {
	s := &Store{backend: backend, logger: slog.Default()}
	for _, o := range opts {
		o(s)
	}
	s.logger = s.logger.With(slog.String("component", "history"))
	return s
}

// Open returns a Store over the filesystem layout rooted at root.
func Open(root string, opts ...Option) (*Store, error) {
	b, err := NewFileBackend(root)
	if err != nil {
		return nil, err
	}
	return New(b, opts...), nil
}

// Put stores ipos as the bucket for day, replacing whatever was there, and
// returns the bucket location.
func (s *Store) Put(ctx context.Context, day date.Date, ipos []models.IPO) (string, error) {
	if ipos == nil {
		ipos = []models.IPO{}
	}
	data, err := encode(ipos)
	if err != nil {
		observe("put", err)
		return "", fmt.Errorf("encoding bucket %s: %w", day, err)
	}
	loc, err := s.backend.Put(ctx, day.String(), data)
	observe("put", err)
	if err != nil {
		return "", fmt.Errorf("storing bucket %s: %w", day, err)
	}
	s.logger.Info("Stored IPO bucket",
		slog.String("date", day.String()),
		slog.Int("count", len(ipos)),
		slog.String("location", loc))
	return loc, nil
}

// PutString is Put with a YYYY-MM-DD date.
func (s *Store) PutString(ctx context.Context, day string, ipos []models.IPO) (string, error) {
	d, err := date.Parse(day)
	if err != nil {
		return "", err
	}
	return s.Put(ctx, d, ipos)
}

// ByDate returns the bucket for day in stored order, or an empty slice.
func (s *Store) ByDate(ctx context.Context, day date.Date) ([]models.IPO, error) {
	data, found, err := s.backend.Get(ctx, day.String())
	observe("get", err)
	if err != nil {
		return nil, fmt.Errorf("loading bucket %s: %w", day, err)
	}
	if !found {
		return []models.IPO{}, nil
	}
	var ipos []models.IPO
	if err := json.Unmarshal(data, &ipos); err != nil {
		return nil, fmt.Errorf("decoding bucket %s: %w", day, err)
	}
	if ipos == nil {
		ipos = []models.IPO{}
	}
	return ipos, nil
}

// ByDateString is ByDate with a YYYY-MM-DD date.
func (s *Store) ByDateString(ctx context.Context, day string) ([]models.IPO, error) {
	d, err := date.Parse(day)
	if err != nil {
		return nil, err
	}
	return s.ByDate(ctx, d)
}

// ByMonth concatenates the buckets of every day of the month in day order.
func (s *Store) ByMonth(ctx context.Context, year, month int) ([]models.IPO, error) {
	ym, err := date.NewYearMonth(year, month)
	if err != nil {
		return nil, err
	}
	all := []models.IPO{}
	for day := 1; day <= ym.Days(); day++ {
		ipos, err := s.ByDate(ctx, date.New(ym.Year, ym.Month, day))
		if err != nil {
			return nil, err
		}
		all = append(all, ipos...)
	}
	return all, nil
}

// Dates returns every date with a bucket, ascending.
func (s *Store) Dates(ctx context.Context) ([]date.Date, error) {
	dates, _, err := s.Scan(ctx)
	return dates, err
}

// Scan is Dates that also returns the partition names it skipped.
func (s *Store) Scan(ctx context.Context) (dates []date.Date, skipped []string, err error) {
	keys, err := s.backend.Keys(ctx)
	observe("keys", err)
	if err != nil {
		return nil, nil, fmt.Errorf("listing buckets: %w", err)
	}
	dates = make([]date.Date, 0, len(keys))
	for _, k := range keys {
		d, err := date.Parse(k)
		if err != nil {
			skipped = append(skipped, k)
			continue
		}
		dates = append(dates, d)
	}
	if len(skipped) > 0 {
		skippedPartitions.Add(float64(len(skipped)))
		s.logger.Debug("Skipped malformed partitions", slog.Any("names", skipped))
	}
	slices.SortFunc(dates, date.Date.Compare)
	return slices.Compact(dates), skipped, nil
}

// Months returns the distinct months that have at least one bucket, ascending.
func (s *Store) Months(ctx context.Context) ([]date.YearMonth, error) {
	dates, err := s.Dates(ctx)
	if err != nil {
		return nil, err
	}
	months := make([]date.YearMonth, 0)
	for _, d := range dates {
		ym := d.YearMonth()
		if n := len(months); n == 0 || months[n-1] != ym {
			months = append(months, ym)
		}
	}
	return months, nil
}

// Latest returns the most recent date with a bucket. ok is false for an empty store.
func (s *Store) Latest(ctx context.Context) (d date.Date, ok bool, err error) {
	dates, err := s.Dates(ctx)
	if err != nil || len(dates) == 0 {
		return date.Date{}, false, err
	}
	return dates[len(dates)-1], true, nil
}

// encode writes an indented array with HTML and non-ASCII characters left as is.
func encode(ipos []models.IPO) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ipos); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
