package ingest

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/mauv0809/ipo-watch/internal/date"
	"github.com/mauv0809/ipo-watch/internal/db"
	"github.com/mauv0809/ipo-watch/internal/history"
	"github.com/mauv0809/ipo-watch/internal/models"
)

// IPOSource supplies the listings of a month. NasdaqClient implements it.
type IPOSource interface {
	FetchUpcoming(ctx context.Context, month date.YearMonth) ([]models.IPO, error)
}

// RuleSource supplies IPO-related rule changes. SECClient implements it.
type RuleSource interface {
	FetchRuleChanges(ctx context.Context) ([]models.RuleChange, error)
}

// RunRecorder persists run summaries. db.Repository implements it.
type RunRecorder interface {
	RecordRun(ctx context.Context, run db.Run) error
}

// Collector scrapes one day's listings and stores them as that day's bucket.
type Collector struct {
	ipos         IPOSource
	rules        RuleSource
	store        *history.Store
	recorder     RunRecorder
	mockFallback bool
	logger       *slog.Logger
}

// CollectorOption configures a Collector.
type CollectorOption func(*Collector)

// WithMockFallback stores MockIPOs when the calendar fails or is empty, and
// reports MockRuleChanges when the rule pages yield nothing.
func WithMockFallback(enabled bool) CollectorOption {
	return func(c *Collector) { c.mockFallback = enabled }
}

// WithRunRecorder records a summary of every successful run.
func WithRunRecorder(r RunRecorder) CollectorOption {
	return func(c *Collector) { c.recorder = r }
}

// NewCollector wires the sources to the store.
func NewCollector(ipos IPOSource, rules RuleSource, store *history.Store, opts ...CollectorOption) *Collector {
	c := &Collector{
		ipos:   ipos,
		rules:  rules,
		store:  store,
		logger: slog.Default().With(slog.String("component", "collector")),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// CollectResult describes one run.
type CollectResult struct {
	RunID     string              `json:"run_id"`
	Date      date.Date           `json:"date"`
	Location  string              `json:"location"`
	IPOs      []models.IPO        `json:"ipos"`
	Rules     []models.RuleChange `json:"rules"`
	UsedMock  bool                `json:"used_mock"`
	MockRules bool                `json:"mock_rules"`
}

// Collect fetches the calendar for day's month and the SEC rule pages
// concurrently, then replaces day's bucket with the listings.
func (c *Collector) Collect(ctx context.Context, day date.Date) (*CollectResult, error) {
	res := &CollectResult{RunID: uuid.NewString(), Date: day}
	logger := c.logger.With(slog.String("run_id", res.RunID), slog.String("date", day.String()))
	logger.Info("Starting collection")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		ipos, err := c.ipos.FetchUpcoming(gctx, day.YearMonth())
		switch {
		case err != nil && !c.mockFallback:
			return fmt.Errorf("fetching listings: %w", err)
		case err != nil:
			logger.Warn("Calendar unavailable, using mock listings", slog.String("error", err.Error()))
			ipos, res.UsedMock = MockIPOs(), true
		case len(ipos) == 0 && c.mockFallback:
			logger.Warn("Calendar empty, using mock listings")
			ipos, res.UsedMock = MockIPOs(), true
		}
		res.IPOs = ipos
		return nil
	})
	g.Go(func() error {
		rules, err := c.rules.FetchRuleChanges(gctx)
		if err != nil {
			if gctx.Err() != nil {
				return nil
			}
			logger.Warn("SEC rule pages unavailable", slog.String("error", err.Error()))
		}
		if len(rules) == 0 && c.mockFallback {
			rules, res.MockRules = MockRuleChanges(), true
		}
		if rules == nil {
			rules = []models.RuleChange{}
		}
		res.Rules = rules
		return nil
	})
	if err := g.Wait(); err != nil {
		collectorRuns.WithLabelValues("error").Inc()
		return nil, err
	}

	loc, err := c.store.Put(ctx, day, res.IPOs)
	if err != nil {
		collectorRuns.WithLabelValues("error").Inc()
		return nil, err
	}
	res.Location = loc

	if c.recorder != nil {
		run := db.Run{
			ID:        res.RunID,
			BucketKey: day.String(),
			IPOCount:  len(res.IPOs),
			RuleCount: len(res.Rules),
			UsedMock:  res.UsedMock,
		}
		if err := c.recorder.RecordRun(ctx, run); err != nil {
			logger.Warn("Could not record run", slog.String("error", err.Error()))
		}
	}

	outcome := "live"
	if res.UsedMock {
		outcome = "mock"
	}
	collectorRuns.WithLabelValues(outcome).Inc()
	logger.Info("Collection complete",
		slog.Int("ipos", len(res.IPOs)),
		slog.Int("rules", len(res.Rules)),
		slog.Bool("used_mock", res.UsedMock),
		slog.String("location", loc))
	return res, nil
}
