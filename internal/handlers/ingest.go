package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mauv0809/ipo-watch/internal/date"
	"github.com/mauv0809/ipo-watch/internal/db"
	"github.com/mauv0809/ipo-watch/internal/history"
	"github.com/mauv0809/ipo-watch/internal/ingest"
	"github.com/mauv0809/ipo-watch/internal/models"
)

// Collector runs one collection. ingest.Collector implements it.
type Collector interface {
	Collect(ctx context.Context, day date.Date) (*ingest.CollectResult, error)
}

// Publisher rebuilds the static pages of a day. site.Builder implements it.
type Publisher interface {
	Daily(ctx context.Context, day date.Date, ipos []models.IPO, rules []models.RuleChange) error
}

// RunLog reports past collector runs. db.Repository implements it.
type RunLog interface {
	LatestRun(ctx context.Context) (*db.Run, error)
	GetBucketCount(ctx context.Context) (int, error)
}

// IngestHandler handles collection endpoints.
type IngestHandler struct {
	collector Collector
	store     *history.Store
	publisher Publisher
	runs      RunLog
	today     func() date.Date
	logger    *slog.Logger
}

// NewIngestHandler creates a new ingest handler. publisher and runs may be nil.
func NewIngestHandler(collector Collector, store *history.Store, publisher Publisher, runs RunLog) *IngestHandler {
	return &IngestHandler{
		collector: collector,
		store:     store,
		publisher: publisher,
		runs:      runs,
		today:     date.Today,
		logger:    slog.Default().With(slog.String("component", "ingest_handler")),
	}
}

// Collect handles POST /admin/collect
// Scrapes the calendar and stores it as a day's bucket. Query params:
// - date: YYYY-MM-DD bucket to write (default: today)
func (h *IngestHandler) Collect(c echo.Context) error {
	ctx := c.Request().Context()
	start := time.Now()

	day := h.today()
	if s := c.QueryParam("date"); s != "" {
		d, err := date.Parse(s)
		if err != nil {
			return failure(c, h.logger, err)
		}
		day = d
	}

	res, err := h.collector.Collect(ctx, day)
	if err != nil {
		h.logger.Error("Collection failed", slog.String("date", day.String()), slog.String("error", err.Error()))
		return c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Message: fmt.Sprintf("Failed to collect %s: %v", day, err),
		})
	}

	if h.publisher != nil {
		if err := h.publisher.Daily(ctx, day, res.IPOs, res.Rules); err != nil {
			h.logger.Warn("Could not publish daily pages", slog.String("error", err.Error()))
		}
	}

	elapsed := time.Since(start)
	msg := fmt.Sprintf("Stored %d listings for %s", len(res.IPOs), day)
	if res.UsedMock {
		msg += " (mock data)"
	}
	return c.JSON(http.StatusOK, Response{
		Success: true,
		Message: msg,
		Count:   len(res.IPOs),
		Elapsed: elapsed.String(),
		Data:    res,
	})
}

// Status handles GET /admin/collect/status
// Returns bucket counts and, with a database, the last recorded run.
func (h *IngestHandler) Status(c echo.Context) error {
	ctx := c.Request().Context()

	dates, err := h.store.Dates(ctx)
	if err != nil {
		return failure(c, h.logger, err)
	}
	status := map[string]any{
		"buckets": len(dates),
	}
	if len(dates) > 0 {
		status["first"] = dates[0]
		status["latest"] = dates[len(dates)-1]
	}

	if h.runs != nil {
		if run, err := h.runs.LatestRun(ctx); err != nil {
			h.logger.Warn("Could not load last run", slog.String("error", err.Error()))
		} else if run != nil {
			status["last_run"] = run
		}
		if n, err := h.runs.GetBucketCount(ctx); err != nil {
			h.logger.Warn("Could not count stored buckets", slog.String("error", err.Error()))
		} else {
			status["stored_rows"] = n
		}
	}
	return c.JSON(http.StatusOK, status)
}
