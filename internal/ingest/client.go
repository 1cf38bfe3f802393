package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/mauv0809/ipo-watch/internal/config"
	"github.com/mauv0809/ipo-watch/internal/date"
	"github.com/mauv0809/ipo-watch/internal/models"
)

const (
	defaultTimeout = 30 * time.Second
	maxAttempts    = 3
	browserUA      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
)

// ErrUnexpectedStatus is wrapped by errors for non-200 responses.
var ErrUnexpectedStatus = errors.New("unexpected status")

// fetcher is a rate-limited GET client with retries, shared by the scrapers.
type fetcher struct {
	source     string
	httpClient *http.Client
	limiter    *rate.Limiter
	header     http.Header
	backoff    time.Duration
	logger     *slog.Logger
}

func newFetcher(source string, timeout time.Duration, rps float64, header http.Header) *fetcher {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if rps <= 0 {
		rps = 1
	}
	return &fetcher{
		source:     source,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		header:     header,
		backoff:    time.Second,
		logger:     slog.Default().With(slog.String("component", "ingest"), slog.String("source", source)),
	}
}

// get fetches urlStr, retrying transient failures with exponential backoff.
func (f *fetcher) get(ctx context.Context, urlStr string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			backoff := f.backoff << attempt
			f.logger.Warn("Retrying request",
				slog.Int("attempt", attempt+1),
				slog.Duration("backoff", backoff),
				slog.String("error", lastErr.Error()))
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		if err := f.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		body, err := f.do(ctx, urlStr)
		if err == nil {
			requests.WithLabelValues(f.source, "ok").Inc()
			return body, nil
		}
		lastErr = err

		// Don't retry on context cancellation
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}

	requests.WithLabelValues(f.source, "error").Inc()
	return nil, fmt.Errorf("all retries failed: %w", lastErr)
}

func (f *fetcher) do(ctx context.Context, urlStr string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	for k, v := range f.header {
		req.Header[k] = v
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w %d from %s", ErrUnexpectedStatus, resp.StatusCode, urlStr)
	}
	return body, nil
}

// NasdaqClient reads the NASDAQ IPO calendar.
type NasdaqClient struct {
	baseURL string
	f       *fetcher
}

// NewNasdaqClient creates a calendar client from configuration.
func NewNasdaqClient(cfg config.NasdaqConfig) *NasdaqClient {
	header := http.Header{}
	header.Set("User-Agent", browserUA)
	header.Set("Accept", "application/json, text/plain, */*")
	header.Set("Accept-Language", "en-US,en;q=0.9")
	header.Set("Referer", "https://www.nasdaq.com/")
	header.Set("Origin", "https://www.nasdaq.com")

	return &NasdaqClient{
		baseURL: cfg.CalendarURL,
		f:       newFetcher("nasdaq", cfg.Timeout, cfg.RPS, header),
	}
}

// FetchUpcoming returns the upcoming listings published for month, in
// calendar order.
func (c *NasdaqClient) FetchUpcoming(ctx context.Context, month date.YearMonth) ([]models.IPO, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid calendar url: %w", err)
	}
	q := u.Query()
	q.Set("date", month.String())
	u.RawQuery = q.Encode()

	body, err := c.f.get(ctx, u.String())
	if err != nil {
		return nil, fmt.Errorf("fetching ipo calendar: %w", err)
	}

	ipos, err := ParseCalendar(body)
	if err != nil {
		return nil, err
	}
	c.f.logger.Info("Fetched IPO calendar",
		slog.String("month", month.String()),
		slog.Int("count", len(ipos)))
	return ipos, nil
}
