// Package report builds the monthly IPO summary and renders it as markdown,
// HTML, a spreadsheet or a PDF.
package report

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mauv0809/ipo-watch/internal/date"
	"github.com/mauv0809/ipo-watch/internal/history"
	"github.com/mauv0809/ipo-watch/internal/models"
)

// ErrNoData is returned when a month has no listings to publish.
var ErrNoData = errors.New("no listings recorded for month")

// UnknownExchange labels listings without an exchange.
const UnknownExchange = "Unknown"

// DayCount is the number of listings stored for one day.
type DayCount struct {
	Date  date.Date `json:"date"`
	Count int       `json:"count"`
}

// ExchangeCount is the number of listings on one exchange.
type ExchangeCount struct {
	Exchange string `json:"exchange"`
	Count    int    `json:"count"`
}

// Monthly is the summary of one calendar month of buckets.
type Monthly struct {
	Month      date.YearMonth  `json:"month"`
	IPOs       []models.IPO    `json:"ipos"`
	Days       []DayCount      `json:"days"`
	Exchanges  []ExchangeCount `json:"exchanges"`
	TotalOffer decimal.Decimal `json:"total_offer"`
	Unpriced   int             `json:"unpriced"`
}

// Build summarises the buckets of ym. Records are in the same order ByMonth
// returns them. A month without buckets yields an empty report.
func Build(ctx context.Context, store *history.Store, ym date.YearMonth) (*Monthly, error) {
	m := &Monthly{
		Month:     ym,
		IPOs:      []models.IPO{},
		Days:      []DayCount{},
		Exchanges: []ExchangeCount{},
	}
	for day := 1; day <= ym.Days(); day++ {
		d := date.New(ym.Year, ym.Month, day)
		ipos, err := store.ByDate(ctx, d)
		if err != nil {
			return nil, err
		}
		if len(ipos) == 0 {
			continue
		}
		m.Days = append(m.Days, DayCount{Date: d, Count: len(ipos)})
		for _, ipo := range ipos {
			if amount, ok := models.ParseAmount(ipo.OfferAmount); ok {
				m.TotalOffer = m.TotalOffer.Add(amount)
			} else {
				m.Unpriced++
			}
		}
		m.IPOs = append(m.IPOs, ipos...)
	}

	m.Exchanges = countExchanges(m.IPOs)
	return m, nil
}

// countExchanges tallies listings per exchange, most listings first.
func countExchanges(ipos []models.IPO) []ExchangeCount {
	counts := map[string]int{}
	for _, ipo := range ipos {
		ex := strings.TrimSpace(ipo.Exchange)
		if ex == "" {
			ex = UnknownExchange
		}
		counts[ex]++
	}
	out := make([]ExchangeCount, 0, len(counts))
	for ex, n := range counts {
		out = append(out, ExchangeCount{Exchange: ex, Count: n})
	}
	slices.SortFunc(out, func(a, b ExchangeCount) int {
		return cmp.Or(cmp.Compare(b.Count, a.Count), strings.Compare(a.Exchange, b.Exchange))
	})
	return out
}

// Empty reports whether the month has no listings.
func (m *Monthly) Empty() bool { return len(m.IPOs) == 0 }

// Title is the month in long form, e.g. "April 2025".
func (m *Monthly) Title() string { return m.Month.First().Time().Format("January 2006") }

// TotalOfferDisplay is TotalOffer formatted as USD.
func (m *Monthly) TotalOfferDisplay() string { return models.FormatUSD(m.TotalOffer) }

// PreviousMonth is the month before today's, the default report target.
func PreviousMonth(today date.Date) date.YearMonth { return today.YearMonth().Prev() }
