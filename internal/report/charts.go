package report

import (
	"cmp"
	"slices"
	"strings"

	"github.com/mauv0809/ipo-watch/internal/models"
)

// MaxBars caps the number of bars in one chart.
const MaxBars = 10

// Bar is one labelled value of a bar chart. Display is the value as the
// calendar published it.
type Bar struct {
	Label   string  `json:"label"`
	Value   float64 `json:"value"`
	Display string  `json:"display"`
}

// BarChart is a titled series of bars, largest first.
type BarChart struct {
	Title string `json:"title"`
	Bars  []Bar  `json:"bars"`
}

// Max is the largest value in the chart, or 0 when it has no bars.
func (c BarChart) Max() float64 {
	if len(c.Bars) == 0 {
		return 0
	}
	return c.Bars[0].Value
}

// Charts are the figures drawn on report pages: offer amount, price and
// shares per company, and the split of listings across exchanges.
type Charts struct {
	Offer     BarChart        `json:"offer"`
	Price     BarChart        `json:"price"`
	Shares    BarChart        `json:"shares"`
	Exchanges []ExchangeCount `json:"exchanges"`
}

// Empty reports whether no chart has anything to draw.
func (c Charts) Empty() bool {
	return len(c.Offer.Bars) == 0 && len(c.Price.Bars) == 0 && len(c.Shares.Bars) == 0 && len(c.Exchanges) == 0
}

// ChartsFor summarises ipos for plotting. A listing is left out of a bar
// chart when that value is a placeholder, a range or not positive.
func ChartsFor(ipos []models.IPO) Charts {
	return Charts{
		Offer:     barChart("Offer amount by company", ipos, func(i models.IPO) string { return i.OfferAmount }),
		Price:     barChart("Share price by company", ipos, func(i models.IPO) string { return i.Price }),
		Shares:    barChart("Shares offered by company", ipos, func(i models.IPO) string { return i.Shares }),
		Exchanges: countExchanges(ipos),
	}
}

// Charts plots the month's listings.
func (m *Monthly) Charts() Charts { return ChartsFor(m.IPOs) }

func barChart(title string, ipos []models.IPO, value func(models.IPO) string) BarChart {
	c := BarChart{Title: title, Bars: []Bar{}}
	for _, ipo := range ipos {
		raw := value(ipo)
		d, ok := models.ParseAmount(raw)
		if !ok || !d.IsPositive() {
			continue
		}
		v, _ := d.Float64()
		c.Bars = append(c.Bars, Bar{Label: barLabel(ipo), Value: v, Display: strings.TrimSpace(raw)})
	}
	slices.SortStableFunc(c.Bars, func(a, b Bar) int { return cmp.Compare(b.Value, a.Value) })
	if len(c.Bars) > MaxBars {
		c.Bars = c.Bars[:MaxBars]
	}
	return c
}

func barLabel(ipo models.IPO) string {
	if s := strings.TrimSpace(ipo.Symbol); s != "" {
		return s
	}
	if s := strings.TrimSpace(ipo.CompanyName); s != "" {
		return s
	}
	return "?"
}
