package report

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/mauv0809/ipo-watch/internal/date"
	"github.com/mauv0809/ipo-watch/internal/history"
	"github.com/mauv0809/ipo-watch/internal/models"
)

func listing(symbol, exchange, amount string) models.IPO {
	return models.IPO{
		Symbol:       symbol,
		CompanyName:  symbol + " Corp",
		Exchange:     exchange,
		Price:        "$10.00",
		Shares:       "1,000,000",
		ExpectedDate: "4/9/2025",
		OfferAmount:  amount,
	}
}

func aprilStore(t *testing.T) *history.Store {
	t.Helper()
	ctx := context.Background()
	s := history.New(history.NewMemoryBackend())
	_, err := s.PutString(ctx, "2025-04-01", []models.IPO{
		listing("ACME", "NASDAQ Global", "$150,000,000"),
		listing("BOLT", "NYSE", "N/A"),
	})
	require.NoError(t, err)
	_, err = s.PutString(ctx, "2025-04-15", []models.IPO{
		listing("CRUX", "NYSE", "$50,000,000.50"),
		listing("DUNE", "", "$1,000"),
	})
	require.NoError(t, err)
	_, err = s.PutString(ctx, "2025-05-01", []models.IPO{listing("EDGE", "NYSE", "$5")})
	require.NoError(t, err)
	return s
}

func april(t *testing.T) date.YearMonth {
	t.Helper()
	ym, err := date.NewYearMonth(2025, 4)
	require.NoError(t, err)
	return ym
}

func TestBuild(t *testing.T) {
	m, err := Build(context.Background(), aprilStore(t), april(t))
	require.NoError(t, err)

	assert.False(t, m.Empty())
	assert.Equal(t, "April 2025", m.Title())
	require.Len(t, m.IPOs, 4)
	assert.Equal(t, "ACME", m.IPOs[0].Symbol)
	assert.Equal(t, "DUNE", m.IPOs[3].Symbol)

	assert.Equal(t, []DayCount{
		{Date: date.MustParse("2025-04-01"), Count: 2},
		{Date: date.MustParse("2025-04-15"), Count: 2},
	}, m.Days)
	assert.Equal(t, []ExchangeCount{
		{Exchange: "NYSE", Count: 2},
		{Exchange: "NASDAQ Global", Count: 1},
		{Exchange: UnknownExchange, Count: 1},
	}, m.Exchanges)

	assert.Equal(t, "200001000.5", m.TotalOffer.String())
	assert.Equal(t, "$200,001,000.50", m.TotalOfferDisplay())
	assert.Equal(t, 1, m.Unpriced)
}

func TestBuildEmptyMonth(t *testing.T) {
	ym, err := date.NewYearMonth(2025, 6)
	require.NoError(t, err)

	m, err := Build(context.Background(), aprilStore(t), ym)
	require.NoError(t, err)
	assert.True(t, m.Empty())
	assert.NotNil(t, m.IPOs)
	assert.Empty(t, m.Days)
	assert.Empty(t, m.Exchanges)
	assert.True(t, m.TotalOffer.IsZero())
}

func TestMarkdown(t *testing.T) {
	m, err := Build(context.Background(), aprilStore(t), april(t))
	require.NoError(t, err)

	md, err := Markdown(m)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(md, "# IPO monthly report: April 2025\n"))
	assert.Contains(t, md, "4 listings were recorded in 2025-04, offering $200,001,000.50 in total (1 without a usable offer amount).")
	assert.Contains(t, md, "| NYSE | 2 |")
	assert.Contains(t, md, "| 2025-04-15 | 2 |")
	assert.Contains(t, md, "| ACME | ACME Corp | NASDAQ Global | $10.00 | 1,000,000 | 4/9/2025 | $150,000,000 |")
	assert.Contains(t, md, "| DUNE | DUNE Corp | - |")
}

func TestMarkdownEmpty(t *testing.T) {
	md, err := Markdown(&Monthly{Month: april(t)})
	require.NoError(t, err)
	assert.Contains(t, md, "No listings were recorded for 2025-04.")
	assert.NotContains(t, md, "## Listings")
}

func TestCell(t *testing.T) {
	assert.Equal(t, "-", cell("  "))
	assert.Equal(t, `A \| B`, cell("A | B"))
	assert.Equal(t, "two words", cell("two\n  words"))
}

func TestHTML(t *testing.T) {
	m, err := Build(context.Background(), aprilStore(t), april(t))
	require.NoError(t, err)

	out, err := HTML(m)
	require.NoError(t, err)
	html := string(out)
	assert.Contains(t, html, "<h1>IPO monthly report: April 2025</h1>")
	assert.Contains(t, html, "<table>")
	assert.Contains(t, html, "<td>ACME</td>")
}

func TestTerminal(t *testing.T) {
	m, err := Build(context.Background(), aprilStore(t), april(t))
	require.NoError(t, err)

	out, err := Terminal(m, 120)
	require.NoError(t, err)
	assert.Contains(t, out, "2025")
}

func TestWriteXLSX(t *testing.T) {
	m, err := Build(context.Background(), aprilStore(t), april(t))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "monthly_report_2025-04.xlsx")
	require.NoError(t, WriteXLSX(m, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{listingsSheet, summarySheet}, f.GetSheetList())

	rows, err := f.GetRows(listingsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, "Symbol", rows[0][0])
	assert.Equal(t, "ACME", rows[1][0])
	assert.Equal(t, "ACME Corp", rows[1][1])
	assert.Equal(t, "DUNE", rows[4][0])

	month, err := f.GetCellValue(summarySheet, "B1")
	require.NoError(t, err)
	assert.Equal(t, "2025-04", month)
	total, err := f.GetCellValue(summarySheet, "B3")
	require.NoError(t, err)
	assert.Equal(t, "$200,001,000.50", total)
}

func TestPreviousMonth(t *testing.T) {
	tests := map[string]string{
		"2025-01-15": "2024-12",
		"2025-03-31": "2025-02",
		"2024-03-01": "2024-02",
	}
	for today, want := range tests {
		assert.Equal(t, want, PreviousMonth(date.MustParse(today)).String(), today)
	}
}
