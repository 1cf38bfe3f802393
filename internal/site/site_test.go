package site

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mauv0809/ipo-watch/internal/date"
	"github.com/mauv0809/ipo-watch/internal/history"
	"github.com/mauv0809/ipo-watch/internal/models"
	"github.com/mauv0809/ipo-watch/internal/report"
)

type fakePrinter struct {
	err   error
	calls int
}

func (p *fakePrinter) Print(_ context.Context, doc []byte, path string) error {
	p.calls++
	if p.err != nil {
		return p.err
	}
	return os.WriteFile(path, append([]byte("%PDF-"), doc[:10]...), 0o644)
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func monthly(t *testing.T, ym string, ipos ...models.IPO) *report.Monthly {
	t.Helper()
	ctx := context.Background()
	store := history.New(history.NewMemoryBackend())
	_, err := store.PutString(ctx, ym+"-02", ipos)
	require.NoError(t, err)
	month, err := date.ParseYearMonth(ym)
	require.NoError(t, err)
	m, err := report.Build(ctx, store, month)
	require.NoError(t, err)
	return m
}

func TestDaily(t *testing.T) {
	dir := t.TempDir()
	b := NewBuilder(dir)
	day := date.MustParse("2025-04-09")

	err := b.Daily(context.Background(), day, []models.IPO{{Symbol: "ACME"}}, []models.RuleChange{})
	require.NoError(t, err)

	archive := readFile(t, filepath.Join(dir, ArchiveDir, "2025-04-09.html"))
	assert.Contains(t, archive, "ACME")
	assert.Contains(t, archive, "No IPO-related rule changes.")

	index := readFile(t, filepath.Join(dir, IndexFile))
	assert.Contains(t, index, `href="archives/2025-04-09.html"`)
	assert.Contains(t, index, "No months on record.")
}

func TestMonthlyEmptyMonth(t *testing.T) {
	dir := t.TempDir()
	b := NewBuilder(dir)

	_, err := b.Monthly(context.Background(), monthly(t, "2025-04"))
	assert.ErrorIs(t, err, report.ErrNoData)

	_, statErr := os.Stat(filepath.Join(dir, MonthlyDir))
	assert.True(t, os.IsNotExist(statErr))
}

func TestMonthlyWritesArtifacts(t *testing.T) {
	dir := t.TempDir()
	printer := &fakePrinter{}
	b := NewBuilder(dir, WithPrinter(printer))
	ctx := context.Background()

	art, err := b.Monthly(ctx, monthly(t, "2025-03", models.IPO{Symbol: "OLD", OfferAmount: "$5"}))
	require.NoError(t, err)
	art, err = b.Monthly(ctx, monthly(t, "2025-04", models.IPO{Symbol: "ACME", Exchange: "NYSE", OfferAmount: "$1,000"}))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, MonthlyDir, "monthly_report_2025-04.html"), art.HTML)
	assert.FileExists(t, art.XLSX)
	assert.FileExists(t, art.PDF)
	assert.Equal(t, 2, printer.calls)

	page := readFile(t, art.HTML)
	assert.Contains(t, page, "April 2025")
	assert.Contains(t, page, "<td>ACME</td>")
	assert.Contains(t, page, `href="monthly_report_2025-04.pdf" download>PDF</a>`)
	assert.Contains(t, page, "Offer amount by company")
	assert.Contains(t, page, "<svg")

	listing := readFile(t, filepath.Join(dir, MonthlyIndex))
	assert.Contains(t, listing, `href="monthly/monthly_report_2025-04.xlsx" download>Excel</a>`)
	april := strings.Index(listing, "April 2025")
	march := strings.Index(listing, "March 2025")
	require.True(t, april >= 0 && march >= 0)
	assert.Less(t, april, march, "newest month first")

	// the index links the generated months once a day is built
	require.NoError(t, b.Daily(ctx, date.MustParse("2025-04-09"), nil, nil))
	index := readFile(t, filepath.Join(dir, IndexFile))
	assert.Contains(t, index, `href="monthly/monthly_report_2025-03.html"`)
	assert.Contains(t, index, `href="monthly/monthly_report_2025-04.html"`)
}

func TestMonthlyPrinterFailureKeepsReport(t *testing.T) {
	dir := t.TempDir()
	b := NewBuilder(dir, WithPrinter(&fakePrinter{err: errors.New("no chrome")}))

	art, err := b.Monthly(context.Background(), monthly(t, "2025-04", models.IPO{Symbol: "ACME"}))
	require.NoError(t, err)
	assert.Empty(t, art.PDF)
	assert.FileExists(t, art.HTML)
	assert.NotContains(t, readFile(t, art.HTML), ".pdf")

	listing := readFile(t, filepath.Join(dir, MonthlyIndex))
	assert.NotContains(t, listing, ".pdf")
}

func TestDailyBackfillKeepsIndex(t *testing.T) {
	dir := t.TempDir()
	b := NewBuilder(dir)
	ctx := context.Background()

	require.NoError(t, b.Daily(ctx, date.MustParse("2025-04-09"), []models.IPO{{Symbol: "ACME"}}, nil))
	require.NoError(t, b.Daily(ctx, date.MustParse("2020-01-01"), []models.IPO{{Symbol: "OLD"}}, nil))

	assert.FileExists(t, filepath.Join(dir, ArchiveDir, "2020-01-01.html"))
	index := readFile(t, filepath.Join(dir, IndexFile))
	assert.Contains(t, index, `href="archives/2025-04-09.html"`)
	assert.Contains(t, index, "ACME")
	assert.NotContains(t, index, "2020-01-01")

	// rebuilding the newest day still refreshes the index
	require.NoError(t, b.Daily(ctx, date.MustParse("2025-04-09"), []models.IPO{{Symbol: "NEWR"}}, nil))
	assert.Contains(t, readFile(t, filepath.Join(dir, IndexFile)), "NEWR")
}

func TestDailyPrintsPDF(t *testing.T) {
	dir := t.TempDir()
	printer := &fakePrinter{}
	b := NewBuilder(dir, WithPrinter(printer))

	ipos := []models.IPO{{Symbol: "ACME", Exchange: "NYSE", Price: "$10.00", OfferAmount: "$1,000"}}
	require.NoError(t, b.Daily(context.Background(), date.MustParse("2025-04-09"), ipos, nil))

	assert.Equal(t, 1, printer.calls)
	assert.FileExists(t, filepath.Join(dir, ArchiveDir, "2025-04-09.pdf"))
	archive := readFile(t, filepath.Join(dir, ArchiveDir, "2025-04-09.html"))
	assert.Contains(t, archive, `href="2025-04-09.pdf" download>PDF</a>`)
	assert.Contains(t, archive, "<svg")
}

func TestDailyPrinterFailureDropsLink(t *testing.T) {
	dir := t.TempDir()
	b := NewBuilder(dir, WithPrinter(&fakePrinter{err: errors.New("no chrome")}))

	require.NoError(t, b.Daily(context.Background(), date.MustParse("2025-04-09"), []models.IPO{{Symbol: "ACME"}}, nil))

	archive := readFile(t, filepath.Join(dir, ArchiveDir, "2025-04-09.html"))
	assert.NotContains(t, archive, ".pdf")
	assert.NoFileExists(t, filepath.Join(dir, ArchiveDir, "2025-04-09.pdf"))
}
