// Package site renders the static website: the daily index, per-day
// archive pages with optional PDFs and monthly report artifacts.
package site

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/a-h/templ"

	"github.com/mauv0809/ipo-watch/internal/date"
	"github.com/mauv0809/ipo-watch/internal/models"
	"github.com/mauv0809/ipo-watch/internal/report"
	"github.com/mauv0809/ipo-watch/internal/views"
)

const (
	IndexFile    = "index.html"
	MonthlyIndex = "monthly_reports.html"
	ArchiveDir   = "archives"
	MonthlyDir   = "monthly"

	reportPrefix = "monthly_report_"
)

// Printer turns an HTML document into a PDF file. report.PDFPrinter implements it.
type Printer interface {
	Print(ctx context.Context, doc []byte, path string) error
}

// Builder writes pages under a website directory.
type Builder struct {
	dir     string
	printer Printer
	logger  *slog.Logger
}

// Option configures a Builder.
type Option func(*Builder)

// WithPrinter enables PDF output for archive pages and monthly reports.
func WithPrinter(p Printer) Option {
	return func(b *Builder) { b.printer = p }
}

// NewBuilder returns a Builder rooted at dir.
func NewBuilder(dir string, opts ...Option) *Builder {
	b := &Builder{
		dir:    dir,
		logger: slog.Default().With(slog.String("component", "site")),
	}
	for _, o := range opts {
		o(b)
	}
	return b
}

// Dir is the website root.
func (b *Builder) Dir() string { return b.dir }

// Daily writes the archive page for day and, with a printer, its PDF. The
// index is pointed at day unless a newer archive page already exists, so
// back-filling an old date leaves it alone.
func (b *Builder) Daily(ctx context.Context, day date.Date, ipos []models.IPO, rules []models.RuleChange) error {
	archive := filepath.Join(b.dir, ArchiveDir, day.String()+".html")
	page := func(downloads []views.Download) templ.Component {
		return views.Day(day, ipos, rules, downloads, views.SitePaths("../"))
	}
	if _, err := b.publish(ctx, archive, nil, page); err != nil {
		return err
	}

	newest, err := b.newestArchive()
	if err != nil {
		return err
	}
	if day.Before(newest) {
		b.logger.Info("Built archive page, index kept on newer day",
			slog.String("date", day.String()),
			slog.String("index", newest.String()))
		return nil
	}

	months, err := b.reportMonths()
	if err != nil {
		return err
	}
	slices.Reverse(months)
	if err := b.write(ctx, filepath.Join(b.dir, IndexFile), views.Index(day, ipos, months, views.SitePaths(""))); err != nil {
		return err
	}
	b.logger.Info("Built daily pages", slog.String("date", day.String()), slog.Int("ipos", len(ipos)))
	return nil
}

// Artifacts are the files written for one monthly report.
type Artifacts struct {
	HTML string `json:"html"`
	XLSX string `json:"xlsx"`
	PDF  string `json:"pdf,omitempty"`
}

// Monthly writes the report page, workbook and, with a printer, the PDF for
// m, then refreshes the monthly reports listing. Empty months yield
// report.ErrNoData and write nothing.
func (b *Builder) Monthly(ctx context.Context, m *report.Monthly) (*Artifacts, error) {
	if m.Empty() {
		return nil, fmt.Errorf("%w %s", report.ErrNoData, m.Month)
	}
	dir := filepath.Join(b.dir, MonthlyDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", dir, err)
	}
	base := filepath.Join(dir, reportPrefix+m.Month.String())
	art := &Artifacts{HTML: base + ".html", XLSX: base + ".xlsx"}

	if err := report.WriteXLSX(m, art.XLSX); err != nil {
		return nil, err
	}

	fragment, err := report.HTML(m)
	if err != nil {
		return nil, err
	}
	charts := m.Charts()
	page := func(downloads []views.Download) templ.Component {
		return views.MonthlyReport(m.Title(), fragment, charts, downloads, views.SitePaths("../"))
	}
	art.PDF, err = b.publish(ctx, art.HTML, []views.Download{{Label: "Excel", Href: filepath.Base(art.XLSX)}}, page)
	if err != nil {
		return nil, err
	}

	if err := b.writeMonthlyIndex(ctx); err != nil {
		return nil, err
	}
	b.logger.Info("Built monthly report",
		slog.String("month", m.Month.String()),
		slog.Int("ipos", len(m.IPOs)),
		slog.String("html", art.HTML))
	return art, nil
}

// publish writes the page at path and, with a printer, prints it next to it
// as a PDF whose path is returned. The page links the PDF; when printing
// fails the page is rewritten without that link and pdf is empty.
func (b *Builder) publish(ctx context.Context, path string, downloads []views.Download, page func([]views.Download) templ.Component) (pdf string, err error) {
	if b.printer == nil {
		return "", b.write(ctx, path, page(downloads))
	}

	pdf = strings.TrimSuffix(path, filepath.Ext(path)) + ".pdf"
	withPDF := append(slices.Clone(downloads), views.Download{Label: "PDF", Href: filepath.Base(pdf)})
	doc, err := renderBytes(ctx, page(withPDF))
	if err != nil {
		return "", err
	}
	if err := writeFile(path, doc); err != nil {
		return "", err
	}
	if err := b.printer.Print(ctx, doc, pdf); err != nil {
		b.logger.Warn("PDF printing failed", slog.String("pdf", pdf), slog.String("error", err.Error()))
		return "", b.write(ctx, path, page(downloads))
	}
	return pdf, nil
}

func (b *Builder) writeMonthlyIndex(ctx context.Context) error {
	months, err := b.reportMonths()
	if err != nil {
		return err
	}
	entries := make([]views.MonthEntry, 0, len(months))
	for _, ym := range months {
		e := views.MonthEntry{Month: ym}
		for _, ext := range []struct{ label, ext string }{{"Excel", ".xlsx"}, {"PDF", ".pdf"}} {
			name := reportPrefix + ym.String() + ext.ext
			if _, err := os.Stat(filepath.Join(b.dir, MonthlyDir, name)); err == nil {
				e.Downloads = append(e.Downloads, views.Download{Label: ext.label, Href: MonthlyDir + "/" + name})
			}
		}
		entries = append(entries, e)
	}
	return b.write(ctx, filepath.Join(b.dir, MonthlyIndex), views.MonthlyIndex(entries, views.SitePaths("")))
}

// reportMonths lists months with a generated report page, newest first.
func (b *Builder) reportMonths() ([]date.YearMonth, error) {
	entries, err := os.ReadDir(filepath.Join(b.dir, MonthlyDir))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("listing monthly reports: %w", err)
	}
	var months []date.YearMonth
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, reportPrefix) || !strings.HasSuffix(name, ".html") {
			continue
		}
		ym, err := date.ParseYearMonth(strings.TrimSuffix(strings.TrimPrefix(name, reportPrefix), ".html"))
		if err != nil {
			continue
		}
		months = append(months, ym)
	}
	slices.SortFunc(months, func(a, b date.YearMonth) int { return b.Compare(a) })
	return months, nil
}

// newestArchive is the latest day with an archive page, or the zero date.
func (b *Builder) newestArchive() (date.Date, error) {
	entries, err := os.ReadDir(filepath.Join(b.dir, ArchiveDir))
	if os.IsNotExist(err) {
		return date.Date{}, nil
	}
	if err != nil {
		return date.Date{}, fmt.Errorf("listing archive pages: %w", err)
	}
	var newest date.Date
	for _, e := range entries {
		name, ok := strings.CutSuffix(e.Name(), ".html")
		if e.IsDir() || !ok {
			continue
		}
		if d, err := date.Parse(name); err == nil && d.After(newest) {
			newest = d
		}
	}
	return newest, nil
}

func (b *Builder) write(ctx context.Context, path string, c templ.Component) error {
	data, err := renderBytes(ctx, c)
	if err != nil {
		return err
	}
	return writeFile(path, data)
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func renderBytes(ctx context.Context, c templ.Component) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.Render(ctx, &buf); err != nil {
		return nil, fmt.Errorf("rendering page: %w", err)
	}
	return buf.Bytes(), nil
}
