package report

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// PDFPrinter prints HTML documents to PDF with headless Chrome.
type PDFPrinter struct {
	timeout time.Duration
	logger  *slog.Logger
}

// NewPDFPrinter returns a printer that gives up after timeout.
func NewPDFPrinter(timeout time.Duration) *PDFPrinter {
	return &PDFPrinter{
		timeout: timeout,
		logger:  slog.Default().With(slog.String("component", "pdf")),
	}
}

// Print renders doc, a complete HTML document, and writes the PDF to path.
func (p *PDFPrinter) Print(ctx context.Context, doc []byte, path string) error {
	src, err := os.CreateTemp("", "ipo-report-*.html")
	if err != nil {
		return fmt.Errorf("creating temp html: %w", err)
	}
	defer os.Remove(src.Name())
	if _, err := src.Write(doc); err != nil {
		src.Close()
		return fmt.Errorf("writing temp html: %w", err)
	}
	if err := src.Close(); err != nil {
		return err
	}
	abs, err := filepath.Abs(src.Name())
	if err != nil {
		return err
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.DisableGPU,
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()
	if p.timeout > 0 {
		var cancel context.CancelFunc
		browserCtx, cancel = context.WithTimeout(browserCtx, p.timeout)
		defer cancel()
	}

	var pdf []byte
	start := time.Now()
	err = chromedp.Run(browserCtx,
		chromedp.Navigate("file://"+filepath.ToSlash(abs)),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return fmt.Errorf("printing pdf: %w", err)
	}
	if err := os.WriteFile(path, pdf, 0o644); err != nil {
		return fmt.Errorf("writing pdf %s: %w", path, err)
	}
	p.logger.Info("Printed PDF",
		slog.String("path", path),
		slog.Int("bytes", len(pdf)),
		slog.Duration("took", time.Since(start)))
	return nil
}
