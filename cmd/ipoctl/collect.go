package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/mauv0809/ipo-watch/internal/date"
	"github.com/mauv0809/ipo-watch/internal/ingest"
	"github.com/mauv0809/ipo-watch/internal/report"
	"github.com/mauv0809/ipo-watch/internal/site"
)

type collectCmd struct {
	date   string
	noSite bool
	pdf    bool
}

func (*collectCmd) Name() string     { return "collect" }
func (*collectCmd) Synopsis() string { return "scrape the IPO calendar and store today's bucket" }
func (*collectCmd) Usage() string {
	return `ipoctl collect [-date YYYY-MM-DD] [-no-site] [-pdf]

  Fetches the NASDAQ IPO calendar and SEC rule changes, stores the listings
  as the bucket of the given day and rebuilds the daily website pages. With
  -pdf the day's page is also printed to PDF.
`
}

func (c *collectCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "date", "", "Bucket date (defaults to today)")
	f.BoolVar(&c.noSite, "no-site", false, "Do not rebuild the website pages")
	f.BoolVar(&c.pdf, "pdf", false, "Also print the day's page with headless Chrome")
}

func (c *collectCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	day := date.Today()
	if c.date != "" {
		d, err := date.Parse(c.date)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		day = d
	}

	e, err := openEnv(ctx)
	if err != nil {
		return fail(err)
	}
	defer e.close()

	opts := []ingest.CollectorOption{ingest.WithMockFallback(e.cfg.Nasdaq.MockFallback)}
	if e.repo != nil {
		opts = append(opts, ingest.WithRunRecorder(e.repo))
	}
	collector := ingest.NewCollector(ingest.NewNasdaqClient(e.cfg.Nasdaq), ingest.NewSECClient(e.cfg.SEC), e.store, opts...)

	res, err := collector.Collect(ctx, day)
	if err != nil {
		return fail(err)
	}
	fmt.Printf("Stored %d listings for %s at %s\n", len(res.IPOs), day, res.Location)
	if res.UsedMock {
		fmt.Println("Calendar unavailable: mock listings were stored")
	}

	if !c.noSite {
		var opts []site.Option
		if c.pdf || e.cfg.PDF.Enabled {
			opts = append(opts, site.WithPrinter(report.NewPDFPrinter(e.cfg.PDF.Timeout)))
		}
		if err := site.NewBuilder(e.cfg.WebsiteDir, opts...).Daily(ctx, day, res.IPOs, res.Rules); err != nil {
			return fail(err)
		}
	}
	return subcommands.ExitSuccess
}
