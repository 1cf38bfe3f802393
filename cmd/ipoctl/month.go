package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/mauv0809/ipo-watch/internal/date"
	"github.com/mauv0809/ipo-watch/internal/report"
	"github.com/mauv0809/ipo-watch/internal/site"
)

type monthCmd struct {
	ym    string
	term  bool
	pdf   bool
	width int
}

func (*monthCmd) Name() string     { return "month" }
func (*monthCmd) Synopsis() string { return "build the monthly report" }
func (*monthCmd) Usage() string {
	return `ipoctl month [-ym YYYY-MM] [-term] [-pdf]

  Builds the monthly report page, workbook and optional PDF under the
  website directory. Defaults to the previous month. With -term the report
  is printed to the terminal instead.
`
}

func (c *monthCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ym, "ym", "", "Month to report (defaults to last month)")
	f.BoolVar(&c.term, "term", false, "Print the report to the terminal")
	f.BoolVar(&c.pdf, "pdf", false, "Also print a PDF with headless Chrome")
	f.IntVar(&c.width, "width", 100, "Terminal width for -term")
}

func (c *monthCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	ym := report.PreviousMonth(date.Today())
	if c.ym != "" {
		parsed, err := date.ParseYearMonth(c.ym)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		ym = parsed
	}

	e, err := openEnv(ctx)
	if err != nil {
		return fail(err)
	}
	defer e.close()

	m, err := report.Build(ctx, e.store, ym)
	if err != nil {
		return fail(err)
	}

	if c.term {
		out, err := report.Terminal(m, c.width)
		if err != nil {
			return fail(err)
		}
		fmt.Print(out)
		return subcommands.ExitSuccess
	}

	var opts []site.Option
	if c.pdf || e.cfg.PDF.Enabled {
		opts = append(opts, site.WithPrinter(report.NewPDFPrinter(e.cfg.PDF.Timeout)))
	}
	art, err := site.NewBuilder(e.cfg.WebsiteDir, opts...).Monthly(ctx, m)
	if errors.Is(err, report.ErrNoData) {
		fmt.Fprintf(os.Stderr, "No listings recorded for %s, nothing to publish\n", ym)
		return subcommands.ExitSuccess
	}
	if err != nil {
		return fail(err)
	}
	fmt.Println(art.HTML)
	fmt.Println(art.XLSX)
	if art.PDF != "" {
		fmt.Println(art.PDF)
	}
	return subcommands.ExitSuccess
}
