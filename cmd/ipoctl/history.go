package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/google/subcommands"

	"github.com/mauv0809/ipo-watch/internal/date"
)

type showCmd struct {
	date string
}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "print the listings stored for a day" }
func (*showCmd) Usage() string {
	return `ipoctl show -date YYYY-MM-DD

  Prints the bucket of one day. A day without a bucket prints nothing.
`
}

func (c *showCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "date", "", "Day to show (defaults to the latest stored day)")
}

func (c *showCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	e, err := openEnv(ctx)
	if err != nil {
		return fail(err)
	}
	defer e.close()

	var day date.Date
	if c.date == "" {
		latest, ok, err := e.store.Latest(ctx)
		if err != nil {
			return fail(err)
		}
		if !ok {
			fmt.Fprintln(os.Stderr, "No listings stored yet")
			return subcommands.ExitSuccess
		}
		day = latest
	} else if day, err = date.Parse(c.date); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	ipos, err := e.store.ByDate(ctx, day)
	if err != nil {
		return fail(err)
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SYMBOL\tCOMPANY\tEXCHANGE\tPRICE\tSHARES\tEXPECTED\tOFFER")
	for _, ipo := range ipos {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			ipo.Symbol, ipo.CompanyName, ipo.Exchange, ipo.Price, ipo.Shares, ipo.ExpectedDate, ipo.OfferAmount)
	}
	if err := w.Flush(); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}

type datesCmd struct {
	verbose bool
}

func (*datesCmd) Name() string     { return "dates" }
func (*datesCmd) Synopsis() string { return "list every day with a stored bucket" }
func (*datesCmd) Usage() string {
	return `ipoctl dates [-v]

  Lists stored days in ascending order. With -v, partition names that are
  not valid dates are reported on stderr.
`
}

func (c *datesCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.verbose, "v", false, "Report skipped partition names")
}

func (c *datesCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	e, err := openEnv(ctx)
	if err != nil {
		return fail(err)
	}
	defer e.close()

	dates, skipped, err := e.store.Scan(ctx)
	if err != nil {
		return fail(err)
	}
	for _, d := range dates {
		fmt.Println(d)
	}
	if c.verbose {
		for _, name := range skipped {
			fmt.Fprintf(os.Stderr, "skipped %q\n", name)
		}
	}
	return subcommands.ExitSuccess
}

type monthsCmd struct{}

func (*monthsCmd) Name() string     { return "months" }
func (*monthsCmd) Synopsis() string { return "list every month with at least one bucket" }
func (*monthsCmd) Usage() string {
	return `ipoctl months

  Lists months with stored buckets in ascending order.
`
}

func (*monthsCmd) SetFlags(*flag.FlagSet) {}

func (*monthsCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	e, err := openEnv(ctx)
	if err != nil {
		return fail(err)
	}
	defer e.close()

	months, err := e.store.Months(ctx)
	if err != nil {
		return fail(err)
	}
	for _, m := range months {
		fmt.Println(m)
	}
	return subcommands.ExitSuccess
}
