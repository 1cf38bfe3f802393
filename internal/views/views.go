// Package views holds the HTML components shared by the web server and the
// static site generator. Components are written in .templ files; run
// `templ generate` after editing them.
package views

import (
	"fmt"
	"slices"

	"github.com/mauv0809/ipo-watch/internal/date"
	"github.com/mauv0809/ipo-watch/internal/models"
)

// Paths maps pages to hrefs. The server and the static site lay pages out
// differently.
type Paths struct {
	Home   string
	Months string
	Day    func(date.Date) string
	Month  func(date.YearMonth) string
}

// ServerPaths are the routes served by cmd/app.
var ServerPaths = Paths{
	Home:   "/",
	Months: "/#months",
	Day:    func(d date.Date) string { return "/history/" + d.String() },
	Month: func(ym date.YearMonth) string {
		return fmt.Sprintf("/monthly/%04d/%02d", ym.Year, int(ym.Month))
	},
}

// SitePaths are relative links in the generated site. prefix leads from the
// page's directory back to the site root, e.g. "../" for archive pages.
func SitePaths(prefix string) Paths {
	return Paths{
		Home:   prefix + "index.html",
		Months: prefix + "monthly_reports.html",
		Day:    func(d date.Date) string { return prefix + "archives/" + d.String() + ".html" },
		Month: func(ym date.YearMonth) string {
			return prefix + "monthly/monthly_report_" + ym.String() + ".html"
		},
	}
}

// Download is a link to a generated artifact.
type Download struct {
	Label string
	Href  string
}

// MonthEntry is one row of the monthly reports listing.
type MonthEntry struct {
	Month     date.YearMonth
	Downloads []Download
}

var ipoColumns = []string{
	"Symbol", "Company", "Exchange", "Price", "Shares", "Expected",
	"Offer amount", "Legal firm", "Auditor", "Underwriter",
}

func ipoCells(ipo models.IPO) []string {
	return []string{
		ipo.Symbol, ipo.CompanyName, ipo.Exchange, ipo.Price, ipo.Shares, ipo.ExpectedDate,
		ipo.OfferAmount, ipo.LegalFirm, ipo.Auditor, ipo.Underwriter,
	}
}

// newestFirst returns months, given oldest first, in reverse.
func newestFirst(months []date.YearMonth) []date.YearMonth {
	out := slices.Clone(months)
	slices.Reverse(out)
	return out
}

// monthTitle is ym in long form, e.g. "April 2025".
func monthTitle(ym date.YearMonth) string {
	return ym.First().Time().Format("January 2006")
}
