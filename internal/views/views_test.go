package views

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mauv0809/ipo-watch/internal/date"
	"github.com/mauv0809/ipo-watch/internal/models"
	"github.com/mauv0809/ipo-watch/internal/report"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func TestIndexEscapesListings(t *testing.T) {
	ipos := []models.IPO{{Symbol: "AB", CompanyName: "A&B <Holdings>"}}
	months := []date.YearMonth{{Year: 2025, Month: 3}, {Year: 2025, Month: 4}}

	out := render(t, Index(date.MustParse("2025-04-09"), ipos, months, ServerPaths))
	assert.True(t, strings.HasPrefix(out, "<!doctype html>"))
	assert.Contains(t, out, "A&amp;B &lt;Holdings&gt;")
	assert.NotContains(t, out, "<Holdings>")
	assert.Contains(t, out, `href="/history/2025-04-09"`)
	assert.Contains(t, out, `href="/monthly/2025/04"`)
	// newest month first
	assert.Less(t, strings.Index(out, "2025-04</a>"), strings.Index(out, "2025-03</a>"))
}

func TestIndexEmpty(t *testing.T) {
	out := render(t, Index(date.Date{}, nil, nil, ServerPaths))
	assert.Contains(t, out, "No listings collected yet.")
	assert.Contains(t, out, "No months on record.")
}

func TestDayWithRules(t *testing.T) {
	rules := []models.RuleChange{{Title: "Form S-1 update", Date: "3/1/2025", Kind: models.RuleFinal, Link: "https://www.sec.gov/x?a=1&b=2"}}
	out := render(t, Day(date.MustParse("2025-04-09"), []models.IPO{{Symbol: "ACME"}}, rules, nil, SitePaths("../")))

	assert.Contains(t, out, "IPOs on 2025-04-09")
	assert.Contains(t, out, "1 listings recorded on 2025-04-09.")
	assert.Contains(t, out, `href="../monthly/monthly_report_2025-04.html"`)
	assert.Contains(t, out, `href="../index.html"`)
	assert.Contains(t, out, `href="https://www.sec.gov/x?a=1&amp;b=2"`)
	assert.Contains(t, out, "SEC rule changes")
	assert.Contains(t, out, "<time>3/1/2025</time>")
}

func TestDayWithoutRules(t *testing.T) {
	out := render(t, Day(date.MustParse("2025-04-09"), nil, nil, nil, ServerPaths))
	assert.Contains(t, out, "No listings recorded.")
	assert.NotContains(t, out, "SEC rule changes")
	assert.NotContains(t, out, "<svg")
}

func TestDayDownloadsAndCharts(t *testing.T) {
	ipos := []models.IPO{{Symbol: "ACME", Exchange: "NYSE", Price: "$10.00", Shares: "1,000", OfferAmount: "$10,000"}}
	out := render(t, Day(date.MustParse("2025-04-09"), ipos, nil,
		[]Download{{Label: "PDF", Href: "2025-04-09.pdf"}}, SitePaths("../")))

	assert.Contains(t, out, `href="2025-04-09.pdf" download>PDF</a>`)
	assert.Contains(t, out, `<section class="charts">`)
	assert.Contains(t, out, "Offer amount by company")
	assert.Contains(t, out, "NYSE: 1 (100%)")
}

func TestRuleListSanitizesLinks(t *testing.T) {
	rules := []models.RuleChange{{Title: "IPO disclosure rule", Kind: models.RuleProposed, Link: "javascript:alert(document.cookie)"}}
	out := render(t, RuleList(rules))

	assert.NotContains(t, out, "javascript:")
	assert.Contains(t, out, `href="`+string(templ.FailedSanitizationURL)+`"`)
	assert.Contains(t, out, "IPO disclosure rule</a>")
}

func TestRuleListStates(t *testing.T) {
	assert.Empty(t, render(t, RuleList(nil)))
	assert.Contains(t, render(t, RuleList([]models.RuleChange{})), "No IPO-related rule changes.")

	out := render(t, RuleList([]models.RuleChange{{Title: "Offering <rules>", Kind: models.RuleFinal, Date: "Unknown date"}}))
	assert.Contains(t, out, "Offering &lt;rules&gt;<time>")
	assert.NotContains(t, out, "<a ")
}

func TestMonthlyReportKeepsFragment(t *testing.T) {
	out := render(t, MonthlyReport("April 2025", []byte("<h1>Report</h1>"), report.Charts{},
		[]Download{{Label: "Excel", Href: "monthly_report_2025-04.xlsx"}}, SitePaths("../")))
	assert.Contains(t, out, "<h1>Report</h1>")
	assert.Contains(t, out, `href="monthly_report_2025-04.xlsx" download>Excel</a>`)
	assert.NotContains(t, out, "<svg", "nothing to plot")
}

func TestMonthlyReportCharts(t *testing.T) {
	charts := report.ChartsFor([]models.IPO{
		{Symbol: "ACME", Exchange: "NYSE", Price: "$20.00", Shares: "2,000", OfferAmount: "$40,000"},
		{Symbol: "BOLT", Exchange: "NASDAQ", Price: "$10.00", Shares: "1,000", OfferAmount: "$10,000"},
	})
	out := render(t, MonthlyReport("April 2025", []byte("<h1>Report</h1>"), charts, nil, ServerPaths))

	assert.Equal(t, 4, strings.Count(out, "<svg"))
	for _, title := range []string{"Offer amount by company", "Share price by company", "Shares offered by company", "Listings by exchange"} {
		assert.Contains(t, out, "<figcaption>"+title+"</figcaption>")
	}
	assert.Contains(t, out, ">$40,000</text>")
	assert.Contains(t, out, "NASDAQ: 1 (50%)")
}

func TestMonthlyIndex(t *testing.T) {
	entries := []MonthEntry{{
		Month:     date.YearMonth{Year: 2025, Month: 4},
		Downloads: []Download{{Label: "PDF", Href: "monthly/monthly_report_2025-04.pdf"}},
	}}
	out := render(t, MonthlyIndex(entries, SitePaths("")))
	assert.Contains(t, out, `href="monthly/monthly_report_2025-04.html">April 2025</a>`)
	assert.Contains(t, out, "monthly/monthly_report_2025-04.pdf")

	out = render(t, MonthlyIndex(nil, SitePaths("")))
	assert.Contains(t, out, "No monthly reports yet.")
}
