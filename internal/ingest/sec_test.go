package ingest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mauv0809/ipo-watch/internal/config"
	"github.com/mauv0809/ipo-watch/internal/models"
)

const proposedListPage = `<html><body>
<ul class="list-unstyled">
  <li><a href="/rules/2025/s7-01.pdf">Modernizing   Form S-1 Disclosure</a> 3/14/2025</li>
  <li><a href="https://www.sec.gov/rules/s7-02">Climate Risk Disclosure</a> 3/20/2025</li>
  <li><span>no link here</span></li>
</ul>
</body></html>`

const finalTablePage = `<html><body>
<table>
  <thead><tr><th>Title</th><th>Date</th></tr></thead>
  <tbody>
    <tr><td><a href="final/33-1.htm">Initial Public Offering Reforms</a></td><td>1/5/2025</td></tr>
    <tr><td>Custody Rule Amendments</td><td>undated</td></tr>
  </tbody>
</table>
</body></html>`

func TestParseRulePageList(t *testing.T) {
	rules, err := ParseRulePage([]byte(proposedListPage), "https://www.sec.gov/rules/proposed.shtml", models.RuleProposed)
	require.NoError(t, err)
	require.Len(t, rules, 2)

	assert.Equal(t, models.RuleChange{
		Title: "Modernizing Form S-1 Disclosure",
		Date:  "3/14/2025",
		Kind:  models.RuleProposed,
		Link:  "https://www.sec.gov/rules/2025/s7-01.pdf",
	}, rules[0])
	assert.Equal(t, "https://www.sec.gov/rules/s7-02", rules[1].Link)
}

func TestParseRulePageTable(t *testing.T) {
	rules, err := ParseRulePage([]byte(finalTablePage), "https://www.sec.gov/rules/final.shtml", models.RuleFinal)
	require.NoError(t, err)
	require.Len(t, rules, 2)

	assert.Equal(t, "Initial Public Offering Reforms", rules[0].Title)
	assert.Equal(t, "1/5/2025", rules[0].Date)
	assert.Equal(t, "https://www.sec.gov/rules/final/33-1.htm", rules[0].Link)

	assert.Equal(t, "Custody Rule Amendments", rules[1].Title)
	assert.Equal(t, UnknownDate, rules[1].Date)
	assert.Empty(t, rules[1].Link)
}

func TestParseRulePageDropsScriptLinks(t *testing.T) {
	page := `<ul class="list-unstyled">
  <li><a href="javascript:alert(document.cookie)">IPO disclosure rule</a> 2/1/2025</li>
  <li><a href="data:text/html,hi">Offering data rule</a></li>
</ul>`
	rules, err := ParseRulePage([]byte(page), "https://www.sec.gov/rules/proposed.shtml", models.RuleProposed)
	require.NoError(t, err)
	require.Len(t, rules, 2)
	assert.Equal(t, "IPO disclosure rule", rules[0].Title)
	assert.Empty(t, rules[0].Link)
	assert.Empty(t, rules[1].Link)
}

func TestFilterIPORelated(t *testing.T) {
	rules := []models.RuleChange{
		{Title: "Modernizing Form S-1 Disclosure"},
		{Title: "Climate Risk Disclosure"},
		{Title: "Initial Public Offering Reforms"},
		{Title: "SPAC IPO guidance"},
	}
	got := FilterIPORelated(rules)
	require.Len(t, got, 3)
	assert.Equal(t, "Modernizing Form S-1 Disclosure", got[0].Title)
	assert.Equal(t, "Initial Public Offering Reforms", got[1].Title)
	assert.Equal(t, "SPAC IPO guidance", got[2].Title)

	assert.Empty(t, FilterIPORelated(nil))
}

func TestSECFetchRuleChanges(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/proposed", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "ipo-watch-test", r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(proposedListPage))
	})
	mux.HandleFunc("/final", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(finalTablePage))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := NewSECClient(config.SECConfig{
		ProposedURL: srv.URL + "/proposed",
		FinalURL:    srv.URL + "/final",
		UserAgent:   "ipo-watch-test",
	})
	c.f.backoff = time.Millisecond

	rules, err := c.FetchRuleChanges(context.Background())
	require.NoError(t, err)
	require.Len(t, rules, 2)
	assert.Equal(t, models.RuleProposed, rules[0].Kind)
	assert.Equal(t, models.RuleFinal, rules[1].Kind)
	assert.Equal(t, srv.URL+"/final/33-1.htm", rules[1].Link)
}
