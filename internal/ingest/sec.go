package ingest

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"slices"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/mauv0809/ipo-watch/internal/config"
	"github.com/mauv0809/ipo-watch/internal/models"
)

// UnknownDate is used when a rule entry carries no M/D/YYYY date.
const UnknownDate = "Unknown date"

var (
	ruleDate = regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{4}`)

	ipoKeywords = []string{
		"ipo",
		"initial public offering",
		"securities offering",
		"registration",
		"form s-1",
	}
)

// SECClient scrapes the SEC proposed and final rule listings.
type SECClient struct {
	proposedURL string
	finalURL    string
	f           *fetcher
}

// NewSECClient creates a rule page scraper. The SEC asks automated clients
// to identify themselves, so the configured user agent is sent as is.
func NewSECClient(cfg config.SECConfig) *SECClient {
	header := http.Header{}
	ua := cfg.UserAgent
	if ua == "" {
		ua = browserUA
	}
	header.Set("User-Agent", ua)
	header.Set("Accept", "text/html,application/xhtml+xml")

	return &SECClient{
		proposedURL: cfg.ProposedURL,
		finalURL:    cfg.FinalURL,
		f:           newFetcher("sec", defaultTimeout, 5, header),
	}
}

// FetchRuleChanges returns the IPO-related proposed rules followed by the
// IPO-related final rules.
func (c *SECClient) FetchRuleChanges(ctx context.Context) ([]models.RuleChange, error) {
	var all []models.RuleChange
	for _, page := range []struct {
		url  string
		kind models.RuleKind
	}{
		{c.proposedURL, models.RuleProposed},
		{c.finalURL, models.RuleFinal},
	} {
		body, err := c.f.get(ctx, page.url)
		if err != nil {
			return nil, fmt.Errorf("fetching %s rules: %w", page.kind, err)
		}
		rules, err := ParseRulePage(body, page.url, page.kind)
		if err != nil {
			return nil, err
		}
		all = append(all, rules...)
	}

	related := FilterIPORelated(all)
	c.f.logger.Info("Fetched SEC rule changes",
		slog.Int("total", len(all)),
		slog.Int("ipo_related", len(related)))
	return related, nil
}

// ParseRulePage extracts rule entries from an SEC listing page. Entries come
// from list items of ul.list-unstyled, or table body rows when the page has
// no such list. Relative links are resolved against pageURL; links that do
// not resolve to http or https are dropped.
func ParseRulePage(body []byte, pageURL string, kind models.RuleKind) ([]models.RuleChange, error) {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing %s rule page: %w", kind, err)
	}
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("invalid page url %q: %w", pageURL, err)
	}

	items := findAll(doc, func(n *html.Node) bool {
		return n.DataAtom == atom.Li && n.Parent != nil &&
			n.Parent.DataAtom == atom.Ul && hasClass(n.Parent, "list-unstyled")
	})
	if len(items) == 0 {
		items = findAll(doc, func(n *html.Node) bool {
			return n.DataAtom == atom.Tr && n.Parent != nil && n.Parent.DataAtom == atom.Tbody
		})
	}

	rules := make([]models.RuleChange, 0, len(items))
	for _, item := range items {
		titleNode := findFirst(item, func(n *html.Node) bool { return n.DataAtom == atom.A })
		if titleNode == nil {
			titleNode = findFirst(item, func(n *html.Node) bool { return n.DataAtom == atom.Td })
		}
		if titleNode == nil {
			continue
		}
		title := textOf(titleNode)
		if title == "" {
			continue
		}

		rule := models.RuleChange{
			Title: title,
			Date:  UnknownDate,
			Kind:  kind,
		}
		if d := ruleDate.FindString(textOf(item)); d != "" {
			rule.Date = d
		}
		if href := attr(titleNode, "href"); href != "" {
			if ref, err := url.Parse(href); err == nil {
				if link := base.ResolveReference(ref); link.Scheme == "http" || link.Scheme == "https" {
					rule.Link = link.String()
				}
			}
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// FilterIPORelated keeps rules whose title mentions an offering keyword.
func FilterIPORelated(rules []models.RuleChange) []models.RuleChange {
	out := make([]models.RuleChange, 0, len(rules))
	for _, r := range rules {
		title := strings.ToLower(r.Title)
		if slices.ContainsFunc(ipoKeywords, func(k string) bool { return strings.Contains(title, k) }) {
			out = append(out, r)
		}
	}
	return out
}

func findAll(n *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && match(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func findFirst(n *html.Node, match func(*html.Node) bool) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && match(c) {
			return c
		}
		if found := findFirst(c, match); found != nil {
			return found
		}
	}
	return nil
}

// textOf returns the node's text with whitespace collapsed.
func textOf(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	return slices.Contains(strings.Fields(attr(n, "class")), class)
}
