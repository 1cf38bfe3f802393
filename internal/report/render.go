package report

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/charmbracelet/glamour"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

//go:embed templates/*.md
var templates embed.FS

var monthlyTemplate = template.Must(
	template.New("monthly.md").
		Funcs(template.FuncMap{"cell": cell}).
		ParseFS(templates, "templates/monthly.md"),
)

var markdown = goldmark.New(goldmark.WithExtensions(extension.Table))

// Markdown renders the report as a markdown document.
func Markdown(m *Monthly) (string, error) {
	var b strings.Builder
	if err := monthlyTemplate.Execute(&b, m); err != nil {
		return "", fmt.Errorf("rendering monthly report %s: %w", m.Month, err)
	}
	return b.String(), nil
}

// HTML renders the report as an HTML fragment.
func HTML(m *Monthly) ([]byte, error) {
	md, err := Markdown(m)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(md), &buf); err != nil {
		return nil, fmt.Errorf("converting monthly report %s: %w", m.Month, err)
	}
	return buf.Bytes(), nil
}

// Terminal renders the report for a terminal of the given width.
func Terminal(m *Monthly, width int) (string, error) {
	md, err := Markdown(m)
	if err != nil {
		return "", err
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	return r.Render(md)
}

// cell makes a value safe inside a markdown table cell.
func cell(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return "-"
	}
	return strings.ReplaceAll(s, "|", `\|`)
}
