package views

import (
	"fmt"
	"math"
	"strconv"

	"github.com/mauv0809/ipo-watch/internal/report"
)

// Bar chart geometry. charts.templ places bars at x=labelWidth with height
// barHeight.
const (
	chartWidth = 640
	labelWidth = 120
	valueWidth = 130
	barHeight  = 18
	barGap     = 8
)

// Pie geometry. charts.templ draws the legend at x=210.
const (
	pieRadius  = 90
	pieCenter  = 100
	legendRow  = 20
	pieMinSide = 200
)

var palette = []string{
	"#12355b", "#3e7cb1", "#81a4cd", "#f0a202", "#d95d39",
	"#6a994e", "#8e6c8a", "#c9cba3", "#486581", "#e4b363",
}

type barShape struct {
	Label   string
	Display string
	Y       string
	TextY   string
	Width   string
	ValueX  string
}

// barShapes lays out c's bars top to bottom, scaled so the largest spans the
// plot area. Every bar is at least one unit wide.
func barShapes(c report.BarChart) []barShape {
	span := float64(chartWidth - labelWidth - valueWidth)
	top := c.Max()
	out := make([]barShape, 0, len(c.Bars))
	for i, b := range c.Bars {
		w := 1.0
		if top > 0 {
			w = math.Max(1, b.Value/top*span)
		}
		y := float64(i * (barHeight + barGap))
		out = append(out, barShape{
			Label:   b.Label,
			Display: b.Display,
			Y:       num(y),
			TextY:   num(y + barHeight - 4),
			Width:   num(w),
			ValueX:  num(labelWidth + w + 6),
		})
	}
	return out
}

func barViewBox(c report.BarChart) string {
	return fmt.Sprintf("0 0 %d %d", chartWidth, len(c.Bars)*(barHeight+barGap))
}

type sliceShape struct {
	Label  string
	Path   string
	Color  string
	KeyY   string
	LabelY string
}

// pieSlices cuts the pie clockwise from twelve o'clock in the given order.
func pieSlices(exchanges []report.ExchangeCount) []sliceShape {
	total := 0
	for _, e := range exchanges {
		total += e.Count
	}
	if total == 0 {
		return nil
	}

	const c, r = float64(pieCenter), float64(pieRadius)
	angle := -math.Pi / 2
	out := make([]sliceShape, 0, len(exchanges))
	for i, e := range exchanges {
		frac := float64(e.Count) / float64(total)
		var path string
		if e.Count == total {
			path = fmt.Sprintf("M %s %s a %s %s 0 1 0 %s 0 a %s %s 0 1 0 -%s 0 Z",
				num(c-r), num(c), num(r), num(r), num(2*r), num(r), num(r), num(2*r))
		} else {
			end := angle + frac*2*math.Pi
			large := 0
			if frac > 0.5 {
				large = 1
			}
			path = fmt.Sprintf("M %s %s L %s %s A %s %s 0 %d 1 %s %s Z",
				num(c), num(c),
				num(c+r*math.Cos(angle)), num(c+r*math.Sin(angle)),
				num(r), num(r), large,
				num(c+r*math.Cos(end)), num(c+r*math.Sin(end)))
			angle = end
		}
		y := 10 + i*legendRow
		out = append(out, sliceShape{
			Label:  fmt.Sprintf("%s: %d (%.0f%%)", e.Exchange, e.Count, frac*100),
			Path:   path,
			Color:  palette[i%len(palette)],
			KeyY:   strconv.Itoa(y),
			LabelY: strconv.Itoa(y + 10),
		})
	}
	return out
}

func pieViewBox(exchanges []report.ExchangeCount) string {
	h := max(pieMinSide, 20+len(exchanges)*legendRow)
	return fmt.Sprintf("0 0 %d %d", chartWidth, h)
}

func num(f float64) string { return strconv.FormatFloat(f, 'f', 1, 64) }
