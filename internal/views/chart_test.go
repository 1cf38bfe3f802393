package views

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mauv0809/ipo-watch/internal/report"
)

func TestBarShapesScaleToLargest(t *testing.T) {
	c := report.BarChart{Bars: []report.Bar{
		{Label: "BIG", Value: 200, Display: "$200"},
		{Label: "HALF", Value: 100, Display: "$100"},
		{Label: "TINY", Value: 0.001, Display: "$0.001"},
	}}
	shapes := barShapes(c)
	require.Len(t, shapes, 3)

	assert.Equal(t, "390.0", shapes[0].Width)
	assert.Equal(t, "195.0", shapes[1].Width)
	assert.Equal(t, "1.0", shapes[2].Width, "bars never vanish")
	assert.Equal(t, "0.0", shapes[0].Y)
	assert.Equal(t, "26.0", shapes[1].Y)
	assert.Equal(t, "516.0", shapes[0].ValueX)
	assert.Equal(t, "0 0 640 78", barViewBox(c))
}

func TestPieSlices(t *testing.T) {
	slices := pieSlices([]report.ExchangeCount{{Exchange: "NYSE", Count: 3}, {Exchange: "NASDAQ", Count: 1}})
	require.Len(t, slices, 2)

	assert.Equal(t, "NYSE: 3 (75%)", slices[0].Label)
	assert.Equal(t, "M 100.0 100.0 L 100.0 10.0 A 90.0 90.0 0 1 1 10.0 100.0 Z", slices[0].Path)
	assert.True(t, strings.HasSuffix(slices[1].Path, "0 0 1 100.0 10.0 Z"), slices[1].Path)
	assert.NotEqual(t, slices[0].Color, slices[1].Color)
	assert.Equal(t, "10", slices[0].KeyY)
	assert.Equal(t, "40", slices[1].LabelY)
}

func TestPieSingleExchangeIsFullCircle(t *testing.T) {
	slices := pieSlices([]report.ExchangeCount{{Exchange: "NYSE", Count: 2}})
	require.Len(t, slices, 1)
	assert.Equal(t, "M 10.0 100.0 a 90.0 90.0 0 1 0 180.0 0 a 90.0 90.0 0 1 0 -180.0 0 Z", slices[0].Path)
	assert.Equal(t, "NYSE: 2 (100%)", slices[0].Label)
}

func TestPieSlicesEmpty(t *testing.T) {
	assert.Empty(t, pieSlices(nil))
	assert.Empty(t, pieSlices([]report.ExchangeCount{{Exchange: "NYSE", Count: 0}}))
	assert.Equal(t, "0 0 640 200", pieViewBox(nil))
}
