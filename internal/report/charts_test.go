package report

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mauv0809/ipo-watch/internal/models"
)

func TestMonthlyCharts(t *testing.T) {
	m, err := Build(context.Background(), aprilStore(t), april(t))
	require.NoError(t, err)

	c := m.Charts()
	assert.False(t, c.Empty())

	assert.Equal(t, "Offer amount by company", c.Offer.Title)
	assert.Equal(t, []Bar{
		{Label: "ACME", Value: 150000000, Display: "$150,000,000"},
		{Label: "CRUX", Value: 50000000.5, Display: "$50,000,000.50"},
		{Label: "DUNE", Value: 1000, Display: "$1,000"},
	}, c.Offer.Bars, "N/A is left out, largest first")
	assert.Equal(t, 150000000.0, c.Offer.Max())

	assert.Len(t, c.Price.Bars, 4)
	assert.Equal(t, "$10.00", c.Price.Bars[0].Display)
	assert.Len(t, c.Shares.Bars, 4)
	assert.Equal(t, m.Exchanges, c.Exchanges)
}

func TestChartsForCapsBars(t *testing.T) {
	var ipos []models.IPO
	for i := 1; i <= MaxBars+5; i++ {
		ipos = append(ipos, models.IPO{Symbol: fmt.Sprintf("S%02d", i), OfferAmount: fmt.Sprintf("$%d", i)})
	}
	ipos = append(ipos, models.IPO{CompanyName: "Nameless Co", OfferAmount: "$1000"})

	c := ChartsFor(ipos)
	require.Len(t, c.Offer.Bars, MaxBars)
	assert.Equal(t, "Nameless Co", c.Offer.Bars[0].Label)
	assert.Equal(t, "S15", c.Offer.Bars[1].Label)
	assert.Empty(t, c.Price.Bars)
}

func TestChartsForNothingToPlot(t *testing.T) {
	c := ChartsFor(nil)
	assert.True(t, c.Empty())
	assert.Zero(t, c.Offer.Max())
}
