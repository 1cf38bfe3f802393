package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCalendarNullData(t *testing.T) {
	ipos, err := ParseCalendar([]byte(`{"data": null, "status": {"rCode": 200}}`))
	require.NoError(t, err)
	assert.NotNil(t, ipos)
	assert.Empty(t, ipos)
}

func TestParseCalendarIgnoresPricedDeals(t *testing.T) {
	payload := `{
  "data": {
    "upcoming": {"upcomingTable": {"rows": []}},
    "priced": {"rows": [{"dealID": "9", "proposedTickerSymbol": "DONE", "companyName": "Done Inc."}]}
  },
  "status": {"rCode": 200}
}`
	ipos, err := ParseCalendar([]byte(payload))
	require.NoError(t, err)
	assert.Empty(t, ipos)
}

func TestParseCalendarInvalidJSON(t *testing.T) {
	_, err := ParseCalendar([]byte(`<html>blocked</html>`))
	assert.Error(t, err)
}

func TestParseCalendarFillsPendingFields(t *testing.T) {
	ipos, err := ParseCalendar([]byte(calendarJSON))
	require.NoError(t, err)
	require.Len(t, ipos, 1)

	got := ipos[0]
	assert.Equal(t, "Acme Rockets Inc.", got.CompanyName)
	assert.Equal(t, "NASDAQ Global", got.Exchange)
	assert.Equal(t, "5,000,000", got.Shares)
	assert.Equal(t, "4/10/2025", got.ExpectedDate)
	assert.Equal(t, PendingFiling, got.LegalFirm)
	assert.Equal(t, PendingFiling, got.Auditor)
	assert.Equal(t, PendingFiling, got.Underwriter)
}

func TestDisplayPrice(t *testing.T) {
	tests := map[string]string{
		"10.00":       "$10.00",
		"$12.50":      "$12.50",
		"14.00-16.00": "14.00-16.00",
		"":            "",
		" 9 ":         "$9",
	}
	for in, want := range tests {
		assert.Equal(t, want, displayPrice(in), in)
	}
}

func TestOfferAmount(t *testing.T) {
	tests := []struct {
		name string
		row  CalendarRow
		want string
	}{
		{
			name: "published value wins",
			row:  CalendarRow{ProposedSharePrice: "10.00", SharesOffered: "1,000", DollarValueOfSharesOffered: "$99"},
			want: "$99",
		},
		{
			name: "computed from price and shares",
			row:  CalendarRow{ProposedSharePrice: "10.00", SharesOffered: "1,500,000"},
			want: "$15,000,000.00",
		},
		{
			name: "price range cannot be multiplied",
			row:  CalendarRow{ProposedSharePrice: "14.00-16.00", SharesOffered: "1,000"},
			want: "N/A",
		},
		{
			name: "missing shares",
			row:  CalendarRow{ProposedSharePrice: "10.00"},
			want: "N/A",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, offerAmount(tt.row))
		})
	}
}
