package ingest

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mauv0809/ipo-watch/internal/models"
)

// PendingFiling fills adviser fields until someone reads the S-1.
const PendingFiling = "Pending S-1 review"

// ParseCalendar decodes a calendar payload into IPO records in source order.
// Rows without a ticker are dropped.
func ParseCalendar(body []byte) ([]models.IPO, error) {
	var resp CalendarResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parsing calendar response: %w", err)
	}
	if resp.Data == nil {
		return []models.IPO{}, nil
	}

	rows := resp.Data.Upcoming.UpcomingTable.Rows
	ipos := make([]models.IPO, 0, len(rows))
	for _, row := range rows {
		if ipo, ok := rowToIPO(row); ok {
			ipos = append(ipos, ipo)
		}
	}
	return ipos, nil
}

func rowToIPO(row CalendarRow) (models.IPO, bool) {
	symbol := strings.TrimSpace(row.ProposedTickerSymbol)
	if symbol == "" {
		return models.IPO{}, false
	}
	return models.IPO{
		Symbol:       symbol,
		CompanyName:  strings.TrimSpace(row.CompanyName),
		Exchange:     strings.TrimSpace(row.ProposedExchange),
		Price:        displayPrice(row.ProposedSharePrice),
		Shares:       strings.TrimSpace(row.SharesOffered),
		ExpectedDate: strings.TrimSpace(row.ExpectedPriceDate),
		OfferAmount:  offerAmount(row),
		LegalFirm:    PendingFiling,
		Auditor:      PendingFiling,
		Underwriter:  PendingFiling,
	}, true
}

// displayPrice prefixes a bare numeric price with "$". Ranges and blanks pass through.
func displayPrice(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(s, "$") {
		return s
	}
	if _, ok := models.ParseAmount(s); ok {
		return "$" + s
	}
	return s
}

// offerAmount uses the published dollar value, or price times shares when
// the calendar leaves it blank, or "N/A".
func offerAmount(row CalendarRow) string {
	if v := strings.TrimSpace(row.DollarValueOfSharesOffered); v != "" {
		return v
	}
	price, okPrice := models.ParseAmount(row.ProposedSharePrice)
	shares, okShares := models.ParseAmount(row.SharesOffered)
	if !okPrice || !okShares {
		return "N/A"
	}
	return models.FormatUSD(price.Mul(shares))
}
