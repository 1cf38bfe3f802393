package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/mauv0809/ipo-watch/internal/models"
)

const (
	listingsSheet = "Listings"
	summarySheet  = "Summary"
)

var listingsHeader = []any{
	"Symbol", "Company", "Exchange", "Price", "Shares",
	"Expected date", "Offer amount", "Offer amount (USD)",
	"Legal firm", "Auditor", "Underwriter",
}

// WriteXLSX saves the report as a workbook with a listings sheet and a
// summary sheet.
func WriteXLSX(m *Monthly, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", listingsSheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(listingsSheet, "A1", &listingsHeader); err != nil {
		return err
	}
	for i, ipo := range m.IPOs {
		row := []any{
			ipo.Symbol, ipo.CompanyName, ipo.Exchange, ipo.Price, ipo.Shares,
			ipo.ExpectedDate, ipo.OfferAmount, nil,
			ipo.LegalFirm, ipo.Auditor, ipo.Underwriter,
		}
		if amount, ok := models.ParseAmount(ipo.OfferAmount); ok {
			row[7] = amount.InexactFloat64()
		}
		cellName, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(listingsSheet, cellName, &row); err != nil {
			return fmt.Errorf("writing listing row %d: %w", i+1, err)
		}
	}
	if err := f.SetColWidth(listingsSheet, "B", "B", 40); err != nil {
		return err
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return err
	}
	summary := [][]any{
		{"Month", m.Month.String()},
		{"Listings", len(m.IPOs)},
		{"Total offer", m.TotalOfferDisplay()},
		{"Without offer amount", m.Unpriced},
		{},
		{"Exchange", "Listings"},
	}
	for _, ex := range m.Exchanges {
		summary = append(summary, []any{ex.Exchange, ex.Count})
	}
	summary = append(summary, []any{}, []any{"Date", "Listings"})
	for _, d := range m.Days {
		summary = append(summary, []any{d.Date.String(), d.Count})
	}
	for i, row := range summary {
		if len(row) == 0 {
			continue
		}
		cellName, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(summarySheet, cellName, &row); err != nil {
			return fmt.Errorf("writing summary row %d: %w", i+1, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook %s: %w", path, err)
	}
	return nil
}
