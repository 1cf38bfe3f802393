package ingest

import "github.com/mauv0809/ipo-watch/internal/models"

// MockIPOs are the listings stored when the calendar cannot be read and the
// mock fallback is enabled.
func MockIPOs() []models.IPO {
	return []models.IPO{
		{
			Symbol:       "IPODU",
			CompanyName:  "Dune Acquisition Corp II",
			Exchange:     "NASDAQ Global",
			Price:        "$10.00",
			Shares:       "15,000,000",
			ExpectedDate: "4/09/2025",
			OfferAmount:  "$150,000,000",
			LegalFirm:    "Skadden, Arps, Slate, Meagher & Flom LLP",
			Auditor:      "Marcum LLP",
			Underwriter:  "Goldman Sachs & Co. LLC",
		},
		{
			Symbol:       "IPOTW",
			CompanyName:  "TechWave Innovations Inc.",
			Exchange:     "NYSE",
			Price:        "$18.50",
			Shares:       "8,500,000",
			ExpectedDate: "4/10/2025",
			OfferAmount:  "$157,250,000",
			LegalFirm:    "Davis Polk & Wardwell LLP",
			Auditor:      "Ernst & Young LLP",
			Underwriter:  "Morgan Stanley & Co. LLC",
		},
		{
			Symbol:       "IPOBH",
			CompanyName:  "BioHealth Therapeutics, Inc.",
			Exchange:     "NASDAQ Capital",
			Price:        "$12.00",
			Shares:       "5,000,000",
			ExpectedDate: "4/11/2025",
			OfferAmount:  "$60,000,000",
			LegalFirm:    "Cooley LLP",
			Auditor:      "PricewaterhouseCoopers LLP",
			Underwriter:  "J.P. Morgan Securities LLC",
		},
	}
}

// MockRuleChanges are shown when the SEC pages yield no IPO-related rules
// and the mock fallback is enabled.
func MockRuleChanges() []models.RuleChange {
	return []models.RuleChange{
		{
			Title: "Modernization of Initial Public Offering (IPO) Disclosure Requirements",
			Date:  "3/15/2025",
			Kind:  models.RuleProposed,
			Link:  "https://www.sec.gov/rules/proposed.htm",
		},
		{
			Title: "Amendments to Form S-1 Registration Statement for Emerging Growth Companies",
			Date:  "2/28/2025",
			Kind:  models.RuleFinal,
			Link:  "https://www.sec.gov/rules/final.htm",
		},
		{
			Title: "Enhanced Disclosure Requirements for Special Purpose Acquisition Companies (SPACs)",
			Date:  "4/01/2025",
			Kind:  models.RuleProposed,
			Link:  "https://www.sec.gov/rules/proposed.htm",
		},
	}
}
