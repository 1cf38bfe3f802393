package models

import "encoding/json"

// IPO is one listing as scraped from the NASDAQ calendar. Values are display
// strings exactly as the source published them; nothing is parsed on ingestion.
// Numbers found in stored buckets decode to their decimal text, and keys
// without a field are kept in Extra.
type IPO struct {
	Symbol       string `json:"symbol"`
	CompanyName  string `json:"company_name"`
	Exchange     string `json:"exchange"`
	Price        string `json:"price"`         // e.g. "$10.00"
	Shares       string `json:"shares"`        // e.g. "15,000,000"
	ExpectedDate string `json:"expected_date"` // M/D/YYYY
	OfferAmount  string `json:"offer_amount"`
	LegalFirm    string `json:"legal_firm"`
	Auditor      string `json:"auditor"`
	Underwriter  string `json:"underwriter"`

	Extra map[string]json.RawMessage `json:"-"`
}

// RuleKind distinguishes proposed from final SEC rules.
type RuleKind string

const (
	RuleProposed RuleKind = "proposed"
	RuleFinal    RuleKind = "final"
)

// RuleChange is an IPO-related SEC rulemaking entry.
type RuleChange struct {
	Title string   `json:"title"`
	Date  string   `json:"date"` // M/D/YYYY as published, or "Unknown date"
	Kind  RuleKind `json:"type"`
	Link  string   `json:"link"`
}
