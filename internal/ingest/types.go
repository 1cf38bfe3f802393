package ingest

// CalendarResponse is the raw NASDAQ IPO calendar payload. Only the sections
// the collector reads are modelled: priced deals and the status block are
// ignored. data is null when the API has nothing.
type CalendarResponse struct {
	Data *struct {
		Upcoming struct {
			UpcomingTable struct {
				Rows []CalendarRow `json:"rows"`
			} `json:"upcomingTable"`
		} `json:"upcoming"`
	} `json:"data"`
}

// CalendarRow is one listing in the calendar. All values are display strings.
type CalendarRow struct {
	ProposedTickerSymbol       string `json:"proposedTickerSymbol"`
	CompanyName                string `json:"companyName"`
	ProposedExchange           string `json:"proposedExchange"`
	ProposedSharePrice         string `json:"proposedSharePrice"`
	SharesOffered              string `json:"sharesOffered"`
	ExpectedPriceDate          string `json:"expectedPriceDate"`
	DollarValueOfSharesOffered string `json:"dollarValueOfSharesOffered"`
}
