package domain

// CompanyCount pairs a company with how many applications went to it.
type CompanyCount struct {
	Company string `json:"company"`
	Count   int    `json:"count"`
}

// KeywordCount tallies a position-title keyword.
type KeywordCount struct {
	Keyword string `json:"keyword"`
	Count   int    `json:"count"`
}

// StatsSummary is recomputed from the record store on every stats run.
// It is never persisted; the report and the charts both render from it.
type StatsSummary struct {
	Total     int            `json:"total"`
	ByStatus  map[Status]int `json:"by_status"`
	Companies []CompanyCount `json:"companies"` // sorted by count desc, then name

	// Rates are 0..1; zero denominators yield 0.
	ProgressionRate float64 `json:"progression_rate"` // moved past applied / total
	InterviewRate   float64 `json:"interview_rate"`   // interviews / total
	OfferRate       float64 `json:"offer_rate"`       // offers / total

	EarliestDate string `json:"earliest_date"`
	LatestDate   string `json:"latest_date"`

	PositionKeywords []KeywordCount `json:"position_keywords"`
}
