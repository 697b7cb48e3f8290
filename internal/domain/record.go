package domain

import "strings"

// Status is the normalized stage of one application.
type Status string

const (
	StatusApplied   Status = "applied"
	StatusInterview Status = "interview"
	StatusOffer     Status = "offer"
	StatusRejected  Status = "rejected"
	StatusOther     Status = "other"
)

// StatusOrder lists statuses in process order for reports.
var StatusOrder = []Status{StatusApplied, StatusInterview, StatusOffer, StatusRejected, StatusOther}

// Rank places a status on the natural progression
// applied < interview < offer/rejected. Terminal states share the top
// rank so a merge never flips offer into rejected or back.
func (s Status) Rank() int {
	switch s {
	case StatusApplied:
		return 1
	case StatusInterview:
		return 2
	case StatusOffer, StatusRejected:
		return 3
	default:
		return 0
	}
}

// NormalizeStatus maps the free-form status wording a classifier returns
// onto the enum. Unknown but non-empty wording becomes "other".
func NormalizeStatus(raw string) Status {
	r := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case r == "":
		return ""
	case strings.Contains(r, "declined"), strings.Contains(r, "rejected"), strings.Contains(r, "not selected"):
		return StatusRejected
	case strings.Contains(r, "offer"), strings.Contains(r, "accepted"):
		return StatusOffer
	case strings.Contains(r, "interview"), strings.Contains(r, "assessment"):
		return StatusInterview
	case strings.Contains(r, "applied"), strings.Contains(r, "submitted"), strings.Contains(r, "received"):
		return StatusApplied
	default:
		return StatusOther
	}
}

// ApplicationRecord is one job application distilled from one or more
// emails. Date is "2006-01-02". SourceEmailID refers to the mailbox
// message the record came from and must be in the processed-id set.
type ApplicationRecord struct {
	Company       string `json:"company"`
	Position      string `json:"position"`
	Location      string `json:"location"`
	Status        Status `json:"status"`
	Date          string `json:"date"`
	SourceEmailID string `json:"source_email_id"`
}

// Key is the normalized (company, position) grouping key used by dedupe.
func (r ApplicationRecord) Key() string {
	norm := func(s string) string {
		return strings.Join(strings.Fields(strings.ToLower(s)), " ")
	}
	return norm(r.Company) + "|" + norm(r.Position)
}
