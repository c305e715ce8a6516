package models

import (
	"time"

	"fairprice/backend/internal/config"
)

// Report is a single citizen submission attached to a business by name.
// The reference is not validated against the catalog.
type Report struct {
	BusinessName string    `json:"business_name"`
	Nickname     string    `json:"nickname"`
	Kind         string    `json:"kind"`
	Body         string    `json:"body"`
	CreatedAt    time.Time `json:"created_at"`
	// Timestamp is the stored "YYYY-MM-DD HH:MM" text. Rows written by other
	// tools may carry text that does not parse; it is kept as-is.
	Timestamp string `json:"timestamp"`
}

// NewReport builds a report stamped with now, truncated to the minute.
func NewReport(businessName, nickname, kind, body string, now time.Time) Report {
	now = now.Truncate(time.Minute)
	return Report{
		BusinessName: businessName,
		Nickname:     nickname,
		Kind:         kind,
		Body:         body,
		CreatedAt:    now,
		Timestamp:    now.Format(config.TimestampLayout),
	}
}

// Record returns the report as a log row in ReportColumns order.
func (r Report) Record() []string {
	return []string{r.BusinessName, r.Nickname, r.Kind, r.Body, r.Timestamp}
}

// OnDate reports whether the report timestamp falls on the given date ("YYYY-MM-DD").
func (r Report) OnDate(date string) bool {
	return len(r.Timestamp) >= len(date) && r.Timestamp[:len(date)] == date
}
