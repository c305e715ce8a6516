// Package analysis computes the dashboard counters shown next to a
// filtered business list.
package analysis

import (
	"time"

	"fairprice/backend/internal/config"
	"fairprice/backend/internal/models"
)

// Summary is the set of counters for one filter selection.
type Summary struct {
	// Shown is the number of businesses in the selection.
	Shown int `json:"shown"`
	// MissingInfo counts businesses without a self-description.
	MissingInfo int `json:"missing_info"`
	// TodayReports counts reports, over the whole log, stamped with today's date.
	TodayReports int `json:"today_reports"`
}

func Summarize(businesses []models.Business, reports []models.Report, now time.Time) Summary {
	return Summary{
		Shown:        len(businesses),
		MissingInfo:  MissingInfoCount(businesses),
		TodayReports: TodayCount(reports, now),
	}
}

// MissingInfoCount returns how many businesses have an empty self-description.
func MissingInfoCount(businesses []models.Business) int {
	n := 0
	for _, b := range businesses {
		if b.MissingInfo() {
			n++
		}
	}
	return n
}

// TodayCount returns how many reports carry now's calendar date.
func TodayCount(reports []models.Report, now time.Time) int {
	today := now.Format(config.DateLayout)
	n := 0
	for _, r := range reports {
		if r.OnDate(today) {
			n++
		}
	}
	return n
}
