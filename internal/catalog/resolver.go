// Package catalog resolves a requested report date against the catalog of
// months and days that actually have data.
package catalog

import (
	"fmt"

	"energy-report/internal/model"
)

// Resolution is the outcome of resolving a target date.
type Resolution struct {
	Month *model.ReportMonth
	// Day is the matched day for day-granularity targets: the exact day
	// when Exact is true, otherwise the fallback day. Nil for
	// month-granularity targets and for months with no days.
	Day   *model.ReportDay
	Exact bool
}

// Date returns the effective navigation date for the resolution.
func (r *Resolution) Date() string {
	if r.Day != nil {
		return r.Day.Date
	}
	return r.Month.Date
}

// ResolutionError marks a target whose year-month has no catalog entry at
// all. No fallback exists in that case.
type ResolutionError struct {
	Target string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("no report available for %q", e.Target)
}

// Resolve locates target (an already syntax-checked "YYYY-MM" or
// "YYYY-MM-DD") in the catalog.
//
// Month targets match their month exactly. Day targets scan the month's
// days in catalog order and stop on an exact date match; when no exact
// match exists the fallback is the day with the highest day number in the
// month, not the day closest to the target. That max-day heuristic is
// long-standing observed behavior and is kept as-is.
func Resolve(months model.ReportMonths, target string) (*Resolution, error) {
	prefix := model.YearMonth(target)

	var month *model.ReportMonth
	for i := range months {
		if months[i].Date == prefix {
			month = &months[i]
			break
		}
	}
	if month == nil {
		return nil, &ResolutionError{Target: target}
	}

	if len(target) == len(prefix) {
		return &Resolution{Month: month, Exact: true}, nil
	}

	var latest *model.ReportDay
	for i := range month.Days {
		day := &month.Days[i]
		if latest == nil || day.Day > latest.Day {
			latest = day
		}
		if day.Date == target {
			return &Resolution{Month: month, Day: day, Exact: true}, nil
		}
	}
	return &Resolution{Month: month, Day: latest, Exact: false}, nil
}
