package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"energy-report/internal/model"

	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("component", "transform")

// Dates builds the report catalog from a validated dates payload: a map of
// "YYYY-MM" keys to arrays of day values. Months are produced in sorted key
// order so the output is deterministic; "YYYY-MM" keys sort chronologically.
//
// Day values arrive as numbers or zero-padded strings (the backend emits
// strings); both coerce. The validator deliberately leaves these
// uninspected, so a key or day that cannot be coerced is skipped with a
// warning rather than failing the whole catalog.
func Dates(payload any) (model.ReportMonths, error) {
	obj, ok := payload.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("dates payload is not an object")
	}

	keys := make([]string, 0, len(obj))
	for key := range obj {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	months := make(model.ReportMonths, 0, len(keys))
	for _, key := range keys {
		year, monthNum, err := splitYearMonth(key)
		if err != nil {
			log.Warnf("dates: skipping catalog key %q: %v", key, err)
			continue
		}
		name, err := model.MonthName(monthNum)
		if err != nil {
			log.Warnf("dates: skipping catalog key %q: %v", key, err)
			continue
		}

		rawDays, _ := obj[key].([]any)
		days := make([]model.ReportDay, 0, len(rawDays))
		for _, rawDay := range rawDays {
			day, ok := coerceDay(rawDay)
			if !ok {
				log.Warnf("dates: skipping day value %v in %q", rawDay, key)
				continue
			}
			days = append(days, model.ReportDay{
				Date: fmt.Sprintf("%s-%02d", key, day),
				Day:  day,
			})
		}

		months = append(months, model.ReportMonth{
			Date:  key,
			Month: monthNum,
			Year:  year,
			Name:  name,
			Days:  days,
		})
	}
	return months, nil
}

func splitYearMonth(key string) (year, month int, err error) {
	parts := strings.Split(key, "-")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("not a YYYY-MM key")
	}
	year, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("bad year: %w", err)
	}
	month, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("bad month: %w", err)
	}
	return year, month, nil
}

func coerceDay(v any) (int, bool) {
	switch x := v.(type) {
	case float64:
		return int(x), true
	case string:
		day, err := strconv.Atoi(x)
		if err != nil {
			return 0, false
		}
		return day, true
	default:
		return 0, false
	}
}
