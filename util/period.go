// Package util provides time window derivation for report periods and small
// formatting helpers shared by the renderer and the mailer.
package util

import (
	"fmt"
	"strings"
	"time"

	"github.com/securecorp/secreport/model"
)

// WindowForPeriod converts a time_period keyword into an inclusive date range
// relative to now. The window always satisfies start <= end <= now.
func WindowForPeriod(period string, now time.Time) (model.TimeWindow, error) {
	switch strings.ToLower(period) {
	case "last_month":
		// Previous complete calendar month.
		firstOfThis := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		end := firstOfThis.Add(-time.Second)
		start := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, now.Location())
		return model.TimeWindow{Start: start, End: end}, nil

	case "last_quarter":
		// Previous complete quarter.
		quarter := (int(now.Month())-1)/3 + 1
		var start, end time.Time
		if quarter == 1 {
			start = time.Date(now.Year()-1, time.October, 1, 0, 0, 0, 0, now.Location())
			end = time.Date(now.Year()-1, time.December, 31, 23, 59, 59, 0, now.Location())
		} else {
			startMonth := time.Month((quarter-2)*3 + 1)
			start = time.Date(now.Year(), startMonth, 1, 0, 0, 0, 0, now.Location())
			end = time.Date(now.Year(), startMonth+3, 1, 0, 0, 0, 0, now.Location()).Add(-time.Second)
		}
		return model.TimeWindow{Start: start, End: end}, nil

	case "last_6_months":
		return model.TimeWindow{Start: now.AddDate(0, 0, -180), End: now}, nil

	case "ytd", "year_to_date":
		start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		return model.TimeWindow{Start: start, End: now}, nil

	default:
		return model.TimeWindow{}, fmt.Errorf("unsupported time period %q", period)
	}
}

// PeriodLabel turns a period keyword into a human readable label,
// e.g. "last_quarter" -> "Last Quarter".
func PeriodLabel(period string) string {
	words := strings.Split(strings.ToLower(period), "_")
	for i, w := range words {
		if w == "ytd" {
			words[i] = "YTD"
			continue
		}
		if len(w) > 0 {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// TitleFromKey turns a snake_case key into a display title,
// e.g. "monthly_threat" -> "Monthly Threat".
func TitleFromKey(key string) string {
	return PeriodLabel(key)
}
