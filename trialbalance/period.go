// Package trialbalance implements the trial-balance transformation: it
// turns a wide workbook export (one value column per reporting period)
// into a long fact table with canonical period keys, sign-corrected
// display values and synthetic profit rows that close the balance per
// entity and period.
package trialbalance

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Period describes one recognized period column of the wide table.
type Period struct {
	// Column is the raw header as it appears in the workbook.
	Column string

	// Key is the canonical period key: "YYYY-MM" for calendar months,
	// "YYYY-00" for the opening-balance pseudo period.
	Key string

	// End is the period end-date: January 1st for an opening balance,
	// otherwise the last calendar day of the month.
	End time.Time
}

// openingKeyword is the header prefix of the opening-balance column.
const openingKeyword = "openingsbalans"

// monthNames maps Dutch month-name prefixes to month numbers, in
// calendar order. The set is fixed fiscal-reporting domain knowledge,
// not configuration.
var monthNames = []struct {
	name  string
	month time.Month
}{
	{"januari", time.January},
	{"februari", time.February},
	{"maart", time.March},
	{"april", time.April},
	{"mei", time.May},
	{"juni", time.June},
	{"juli", time.July},
	{"augustus", time.August},
	{"september", time.September},
	{"oktober", time.October},
	{"november", time.November},
	{"december", time.December},
}

// ParsePeriodColumn maps a raw column header to its period metadata.
// Matching is case-insensitive and prefix-based: the lowercase header
// must start with a month name or the opening-balance keyword, and the
// year is read from the header's last four characters. Headers matching
// neither pattern are not period columns and the second return value is
// false.
//
// Known sharp edge: a header whose name merely starts with a month name
// ("meiLeveringen2025") is still treated as a period column. This
// mirrors the upstream Power Query behavior on purpose; adding a
// trailing-boundary check would change which columns get reshaped.
func ParsePeriodColumn(header string) (Period, bool) {
	lower := strings.ToLower(header)

	if strings.HasPrefix(lower, openingKeyword) {
		year, ok := trailingYear(header)
		if !ok {
			return Period{}, false
		}
		return Period{
			Column: header,
			Key:    fmt.Sprintf("%d-00", year),
			End:    time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
		}, true
	}

	for _, m := range monthNames {
		if !strings.HasPrefix(lower, m.name) {
			continue
		}
		year, ok := trailingYear(header)
		if !ok {
			return Period{}, false
		}
		return Period{
			Column: header,
			Key:    fmt.Sprintf("%d-%02d", year, m.month),
			End:    lastDayOfMonth(year, m.month),
		}, true
	}

	return Period{}, false
}

// DetectPeriods returns the period metadata for every recognized header,
// preserving column order.
func DetectPeriods(headers []string) []Period {
	var periods []Period
	for _, h := range headers {
		if p, ok := ParsePeriodColumn(h); ok {
			periods = append(periods, p)
		}
	}
	return periods
}

// trailingYear parses the last four characters of a header as a year.
func trailingYear(header string) (int, bool) {
	if len(header) < 4 {
		return 0, false
	}
	year, err := strconv.Atoi(header[len(header)-4:])
	if err != nil {
		return 0, false
	}
	return year, true
}

// lastDayOfMonth returns the final calendar day of (year, month),
// accounting for month length and leap years. Day zero of the next
// month normalizes to the last day of this one.
func lastDayOfMonth(year int, month time.Month) time.Time {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)
}
