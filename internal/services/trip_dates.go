package services

import (
	"strconv"
	"strings"
	"time"
)

// TripDateLayout is the display format for every generated date.
const TripDateLayout = "02 Jan 2006"

var tripDateLayouts = []string{
	"2 Jan 2006",
	"2006-01-02",
}

var monthTable = map[string]time.Month{
	"jan": time.January,
	"feb": time.February,
	"mar": time.March,
	"apr": time.April,
	"may": time.May,
	"jun": time.June,
	"jul": time.July,
	"aug": time.August,
	"sep": time.September,
	"oct": time.October,
	"nov": time.November,
	"dec": time.December,
}

// ParseTripDate accepts "15 Jun 2025" style dates. When the layouts fail it
// falls back to three tokens: day, month name (first three letters), year.
func ParseTripDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range tripDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	fields := strings.Fields(s)
	if len(fields) != 3 {
		return time.Time{}, false
	}

	day, err := strconv.Atoi(strings.TrimRight(fields[0], ","))
	if err != nil || day < 1 || day > 31 {
		return time.Time{}, false
	}

	name := strings.ToLower(strings.TrimRight(fields[1], ".,"))
	if len(name) < 3 {
		return time.Time{}, false
	}
	month, ok := monthTable[name[:3]]
	if !ok {
		return time.Time{}, false
	}

	year, err := strconv.Atoi(fields[2])
	if err != nil || year < 1 {
		return time.Time{}, false
	}

	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day {
		// 31 Feb and friends roll over into the next month.
		return time.Time{}, false
	}
	return t, true
}

func FormatTripDate(t time.Time) string {
	return t.Format(TripDateLayout)
}

// ShortDate keeps the first two tokens: "15 Jun 2025" becomes "15 Jun".
func ShortDate(full string) string {
	fields := strings.Fields(full)
	if len(fields) < 2 {
		return full
	}
	return fields[0] + " " + fields[1]
}

// InclusiveDayCount counts calendar days from start to end, both included.
// The result is zero or negative when end precedes start.
func InclusiveDayCount(start, end time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return int(e.Sub(s).Hours()/24) + 1
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
