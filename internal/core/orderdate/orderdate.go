// Package orderdate contains the pure logic for normalizing the
// heterogeneous date strings shown by the marketplace order list into
// Unix timestamps.
//
// The marketplace renders dates relative to the viewer ("Сегодня в 18:30",
// "Вчера в 09:15"), as day-plus-month within the current year
// ("2 янв в 14:00", "2 янв, 14:00"), or as a full timestamp
// ("2024-01-02 14:00:00"). English-locale accounts see the equivalent
// "Today at" / "Yesterday at" / "2 Jan" forms.
package orderdate

import (
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/example/staletick/internal/models"
)

// Unparseable is the sentinel returned when no known date shape matches.
// Callers exclude such orders from cutoff comparison instead of failing.
const Unparseable int64 = 0

const absoluteLayout = "2006-01-02 15:04:05"

var relativePrefixes = []struct {
	prefix    string
	daysAgo   int
	separator string
}{
	{"Сегодня в ", 0, ""},
	{"Вчера в ", 1, ""},
	{"Today at ", 0, ""},
	{"Yesterday at ", 1, ""},
}

// months maps the localized month abbreviations used in order dates to
// calendar months. Russian entries cover both nominative and genitive
// spellings seen in the wild.
var months = map[string]time.Month{
	"янв": time.January, "фев": time.February, "мар": time.March,
	"апр": time.April, "мая": time.May, "май": time.May,
	"июн": time.June, "июл": time.July, "авг": time.August,
	"сен": time.September, "сент": time.September,
	"окт": time.October, "ноя": time.November, "нояб": time.November,
	"дек": time.December,

	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// Resolve returns the Unix timestamp for an order, preferring an absolute
// PlacedAt over the raw display string.
func Resolve(order models.Order, now time.Time) int64 {
	if !order.PlacedAt.IsZero() {
		return order.PlacedAt.Unix()
	}
	return Normalize(order.RawDate, now)
}

// Normalize parses a marketplace date string into a Unix timestamp
// relative to now. Returns Unparseable (and logs a warning) when no
// known shape matches; it never returns an error.
func Normalize(raw string, now time.Time) int64 {
	dateStr := strings.TrimSpace(raw)
	if dateStr == "" {
		return Unparseable
	}

	for _, rel := range relativePrefixes {
		if !strings.HasPrefix(dateStr, rel.prefix) {
			continue
		}
		hour, minute, ok := parseClock(strings.TrimPrefix(dateStr, rel.prefix))
		if !ok {
			break
		}
		day := now.AddDate(0, 0, -rel.daysAgo)
		return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, now.Location()).Unix()
	}

	// "D Mon в HH:MM" / "D Mon at HH:MM" — current year implied.
	for _, sep := range []string{" в ", " at "} {
		if day, month, clock, ok := splitDayMonth(dateStr, sep); ok {
			if hour, minute, okc := parseClock(clock); okc {
				return time.Date(now.Year(), month, day, hour, minute, 0, 0, now.Location()).Unix()
			}
		}
	}

	// "D Mon, HH:MM" — current year implied.
	if day, month, clock, ok := splitDayMonth(dateStr, ", "); ok {
		if hour, minute, okc := parseClock(clock); okc {
			return time.Date(now.Year(), month, day, hour, minute, 0, 0, now.Location()).Unix()
		}
	}

	if ts, err := time.ParseInLocation(absoluteLayout, dateStr, now.Location()); err == nil {
		return ts.Unix()
	}

	slog.Warn("failed to parse order date", "date", dateStr)
	return Unparseable
}

// splitDayMonth splits "2 янв<sep>14:00" into day, month and the clock
// remainder. ok is false when the shape or month abbreviation is unknown.
func splitDayMonth(dateStr, sep string) (day int, month time.Month, clock string, ok bool) {
	head, clock, found := strings.Cut(dateStr, sep)
	if !found {
		return 0, 0, "", false
	}
	dayStr, monthStr, found := strings.Cut(strings.TrimSpace(head), " ")
	if !found {
		return 0, 0, "", false
	}
	day, err := strconv.Atoi(dayStr)
	if err != nil || day < 1 || day > 31 {
		return 0, 0, "", false
	}
	month, ok = months[strings.ToLower(strings.TrimRight(monthStr, "."))]
	if !ok {
		return 0, 0, "", false
	}
	return day, month, clock, true
}

func parseClock(s string) (hour, minute int, ok bool) {
	hStr, mStr, found := strings.Cut(strings.TrimSpace(s), ":")
	if !found {
		return 0, 0, false
	}
	hour, err := strconv.Atoi(hStr)
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, false
	}
	minute, err = strconv.Atoi(mStr)
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}
