package todo

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// DueAttributes are the attribute names that can carry a due date.
var DueAttributes = []string{"due", "duedate", "when", "expire", "expires"}

// SelectedAttribute marks an item for the Selected section.
const SelectedAttribute = "selected"

// Layouts accepted for due dates without an explicit offset.
// They are interpreted in the local time zone.
var localLayouts = []string{
	"2006-01-02",
	"2006-01-02T15",
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	"20060102",
	"20060102T15",
	"20060102T1504",
	"20060102T150405",
	"2006-002",
	"2006002",
	"2006-01",
	"2006",
}

// Layouts carrying their own offset.
var zonedLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04Z0700",
	"2006-01-02T15Z07:00",
	"20060102T150405Z0700",
	"20060102T1504Z0700",
}

// weekDate matches ISO week dates such as 2026-W40-1 or 2026W401.
var weekDate = regexp.MustCompile(`^(\d{4})-?W(\d{2})(?:-?([1-7]))?$`)

// ParseDate parses an ISO-8601 calendar, ordinal or week date, or a
// date-time.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	if t, ok := parseWeekDate(s, loc); ok {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}

// parseWeekDate resolves an ISO week date to local midnight of that day.
// Week 1 is the week holding January 4th; a missing weekday means Monday.
func parseWeekDate(s string, loc *time.Location) (time.Time, bool) {
	m := weekDate.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}
	year, _ := strconv.Atoi(m[1])
	week, _ := strconv.Atoi(m[2])
	day := 1
	if m[3] != "" {
		day, _ = strconv.Atoi(m[3])
	}

	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, loc)
	monday := jan4.AddDate(0, 0, -((int(jan4.Weekday()) + 6) % 7))
	t := monday.AddDate(0, 0, (week-1)*7+day-1)
	if y, w := t.ISOWeek(); y != year || w != week {
		return time.Time{}, false
	}
	return t, true
}

// IsDue reports whether an open item has a due-date attribute strictly
// before now. Dates that fail to parse are logged and ignored.
func IsDue(item Item, now time.Time, logger *log.Logger) bool {
	if item.Status.Closed() {
		return false
	}
	for _, name := range DueAttributes {
		v, ok := item.Attr(name)
		if !ok || !v.Truthy() {
			continue
		}
		date, err := ParseDate(v.String(), now.Location())
		if err != nil {
			if logger != nil {
				logger.Warn("Error while parsing date", "attribute", name, "value", v.String(), "text", item.Text, "err", err)
			}
			continue
		}
		if date.Before(now) {
			return true
		}
	}
	return false
}

// Selected returns the items whose selected attribute is truthy.
func Selected(items []Item) []Item {
	var out []Item
	for _, item := range items {
		if v, ok := item.Attr(SelectedAttribute); ok && v.Truthy() {
			out = append(out, item)
		}
	}
	return out
}

// Due returns the items that are due at now, in input order.
func Due(items []Item, now time.Time, logger *log.Logger) []Item {
	var out []Item
	for _, item := range items {
		if IsDue(item, now, logger) {
			out = append(out, item)
		}
	}
	return out
}

// Open drops complete and canceled items from the top level.
func Open(items []Item) []Item {
	out := make([]Item, 0, len(items))
	for _, item := range items {
		if !item.Status.Closed() {
			out = append(out, item)
		}
	}
	return out
}
