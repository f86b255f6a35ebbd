package services

import (
	"strconv"
	"strings"
	"time"
)

// GeorgianMonths maps the first three letters of a Georgian month name to
// its number.
var GeorgianMonths = map[string]time.Month{
	"იან": time.January,
	"თებ": time.February,
	"მარ": time.March,
	"აპრ": time.April,
	"მაი": time.May,
	"ივნ": time.June,
	"ივლ": time.July,
	"აგვ": time.August,
	"სექ": time.September,
	"ოქტ": time.October,
	"ნოე": time.November,
	"დეკ": time.December,
}

// ParseUploadDate parses "<day> <month> <HH:MM>", e.g. "15 მარ 14:30".
//
// The source carries no year, so the current year is assumed. Listings
// uploaded in December and cleaned in January land a year in the future;
// that is a known limitation of the data, not something this rule corrects.
func (c *Cleaner) ParseUploadDate(v any) (time.Time, bool) {
	switch x := v.(type) {
	case time.Time:
		return x, true
	case string:
		return parseUploadDate(x, c.now())
	}
	return time.Time{}, false
}

func parseUploadDate(s string, now time.Time) (time.Time, bool) {
	parts := strings.Fields(s)
	if len(parts) != 3 {
		return time.Time{}, false
	}
	dayStr, monthStr, clock := parts[0], parts[1], parts[2]

	month, ok := GeorgianMonths[prefix(monthStr, 0, 3)]
	if !ok {
		return time.Time{}, false
	}

	day, err := strconv.Atoi(dayStr)
	if err != nil {
		return time.Time{}, false
	}
	hour, err := strconv.Atoi(prefix(clock, 0, 2))
	if err != nil {
		return time.Time{}, false
	}
	minute, err := strconv.Atoi(prefix(clock, 3, 5))
	if err != nil {
		return time.Time{}, false
	}

	year := now.Year()
	if day < 1 || day > daysIn(year, month) || hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return time.Time{}, false
	}
	return time.Date(year, month, day, hour, minute, 0, 0, now.Location()), true
}

// prefix returns runes [from, to) of s, clamped to its length.
func prefix(s string, from, to int) string {
	r := []rune(s)
	if from > len(r) {
		from = len(r)
	}
	if to > len(r) {
		to = len(r)
	}
	return string(r[from:to])
}

func daysIn(year int, m time.Month) int {
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
