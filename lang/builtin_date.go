package lang

import (
	"regexp"
	"strconv"
	"time"
)

// isoDate matches ISO 8601 calendar, week and ordinal dates of reduced
// precision, optionally followed by a time of day.
var isoDate = regexp.MustCompile(`^(?P<year>\d{4})` +
	`(?:-(?P<month>\d{2})(?:-(?P<day>\d{2}))?` +
	`|(?P<bmonth>\d{2})(?P<bday>\d{2})` +
	`|-?W(?P<week>\d{2})(?:-?(?P<wday>\d))?` +
	`|-?(?P<ordinal>\d{3}))?` +
	`(?:[T ]\d{2}(?::?\d{2}(?::?\d{2}(?:[.,]\d+)?)?)?(?:Z|[+-]\d{2}(?::?\d{2})?)?)?$`)

// year implements $year(date). Text that is not an ISO 8601 date yields
// empty text.
func year(args []Value) (Value, error) {
	y, ok := parseYear(args[0].Text)
	if !ok {
		return Value{Truth: args[0].Truth}, nil
	}

	return Value{Text: strconv.Itoa(y), Truth: args[0].Truth}, nil
}

// parseYear returns the year of an ISO 8601 date after checking that its
// remaining fields are in range.
func parseYear(s string) (int, bool) {
	m := isoDate.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}

	field := func(name string) (int, bool) {
		v := m[isoDate.SubexpIndex(name)]
		if v == "" {
			return 0, false
		}

		n, err := strconv.Atoi(v)

		return n, err == nil
	}

	y, _ := field("year")

	month, hasMonth := field("month")
	day, hasDay := field("day")

	if bm, ok := field("bmonth"); ok {
		month, hasMonth = bm, true
		day, hasDay = field("bday")
	}

	if hasMonth && (month < 1 || month > 12) {
		return 0, false
	}

	if hasDay {
		t := time.Date(y, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		if day < 1 || t.Day() != day {
			return 0, false
		}
	}

	if week, ok := field("week"); ok && (week < 1 || week > 53) {
		return 0, false
	}

	if wday, ok := field("wday"); ok && (wday < 1 || wday > 7) {
		return 0, false
	}

	if ord, ok := field("ordinal"); ok {
		days := time.Date(y, time.December, 31, 0, 0, 0, 0, time.UTC).YearDay()
		if ord < 1 || ord > days {
			return 0, false
		}
	}

	return y, true
}
