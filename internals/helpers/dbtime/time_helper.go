// file: internals/helpers/dbtime/time_helper.go
package dbtime

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata" // club timezone must resolve on slim images

	"gorm.io/datatypes"
)

const DateLayout = "2006-01-02"

// Civil date (no zone) for the given instant as seen in loc.
func DateIn(t time.Time, loc *time.Location) datatypes.Date {
	if loc != nil {
		t = t.In(loc)
	}
	y, m, d := t.Date()
	return datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

// ParseDate parses "YYYY-MM-DD" into a civil date.
func ParseDate(s string) (datatypes.Date, error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return datatypes.Date{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return datatypes.Date(t), nil
}

// ParseMonth parses "YYYY-MM" and returns [first day, first day of next month).
func ParseMonth(s string) (from, to datatypes.Date, err error) {
	t, err := time.Parse("2006-01", strings.TrimSpace(s))
	if err != nil {
		return from, to, fmt.Errorf("invalid month %q, expected YYYY-MM", s)
	}
	from, to = MonthBounds(datatypes.Date(t))
	return from, to, nil
}

// MonthBounds returns the first day of d's month and the first day of the next one.
func MonthBounds(d datatypes.Date) (from, to datatypes.Date) {
	t := time.Time(d)
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return datatypes.Date(first), datatypes.Date(first.AddDate(0, 1, 0))
}

// At combines a civil date and a time of day in loc.
func At(d datatypes.Date, tod Tod, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	t := time.Time(d)
	return time.Date(t.Year(), t.Month(), t.Day(), tod.Hour(), tod.Minute(), tod.Second(), 0, loc)
}

func SameDate(a, b datatypes.Date) bool {
	ay, am, ad := time.Time(a).Date()
	by, bm, bd := time.Time(b).Date()
	return ay == by && am == bm && ad == bd
}

func FormatDate(d datatypes.Date) string {
	return time.Time(d).Format(DateLayout)
}
