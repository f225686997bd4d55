package model

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// DateOf returns the calendar day of t, in t's location, as a date stored at
// midnight UTC.
func DateOf(t time.Time) datatypes.Date {
	y, m, d := t.Date()
	return datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(raw string) (datatypes.Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(raw))
	if err != nil {
		return datatypes.Date{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", raw)
	}
	return DateOf(t), nil
}

// FormatDate renders d as YYYY-MM-DD.
func FormatDate(d datatypes.Date) string {
	return time.Time(d).Format(DateLayout)
}

// SameDate reports whether a and b are the same calendar day.
func SameDate(a, b datatypes.Date) bool {
	return FormatDate(a) == FormatDate(b)
}

// AddDays shifts d by n calendar days.
func AddDays(d datatypes.Date, n int) datatypes.Date {
	return DateOf(time.Time(d).AddDate(0, 0, n))
}
