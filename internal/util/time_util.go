package util

import (
	"fmt"
	"strings"
	"time"
)

// dateLayouts are tried in order; the first that parses wins
var dateLayouts = []string{
	time.DateOnly,
	time.RFC3339,
	time.DateTime,
	"2006-01-02T15:04:05",
	"2006/01/02",
	"01/02/2006",
}

func NewDate(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses the calendar formats accepted for order_date
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, l := range dateLayouts {
		t, err := time.Parse(l, s)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("could not parse date %q", s)
}

// IsoWeekday maps Go's Sunday=0 weekday onto Monday=0..Sunday=6
func IsoWeekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
