package core

import (
	"fmt"
	"strings"
	"time"
)

// Statement rows use the Brazilian day-first layout; persisted state and the
// API use ISO dates.
const (
	dateLayoutISO      = "2006-01-02"
	dateLayoutDayFirst = "02/01/2006"
)

// Date is a calendar date with no time component, pinned to UTC midnight.
type Date struct {
	time.Time
}

// NewDate creates a new Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current calendar date in UTC.
func Today() Date {
	now := time.Now().UTC()
	return NewDate(now.Year(), int(now.Month()), now.Day())
}

// ParseDate parses a date string in day-first statement format (31/12/2024)
// or ISO format (2024-12-31).
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{dateLayoutDayFirst, dateLayoutISO} {
		if t, err := time.Parse(layout, s); err == nil {
			return Date{Time: t.UTC()}, nil
		}
	}
	return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Day returns the day of the month
func (d Date) Day() int {
	return d.Time.Day()
}

// Month returns the month
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Year returns the year
func (d Date) Year() int {
	return d.Time.Year()
}

// Key returns the ISO form used for grouping and duplicate detection.
func (d Date) Key() string {
	return d.Format(dateLayoutISO)
}

// MonthKey returns the year-month form used for monthly grouping.
func (d Date) MonthKey() string {
	return d.Format("2006-01")
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// LastDay returns the last day number of the date's month.
func (d Date) LastDay() int {
	return DaysInMonth(d.Year(), d.Month())
}

// IsLastDayOfMonth reports whether the date falls on the final calendar day
// of its month.
func (d Date) IsLastDayOfMonth() bool {
	return d.Day() == d.LastDay()
}

// AddMonths advances the date by n whole months, calendar-correct: the day of
// month is preserved when it exists in the target month and clamped to the
// target month's last day otherwise (2024-01-31 + 1 month = 2024-02-29).
func (d Date) AddMonths(n int) Date {
	first := time.Date(d.Year(), time.Month(d.Month()), 1, 0, 0, 0, 0, time.UTC).AddDate(0, n, 0)
	day := d.Day()
	if last := DaysInMonth(first.Year(), int(first.Month())); day > last {
		day = last
	}
	return NewDate(first.Year(), int(first.Month()), day)
}

// Equal reports whether two dates name the same calendar day.
func (d Date) Equal(o Date) bool {
	return d.Year() == o.Year() && d.Month() == o.Month() && d.Day() == o.Day()
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Key() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
