package models

import (
	"fmt"
	"sort"
	"time"
)

// Month identifies a calendar month as a (year, month) pair with total
// ordering by calendar sequence. It is used as a map key throughout the
// engine and implements encoding.TextMarshaler so JSON maps keyed by Month
// serialize as "YYYY-MM".
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf returns the calendar month containing t.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// ParseMonth parses a "YYYY-MM" string.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Month{}, NewValidationError("invalid month %q: expected YYYY-MM", s)
	}
	return MonthOf(t), nil
}

// String formats the month as "YYYY-MM".
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Start returns midnight UTC on the first day of the month.
func (m Month) Start() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

// End returns midnight UTC on the last day of the month.
func (m Month) End() time.Time {
	return m.Start().AddDate(0, 1, -1)
}

// AddMonths returns the month n calendar months after m (n may be negative).
func (m Month) AddMonths(n int) Month {
	return MonthOf(m.Start().AddDate(0, n, 0))
}

// Next returns the following calendar month.
func (m Month) Next() Month {
	return m.AddMonths(1)
}

func (m Month) index() int {
	return m.Year*12 + int(m.Month) - 1
}

// Before reports whether m precedes o in calendar order.
func (m Month) Before(o Month) bool {
	return m.index() < o.index()
}

// After reports whether m follows o in calendar order.
func (m Month) After(o Month) bool {
	return m.index() > o.index()
}

// MarshalText implements encoding.TextMarshaler.
func (m Month) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Month) UnmarshalText(text []byte) error {
	parsed, err := ParseMonth(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// MonthsTouched returns every calendar month the closed interval
// [start, end] intersects, including partially covered months. An inverted
// interval yields nil.
func MonthsTouched(start, end time.Time) []Month {
	if end.Before(start) {
		return nil
	}
	last := MonthOf(end)
	var months []Month
	for m := MonthOf(start); !m.After(last); m = m.Next() {
		months = append(months, m)
	}
	return months
}

// MonthlySeries maps calendar months to allocation percentages in [0,100].
type MonthlySeries map[Month]float64

// Months returns the series keys in calendar order.
func (s MonthlySeries) Months() []Month {
	months := make([]Month, 0, len(s))
	for m := range s {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })
	return months
}

// Max returns the largest percentage in the series, or 0 for an empty series.
func (s MonthlySeries) Max() float64 {
	max := 0.0
	for _, v := range s {
		if v > max {
			max = v
		}
	}
	return max
}
