package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// MonthLayout is the wire format of a calendar month filter.
const MonthLayout = "2006-01"

// Date is a calendar day, held as midnight UTC.
type Date struct {
	time.Time
}

// NewDate truncates t to its calendar day in t's location and returns it as UTC midnight.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: data %q deve estar no formato AAAA-MM-DD", ErrInvalidInput, s)
	}
	return Date{t}, nil
}

// Before reports whether d is an earlier day than other.
func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MonthRange returns the first day of the month named by "YYYY-MM" and the
// first day of the following month.
func MonthRange(month string) (Date, Date, error) {
	t, err := time.Parse(MonthLayout, month)
	if err != nil {
		return Date{}, Date{}, fmt.Errorf("%w: mês %q deve estar no formato AAAA-MM", ErrInvalidInput, month)
	}
	start := Date{t}
	return start, Date{t.AddDate(0, 1, 0)}, nil
}
