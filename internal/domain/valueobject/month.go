// Package valueobject contains immutable domain value types.
package valueobject

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// MonthLayout is the wire format of a month key: always the first day of the month.
const MonthLayout = "2006-01-02"

// ErrInvalidMonth is returned when a month key is not a YYYY-MM-01 date.
var ErrInvalidMonth = errors.New("month must be a YYYY-MM-01 date")

// Month is the canonical first-of-month partition key used by instances and transactions.
type Month time.Time

// NewMonth returns the Month for the given year and month in UTC.
func NewMonth(year int, month time.Month) Month {
	return Month(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC))
}

// MonthOf returns the Month containing t.
func MonthOf(t time.Time) Month {
	year, month, _ := t.Date()
	return NewMonth(year, month)
}

// ParseMonth parses a YYYY-MM-01 string. Any other day of month is rejected.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse(MonthLayout, s)
	if err != nil {
		return Month{}, fmt.Errorf("%w: %q", ErrInvalidMonth, s)
	}
	if t.Day() != 1 {
		return Month{}, fmt.Errorf("%w: %q is not the first day of the month", ErrInvalidMonth, s)
	}
	return MonthOf(t), nil
}

// Time returns the first instant of the month in UTC.
func (m Month) Time() time.Time {
	return time.Time(m)
}

// String returns the month formatted as YYYY-MM-01.
func (m Month) String() string {
	return time.Time(m).Format(MonthLayout)
}

// IsZero reports if the month is the zero value.
func (m Month) IsZero() bool {
	return time.Time(m).IsZero()
}

// Contains reports whether t falls inside the month.
func (m Month) Contains(t time.Time) bool {
	return MonthOf(t) == m
}

// Next returns the following month.
func (m Month) Next() Month {
	return Month(time.Time(m).AddDate(0, 1, 0))
}

// MarshalJSON writes the month as a "YYYY-MM-01" string.
func (m Month) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

// Scan reads the month from the database. Drivers return dates either as
// time.Time or as text depending on the column affinity.
func (m *Month) Scan(value interface{}) error {
	switch v := value.(type) {
	case time.Time:
		*m = MonthOf(v.UTC())
		return nil
	case string:
		return m.scanText(v)
	case []byte:
		return m.scanText(string(v))
	case nil:
		*m = Month{}
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Month", value)
	}
}

func (m *Month) scanText(s string) error {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05.999999999-07:00", "2006-01-02 15:04:05", MonthLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			*m = MonthOf(t.UTC())
			return nil
		}
	}
	return fmt.Errorf("cannot parse %q as Month", s)
}

// Value returns the value for the SQL driver to write to the database.
func (m Month) Value() (driver.Value, error) {
	year, month, _ := time.Time(m).Date()
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC), nil
}

// GormDataType defines the data type used by gorm for the type.
func (Month) GormDataType() string {
	return "date"
}
