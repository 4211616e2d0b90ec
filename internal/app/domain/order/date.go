package order

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

const (
	// DateLayout is the ISO 8601 calendar date format used on the API.
	DateLayout = "2006-01-02"
	// SeedDateLayout is the US-style format used by the seed dataset.
	SeedDateLayout = "01/02/2006"
)

// Date is a calendar date with no time component. Internally it is held as
// midnight UTC; externally it serializes as "YYYY-MM-DD".
type Date struct {
	t time.Time
}

// NewDate builds a Date from year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses an API-format "YYYY-MM-DD" string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return Date{t: t.UTC()}, nil
}

// ParseSeedDate parses a seed-format "MM/DD/YYYY" string.
func ParseSeedDate(s string) (Date, error) {
	t, err := time.Parse(SeedDateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parse seed date %q: %w", s, err)
	}
	return Date{t: t.UTC()}, nil
}

// String returns the date in "YYYY-MM-DD" form.
func (d Date) String() string {
	return d.t.Format(DateLayout)
}

// IsZero reports whether the date is the zero value.
func (d Date) IsZero() bool {
	return d.t.IsZero()
}

// Equal reports whether two dates name the same calendar day.
func (d Date) Equal(other Date) bool {
	return d.t.Equal(other.t)
}

// Before reports whether d falls before other.
func (d Date) Before(other Date) bool {
	return d.t.Before(other.t)
}

// Time returns the underlying midnight-UTC instant.
func (d Date) Time() time.Time {
	return d.t
}

// MarshalJSON encodes the date as a "YYYY-MM-DD" string.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes a "YYYY-MM-DD" string.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value implements driver.Valuer so a Date can be written to a DATE column.
func (d Date) Value() (driver.Value, error) {
	return d.t, nil
}

// Scan implements sql.Scanner for DATE columns.
func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		d.t = time.Date(v.Year(), v.Month(), v.Day(), 0, 0, 0, 0, time.UTC)
		return nil
	case []byte:
		parsed, err := ParseDate(string(v))
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case string:
		parsed, err := ParseDate(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case nil:
		*d = Date{}
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
}
