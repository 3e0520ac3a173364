package common

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Date marshals as a plain YYYY-MM-DD string, the shape the web client
// renders without further formatting.
type Date time.Time

func NewDate(t time.Time) Date {
	return Date(t.UTC().Truncate(24 * time.Hour))
}

func (d Date) Time() time.Time {
	return time.Time(d)
}

func (d Date) IsZero() bool {
	return time.Time(d).IsZero()
}

func (d Date) String() string {
	return time.Time(d).Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	value := strings.Trim(string(data), `"`)
	if value == "" || value == "null" {
		*d = Date{}
		return nil
	}
	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		// accept full timestamps from older clients
		parsed, err = time.Parse(time.RFC3339, value)
		if err != nil {
			return fmt.Errorf("invalid date %q", value)
		}
	}
	*d = NewDate(parsed)
	return nil
}

func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return time.Time(d), nil
}

func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		*d = NewDate(v)
		return nil
	case string:
		parsed, err := time.Parse(dateLayout, v)
		if err != nil {
			return err
		}
		*d = Date(parsed)
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
}
