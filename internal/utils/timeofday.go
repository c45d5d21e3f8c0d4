package utils

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// TimeOfDay is a time of day stored as minutes since midnight. It marshals
// to and from the zero-padded 24-hour "HH:MM" wire format and is persisted
// as an integer, which keeps interval comparisons plain integer comparisons.
type TimeOfDay int

const MinutesPerDay = 24 * 60

// ParseTimeOfDay parses a "HH:MM" string (24-hour, zero padding optional).
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("invalid time %q: hour out of range", s)
	}

	if len(parts[1]) != 2 {
		return 0, fmt.Errorf("invalid time %q: minutes must be two digits", s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid time %q: minute out of range", s)
	}

	return TimeOfDay(hour*60 + minute), nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// Valid reports whether t lies within a single day.
func (t TimeOfDay) Valid() bool {
	return t >= 0 && t < MinutesPerDay
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Value implements driver.Valuer so the column is stored as an integer.
func (t TimeOfDay) Value() (driver.Value, error) {
	return int64(t), nil
}

// Scan implements sql.Scanner.
func (t *TimeOfDay) Scan(src interface{}) error {
	switch v := src.(type) {
	case int64:
		*t = TimeOfDay(v)
		return nil
	case []byte:
		n, err := strconv.Atoi(string(v))
		if err != nil {
			return fmt.Errorf("cannot scan %q into TimeOfDay", v)
		}
		*t = TimeOfDay(n)
		return nil
	default:
		return fmt.Errorf("cannot scan %T into TimeOfDay", src)
	}
}

// Overlaps reports whether [t, end) intersects [otherStart, otherEnd).
func Overlaps(start, end, otherStart, otherEnd TimeOfDay) bool {
	return start < otherEnd && otherStart < end
}
