package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

const (
	// TimeStringFormat формат времени "HH:MM" (24h)
	TimeStringFormat = "15:04"

	minutesPerHour = 60
	minutesPerDay  = 24 * 60
)

var (
	// ErrInvalidTimeString возвращается при некорректном формате времени
	ErrInvalidTimeString = errors.New("types: invalid time string format, expected HH:MM")

	// ErrTimeOutOfRange возвращается, когда результат операции выходит за пределы суток
	ErrTimeOutOfRange = errors.New("types: time value out of range [00:00, 24:00)")
)

// TimeString represents a wall-clock time of day as "HH:MM" (24h, no seconds,
// no timezone). The zero value is the empty string.
type TimeString string

// NewTimeString creates a TimeString from the wall-clock part of t.
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(TimeStringFormat))
}

// NewTimeStringFromString parses and validates an "HH:MM" string.
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// NewTimeStringFromMinutes converts minutes since midnight back to "HH:MM".
// Values outside [0, 1440) are rejected, keeping the invariant that a
// TimeString always names a moment within a single day.
func NewTimeStringFromMinutes(minutes int) (TimeString, error) {
	if minutes < 0 || minutes >= minutesPerDay {
		return "", fmt.Errorf("%w: %d minutes", ErrTimeOutOfRange, minutes)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", minutes/minutesPerHour, minutes%minutesPerHour)), nil
}

// Validate reports whether the string is a well-formed "HH:MM" value.
func (t TimeString) Validate() error {
	if _, err := time.Parse(TimeStringFormat, string(t)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return nil
}

// IsZero reports whether the value is unset.
func (t TimeString) IsZero() bool {
	return t == ""
}

// String implements fmt.Stringer.
func (t TimeString) String() string {
	return string(t)
}

// Minutes returns the value as minutes since midnight.
func (t TimeString) Minutes() (int, error) {
	parsed, err := time.Parse(TimeStringFormat, string(t))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return parsed.Hour()*minutesPerHour + parsed.Minute(), nil
}

// AddMinutes returns the time shifted forward by the given number of minutes.
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	m, err := t.Minutes()
	if err != nil {
		return "", err
	}
	return NewTimeStringFromMinutes(m + minutes)
}

// IsBefore reports whether t is strictly earlier than other.
// Malformed values compare as not-before.
func (t TimeString) IsBefore(other TimeString) bool {
	a, errA := t.Minutes()
	b, errB := other.Minutes()
	if errA != nil || errB != nil {
		return false
	}
	return a < b
}

// IsAfter reports whether t is strictly later than other.
func (t TimeString) IsAfter(other TimeString) bool {
	return other.IsBefore(t)
}

// Value implements driver.Valuer so the type can be written as TIME/VARCHAR.
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return string(t), nil
}

// Scan implements sql.Scanner. Accepts "HH:MM", "HH:MM:SS" and time.Time
// values coming back from the driver.
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case string:
		*t = TimeString(truncateSeconds(v))
		return nil
	case []byte:
		*t = TimeString(truncateSeconds(string(v)))
		return nil
	case time.Time:
		*t = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("types: cannot scan %T into TimeString", src)
	}
}

func truncateSeconds(s string) string {
	if len(s) > len("15:04") {
		return s[:len("15:04")]
	}
	return s
}

// RangesOverlap reports whether the half-open intervals [startA, endA) and
// [startB, endB) intersect. Touching endpoints do NOT count as overlap:
// 09:00-10:00 and 10:00-11:00 are disjoint.
func RangesOverlap(startA, endA, startB, endB TimeString) (bool, error) {
	sa, err := startA.Minutes()
	if err != nil {
		return false, err
	}
	ea, err := endA.Minutes()
	if err != nil {
		return false, err
	}
	sb, err := startB.Minutes()
	if err != nil {
		return false, err
	}
	eb, err := endB.Minutes()
	if err != nil {
		return false, err
	}
	return sa < eb && sb < ea, nil
}
