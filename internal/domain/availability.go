package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/MTC-LessonService/pkg/types"
)

var (
	// ErrInvalidTimeRange is returned when a window's start is not strictly
	// before its end.
	ErrInvalidTimeRange = errors.New("domain: startTime must be before endTime")

	// ErrInvalidDayOfWeek is returned for a day outside 0 (Sunday) .. 6 (Saturday).
	ErrInvalidDayOfWeek = errors.New("domain: dayOfWeek must be in range 0-6")

	// ErrPartialBlockWithoutTimes is returned when a non-all-day blocked slot
	// is missing its time range.
	ErrPartialBlockWithoutTimes = errors.New("domain: partial blocked slot requires startTime and endTime")
)

// Availability is a recurring weekly window during which a teacher accepts
// lessons. A teacher may have several windows per weekday, contiguous or not,
// even overlapping. Windows are created and deleted individually, never
// updated in place.
type Availability struct {
	ID        int64
	TeacherID int64
	DayOfWeek time.Weekday // 0 = Sunday .. 6 = Saturday
	StartTime types.TimeString
	EndTime   types.TimeString

	CreatedAt time.Time
}

// Validate enforces the window invariants.
func (a *Availability) Validate() error {
	if a.DayOfWeek < time.Sunday || a.DayOfWeek > time.Saturday {
		return fmt.Errorf("%w: got %d", ErrInvalidDayOfWeek, int(a.DayOfWeek))
	}
	if err := a.StartTime.Validate(); err != nil {
		return err
	}
	if err := a.EndTime.Validate(); err != nil {
		return err
	}
	if !a.StartTime.IsBefore(a.EndTime) {
		return fmt.Errorf("%w: %s >= %s", ErrInvalidTimeRange, a.StartTime, a.EndTime)
	}
	return nil
}

// BlockedSlot is a one-off exception removing part or all of a specific
// calendar date from bookability. AllDay blocks the whole date for any
// duration; otherwise StartTime/EndTime describe the blocked sub-range.
type BlockedSlot struct {
	ID        int64
	TeacherID int64
	Date      time.Time
	AllDay    bool
	StartTime *types.TimeString
	EndTime   *types.TimeString
	Reason    *string

	CreatedAt time.Time
}

// Validate enforces the blocked slot invariants.
func (b *BlockedSlot) Validate() error {
	if b.AllDay {
		return nil
	}
	if b.StartTime == nil || b.EndTime == nil {
		return ErrPartialBlockWithoutTimes
	}
	if err := b.StartTime.Validate(); err != nil {
		return err
	}
	if err := b.EndTime.Validate(); err != nil {
		return err
	}
	if !b.StartTime.IsBefore(*b.EndTime) {
		return fmt.Errorf("%w: %s >= %s", ErrInvalidTimeRange, *b.StartTime, *b.EndTime)
	}
	return nil
}

// SameDate reports whether the blocked slot applies to the given calendar
// date (wall-clock comparison, time-of-day ignored).
func (b *BlockedSlot) SameDate(date time.Time) bool {
	return sameDay(b.Date, date)
}

func sameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
