package domain

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/MTC-LessonService/pkg/types"
)

// ErrInvalidDuration is returned for a non-positive lesson duration.
var ErrInvalidDuration = errors.New("domain: duration must be positive")

// CandidateSlot is a generated fixed-length time range not yet checked
// against blocked periods or existing lessons.
type CandidateSlot struct {
	StartTime types.TimeString
	EndTime   types.TimeString
}

// TimeSlot is a candidate slot with its availability determination.
type TimeSlot struct {
	StartTime types.TimeString
	EndTime   types.TimeString
	Available bool
}

// Key identifies a slot by its time range, regardless of which availability
// window produced it.
func (s TimeSlot) Key() string {
	return string(s.StartTime) + "-" + string(s.EndTime)
}

// GenerateCandidateSlots produces every duration-long slot that fits inside
// [windowStart, windowEnd), starting at windowStart and advancing by the
// fixed SlotStrideMinutes stride. Because the stride is independent of the
// duration, successive slots may overlap. Returns no slots when the duration
// exceeds the window.
func GenerateCandidateSlots(windowStart, windowEnd types.TimeString, durationMinutes int) ([]CandidateSlot, error) {
	if durationMinutes <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDuration, durationMinutes)
	}

	start, err := windowStart.Minutes()
	if err != nil {
		return nil, err
	}
	end, err := windowEnd.Minutes()
	if err != nil {
		return nil, err
	}
	if start >= end {
		return nil, fmt.Errorf("%w: %s >= %s", ErrInvalidTimeRange, windowStart, windowEnd)
	}

	slots := make([]CandidateSlot, 0)
	for cursor := start; cursor+durationMinutes <= end; cursor += SlotStrideMinutes {
		slotStart, err := types.NewTimeStringFromMinutes(cursor)
		if err != nil {
			return nil, err
		}
		slotEnd, err := types.NewTimeStringFromMinutes(cursor + durationMinutes)
		if err != nil {
			return nil, err
		}
		slots = append(slots, CandidateSlot{StartTime: slotStart, EndTime: slotEnd})
	}

	return slots, nil
}

// ResolveSlotsForDate computes the bookable slots of a teacher's date:
// selects the weekly windows matching the date's weekday, generates candidate
// slots from each, marks every candidate against blocked periods and
// occupying lessons, and merges duplicates produced by overlapping windows.
//
// The merge is conservative: once any evaluation pass marks a slot key
// unavailable, no duplicate marked available may overwrite it. The result is
// sorted ascending by start time. A date with no matching windows yields an
// empty slice, not an error.
//
// The duration is NOT validated against the teacher's configured choices;
// that gate belongs to the caller.
func ResolveSlotsForDate(
	date time.Time,
	availability []*Availability,
	blocked []*BlockedSlot,
	lessons []*Lesson,
	durationMinutes int,
) ([]TimeSlot, error) {
	if durationMinutes <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDuration, durationMinutes)
	}

	windows := windowsForDay(date.Weekday(), availability)

	merged := make(map[string]TimeSlot)
	order := make([]string, 0)

	for _, window := range windows {
		candidates, err := GenerateCandidateSlots(window.StartTime, window.EndTime, durationMinutes)
		if err != nil {
			return nil, err
		}

		for _, candidate := range candidates {
			isBlocked, err := slotBlocked(date, candidate, blocked)
			if err != nil {
				return nil, err
			}
			hasConflict, err := slotConflicts(date, candidate, lessons)
			if err != nil {
				return nil, err
			}

			slot := TimeSlot{
				StartTime: candidate.StartTime,
				EndTime:   candidate.EndTime,
				Available: !isBlocked && !hasConflict,
			}

			existing, seen := merged[slot.Key()]
			if !seen {
				merged[slot.Key()] = slot
				order = append(order, slot.Key())
				continue
			}
			// Unavailable wins: a duplicate may only downgrade availability.
			if existing.Available && !slot.Available {
				merged[slot.Key()] = slot
			}
		}
	}

	result := make([]TimeSlot, 0, len(order))
	for _, key := range order {
		result = append(result, merged[key])
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].StartTime.IsBefore(result[j].StartTime)
	})

	return result, nil
}

// HasAvailableSlot is the date feasibility probe driving calendar-picker
// disabling. An all-day block short-circuits to false without generating
// slots. Otherwise the date is feasible iff at least one slot of the
// SHORTEST allowed duration is available: if even the shortest lesson cannot
// fit, no longer one can. A later duration choice may still yield zero
// slots; that is an empty-result state for the caller, not an error.
func HasAvailableSlot(
	date time.Time,
	availability []*Availability,
	blocked []*BlockedSlot,
	lessons []*Lesson,
	allowedDurations []int,
) (bool, error) {
	if len(allowedDurations) == 0 {
		return false, nil
	}

	for _, b := range blocked {
		if b.AllDay && b.SameDate(date) {
			return false, nil
		}
	}

	minDuration := allowedDurations[0]
	for _, d := range allowedDurations[1:] {
		if d < minDuration {
			minDuration = d
		}
	}

	slots, err := ResolveSlotsForDate(date, availability, blocked, lessons, minDuration)
	if err != nil {
		return false, err
	}

	for _, slot := range slots {
		if slot.Available {
			return true, nil
		}
	}
	return false, nil
}

// windowsForDay selects the windows matching the weekday, sorted ascending
// by start time. The sort is stable, so windows sharing a start time keep
// insertion order.
func windowsForDay(day time.Weekday, availability []*Availability) []*Availability {
	windows := make([]*Availability, 0)
	for _, a := range availability {
		if a.DayOfWeek == day {
			windows = append(windows, a)
		}
	}
	sort.SliceStable(windows, func(i, j int) bool {
		return windows[i].StartTime.IsBefore(windows[j].StartTime)
	})
	return windows
}

// slotBlocked reports whether any blocked period of the date removes the
// candidate: an all-day block removes everything, a partial block removes
// candidates it overlaps.
func slotBlocked(date time.Time, candidate CandidateSlot, blocked []*BlockedSlot) (bool, error) {
	for _, b := range blocked {
		if !b.SameDate(date) {
			continue
		}
		if b.AllDay {
			return true, nil
		}
		if b.StartTime == nil || b.EndTime == nil {
			continue
		}
		overlaps, err := types.RangesOverlap(candidate.StartTime, candidate.EndTime, *b.StartTime, *b.EndTime)
		if err != nil {
			return false, err
		}
		if overlaps {
			return true, nil
		}
	}
	return false, nil
}

// slotConflicts reports whether any calendar-occupying lesson of the date
// overlaps the candidate.
func slotConflicts(date time.Time, candidate CandidateSlot, lessons []*Lesson) (bool, error) {
	for _, l := range lessons {
		if !l.OccupiesCalendar() {
			continue
		}
		if !sameDay(l.Date, date) {
			continue
		}
		overlaps, err := types.RangesOverlap(candidate.StartTime, candidate.EndTime, l.StartTime, l.EndTime)
		if err != nil {
			return false, err
		}
		if overlaps {
			return true, nil
		}
	}
	return false, nil
}
