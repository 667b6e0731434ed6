package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/MTC-LessonService/pkg/types"
)

// 2026-03-02 — понедельник
var monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func ts(s string) types.TimeString {
	return types.TimeString(s)
}

func tsPtr(s string) *types.TimeString {
	v := types.TimeString(s)
	return &v
}

func mondayWindow(start, end string) *Availability {
	return &Availability{
		TeacherID: 1,
		DayOfWeek: time.Monday,
		StartTime: ts(start),
		EndTime:   ts(end),
	}
}

func lessonAt(start, end string, status LessonStatus) *Lesson {
	return &Lesson{
		TeacherID: 1,
		StudentID: 2,
		Date:      monday,
		StartTime: ts(start),
		EndTime:   ts(end),
		Status:    status,
	}
}

func TestGenerateCandidateSlots(t *testing.T) {
	t.Run("60 minute lessons on 30 minute stride", func(t *testing.T) {
		slots, err := GenerateCandidateSlots(ts("09:00"), ts("17:00"), 60)
		require.NoError(t, err)

		// Старты каждые 30 минут: 09:00 .. 16:00 включительно
		require.Len(t, slots, 15)
		assert.Equal(t, ts("09:00"), slots[0].StartTime)
		assert.Equal(t, ts("10:00"), slots[0].EndTime)
		assert.Equal(t, ts("09:30"), slots[1].StartTime)
		assert.Equal(t, ts("16:00"), slots[14].StartTime)
		assert.Equal(t, ts("17:00"), slots[14].EndTime)
	})

	t.Run("last slot ends exactly at window end", func(t *testing.T) {
		slots, err := GenerateCandidateSlots(ts("09:00"), ts("12:00"), 90)
		require.NoError(t, err)

		// 09:00-10:30, 09:30-11:00, 10:00-11:30, 10:30-12:00
		require.Len(t, slots, 4)
		assert.Equal(t, ts("10:30"), slots[3].StartTime)
		assert.Equal(t, ts("12:00"), slots[3].EndTime)
	})

	t.Run("duration longer than window yields no slots", func(t *testing.T) {
		slots, err := GenerateCandidateSlots(ts("09:00"), ts("10:00"), 90)
		require.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("invalid duration", func(t *testing.T) {
		_, err := GenerateCandidateSlots(ts("09:00"), ts("10:00"), 0)
		assert.ErrorIs(t, err, ErrInvalidDuration)
	})

	t.Run("inverted window", func(t *testing.T) {
		_, err := GenerateCandidateSlots(ts("12:00"), ts("09:00"), 30)
		assert.ErrorIs(t, err, ErrInvalidTimeRange)
	})
}

func TestResolveSlotsForDate(t *testing.T) {
	t.Run("single window end to end", func(t *testing.T) {
		availability := []*Availability{mondayWindow("09:00", "12:00")}

		slots, err := ResolveSlotsForDate(monday, availability, nil, nil, 60)
		require.NoError(t, err)

		// 09:00, 09:30, 10:00, 10:30, 11:00
		require.Len(t, slots, 5)
		for _, s := range slots {
			assert.True(t, s.Available, "slot %s must be available", s.StartTime)
		}
	})

	t.Run("no window for the weekday yields empty result", func(t *testing.T) {
		availability := []*Availability{
			{TeacherID: 1, DayOfWeek: time.Tuesday, StartTime: ts("09:00"), EndTime: ts("12:00")},
		}

		slots, err := ResolveSlotsForDate(monday, availability, nil, nil, 60)
		require.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("confirmed lesson blocks overlapping candidates", func(t *testing.T) {
		availability := []*Availability{mondayWindow("09:00", "12:00")}
		lessons := []*Lesson{lessonAt("10:00", "11:00", LessonStatusConfirmed)}

		slots, err := ResolveSlotsForDate(monday, availability, nil, lessons, 60)
		require.NoError(t, err)

		byStart := make(map[types.TimeString]bool)
		for _, s := range slots {
			byStart[s.StartTime] = s.Available
		}

		assert.True(t, byStart[ts("09:00")])
		assert.False(t, byStart[ts("09:30")]) // 09:30-10:30 пересекается с занятием
		assert.False(t, byStart[ts("10:00")])
		assert.False(t, byStart[ts("10:30")])
		assert.True(t, byStart[ts("11:00")]) // стык 11:00 конфликтом не считается
	})

	t.Run("cancelled and rejected lessons do not block", func(t *testing.T) {
		availability := []*Availability{mondayWindow("09:00", "11:00")}
		lessons := []*Lesson{
			lessonAt("09:00", "10:00", LessonStatusCancelled),
			lessonAt("10:00", "11:00", LessonStatusRejected),
		}

		slots, err := ResolveSlotsForDate(monday, availability, nil, lessons, 60)
		require.NoError(t, err)

		for _, s := range slots {
			assert.True(t, s.Available, "slot %s must be available", s.StartTime)
		}
	})

	t.Run("partial block removes overlapping candidates", func(t *testing.T) {
		availability := []*Availability{mondayWindow("09:00", "12:00")}
		blocked := []*BlockedSlot{
			{TeacherID: 1, Date: monday, StartTime: tsPtr("10:00"), EndTime: tsPtr("11:00")},
		}

		slots, err := ResolveSlotsForDate(monday, availability, blocked, nil, 60)
		require.NoError(t, err)

		byStart := make(map[types.TimeString]bool)
		for _, s := range slots {
			byStart[s.StartTime] = s.Available
		}

		assert.True(t, byStart[ts("09:00")])
		assert.False(t, byStart[ts("10:00")])
		assert.True(t, byStart[ts("11:00")])
	})

	t.Run("block on another date is ignored", func(t *testing.T) {
		availability := []*Availability{mondayWindow("09:00", "11:00")}
		blocked := []*BlockedSlot{
			{TeacherID: 1, Date: monday.AddDate(0, 0, 7), AllDay: true},
		}

		slots, err := ResolveSlotsForDate(monday, availability, blocked, nil, 60)
		require.NoError(t, err)
		for _, s := range slots {
			assert.True(t, s.Available)
		}
	})

	t.Run("overlapping windows merge conservatively", func(t *testing.T) {
		// Два пересекающихся окна порождают дубли слотов. Слот 10:00-11:00
		// занят — дубль из второго окна не должен вернуть ему доступность.
		availability := []*Availability{
			mondayWindow("09:00", "12:00"),
			mondayWindow("10:00", "13:00"),
		}
		lessons := []*Lesson{lessonAt("10:00", "11:00", LessonStatusPending)}

		slots, err := ResolveSlotsForDate(monday, availability, nil, lessons, 60)
		require.NoError(t, err)

		seen := make(map[string]int)
		for _, s := range slots {
			seen[s.Key()]++
			if s.StartTime == ts("10:00") {
				assert.False(t, s.Available)
			}
		}
		for key, count := range seen {
			assert.Equal(t, 1, count, "slot %s duplicated", key)
		}
	})

	t.Run("result sorted by start time", func(t *testing.T) {
		availability := []*Availability{
			mondayWindow("14:00", "16:00"),
			mondayWindow("09:00", "11:00"),
		}

		slots, err := ResolveSlotsForDate(monday, availability, nil, nil, 60)
		require.NoError(t, err)
		require.NotEmpty(t, slots)

		for i := 1; i < len(slots); i++ {
			assert.False(t, slots[i].StartTime.IsBefore(slots[i-1].StartTime))
		}
	})
}

func TestHasAvailableSlot(t *testing.T) {
	availability := []*Availability{mondayWindow("09:00", "10:00")}

	t.Run("open date is feasible", func(t *testing.T) {
		ok, err := HasAvailableSlot(monday, availability, nil, nil, []int{60, 30})
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("probe uses the shortest duration", func(t *testing.T) {
		// Окно 60 минут: часовой слот единственный и занят, но 30-минутный
		// хвост 09:00-09:30 недоступен, а вот при занятии 09:00-09:30
		// свободен слот 09:30-10:00 — ровно под минимальную длительность.
		lessons := []*Lesson{lessonAt("09:00", "09:30", LessonStatusConfirmed)}

		ok, err := HasAvailableSlot(monday, availability, nil, lessons, []int{60, 30})
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("fully booked date is infeasible", func(t *testing.T) {
		lessons := []*Lesson{lessonAt("09:00", "10:00", LessonStatusConfirmed)}

		ok, err := HasAvailableSlot(monday, availability, nil, lessons, []int{60, 30})
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("all day block short circuits", func(t *testing.T) {
		blocked := []*BlockedSlot{{TeacherID: 1, Date: monday, AllDay: true}}

		ok, err := HasAvailableSlot(monday, availability, blocked, nil, []int{30})
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("no allowed durations", func(t *testing.T) {
		ok, err := HasAvailableSlot(monday, availability, nil, nil, nil)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestLessonStateMachine(t *testing.T) {
	l := &Lesson{Status: LessonStatusPending}
	assert.True(t, l.CanBeDecided())
	assert.True(t, l.CanBeCancelled())
	assert.False(t, l.CanBeCompleted())
	assert.True(t, l.OccupiesCalendar())

	l.Status = LessonStatusConfirmed
	assert.False(t, l.CanBeDecided())
	assert.True(t, l.CanBeCancelled())
	assert.True(t, l.CanBeCompleted())
	assert.True(t, l.OccupiesCalendar())

	for _, terminal := range []LessonStatus{LessonStatusCancelled, LessonStatusCompleted, LessonStatusRejected} {
		l.Status = terminal
		assert.True(t, l.IsTerminal())
		assert.False(t, l.CanBeDecided())
		assert.False(t, l.CanBeCancelled())
		assert.False(t, l.CanBeCompleted())
	}

	l.Status = LessonStatusCompleted
	assert.True(t, l.OccupiesCalendar())
	l.Status = LessonStatusCancelled
	assert.False(t, l.OccupiesCalendar())
	l.Status = LessonStatusRejected
	assert.False(t, l.OccupiesCalendar())
}
