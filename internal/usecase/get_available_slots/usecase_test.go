package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/MTC-LessonService/internal/domain"
	"github.com/m04kA/MTC-LessonService/pkg/types"
)

type fakeAvailabilityRepo struct {
	windows []*domain.Availability
	err     error
}

func (f *fakeAvailabilityRepo) ListByTeacher(_ context.Context, _ int64) ([]*domain.Availability, error) {
	return f.windows, f.err
}

type fakeBlockedSlotRepo struct {
	blocked []*domain.BlockedSlot
	err     error
}

func (f *fakeBlockedSlotRepo) ListByTeacherBetween(_ context.Context, _ int64, _, _ time.Time) ([]*domain.BlockedSlot, error) {
	return f.blocked, f.err
}

type fakeLessonRepo struct {
	lessons []*domain.Lesson
	filter  domain.TeacherLessonsFilter
	err     error
}

func (f *fakeLessonRepo) GetByTeacherWithFilter(_ context.Context, filter domain.TeacherLessonsFilter) ([]*domain.Lesson, error) {
	f.filter = filter
	return f.lessons, f.err
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

// 2026-03-02 — понедельник
var monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func TestExecute_ResolvesSlots(t *testing.T) {
	availability := &fakeAvailabilityRepo{
		windows: []*domain.Availability{
			{TeacherID: 1, DayOfWeek: time.Monday, StartTime: "09:00", EndTime: "12:00"},
		},
	}
	lessons := &fakeLessonRepo{
		lessons: []*domain.Lesson{
			{
				TeacherID: 1,
				Date:      monday,
				StartTime: "10:00",
				EndTime:   "11:00",
				Status:    domain.LessonStatusConfirmed,
			},
		},
	}
	uc := NewUseCase(availability, &fakeBlockedSlotRepo{}, lessons, noopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		TeacherID:       1,
		Date:            monday,
		DurationMinutes: 60,
	})
	require.NoError(t, err)

	// 09:00, 09:30, 10:00, 10:30, 11:00
	require.Len(t, resp.Slots, 5)

	byStart := make(map[types.TimeString]bool)
	for _, s := range resp.Slots {
		byStart[s.StartTime] = s.Available
	}
	assert.True(t, byStart["09:00"])
	assert.False(t, byStart["09:30"])
	assert.False(t, byStart["10:00"])
	assert.False(t, byStart["10:30"])
	assert.True(t, byStart["11:00"])

	// Отменённые занятия не запрашиваются
	assert.False(t, lessons.filter.IncludeInactive)
}

func TestExecute_NoWindowsYieldsEmptySlots(t *testing.T) {
	uc := NewUseCase(&fakeAvailabilityRepo{}, &fakeBlockedSlotRepo{}, &fakeLessonRepo{}, noopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		TeacherID:       1,
		Date:            monday,
		DurationMinutes: 60,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_Validation(t *testing.T) {
	uc := NewUseCase(&fakeAvailabilityRepo{}, &fakeBlockedSlotRepo{}, &fakeLessonRepo{}, noopLogger{})

	_, err := uc.Execute(context.Background(), &Request{TeacherID: 0, Date: monday, DurationMinutes: 60})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{TeacherID: 1, DurationMinutes: 60})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{TeacherID: 1, Date: monday, DurationMinutes: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{TeacherID: 1, Date: monday, DurationMinutes: 300})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_RepositoryFailure(t *testing.T) {
	uc := NewUseCase(
		&fakeAvailabilityRepo{err: errors.New("db down")},
		&fakeBlockedSlotRepo{},
		&fakeLessonRepo{},
		noopLogger{},
	)

	_, err := uc.Execute(context.Background(), &Request{TeacherID: 1, Date: monday, DurationMinutes: 60})
	assert.ErrorIs(t, err, ErrInternal)
}
