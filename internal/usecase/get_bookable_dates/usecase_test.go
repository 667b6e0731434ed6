package get_bookable_dates

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/MTC-LessonService/internal/domain"
	profileRepo "github.com/m04kA/MTC-LessonService/internal/infra/storage/teacherprofile"
)

type fakeAvailabilityRepo struct {
	windows []*domain.Availability
}

func (f *fakeAvailabilityRepo) ListByTeacher(_ context.Context, _ int64) ([]*domain.Availability, error) {
	return f.windows, nil
}

type fakeBlockedSlotRepo struct {
	blocked []*domain.BlockedSlot
	from    time.Time
	to      time.Time
}

func (f *fakeBlockedSlotRepo) ListByTeacherBetween(_ context.Context, _ int64, from, to time.Time) ([]*domain.BlockedSlot, error) {
	f.from, f.to = from, to
	return f.blocked, nil
}

type fakeLessonRepo struct {
	lessons []*domain.Lesson
}

func (f *fakeLessonRepo) GetByTeacherWithFilter(_ context.Context, _ domain.TeacherLessonsFilter) ([]*domain.Lesson, error) {
	return f.lessons, nil
}

type fakeProfileRepo struct {
	profile *domain.TeacherProfile
	err     error
}

func (f *fakeProfileRepo) GetByTeacherID(_ context.Context, _ int64) (*domain.TeacherProfile, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.profile, nil
}

type fixedTimeProvider struct {
	now time.Time
}

func (f *fixedTimeProvider) Now() time.Time {
	return f.now
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func newUC(av *fakeAvailabilityRepo, bl *fakeBlockedSlotRepo, ls *fakeLessonRepo, pr *fakeProfileRepo, now time.Time) *UseCase {
	uc := NewUseCase(av, bl, ls, pr, noopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc
}

func defaultProfile() *fakeProfileRepo {
	return &fakeProfileRepo{
		profile: &domain.TeacherProfile{
			TeacherID:       1,
			HourlyRate:      40.0,
			LessonDurations: []int{30, 60},
		},
	}
}

func TestExecute_MondaysOnly(t *testing.T) {
	// Окна только по понедельникам; смотрим март 2026 из февраля
	av := &fakeAvailabilityRepo{
		windows: []*domain.Availability{
			{TeacherID: 1, DayOfWeek: time.Monday, StartTime: "09:00", EndTime: "12:00"},
		},
	}
	now := time.Date(2026, 2, 15, 10, 0, 0, 0, time.UTC)
	uc := newUC(av, &fakeBlockedSlotRepo{}, &fakeLessonRepo{}, defaultProfile(), now)

	resp, err := uc.Execute(context.Background(), &Request{TeacherID: 1, Year: 2026, Month: 3})
	require.NoError(t, err)

	// Понедельники марта 2026: 2, 9, 16, 23, 30
	assert.Equal(t, []string{
		"2026-03-02", "2026-03-09", "2026-03-16", "2026-03-23", "2026-03-30",
	}, resp.Dates)
}

func TestExecute_PastDatesSkipped(t *testing.T) {
	av := &fakeAvailabilityRepo{
		windows: []*domain.Availability{
			{TeacherID: 1, DayOfWeek: time.Monday, StartTime: "09:00", EndTime: "12:00"},
		},
	}
	// Середина месяца: 2 и 9 марта уже прошли, 16-е (сегодня) остаётся
	now := time.Date(2026, 3, 16, 8, 0, 0, 0, time.UTC)
	uc := newUC(av, &fakeBlockedSlotRepo{}, &fakeLessonRepo{}, defaultProfile(), now)

	resp, err := uc.Execute(context.Background(), &Request{TeacherID: 1, Year: 2026, Month: 3})
	require.NoError(t, err)

	assert.Equal(t, []string{"2026-03-16", "2026-03-23", "2026-03-30"}, resp.Dates)
}

func TestExecute_AllDayBlockRemovesDate(t *testing.T) {
	av := &fakeAvailabilityRepo{
		windows: []*domain.Availability{
			{TeacherID: 1, DayOfWeek: time.Monday, StartTime: "09:00", EndTime: "12:00"},
		},
	}
	bl := &fakeBlockedSlotRepo{
		blocked: []*domain.BlockedSlot{
			{TeacherID: 1, Date: time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), AllDay: true},
		},
	}
	now := time.Date(2026, 2, 15, 10, 0, 0, 0, time.UTC)
	uc := newUC(av, bl, &fakeLessonRepo{}, defaultProfile(), now)

	resp, err := uc.Execute(context.Background(), &Request{TeacherID: 1, Year: 2026, Month: 3})
	require.NoError(t, err)

	assert.NotContains(t, resp.Dates, "2026-03-09")
	assert.Contains(t, resp.Dates, "2026-03-02")
}

func TestExecute_FullyBookedDateRemoved(t *testing.T) {
	// Узкое окно в один час; подтверждённое занятие занимает его целиком
	av := &fakeAvailabilityRepo{
		windows: []*domain.Availability{
			{TeacherID: 1, DayOfWeek: time.Monday, StartTime: "09:00", EndTime: "10:00"},
		},
	}
	ls := &fakeLessonRepo{
		lessons: []*domain.Lesson{
			{
				TeacherID: 1,
				Date:      time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
				StartTime: "09:00",
				EndTime:   "10:00",
				Status:    domain.LessonStatusConfirmed,
			},
		},
	}
	now := time.Date(2026, 2, 15, 10, 0, 0, 0, time.UTC)
	uc := newUC(av, &fakeBlockedSlotRepo{}, ls, defaultProfile(), now)

	resp, err := uc.Execute(context.Background(), &Request{TeacherID: 1, Year: 2026, Month: 3})
	require.NoError(t, err)

	assert.NotContains(t, resp.Dates, "2026-03-02")
	assert.Contains(t, resp.Dates, "2026-03-09")
}

func TestExecute_MonthRangeQueried(t *testing.T) {
	bl := &fakeBlockedSlotRepo{}
	now := time.Date(2026, 2, 15, 10, 0, 0, 0, time.UTC)
	uc := newUC(&fakeAvailabilityRepo{}, bl, &fakeLessonRepo{}, defaultProfile(), now)

	_, err := uc.Execute(context.Background(), &Request{TeacherID: 1, Year: 2026, Month: 3})
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), bl.from)
	assert.Equal(t, time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC), bl.to)
}

func TestExecute_TeacherNotFound(t *testing.T) {
	pr := &fakeProfileRepo{err: profileRepo.ErrProfileNotFound}
	now := time.Date(2026, 2, 15, 10, 0, 0, 0, time.UTC)
	uc := newUC(&fakeAvailabilityRepo{}, &fakeBlockedSlotRepo{}, &fakeLessonRepo{}, pr, now)

	_, err := uc.Execute(context.Background(), &Request{TeacherID: 1, Year: 2026, Month: 3})
	assert.ErrorIs(t, err, ErrTeacherNotFound)
}

func TestExecute_Validation(t *testing.T) {
	now := time.Date(2026, 2, 15, 10, 0, 0, 0, time.UTC)
	uc := newUC(&fakeAvailabilityRepo{}, &fakeBlockedSlotRepo{}, &fakeLessonRepo{}, defaultProfile(), now)

	_, err := uc.Execute(context.Background(), &Request{TeacherID: 0, Year: 2026, Month: 3})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{TeacherID: 1, Year: 2026, Month: 13})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{TeacherID: 1, Year: 1999, Month: 3})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
