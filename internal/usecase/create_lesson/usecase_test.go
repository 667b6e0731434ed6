package create_lesson

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/MTC-LessonService/internal/domain"
	profileRepo "github.com/m04kA/MTC-LessonService/internal/infra/storage/teacherprofile"
	"github.com/m04kA/MTC-LessonService/pkg/types"
)

// --- Фейки зависимостей ---

type fakeLessonRepo struct {
	lessons   []*domain.Lesson
	created   *domain.Lesson
	createErr error
	listErr   error
}

func (f *fakeLessonRepo) Create(_ context.Context, lesson *domain.Lesson) (*domain.Lesson, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	out := *lesson
	out.ID = 101
	out.CreatedAt = time.Now()
	f.created = &out
	return &out, nil
}

func (f *fakeLessonRepo) GetByTeacherWithFilter(_ context.Context, _ domain.TeacherLessonsFilter) ([]*domain.Lesson, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.lessons, nil
}

type fakePaymentRepo struct {
	created   *domain.Payment
	createErr error
}

func (f *fakePaymentRepo) Create(_ context.Context, payment *domain.Payment) (*domain.Payment, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	out := *payment
	out.ID = 201
	f.created = &out
	return &out, nil
}

type fakeNotificationRepo struct {
	created   *domain.Notification
	createErr error
}

func (f *fakeNotificationRepo) Create(_ context.Context, n *domain.Notification) (*domain.Notification, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	out := *n
	out.ID = 301
	f.created = &out
	return &out, nil
}

type fakeSubscriptionRepo struct {
	exists bool
	err    error
}

func (f *fakeSubscriptionRepo) Exists(_ context.Context, _, _ int64) (bool, error) {
	return f.exists, f.err
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

type fakeAvailabilityRepo struct {
	windows []*domain.Availability
}

func (f *fakeAvailabilityRepo) ListByTeacher(_ context.Context, _ int64) ([]*domain.Availability, error) {
	return f.windows, nil
}

type fakeBlockedSlotRepo struct {
	blocked []*domain.BlockedSlot
}

func (f *fakeBlockedSlotRepo) ListByTeacherBetween(_ context.Context, _ int64, _, _ time.Time) ([]*domain.BlockedSlot, error) {
	return f.blocked, nil
}

// fakeTxManager выполняет функцию без реальной транзакции
type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
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

// --- Тестовая обвязка ---

type testEnv struct {
	uc            *UseCase
	lessons       *fakeLessonRepo
	payments      *fakePaymentRepo
	notifications *fakeNotificationRepo
	subscriptions *fakeSubscriptionRepo
	profiles      *fakeProfileRepo
	availability  *fakeAvailabilityRepo
	blocked       *fakeBlockedSlotRepo
	tx            *fakeTxManager
}

// 2026-03-02 — понедельник
var (
	testDate = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	testNow  = time.Date(2026, 2, 20, 12, 0, 0, 0, time.UTC)
)

func newTestEnv() *testEnv {
	env := &testEnv{
		lessons:       &fakeLessonRepo{},
		payments:      &fakePaymentRepo{},
		notifications: &fakeNotificationRepo{},
		subscriptions: &fakeSubscriptionRepo{exists: true},
		profiles: &fakeProfileRepo{
			profile: &domain.TeacherProfile{
				TeacherID:       1,
				HourlyRate:      40.0,
				LessonDurations: []int{30, 45, 60},
				AutoAccept:      false,
			},
		},
		availability: &fakeAvailabilityRepo{
			windows: []*domain.Availability{
				{TeacherID: 1, DayOfWeek: time.Monday, StartTime: "09:00", EndTime: "17:00"},
			},
		},
		blocked: &fakeBlockedSlotRepo{},
		tx:      &fakeTxManager{},
	}

	env.uc = NewUseCase(
		env.lessons,
		env.payments,
		env.notifications,
		env.subscriptions,
		env.profiles,
		env.availability,
		env.blocked,
		env.tx,
		noopLogger{},
	)
	env.uc.timeProvider = &fixedTimeProvider{now: testNow}
	return env
}

func validRequest() *Request {
	return &Request{
		StudentID:       2,
		TeacherID:       1,
		Date:            testDate,
		StartTime:       "10:00",
		DurationMinutes: 60,
	}
}

// --- Тесты ---

func TestExecute_Success_Pending(t *testing.T) {
	env := newTestEnv()

	resp, err := env.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(101), resp.ID)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, types.TimeString("10:00"), resp.StartTime)
	assert.Equal(t, types.TimeString("11:00"), resp.EndTime)
	assert.Equal(t, int64(201), resp.PaymentID)
	assert.InDelta(t, 40.0, resp.Amount, 0.001)
	assert.Equal(t, "2026-03", resp.Month)

	// Всё создано внутри одной транзакции
	assert.Equal(t, 1, env.tx.calls)

	require.NotNil(t, env.payments.created)
	assert.Equal(t, domain.PaymentStatusUnpaid, env.payments.created.Status)
	assert.Equal(t, int64(101), env.payments.created.LessonID)

	require.NotNil(t, env.notifications.created)
	assert.Equal(t, int64(1), env.notifications.created.UserID)
	assert.Equal(t, domain.NotificationLessonRequest, env.notifications.created.Type)
	require.NotNil(t, env.notifications.created.LessonID)
	assert.Equal(t, int64(101), *env.notifications.created.LessonID)
}

func TestExecute_AutoAccept(t *testing.T) {
	env := newTestEnv()
	env.profiles.profile.AutoAccept = true

	resp, err := env.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, domain.NotificationLessonConfirmed, env.notifications.created.Type)
}

func TestExecute_AmountFixedAtBooking(t *testing.T) {
	env := newTestEnv()

	req := validRequest()
	req.DurationMinutes = 45

	resp, err := env.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	// 45 минут при ставке 40/час
	assert.InDelta(t, 30.0, resp.Amount, 0.001)
}

func TestExecute_SlotTaken(t *testing.T) {
	env := newTestEnv()
	env.lessons.lessons = []*domain.Lesson{
		{
			TeacherID: 1,
			StudentID: 3,
			Date:      testDate,
			StartTime: "10:00",
			EndTime:   "11:00",
			Status:    domain.LessonStatusConfirmed,
		},
	}

	_, err := env.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Nil(t, env.lessons.created)
	assert.Nil(t, env.payments.created)
}

func TestExecute_SlotOutsideWindows(t *testing.T) {
	env := newTestEnv()

	req := validRequest()
	req.StartTime = "18:00" // окно заканчивается в 17:00

	_, err := env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_AllDayBlock(t *testing.T) {
	env := newTestEnv()
	env.blocked.blocked = []*domain.BlockedSlot{
		{TeacherID: 1, Date: testDate, AllDay: true},
	}

	_, err := env.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_NotSubscribed(t *testing.T) {
	env := newTestEnv()
	env.subscriptions.exists = false

	_, err := env.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrNotSubscribed)
	assert.Equal(t, 0, env.tx.calls)
}

func TestExecute_TeacherNotFound(t *testing.T) {
	env := newTestEnv()
	env.profiles.err = profileRepo.ErrProfileNotFound

	_, err := env.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrTeacherNotFound)
}

func TestExecute_DurationNotAllowed(t *testing.T) {
	env := newTestEnv()

	req := validRequest()
	req.DurationMinutes = 90

	_, err := env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrDurationNotAllowed)
}

func TestExecute_DateInPast(t *testing.T) {
	env := newTestEnv()

	req := validRequest()
	req.Date = testNow.AddDate(0, 0, -1)

	_, err := env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_TodayIsBookable(t *testing.T) {
	env := newTestEnv()
	env.uc.timeProvider = &fixedTimeProvider{now: testDate.Add(8 * time.Hour)}

	resp, err := env.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, "pending", resp.Status)
}

func TestExecute_ValidationErrors(t *testing.T) {
	env := newTestEnv()

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"missing student", func(r *Request) { r.StudentID = 0 }},
		{"missing teacher", func(r *Request) { r.TeacherID = 0 }},
		{"zero date", func(r *Request) { r.Date = time.Time{} }},
		{"empty start time", func(r *Request) { r.StartTime = "" }},
		{"malformed start time", func(r *Request) { r.StartTime = "1000" }},
		{"non-positive duration", func(r *Request) { r.DurationMinutes = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			_, err := env.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_PaymentFailureAbortsBooking(t *testing.T) {
	env := newTestEnv()
	env.payments.createErr = errors.New("db down")

	_, err := env.uc.Execute(context.Background(), validRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInternal)
	// Уведомление не создавалось: транзакция прервана на платеже
	assert.Nil(t, env.notifications.created)
}

func TestExecute_NotificationFailureAbortsBooking(t *testing.T) {
	env := newTestEnv()
	env.notifications.createErr = errors.New("db down")

	_, err := env.uc.Execute(context.Background(), validRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInternal)
}
