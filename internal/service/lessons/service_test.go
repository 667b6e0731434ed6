package lessons

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/MTC-LessonService/internal/domain"
	lessonRepo "github.com/m04kA/MTC-LessonService/internal/infra/storage/lesson"
	"github.com/m04kA/MTC-LessonService/internal/service/lessons/models"
)

const (
	teacherID  = int64(1)
	studentID  = int64(2)
	strangerID = int64(99)
)

type fakeLessonRepo struct {
	lesson        *domain.Lesson
	getErr        error
	updateErr     error
	updatedStatus domain.LessonStatus
	updatedID     int64
}

func (f *fakeLessonRepo) GetByID(_ context.Context, _ int64) (*domain.Lesson, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.lesson, nil
}

func (f *fakeLessonRepo) GetByStudentID(_ context.Context, _ int64, _ *domain.LessonStatus) ([]*domain.Lesson, error) {
	return []*domain.Lesson{f.lesson}, nil
}

func (f *fakeLessonRepo) GetByTeacherWithFilter(_ context.Context, _ domain.TeacherLessonsFilter) ([]*domain.Lesson, error) {
	return []*domain.Lesson{f.lesson}, nil
}

func (f *fakeLessonRepo) UpdateStatus(_ context.Context, id int64, status domain.LessonStatus) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updatedID = id
	f.updatedStatus = status
	return nil
}

type fakeNotificationRepo struct {
	created   *domain.Notification
	createErr error
}

func (f *fakeNotificationRepo) Create(_ context.Context, n *domain.Notification) (*domain.Notification, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = n
	return n, nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func testLesson(status domain.LessonStatus) *domain.Lesson {
	return &domain.Lesson{
		ID:              10,
		TeacherID:       teacherID,
		StudentID:       studentID,
		Date:            time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		StartTime:       "10:00",
		EndTime:         "11:00",
		DurationMinutes: 60,
		Status:          status,
	}
}

func newService(status domain.LessonStatus) (*Service, *fakeLessonRepo, *fakeNotificationRepo) {
	lr := &fakeLessonRepo{lesson: testLesson(status)}
	nr := &fakeNotificationRepo{}
	return NewService(lr, nr, noopLogger{}), lr, nr
}

func TestGetByID(t *testing.T) {
	t.Run("participant sees the lesson", func(t *testing.T) {
		svc, _, _ := newService(domain.LessonStatusPending)

		resp, err := svc.GetByID(context.Background(), 10, studentID)
		require.NoError(t, err)
		assert.Equal(t, int64(10), resp.ID)
		assert.Equal(t, "pending", resp.Status)

		_, err = svc.GetByID(context.Background(), 10, teacherID)
		assert.NoError(t, err)
	})

	t.Run("stranger is denied", func(t *testing.T) {
		svc, _, _ := newService(domain.LessonStatusPending)

		_, err := svc.GetByID(context.Background(), 10, strangerID)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("missing lesson", func(t *testing.T) {
		svc, lr, _ := newService(domain.LessonStatusPending)
		lr.getErr = lessonRepo.ErrLessonNotFound

		_, err := svc.GetByID(context.Background(), 10, studentID)
		assert.ErrorIs(t, err, ErrLessonNotFound)
	})
}

func TestCancel(t *testing.T) {
	t.Run("student cancels pending lesson", func(t *testing.T) {
		svc, lr, nr := newService(domain.LessonStatusPending)

		err := svc.Cancel(context.Background(), 10, &models.CancelLessonRequest{UserID: studentID})
		require.NoError(t, err)
		assert.Equal(t, domain.LessonStatusCancelled, lr.updatedStatus)

		// Уведомление уходит второму участнику - преподавателю
		require.NotNil(t, nr.created)
		assert.Equal(t, teacherID, nr.created.UserID)
		assert.Equal(t, domain.NotificationLessonCancelled, nr.created.Type)
	})

	t.Run("teacher cancels confirmed lesson", func(t *testing.T) {
		svc, lr, nr := newService(domain.LessonStatusConfirmed)

		err := svc.Cancel(context.Background(), 10, &models.CancelLessonRequest{UserID: teacherID})
		require.NoError(t, err)
		assert.Equal(t, domain.LessonStatusCancelled, lr.updatedStatus)
		assert.Equal(t, studentID, nr.created.UserID)
	})

	t.Run("completed lesson cannot be cancelled", func(t *testing.T) {
		svc, _, _ := newService(domain.LessonStatusCompleted)

		err := svc.Cancel(context.Background(), 10, &models.CancelLessonRequest{UserID: studentID})
		assert.ErrorIs(t, err, ErrCannotCancel)
	})

	t.Run("cancelled lesson cannot be cancelled twice", func(t *testing.T) {
		svc, _, _ := newService(domain.LessonStatusCancelled)

		err := svc.Cancel(context.Background(), 10, &models.CancelLessonRequest{UserID: studentID})
		assert.ErrorIs(t, err, ErrCannotCancel)
	})

	t.Run("stranger is denied", func(t *testing.T) {
		svc, _, _ := newService(domain.LessonStatusPending)

		err := svc.Cancel(context.Background(), 10, &models.CancelLessonRequest{UserID: strangerID})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("notification failure does not fail cancellation", func(t *testing.T) {
		svc, lr, nr := newService(domain.LessonStatusPending)
		nr.createErr = errors.New("db down")

		err := svc.Cancel(context.Background(), 10, &models.CancelLessonRequest{UserID: studentID})
		require.NoError(t, err)
		assert.Equal(t, domain.LessonStatusCancelled, lr.updatedStatus)
	})
}

func TestUpdateStatus(t *testing.T) {
	t.Run("confirm pending", func(t *testing.T) {
		svc, lr, nr := newService(domain.LessonStatusPending)

		err := svc.UpdateStatus(context.Background(), 10, &models.UpdateStatusRequest{
			UserID: teacherID,
			Status: "confirmed",
		})
		require.NoError(t, err)
		assert.Equal(t, domain.LessonStatusConfirmed, lr.updatedStatus)
		require.NotNil(t, nr.created)
		assert.Equal(t, studentID, nr.created.UserID)
		assert.Equal(t, domain.NotificationLessonConfirmed, nr.created.Type)
	})

	t.Run("reject pending", func(t *testing.T) {
		svc, lr, nr := newService(domain.LessonStatusPending)

		err := svc.UpdateStatus(context.Background(), 10, &models.UpdateStatusRequest{
			UserID: teacherID,
			Status: "rejected",
		})
		require.NoError(t, err)
		assert.Equal(t, domain.LessonStatusRejected, lr.updatedStatus)
		assert.Equal(t, domain.NotificationLessonRejected, nr.created.Type)
	})

	t.Run("complete confirmed without notification", func(t *testing.T) {
		svc, lr, nr := newService(domain.LessonStatusConfirmed)

		err := svc.UpdateStatus(context.Background(), 10, &models.UpdateStatusRequest{
			UserID: teacherID,
			Status: "completed",
		})
		require.NoError(t, err)
		assert.Equal(t, domain.LessonStatusCompleted, lr.updatedStatus)
		assert.Nil(t, nr.created)
	})

	t.Run("invalid transitions", func(t *testing.T) {
		tests := []struct {
			name string
			from domain.LessonStatus
			to   string
		}{
			{"confirm confirmed", domain.LessonStatusConfirmed, "confirmed"},
			{"reject confirmed", domain.LessonStatusConfirmed, "rejected"},
			{"complete pending", domain.LessonStatusPending, "completed"},
			{"confirm cancelled", domain.LessonStatusCancelled, "confirmed"},
			{"complete completed", domain.LessonStatusCompleted, "completed"},
			{"set pending", domain.LessonStatusConfirmed, "pending"},
			{"cancel via status api", domain.LessonStatusPending, "cancelled"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				svc, _, _ := newService(tt.from)

				err := svc.UpdateStatus(context.Background(), 10, &models.UpdateStatusRequest{
					UserID: teacherID,
					Status: tt.to,
				})
				assert.ErrorIs(t, err, ErrInvalidTransition)
			})
		}
	})

	t.Run("unknown status", func(t *testing.T) {
		svc, _, _ := newService(domain.LessonStatusPending)

		err := svc.UpdateStatus(context.Background(), 10, &models.UpdateStatusRequest{
			UserID: teacherID,
			Status: "approved",
		})
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("student cannot decide", func(t *testing.T) {
		svc, _, _ := newService(domain.LessonStatusPending)

		err := svc.UpdateStatus(context.Background(), 10, &models.UpdateStatusRequest{
			UserID: studentID,
			Status: "confirmed",
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}

func TestGetTeacherLessons(t *testing.T) {
	t.Run("only the teacher sees the calendar", func(t *testing.T) {
		svc, _, _ := newService(domain.LessonStatusConfirmed)

		_, err := svc.GetTeacherLessons(context.Background(), &models.GetTeacherLessonsRequest{
			UserID:    studentID,
			TeacherID: teacherID,
		})
		assert.ErrorIs(t, err, ErrAccessDenied)

		resp, err := svc.GetTeacherLessons(context.Background(), &models.GetTeacherLessonsRequest{
			UserID:    teacherID,
			TeacherID: teacherID,
		})
		require.NoError(t, err)
		assert.Len(t, resp.Lessons, 1)
	})
}

func TestGetStudentLessons(t *testing.T) {
	t.Run("invalid status filter", func(t *testing.T) {
		svc, _, _ := newService(domain.LessonStatusPending)

		bad := "approved"
		_, err := svc.GetStudentLessons(context.Background(), &models.GetStudentLessonsRequest{
			StudentID: studentID,
			Status:    &bad,
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("status filter passthrough", func(t *testing.T) {
		svc, _, _ := newService(domain.LessonStatusPending)

		status := "pending"
		resp, err := svc.GetStudentLessons(context.Background(), &models.GetStudentLessonsRequest{
			StudentID: studentID,
			Status:    &status,
		})
		require.NoError(t, err)
		assert.Len(t, resp.Lessons, 1)
	})
}
