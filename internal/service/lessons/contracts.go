package lessons

import (
	"context"

	"github.com/m04kA/MTC-LessonService/internal/domain"
)

// LessonRepository интерфейс репозитория занятий
type LessonRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Lesson, error)
	GetByStudentID(ctx context.Context, studentID int64, status *domain.LessonStatus) ([]*domain.Lesson, error)
	GetByTeacherWithFilter(ctx context.Context, filter domain.TeacherLessonsFilter) ([]*domain.Lesson, error)
	UpdateStatus(ctx context.Context, id int64, status domain.LessonStatus) error
}

// NotificationRepository интерфейс репозитория уведомлений
type NotificationRepository interface {
	Create(ctx context.Context, notification *domain.Notification) (*domain.Notification, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
