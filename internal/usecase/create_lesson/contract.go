package create_lesson

import (
	"context"
	"time"

	"github.com/m04kA/MTC-LessonService/internal/domain"
)

// LessonRepository интерфейс репозитория занятий
type LessonRepository interface {
	Create(ctx context.Context, lesson *domain.Lesson) (*domain.Lesson, error)
	GetByTeacherWithFilter(ctx context.Context, filter domain.TeacherLessonsFilter) ([]*domain.Lesson, error)
}

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error)
}

// NotificationRepository интерфейс репозитория уведомлений
type NotificationRepository interface {
	Create(ctx context.Context, notification *domain.Notification) (*domain.Notification, error)
}

// SubscriptionRepository интерфейс репозитория подписок
type SubscriptionRepository interface {
	Exists(ctx context.Context, studentID, teacherID int64) (bool, error)
}

// ProfileRepository интерфейс репозитория профилей преподавателей
type ProfileRepository interface {
	GetByTeacherID(ctx context.Context, teacherID int64) (*domain.TeacherProfile, error)
}

// AvailabilityRepository интерфейс репозитория окон доступности
type AvailabilityRepository interface {
	ListByTeacher(ctx context.Context, teacherID int64) ([]*domain.Availability, error)
}

// BlockedSlotRepository интерфейс репозитория блокировок
type BlockedSlotRepository interface {
	ListByTeacherBetween(ctx context.Context, teacherID int64, from, to time.Time) ([]*domain.BlockedSlot, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
