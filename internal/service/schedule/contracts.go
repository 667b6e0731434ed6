package schedule

import (
	"context"
	"time"

	"github.com/m04kA/MTC-LessonService/internal/domain"
)

// AvailabilityRepository интерфейс репозитория окон доступности
type AvailabilityRepository interface {
	Create(ctx context.Context, window *domain.Availability) (*domain.Availability, error)
	Delete(ctx context.Context, id, teacherID int64) error
	ListByTeacher(ctx context.Context, teacherID int64) ([]*domain.Availability, error)
}

// BlockedSlotRepository интерфейс репозитория блокировок
type BlockedSlotRepository interface {
	Create(ctx context.Context, slot *domain.BlockedSlot) (*domain.BlockedSlot, error)
	Delete(ctx context.Context, id, teacherID int64) error
	ListByTeacher(ctx context.Context, teacherID int64) ([]*domain.BlockedSlot, error)
	ListByTeacherBetween(ctx context.Context, teacherID int64, from, to time.Time) ([]*domain.BlockedSlot, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
