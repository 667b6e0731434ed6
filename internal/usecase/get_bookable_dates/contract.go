package get_bookable_dates

import (
	"context"
	"time"

	"github.com/m04kA/MTC-LessonService/internal/domain"
)

// AvailabilityRepository интерфейс репозитория окон доступности
type AvailabilityRepository interface {
	ListByTeacher(ctx context.Context, teacherID int64) ([]*domain.Availability, error)
}

// BlockedSlotRepository интерфейс репозитория блокировок
type BlockedSlotRepository interface {
	ListByTeacherBetween(ctx context.Context, teacherID int64, from, to time.Time) ([]*domain.BlockedSlot, error)
}

// LessonRepository интерфейс репозитория занятий
type LessonRepository interface {
	GetByTeacherWithFilter(ctx context.Context, filter domain.TeacherLessonsFilter) ([]*domain.Lesson, error)
}

// ProfileRepository интерфейс репозитория профилей преподавателей
type ProfileRepository interface {
	GetByTeacherID(ctx context.Context, teacherID int64) (*domain.TeacherProfile, error)
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
