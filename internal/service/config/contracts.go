package config

import (
	"context"

	"github.com/m04kA/MTC-LessonService/internal/domain"
)

// ProfileRepository интерфейс репозитория профилей преподавателей
type ProfileRepository interface {
	GetByTeacherID(ctx context.Context, teacherID int64) (*domain.TeacherProfile, error)
	Upsert(ctx context.Context, profile *domain.TeacherProfile) (*domain.TeacherProfile, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
