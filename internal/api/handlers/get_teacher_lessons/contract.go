package get_teacher_lessons

import (
	"context"

	"github.com/m04kA/MTC-LessonService/internal/service/lessons/models"
)

type LessonService interface {
	GetTeacherLessons(ctx context.Context, req *models.GetTeacherLessonsRequest) (*models.LessonListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
