package get_user_lessons

import (
	"context"

	"github.com/m04kA/MTC-LessonService/internal/service/lessons/models"
)

type LessonService interface {
	GetStudentLessons(ctx context.Context, req *models.GetStudentLessonsRequest) (*models.LessonListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
