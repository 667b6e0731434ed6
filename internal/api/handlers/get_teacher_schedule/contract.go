package get_teacher_schedule

import (
	"context"

	"github.com/m04kA/MTC-LessonService/internal/service/schedule/models"
)

type ScheduleService interface {
	GetTeacherSchedule(ctx context.Context, teacherID int64) (*models.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
