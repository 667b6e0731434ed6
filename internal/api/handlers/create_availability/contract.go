package create_availability

import (
	"context"

	"github.com/m04kA/MTC-LessonService/internal/service/schedule/models"
)

type ScheduleService interface {
	CreateAvailability(ctx context.Context, req *models.CreateAvailabilityRequest) (*models.AvailabilityResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
