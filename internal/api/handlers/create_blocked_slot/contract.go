package create_blocked_slot

import (
	"context"

	"github.com/m04kA/MTC-LessonService/internal/service/schedule/models"
)

type ScheduleService interface {
	CreateBlockedSlot(ctx context.Context, req *models.CreateBlockedSlotRequest) (*models.BlockedSlotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
