package get_user_subscriptions

import (
	"context"

	"github.com/m04kA/MTC-LessonService/internal/service/subscriptions/models"
)

type SubscriptionService interface {
	ListByStudent(ctx context.Context, studentID int64) (*models.SubscriptionListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
