package get_payments_summary

import (
	"context"

	"github.com/m04kA/MTC-LessonService/internal/service/payments/models"
)

type PaymentService interface {
	GetMonthSummary(ctx context.Context, userID, teacherID int64, month string) (*models.SummaryResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
