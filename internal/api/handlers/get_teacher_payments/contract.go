package get_teacher_payments

import (
	"context"

	"github.com/m04kA/MTC-LessonService/internal/service/payments/models"
)

type PaymentService interface {
	ListTeacherPayments(ctx context.Context, req *models.ListPaymentsRequest) (*models.PaymentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
