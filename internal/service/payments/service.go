package payments

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/m04kA/MTC-LessonService/internal/domain"
	paymentRepo "github.com/m04kA/MTC-LessonService/internal/infra/storage/payment"
	"github.com/m04kA/MTC-LessonService/internal/service/payments/models"
)

// monthPattern формат биллингового месяца YYYY-MM
var monthPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// Service сервис для работы с платёжными записями преподавателя
type Service struct {
	paymentRepo  PaymentRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса платежей
func NewService(paymentRepo PaymentRepository, logger Logger) *Service {
	return &Service{
		paymentRepo:  paymentRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// ListTeacherPayments получает платежи преподавателя с фильтрацией
// по месяцу и статусу. Доступно только самому преподавателю.
func (s *Service) ListTeacherPayments(ctx context.Context, req *models.ListPaymentsRequest) (*models.PaymentListResponse, error) {
	s.logger.Info("ListTeacherPayments: fetching payments for teacher=%d, user=%d", req.TeacherID, req.UserID)

	if req.UserID != req.TeacherID {
		s.logger.Warn("ListTeacherPayments: access denied for user=%d to teacher=%d payments", req.UserID, req.TeacherID)
		return nil, ErrAccessDenied
	}

	if req.Month != nil && !monthPattern.MatchString(*req.Month) {
		s.logger.Warn("ListTeacherPayments: invalid month=%s for teacher=%d", *req.Month, req.TeacherID)
		return nil, fmt.Errorf("%w: month must be in YYYY-MM format", ErrInvalidInput)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListTeacherPayments: invalid status=%v for teacher=%d", req.Status, req.TeacherID)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	payments, err := s.paymentRepo.ListWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("ListTeacherPayments: repository error for teacher=%d: %v", req.TeacherID, err)
		return nil, fmt.Errorf("%w: ListTeacherPayments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListTeacherPayments: successfully fetched %d payments for teacher=%d", len(payments), req.TeacherID)
	return models.FromDomainPaymentList(payments), nil
}

// GetMonthSummary получает агрегат платежей преподавателя за месяц
// Доступно только самому преподавателю
func (s *Service) GetMonthSummary(ctx context.Context, userID, teacherID int64, month string) (*models.SummaryResponse, error) {
	s.logger.Info("GetMonthSummary: fetching summary for teacher=%d, month=%s", teacherID, month)

	if userID != teacherID {
		s.logger.Warn("GetMonthSummary: access denied for user=%d to teacher=%d summary", userID, teacherID)
		return nil, ErrAccessDenied
	}

	if !monthPattern.MatchString(month) {
		s.logger.Warn("GetMonthSummary: invalid month=%s for teacher=%d", month, teacherID)
		return nil, fmt.Errorf("%w: month must be in YYYY-MM format", ErrInvalidInput)
	}

	summary, err := s.paymentRepo.SummaryByMonth(ctx, teacherID, month)
	if err != nil {
		s.logger.Error("GetMonthSummary: repository error for teacher=%d: %v", teacherID, err)
		return nil, fmt.Errorf("%w: GetMonthSummary - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetMonthSummary: teacher=%d month=%s total=%.2f paid=%.2f",
		teacherID, month, summary.TotalAmount, summary.PaidAmount)
	return models.FromDomainSummary(summary), nil
}

// UpdateStatus помечает платёж оплаченным или неоплаченным
// Доступно только преподавателю платежа. При переходе в paid фиксируется
// время оплаты; возврат в unpaid его сбрасывает.
func (s *Service) UpdateStatus(ctx context.Context, paymentID int64, req *models.UpdateStatusRequest) (*models.PaymentResponse, error) {
	s.logger.Info("UpdateStatus: updating payment id=%d to status=%s by user=%d", paymentID, req.Status, req.UserID)

	payment, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			s.logger.Warn("UpdateStatus: payment id=%d not found", paymentID)
			return nil, ErrPaymentNotFound
		}
		s.logger.Error("UpdateStatus: repository error for payment id=%d: %v", paymentID, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	// Платежами распоряжается только преподаватель
	if payment.TeacherID != req.UserID {
		s.logger.Warn("UpdateStatus: access denied for user=%d to payment id=%d", req.UserID, paymentID)
		return nil, ErrAccessDenied
	}

	newStatus, err := models.ToDomainPaymentStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for payment id=%d", req.Status, paymentID)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidStatus)
	}

	var paidAt *time.Time
	if newStatus == domain.PaymentStatusPaid {
		now := s.timeProvider.Now()
		paidAt = &now
	}

	if err := s.paymentRepo.UpdateStatus(ctx, paymentID, newStatus, paidAt); err != nil {
		if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			s.logger.Warn("UpdateStatus: payment id=%d not found during update", paymentID)
			return nil, ErrPaymentNotFound
		}
		s.logger.Error("UpdateStatus: repository error for payment id=%d: %v", paymentID, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	payment.Status = newStatus
	payment.PaidAt = paidAt

	s.logger.Info("UpdateStatus: successfully updated payment id=%d to status=%s", paymentID, newStatus)
	return models.FromDomainPayment(payment), nil
}
