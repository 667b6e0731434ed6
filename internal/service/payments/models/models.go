package models

import (
	"errors"
	"time"

	"github.com/m04kA/MTC-LessonService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid payment status")
)

// Request модели

// ListPaymentsRequest запрос на получение платежей преподавателя
type ListPaymentsRequest struct {
	UserID    int64   `json:"userId"`
	TeacherID int64   `json:"teacherId"`
	Month     *string `json:"month,omitempty"`  // Фильтр по месяцу YYYY-MM (опционально)
	Status    *string `json:"status,omitempty"` // Фильтр по статусу (опционально)
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListPaymentsRequest) ToDomainFilter() (domain.PaymentsFilter, error) {
	filter := domain.PaymentsFilter{
		TeacherID: r.TeacherID,
		Month:     r.Month,
	}

	if r.Status != nil {
		status, err := ToDomainPaymentStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// UpdateStatusRequest запрос на смену статуса платежа
type UpdateStatusRequest struct {
	UserID int64  `json:"userId"`
	Status string `json:"status"` // "paid" или "unpaid"
}

// Response модели

// PaymentResponse ответ с данными платёжной записи
type PaymentResponse struct {
	ID        int64   `json:"id"`
	LessonID  int64   `json:"lessonId"`
	TeacherID int64   `json:"teacherId"`
	StudentID int64   `json:"studentId"`
	Amount    float64 `json:"amount"`
	Status    string  `json:"status"`
	Month     string  `json:"month"`            // "2026-03"
	PaidAt    *string `json:"paidAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
}

// PaymentListResponse ответ со списком платежей
type PaymentListResponse struct {
	Payments []PaymentResponse `json:"payments"`
}

// SummaryResponse агрегат платежей преподавателя за месяц
type SummaryResponse struct {
	TeacherID   int64   `json:"teacherId"`
	Month       string  `json:"month"`
	TotalAmount float64 `json:"totalAmount"`
	PaidAmount  float64 `json:"paidAmount"`
	PaidCount   int     `json:"paidCount"`
	UnpaidCount int     `json:"unpaidCount"`
}

// Методы конвертации

// FromDomainPayment конвертирует domain модель в DTO
func FromDomainPayment(p *domain.Payment) *PaymentResponse {
	if p == nil {
		return nil
	}

	resp := &PaymentResponse{
		ID:        p.ID,
		LessonID:  p.LessonID,
		TeacherID: p.TeacherID,
		StudentID: p.StudentID,
		Amount:    p.Amount,
		Status:    string(p.Status),
		Month:     p.Month,
		CreatedAt: p.CreatedAt,
	}

	// Конвертируем PaidAt в строку ISO 8601
	if p.PaidAt != nil {
		paidStr := p.PaidAt.Format(time.RFC3339)
		resp.PaidAt = &paidStr
	}

	return resp
}

// FromDomainPaymentList конвертирует список domain моделей в DTO
func FromDomainPaymentList(payments []*domain.Payment) *PaymentListResponse {
	if payments == nil {
		return &PaymentListResponse{
			Payments: []PaymentResponse{},
		}
	}

	resp := &PaymentListResponse{
		Payments: make([]PaymentResponse, len(payments)),
	}

	for i, payment := range payments {
		if paymentResp := FromDomainPayment(payment); paymentResp != nil {
			resp.Payments[i] = *paymentResp
		}
	}

	return resp
}

// FromDomainSummary конвертирует агрегат в DTO
func FromDomainSummary(s *domain.PaymentSummary) *SummaryResponse {
	if s == nil {
		return nil
	}

	return &SummaryResponse{
		TeacherID:   s.TeacherID,
		Month:       s.Month,
		TotalAmount: s.TotalAmount,
		PaidAmount:  s.PaidAmount,
		PaidCount:   s.PaidCount,
		UnpaidCount: s.UnpaidCount,
	}
}

// ToDomainPaymentStatus конвертирует строку в domain.PaymentStatus с валидацией
func ToDomainPaymentStatus(status string) (domain.PaymentStatus, error) {
	s := domain.PaymentStatus(status)

	switch s {
	case domain.PaymentStatusPaid, domain.PaymentStatusUnpaid:
		return s, nil
	}

	return "", ErrInvalidStatus
}
