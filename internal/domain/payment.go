package domain

import "time"

// PaymentStatus represents the billing state of a payment record
type PaymentStatus string

const (
	PaymentStatusUnpaid PaymentStatus = "unpaid"
	PaymentStatusPaid   PaymentStatus = "paid"
)

// Payment is the billing record created atomically with its lesson, one per
// lesson, never standalone. Amount is computed once at booking time
// (hourlyRate * duration/60) and not recomputed later. This is a bookkeeping
// entity, not a financial transaction.
type Payment struct {
	ID        int64
	LessonID  int64
	TeacherID int64
	StudentID int64
	Amount    float64
	Status    PaymentStatus
	Month     string // YYYY-MM bucket of the lesson date, fixed at creation
	PaidAt    *time.Time

	CreatedAt time.Time
}

// IsPaid reports whether the record has been marked paid.
func (p *Payment) IsPaid() bool {
	return p.Status == PaymentStatusPaid
}

// MonthString returns the YYYY-MM billing bucket for a date.
func MonthString(date time.Time) string {
	return date.Format(MonthFormat)
}

// LessonAmount computes the billing amount for a lesson duration at the
// given hourly rate.
func LessonAmount(durationMinutes int, hourlyRate float64) float64 {
	return float64(durationMinutes) / 60.0 * hourlyRate
}

// PaymentsFilter фильтр для выборки платежей преподавателя
type PaymentsFilter struct {
	TeacherID int64
	Month     *string        // Фильтр по месяцу YYYY-MM (опционально)
	Status    *PaymentStatus // Фильтр по статусу (опционально)
}

// PaymentSummary is an aggregate over a teacher's month.
type PaymentSummary struct {
	TeacherID   int64
	Month       string
	TotalAmount float64
	PaidAmount  float64
	UnpaidCount int
	PaidCount   int
}
