package create_lesson

import (
	"time"

	"github.com/m04kA/MTC-LessonService/internal/domain"
	createLesson "github.com/m04kA/MTC-LessonService/internal/usecase/create_lesson"
	"github.com/m04kA/MTC-LessonService/pkg/types"
)

// CreateLessonRequest HTTP request model
type CreateLessonRequest struct {
	TeacherID       int64   `json:"teacherId"`
	Date            string  `json:"date"`      // "2026-03-02"
	StartTime       string  `json:"startTime"` // "10:00"
	DurationMinutes int     `json:"durationMinutes"`
	Notes           *string `json:"notes,omitempty"`
}

// LessonResponse HTTP response model
type LessonResponse struct {
	ID              int64   `json:"id"`
	TeacherID       int64   `json:"teacherId"`
	StudentID       int64   `json:"studentId"`
	Date            string  `json:"date"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	Notes           *string `json:"notes,omitempty"`

	Payment PaymentResponse `json:"payment"`

	CreatedAt string `json:"createdAt"`
}

// PaymentResponse платёжная запись, созданная вместе с занятием
type PaymentResponse struct {
	ID     int64   `json:"id"`
	Amount float64 `json:"amount"`
	Month  string  `json:"month"`
	Status string  `json:"status"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateLessonRequest) ToUseCaseRequest(studentID int64) (*createLesson.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	// Парсим время
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createLesson.Request{
		StudentID:       studentID,
		TeacherID:       r.TeacherID,
		Date:            date,
		StartTime:       startTime,
		DurationMinutes: r.DurationMinutes,
		Notes:           r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createLesson.Response) *LessonResponse {
	return &LessonResponse{
		ID:              resp.ID,
		TeacherID:       resp.TeacherID,
		StudentID:       resp.StudentID,
		Date:            resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		EndTime:         resp.EndTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		Notes:           resp.Notes,
		Payment: PaymentResponse{
			ID:     resp.PaymentID,
			Amount: resp.Amount,
			Month:  resp.Month,
			Status: string(domain.PaymentStatusUnpaid),
		},
		CreatedAt: resp.CreatedAt.Format(time.RFC3339),
	}
}
