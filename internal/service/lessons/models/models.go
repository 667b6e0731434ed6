package models

import (
	"errors"
	"time"

	"github.com/m04kA/MTC-LessonService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid lesson status")
)

// Request модели

// CancelLessonRequest запрос на отмену занятия
type CancelLessonRequest struct {
	UserID int64 `json:"userId"`
}

// UpdateStatusRequest запрос на обновление статуса занятия
type UpdateStatusRequest struct {
	UserID int64  `json:"userId"`
	Status string `json:"status"`
}

// GetStudentLessonsRequest запрос на получение занятий студента
type GetStudentLessonsRequest struct {
	StudentID int64   `json:"studentId"`
	Status    *string `json:"status,omitempty"`
}

// GetTeacherLessonsRequest запрос на получение занятий преподавателя
type GetTeacherLessonsRequest struct {
	UserID          int64      `json:"userId"`
	TeacherID       int64      `json:"teacherId"`
	StartDate       *time.Time `json:"startDate,omitempty"`       // Начало периода (опционально)
	EndDate         *time.Time `json:"endDate,omitempty"`         // Конец периода (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отменённые и отклонённые занятия
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetTeacherLessonsRequest) ToDomainFilter() (domain.TeacherLessonsFilter, error) {
	filter := domain.TeacherLessonsFilter{
		TeacherID:       r.TeacherID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	// Конвертируем статус если указан
	if r.Status != nil {
		status, err := ToDomainLessonStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// LessonResponse ответ с данными занятия
type LessonResponse struct {
	ID              int64   `json:"id"`
	TeacherID       int64   `json:"teacherId"`
	StudentID       int64   `json:"studentId"`
	Date            string  `json:"date"`      // "2026-03-02"
	StartTime       string  `json:"startTime"` // "10:00"
	EndTime         string  `json:"endTime"`   // "11:00"
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	Notes           *string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// LessonListResponse ответ со списком занятий
type LessonListResponse struct {
	Lessons []LessonResponse `json:"lessons"`
}

// Методы конвертации

// FromDomainLesson конвертирует domain модель в DTO
func FromDomainLesson(l *domain.Lesson) *LessonResponse {
	if l == nil {
		return nil
	}

	return &LessonResponse{
		ID:              l.ID,
		TeacherID:       l.TeacherID,
		StudentID:       l.StudentID,
		Date:            l.Date.Format(domain.DateFormat),
		StartTime:       l.StartTime.String(),
		EndTime:         l.EndTime.String(),
		DurationMinutes: l.DurationMinutes,
		Status:          string(l.Status),
		Notes:           l.Notes,
		CreatedAt:       l.CreatedAt,
		UpdatedAt:       l.UpdatedAt,
	}
}

// FromDomainLessonList конвертирует список domain моделей в DTO
func FromDomainLessonList(lessons []*domain.Lesson) *LessonListResponse {
	if lessons == nil {
		return &LessonListResponse{
			Lessons: []LessonResponse{},
		}
	}

	resp := &LessonListResponse{
		Lessons: make([]LessonResponse, len(lessons)),
	}

	for i, lesson := range lessons {
		if lessonResp := FromDomainLesson(lesson); lessonResp != nil {
			resp.Lessons[i] = *lessonResp
		}
	}

	return resp
}

// ToDomainLessonStatus конвертирует строку в domain.LessonStatus с валидацией
func ToDomainLessonStatus(status string) (domain.LessonStatus, error) {
	s := domain.LessonStatus(status)

	// Валидируем статус
	validStatuses := []domain.LessonStatus{
		domain.LessonStatusPending,
		domain.LessonStatusConfirmed,
		domain.LessonStatusCancelled,
		domain.LessonStatusCompleted,
		domain.LessonStatusRejected,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
