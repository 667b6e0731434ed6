package models

import (
	"time"

	"github.com/m04kA/MTC-LessonService/internal/domain"
)

// Request модели

// UpdateConfigRequest запрос на обновление конфигурации преподавателя
type UpdateConfigRequest struct {
	UserID          int64   `json:"userId"`
	TeacherID       int64   `json:"teacherId"`
	HourlyRate      float64 `json:"hourlyRate"`
	LessonDurations []int   `json:"lessonDurations"` // минуты, например [30, 45, 60]
	AutoAccept      bool    `json:"autoAccept"`
	Bio             *string `json:"bio,omitempty"`
}

// ToDomain конвертирует request в domain модель
func (r *UpdateConfigRequest) ToDomain() *domain.TeacherProfile {
	return &domain.TeacherProfile{
		TeacherID:       r.TeacherID,
		HourlyRate:      r.HourlyRate,
		LessonDurations: r.LessonDurations,
		AutoAccept:      r.AutoAccept,
		Bio:             r.Bio,
	}
}

// Response модели

// ConfigResponse ответ с конфигурацией преподавателя
type ConfigResponse struct {
	TeacherID       int64   `json:"teacherId"`
	HourlyRate      float64 `json:"hourlyRate"`
	LessonDurations []int   `json:"lessonDurations"`
	AutoAccept      bool    `json:"autoAccept"`
	Bio             *string `json:"bio,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FromDomainProfile конвертирует domain модель в DTO
func FromDomainProfile(p *domain.TeacherProfile) *ConfigResponse {
	if p == nil {
		return nil
	}

	return &ConfigResponse{
		TeacherID:       p.TeacherID,
		HourlyRate:      p.HourlyRate,
		LessonDurations: p.LessonDurations,
		AutoAccept:      p.AutoAccept,
		Bio:             p.Bio,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
