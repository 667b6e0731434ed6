package models

import (
	"time"

	"github.com/m04kA/MTC-LessonService/internal/domain"
	"github.com/m04kA/MTC-LessonService/pkg/types"
)

// Request модели

// CreateAvailabilityRequest запрос на создание окна доступности
type CreateAvailabilityRequest struct {
	UserID    int64  `json:"userId"`
	TeacherID int64  `json:"teacherId"`
	DayOfWeek int    `json:"dayOfWeek"` // 0 = воскресенье .. 6 = суббота
	StartTime string `json:"startTime"` // "09:00"
	EndTime   string `json:"endTime"`   // "17:00"
}

// ToDomain конвертирует request в domain модель
func (r *CreateAvailabilityRequest) ToDomain() *domain.Availability {
	return &domain.Availability{
		TeacherID: r.TeacherID,
		DayOfWeek: time.Weekday(r.DayOfWeek),
		StartTime: types.TimeString(r.StartTime),
		EndTime:   types.TimeString(r.EndTime),
	}
}

// CreateBlockedSlotRequest запрос на создание блокировки даты
type CreateBlockedSlotRequest struct {
	UserID    int64     `json:"userId"`
	TeacherID int64     `json:"teacherId"`
	Date      time.Time `json:"date"`
	AllDay    bool      `json:"allDay"`
	StartTime *string   `json:"startTime,omitempty"` // Обязательно при allDay=false
	EndTime   *string   `json:"endTime,omitempty"`   // Обязательно при allDay=false
	Reason    *string   `json:"reason,omitempty"`
}

// ToDomain конвертирует request в domain модель
func (r *CreateBlockedSlotRequest) ToDomain() *domain.BlockedSlot {
	slot := &domain.BlockedSlot{
		TeacherID: r.TeacherID,
		Date:      r.Date,
		AllDay:    r.AllDay,
		Reason:    r.Reason,
	}

	if r.StartTime != nil {
		st := types.TimeString(*r.StartTime)
		slot.StartTime = &st
	}
	if r.EndTime != nil {
		et := types.TimeString(*r.EndTime)
		slot.EndTime = &et
	}

	return slot
}

// Response модели

// AvailabilityResponse ответ с данными окна доступности
type AvailabilityResponse struct {
	ID        int64  `json:"id"`
	TeacherID int64  `json:"teacherId"`
	DayOfWeek int    `json:"dayOfWeek"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`

	CreatedAt time.Time `json:"createdAt"`
}

// BlockedSlotResponse ответ с данными блокировки
type BlockedSlotResponse struct {
	ID        int64   `json:"id"`
	TeacherID int64   `json:"teacherId"`
	Date      string  `json:"date"` // "2026-03-02"
	AllDay    bool    `json:"allDay"`
	StartTime *string `json:"startTime,omitempty"`
	EndTime   *string `json:"endTime,omitempty"`
	Reason    *string `json:"reason,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// ScheduleResponse ответ с полным расписанием преподавателя:
// недельные окна доступности и блокировки конкретных дат
type ScheduleResponse struct {
	TeacherID    int64                  `json:"teacherId"`
	Availability []AvailabilityResponse `json:"availability"`
	BlockedSlots []BlockedSlotResponse  `json:"blockedSlots"`
}

// Методы конвертации

// FromDomainAvailability конвертирует domain модель в DTO
func FromDomainAvailability(a *domain.Availability) *AvailabilityResponse {
	if a == nil {
		return nil
	}

	return &AvailabilityResponse{
		ID:        a.ID,
		TeacherID: a.TeacherID,
		DayOfWeek: int(a.DayOfWeek),
		StartTime: a.StartTime.String(),
		EndTime:   a.EndTime.String(),
		CreatedAt: a.CreatedAt,
	}
}

// FromDomainAvailabilityList конвертирует список domain моделей в DTO
func FromDomainAvailabilityList(windows []*domain.Availability) []AvailabilityResponse {
	result := make([]AvailabilityResponse, 0, len(windows))
	for _, w := range windows {
		if resp := FromDomainAvailability(w); resp != nil {
			result = append(result, *resp)
		}
	}
	return result
}

// FromDomainBlockedSlot конвертирует domain модель в DTO
func FromDomainBlockedSlot(b *domain.BlockedSlot) *BlockedSlotResponse {
	if b == nil {
		return nil
	}

	resp := &BlockedSlotResponse{
		ID:        b.ID,
		TeacherID: b.TeacherID,
		Date:      b.Date.Format(domain.DateFormat),
		AllDay:    b.AllDay,
		Reason:    b.Reason,
		CreatedAt: b.CreatedAt,
	}

	if b.StartTime != nil {
		st := b.StartTime.String()
		resp.StartTime = &st
	}
	if b.EndTime != nil {
		et := b.EndTime.String()
		resp.EndTime = &et
	}

	return resp
}

// FromDomainBlockedSlotList конвертирует список domain моделей в DTO
func FromDomainBlockedSlotList(slots []*domain.BlockedSlot) []BlockedSlotResponse {
	result := make([]BlockedSlotResponse, 0, len(slots))
	for _, s := range slots {
		if resp := FromDomainBlockedSlot(s); resp != nil {
			result = append(result, *resp)
		}
	}
	return result
}
