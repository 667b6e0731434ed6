package models

import (
	"time"

	"github.com/m04kA/MTC-LessonService/internal/domain"
)

// Request модели

// SubscribeRequest запрос на подписку студента на преподавателя
type SubscribeRequest struct {
	StudentID int64 `json:"studentId"`
	TeacherID int64 `json:"teacherId"`
}

// Response модели

// SubscriptionResponse ответ с данными подписки
type SubscriptionResponse struct {
	ID        int64 `json:"id"`
	StudentID int64 `json:"studentId"`
	TeacherID int64 `json:"teacherId"`

	CreatedAt time.Time `json:"createdAt"`
}

// SubscriptionListResponse ответ со списком подписок
type SubscriptionListResponse struct {
	Subscriptions []SubscriptionResponse `json:"subscriptions"`
}

// Методы конвертации

// FromDomainSubscription конвертирует domain модель в DTO
func FromDomainSubscription(s *domain.Subscription) *SubscriptionResponse {
	if s == nil {
		return nil
	}

	return &SubscriptionResponse{
		ID:        s.ID,
		StudentID: s.StudentID,
		TeacherID: s.TeacherID,
		CreatedAt: s.CreatedAt,
	}
}

// FromDomainSubscriptionList конвертирует список domain моделей в DTO
func FromDomainSubscriptionList(subs []*domain.Subscription) *SubscriptionListResponse {
	if subs == nil {
		return &SubscriptionListResponse{
			Subscriptions: []SubscriptionResponse{},
		}
	}

	resp := &SubscriptionListResponse{
		Subscriptions: make([]SubscriptionResponse, len(subs)),
	}

	for i, sub := range subs {
		if subResp := FromDomainSubscription(sub); subResp != nil {
			resp.Subscriptions[i] = *subResp
		}
	}

	return resp
}
