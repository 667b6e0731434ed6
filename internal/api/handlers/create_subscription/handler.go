package create_subscription

import (
	"errors"
	"net/http"

	"github.com/m04kA/MTC-LessonService/internal/api/handlers"
	"github.com/m04kA/MTC-LessonService/internal/api/middleware"
	"github.com/m04kA/MTC-LessonService/internal/service/subscriptions"
	"github.com/m04kA/MTC-LessonService/internal/service/subscriptions/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgAlreadySubscribed  = "вы уже подписаны на этого преподавателя"
	msgInvalidInput       = "некорректные данные запроса"
)

// SubscribeRequest HTTP request model
type SubscribeRequest struct {
	TeacherID int64 `json:"teacherId"`
}

type Handler struct {
	service SubscriptionService
	logger  Logger
}

func NewHandler(service SubscriptionService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/subscriptions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем userID из контекста (через middleware Auth)
	studentID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /subscriptions - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req SubscribeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /subscriptions - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Subscribe(r.Context(), &models.SubscribeRequest{
		StudentID: studentID,
		TeacherID: req.TeacherID,
	})
	if err != nil {
		switch {
		case errors.Is(err, subscriptions.ErrAlreadySubscribed):
			h.logger.Warn("POST /subscriptions - Already subscribed: student_id=%d, teacher_id=%d",
				studentID, req.TeacherID)
			handlers.RespondConflict(w, msgAlreadySubscribed)

		case errors.Is(err, subscriptions.ErrInvalidInput):
			h.logger.Warn("POST /subscriptions - Invalid input: student_id=%d, error=%v", studentID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /subscriptions - Failed to subscribe: student_id=%d, teacher_id=%d, error=%v",
				studentID, req.TeacherID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /subscriptions - Subscription created successfully: id=%d, student_id=%d, teacher_id=%d",
		result.ID, studentID, req.TeacherID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
