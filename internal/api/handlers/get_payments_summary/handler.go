package get_payments_summary

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/MTC-LessonService/internal/api/handlers"
	"github.com/m04kA/MTC-LessonService/internal/api/middleware"
	"github.com/m04kA/MTC-LessonService/internal/service/payments"
)

const (
	msgInvalidTeacherID = "некорректный ID преподавателя"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgMissingMonth     = "параметр month обязателен"
	msgForbidden        = "доступ запрещен"
	msgInvalidMonth     = "некорректный формат месяца, ожидается YYYY-MM"
)

type Handler struct {
	service PaymentService
	logger  Logger
}

func NewHandler(service PaymentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/teachers/{teacherId}/payments/summary
// Query params: month (required, YYYY-MM)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем teacherId из URL
	vars := mux.Vars(r)
	teacherIDStr := vars["teacherId"]

	teacherID, err := strconv.ParseInt(teacherIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /teachers/{id}/payments/summary - Invalid teacher ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTeacherID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /teachers/{id}/payments/summary - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	month := r.URL.Query().Get("month")
	if month == "" {
		h.logger.Warn("GET /teachers/{id}/payments/summary - Missing month")
		handlers.RespondBadRequest(w, msgMissingMonth)
		return
	}

	result, err := h.service.GetMonthSummary(r.Context(), userID, teacherID, month)
	if err != nil {
		switch {
		case errors.Is(err, payments.ErrAccessDenied):
			h.logger.Warn("GET /teachers/{id}/payments/summary - Access denied: teacher_id=%d, user_id=%d",
				teacherID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, payments.ErrInvalidInput):
			h.logger.Warn("GET /teachers/{id}/payments/summary - Invalid month=%s: teacher_id=%d", month, teacherID)
			handlers.RespondBadRequest(w, msgInvalidMonth)

		default:
			h.logger.Error("GET /teachers/{id}/payments/summary - Failed to get summary: teacher_id=%d, error=%v",
				teacherID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /teachers/{id}/payments/summary - Summary retrieved successfully: teacher_id=%d, month=%s",
		teacherID, month)
	handlers.RespondJSON(w, http.StatusOK, result)
}
