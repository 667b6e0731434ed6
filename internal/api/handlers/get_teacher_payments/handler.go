package get_teacher_payments

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/MTC-LessonService/internal/api/handlers"
	"github.com/m04kA/MTC-LessonService/internal/api/middleware"
	"github.com/m04kA/MTC-LessonService/internal/service/payments"
	"github.com/m04kA/MTC-LessonService/internal/service/payments/models"
	"github.com/m04kA/MTC-LessonService/pkg/ptr"
)

const (
	msgInvalidTeacherID = "некорректный ID преподавателя"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgForbidden        = "доступ запрещен"
	msgInvalidFilter    = "некорректные параметры фильтрации"
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

// Handle GET /api/v1/teachers/{teacherId}/payments
// Query params: month (YYYY-MM), status (оба опциональны)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем teacherId из URL
	vars := mux.Vars(r)
	teacherIDStr := vars["teacherId"]

	teacherID, err := strconv.ParseInt(teacherIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /teachers/{id}/payments - Invalid teacher ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTeacherID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /teachers/{id}/payments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	req := &models.ListPaymentsRequest{
		UserID:    userID,
		TeacherID: teacherID,
	}

	query := r.URL.Query()
	if monthStr := query.Get("month"); monthStr != "" {
		req.Month = ptr.Ptr(monthStr)
	}
	if statusStr := query.Get("status"); statusStr != "" {
		req.Status = ptr.Ptr(statusStr)
	}

	result, err := h.service.ListTeacherPayments(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, payments.ErrAccessDenied):
			h.logger.Warn("GET /teachers/{id}/payments - Access denied: teacher_id=%d, user_id=%d", teacherID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, payments.ErrInvalidInput):
			h.logger.Warn("GET /teachers/{id}/payments - Invalid filter: teacher_id=%d, error=%v", teacherID, err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /teachers/{id}/payments - Failed to get payments: teacher_id=%d, error=%v", teacherID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /teachers/{id}/payments - Payments retrieved successfully: teacher_id=%d, count=%d",
		teacherID, len(result.Payments))
	handlers.RespondJSON(w, http.StatusOK, result)
}
