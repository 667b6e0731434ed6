package create_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/MTC-LessonService/internal/api/handlers"
	"github.com/m04kA/MTC-LessonService/internal/api/middleware"
	"github.com/m04kA/MTC-LessonService/internal/service/schedule"
	"github.com/m04kA/MTC-LessonService/internal/service/schedule/models"
)

const (
	msgInvalidTeacherID   = "некорректный ID преподавателя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
	msgInvalidWindow      = "некорректное окно доступности"
)

// CreateAvailabilityRequest HTTP request model
type CreateAvailabilityRequest struct {
	DayOfWeek int    `json:"dayOfWeek"` // 0 = воскресенье .. 6 = суббота
	StartTime string `json:"startTime"` // "09:00"
	EndTime   string `json:"endTime"`   // "17:00"
}

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/teachers/{teacherId}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем teacherId из URL
	vars := mux.Vars(r)
	teacherIDStr := vars["teacherId"]

	teacherID, err := strconv.ParseInt(teacherIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /teachers/{id}/availability - Invalid teacher ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTeacherID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /teachers/{id}/availability - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /teachers/{id}/availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateAvailability(r.Context(), &models.CreateAvailabilityRequest{
		UserID:    userID,
		TeacherID: teacherID,
		DayOfWeek: req.DayOfWeek,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("POST /teachers/{id}/availability - Access denied: teacher_id=%d, user_id=%d", teacherID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("POST /teachers/{id}/availability - Invalid window: teacher_id=%d, error=%v", teacherID, err)
			handlers.RespondBadRequest(w, msgInvalidWindow)

		default:
			h.logger.Error("POST /teachers/{id}/availability - Failed to create window: teacher_id=%d, error=%v", teacherID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /teachers/{id}/availability - Window created successfully: id=%d, teacher_id=%d",
		result.ID, teacherID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
