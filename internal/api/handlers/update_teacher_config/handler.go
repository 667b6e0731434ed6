package update_teacher_config

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/MTC-LessonService/internal/api/handlers"
	"github.com/m04kA/MTC-LessonService/internal/api/middleware"
	configService "github.com/m04kA/MTC-LessonService/internal/service/config"
	"github.com/m04kA/MTC-LessonService/internal/service/config/models"
)

const (
	msgInvalidTeacherID   = "некорректный ID преподавателя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
	msgInvalidConfig      = "некорректные параметры конфигурации"
)

// UpdateConfigRequest HTTP request model
type UpdateConfigRequest struct {
	HourlyRate      float64 `json:"hourlyRate"`
	LessonDurations []int   `json:"lessonDurations"`
	AutoAccept      bool    `json:"autoAccept"`
	Bio             *string `json:"bio,omitempty"`
}

type Handler struct {
	service ConfigService
	logger  Logger
}

func NewHandler(service ConfigService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/teachers/{teacherId}/config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем teacherId из URL
	vars := mux.Vars(r)
	teacherIDStr := vars["teacherId"]

	teacherID, err := strconv.ParseInt(teacherIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PUT /teachers/{id}/config - Invalid teacher ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTeacherID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /teachers/{id}/config - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /teachers/{id}/config - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), &models.UpdateConfigRequest{
		UserID:          userID,
		TeacherID:       teacherID,
		HourlyRate:      req.HourlyRate,
		LessonDurations: req.LessonDurations,
		AutoAccept:      req.AutoAccept,
		Bio:             req.Bio,
	})
	if err != nil {
		switch {
		case errors.Is(err, configService.ErrAccessDenied):
			h.logger.Warn("PUT /teachers/{id}/config - Access denied: teacher_id=%d, user_id=%d", teacherID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, configService.ErrInvalidInput):
			h.logger.Warn("PUT /teachers/{id}/config - Invalid config: teacher_id=%d, error=%v", teacherID, err)
			handlers.RespondBadRequest(w, msgInvalidConfig)

		default:
			h.logger.Error("PUT /teachers/{id}/config - Failed to update config: teacher_id=%d, error=%v", teacherID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /teachers/{id}/config - Config updated successfully: teacher_id=%d", teacherID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
