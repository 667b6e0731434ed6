package get_teacher_config

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/MTC-LessonService/internal/api/handlers"
)

const (
	msgInvalidTeacherID = "некорректный ID преподавателя"
)

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

// Handle GET /api/v1/teachers/{teacherId}/config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем teacherId из URL
	vars := mux.Vars(r)
	teacherIDStr := vars["teacherId"]

	teacherID, err := strconv.ParseInt(teacherIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /teachers/{id}/config - Invalid teacher ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTeacherID)
		return
	}

	config, err := h.service.Get(r.Context(), teacherID)
	if err != nil {
		h.logger.Error("GET /teachers/{id}/config - Failed to get config: teacher_id=%d, error=%v",
			teacherID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /teachers/{id}/config - Config retrieved successfully: teacher_id=%d", teacherID)
	handlers.RespondJSON(w, http.StatusOK, config)
}
