package delete_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/MTC-LessonService/internal/api/handlers"
	"github.com/m04kA/MTC-LessonService/internal/api/middleware"
	"github.com/m04kA/MTC-LessonService/internal/service/schedule"
)

const (
	msgInvalidAvailabilityID = "некорректный ID окна доступности"
	msgNotFound              = "окно доступности не найдено"
	msgMissingUserID         = "отсутствует ID пользователя"
)

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

// Handle DELETE /api/v1/teachers/{teacherId}/availability/{availabilityId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем availabilityId из URL
	vars := mux.Vars(r)
	availabilityIDStr := vars["availabilityId"]

	availabilityID, err := strconv.ParseInt(availabilityIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /teachers/{id}/availability/{id} - Invalid availability ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAvailabilityID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /teachers/{id}/availability/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Удаляем окно: запрос ограничен владельцем, чужое окно выглядит как 404
	err = h.service.DeleteAvailability(r.Context(), availabilityID, userID)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrAvailabilityNotFound):
			h.logger.Warn("DELETE /teachers/{id}/availability/{id} - Window not found: id=%d, user_id=%d",
				availabilityID, userID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /teachers/{id}/availability/{id} - Failed to delete window: id=%d, error=%v",
				availabilityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /teachers/{id}/availability/{id} - Window deleted successfully: id=%d, user_id=%d",
		availabilityID, userID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
