package delete_blocked_slot

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
	msgInvalidBlockedSlotID = "некорректный ID блокировки"
	msgNotFound             = "блокировка не найдена"
	msgMissingUserID        = "отсутствует ID пользователя"
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

// Handle DELETE /api/v1/teachers/{teacherId}/blocked-slots/{blockedSlotId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем blockedSlotId из URL
	vars := mux.Vars(r)
	blockedSlotIDStr := vars["blockedSlotId"]

	blockedSlotID, err := strconv.ParseInt(blockedSlotIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /teachers/{id}/blocked-slots/{id} - Invalid blocked slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBlockedSlotID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /teachers/{id}/blocked-slots/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	err = h.service.DeleteBlockedSlot(r.Context(), blockedSlotID, userID)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrBlockedSlotNotFound):
			h.logger.Warn("DELETE /teachers/{id}/blocked-slots/{id} - Block not found: id=%d, user_id=%d",
				blockedSlotID, userID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /teachers/{id}/blocked-slots/{id} - Failed to delete block: id=%d, error=%v",
				blockedSlotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /teachers/{id}/blocked-slots/{id} - Block deleted successfully: id=%d, user_id=%d",
		blockedSlotID, userID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
