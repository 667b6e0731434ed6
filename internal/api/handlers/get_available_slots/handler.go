package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/MTC-LessonService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/MTC-LessonService/internal/usecase/get_available_slots"
)

const (
	msgInvalidTeacherID = "некорректный ID преподавателя"
	msgMissingDate      = "дата обязательна"
	msgMissingDuration  = "длительность обязательна"
	msgInvalidParams    = "некорректный формат даты или длительности"
	msgInvalidInput     = "некорректные данные запроса"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/teachers/{teacherId}/available-slots
// Query params: date (required, YYYY-MM-DD), duration (required, минуты)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем teacherId из URL
	teacherIDStr := vars["teacherId"]
	teacherID, err := strconv.ParseInt(teacherIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /teachers/{id}/available-slots - Invalid teacher ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTeacherID)
		return
	}

	// Извлекаем date из query параметров
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /teachers/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	// Извлекаем duration из query параметров
	durationStr := r.URL.Query().Get("duration")
	if durationStr == "" {
		h.logger.Warn("GET /teachers/{id}/available-slots - Missing duration")
		handlers.RespondBadRequest(w, msgMissingDuration)
		return
	}

	// Формируем запрос к use case (с парсингом даты и длительности)
	useCaseReq, err := ToUseCaseRequest(teacherID, dateStr, durationStr)
	if err != nil {
		h.logger.Warn("GET /teachers/{id}/available-slots - Invalid params: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /teachers/{id}/available-slots - Invalid input: teacher_id=%d, error=%v", teacherID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /teachers/{id}/available-slots - Failed to get slots: teacher_id=%d, date=%s, error=%v",
				teacherID, dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /teachers/{id}/available-slots - Slots retrieved successfully: teacher_id=%d, date=%s, slots_count=%d",
		teacherID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
