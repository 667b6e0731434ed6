package get_bookable_dates

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/MTC-LessonService/internal/api/handlers"
	getBookableDates "github.com/m04kA/MTC-LessonService/internal/usecase/get_bookable_dates"
)

const (
	msgInvalidTeacherID = "некорректный ID преподавателя"
	msgMissingYearMonth = "параметры year и month обязательны"
	msgInvalidYearMonth = "некорректные параметры year или month"
	msgTeacherNotFound  = "преподаватель не найден"
)

type Handler struct {
	useCase GetBookableDatesUseCase
	logger  Logger
}

func NewHandler(useCase GetBookableDatesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/teachers/{teacherId}/bookable-dates
// Query params: year (required), month (required, 1-12)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем teacherId из URL
	teacherIDStr := vars["teacherId"]
	teacherID, err := strconv.ParseInt(teacherIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /teachers/{id}/bookable-dates - Invalid teacher ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTeacherID)
		return
	}

	yearStr := r.URL.Query().Get("year")
	monthStr := r.URL.Query().Get("month")
	if yearStr == "" || monthStr == "" {
		h.logger.Warn("GET /teachers/{id}/bookable-dates - Missing year or month")
		handlers.RespondBadRequest(w, msgMissingYearMonth)
		return
	}

	// Формируем запрос к use case
	useCaseReq, err := ToUseCaseRequest(teacherID, yearStr, monthStr)
	if err != nil {
		h.logger.Warn("GET /teachers/{id}/bookable-dates - Invalid params: %v", err)
		handlers.RespondBadRequest(w, msgInvalidYearMonth)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getBookableDates.ErrInvalidInput):
			h.logger.Warn("GET /teachers/{id}/bookable-dates - Invalid input: teacher_id=%d, error=%v", teacherID, err)
			handlers.RespondBadRequest(w, msgInvalidYearMonth)

		case errors.Is(err, getBookableDates.ErrTeacherNotFound):
			h.logger.Warn("GET /teachers/{id}/bookable-dates - Teacher not found: teacher_id=%d", teacherID)
			handlers.RespondNotFound(w, msgTeacherNotFound)

		default:
			h.logger.Error("GET /teachers/{id}/bookable-dates - Failed to get dates: teacher_id=%d, error=%v",
				teacherID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /teachers/{id}/bookable-dates - Dates retrieved successfully: teacher_id=%d, dates_count=%d",
		teacherID, len(result.Dates))
	handlers.RespondJSON(w, http.StatusOK, response)
}
