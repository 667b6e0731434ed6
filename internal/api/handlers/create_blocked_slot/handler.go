package create_blocked_slot

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/MTC-LessonService/internal/api/handlers"
	"github.com/m04kA/MTC-LessonService/internal/api/middleware"
	"github.com/m04kA/MTC-LessonService/internal/domain"
	"github.com/m04kA/MTC-LessonService/internal/service/schedule"
	"github.com/m04kA/MTC-LessonService/internal/service/schedule/models"
)

const (
	msgInvalidTeacherID   = "некорректный ID преподавателя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
	msgInvalidBlock       = "некорректные параметры блокировки"
)

// CreateBlockedSlotRequest HTTP request model
type CreateBlockedSlotRequest struct {
	Date      string  `json:"date"` // "2026-03-02"
	AllDay    bool    `json:"allDay"`
	StartTime *string `json:"startTime,omitempty"` // Обязательно при allDay=false
	EndTime   *string `json:"endTime,omitempty"`   // Обязательно при allDay=false
	Reason    *string `json:"reason,omitempty"`
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

// Handle POST /api/v1/teachers/{teacherId}/blocked-slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем teacherId из URL
	vars := mux.Vars(r)
	teacherIDStr := vars["teacherId"]

	teacherID, err := strconv.ParseInt(teacherIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /teachers/{id}/blocked-slots - Invalid teacher ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTeacherID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /teachers/{id}/blocked-slots - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBlockedSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /teachers/{id}/blocked-slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Парсим дату
	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		h.logger.Warn("POST /teachers/{id}/blocked-slots - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.CreateBlockedSlot(r.Context(), &models.CreateBlockedSlotRequest{
		UserID:    userID,
		TeacherID: teacherID,
		Date:      date,
		AllDay:    req.AllDay,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Reason:    req.Reason,
	})
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("POST /teachers/{id}/blocked-slots - Access denied: teacher_id=%d, user_id=%d", teacherID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("POST /teachers/{id}/blocked-slots - Invalid block: teacher_id=%d, error=%v", teacherID, err)
			handlers.RespondBadRequest(w, msgInvalidBlock)

		default:
			h.logger.Error("POST /teachers/{id}/blocked-slots - Failed to create block: teacher_id=%d, error=%v", teacherID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /teachers/{id}/blocked-slots - Block created successfully: id=%d, teacher_id=%d",
		result.ID, teacherID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
