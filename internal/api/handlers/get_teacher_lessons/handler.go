package get_teacher_lessons

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/MTC-LessonService/internal/api/handlers"
	"github.com/m04kA/MTC-LessonService/internal/api/middleware"
	"github.com/m04kA/MTC-LessonService/internal/domain"
	"github.com/m04kA/MTC-LessonService/internal/service/lessons"
	"github.com/m04kA/MTC-LessonService/internal/service/lessons/models"
	"github.com/m04kA/MTC-LessonService/pkg/ptr"
)

const (
	msgInvalidTeacherID = "некорректный ID преподавателя"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgForbidden        = "доступ запрещен"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidFilter    = "некорректные параметры фильтрации"
)

type Handler struct {
	service LessonService
	logger  Logger
}

func NewHandler(service LessonService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/teachers/{teacherId}/lessons
// Query params: startDate, endDate, status, includeInactive (все опциональны)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем teacherId из URL
	vars := mux.Vars(r)
	teacherIDStr := vars["teacherId"]

	teacherID, err := strconv.ParseInt(teacherIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /teachers/{id}/lessons - Invalid teacher ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTeacherID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /teachers/{id}/lessons - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Собираем фильтр из query параметров
	req := &models.GetTeacherLessonsRequest{
		UserID:    userID,
		TeacherID: teacherID,
	}

	query := r.URL.Query()

	if startDateStr := query.Get("startDate"); startDateStr != "" {
		startDate, err := time.Parse(domain.DateFormat, startDateStr)
		if err != nil {
			h.logger.Warn("GET /teachers/{id}/lessons - Invalid startDate: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.StartDate = ptr.Ptr(startDate)
	}

	if endDateStr := query.Get("endDate"); endDateStr != "" {
		endDate, err := time.Parse(domain.DateFormat, endDateStr)
		if err != nil {
			h.logger.Warn("GET /teachers/{id}/lessons - Invalid endDate: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.EndDate = ptr.Ptr(endDate)
	}

	if statusStr := query.Get("status"); statusStr != "" {
		req.Status = ptr.Ptr(statusStr)
	}

	if query.Get("includeInactive") == "true" {
		req.IncludeInactive = true
	}

	result, err := h.service.GetTeacherLessons(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, lessons.ErrAccessDenied):
			h.logger.Warn("GET /teachers/{id}/lessons - Access denied: teacher_id=%d, user_id=%d", teacherID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, lessons.ErrInvalidInput):
			h.logger.Warn("GET /teachers/{id}/lessons - Invalid filter: teacher_id=%d, error=%v", teacherID, err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /teachers/{id}/lessons - Failed to get lessons: teacher_id=%d, error=%v", teacherID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /teachers/{id}/lessons - Lessons retrieved successfully: teacher_id=%d, count=%d",
		teacherID, len(result.Lessons))
	handlers.RespondJSON(w, http.StatusOK, result)
}
