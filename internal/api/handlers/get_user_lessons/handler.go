package get_user_lessons

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/MTC-LessonService/internal/api/handlers"
	"github.com/m04kA/MTC-LessonService/internal/api/middleware"
	"github.com/m04kA/MTC-LessonService/internal/service/lessons"
	"github.com/m04kA/MTC-LessonService/internal/service/lessons/models"
	"github.com/m04kA/MTC-LessonService/pkg/ptr"
)

const (
	msgInvalidUserID = "некорректный ID пользователя"
	msgMissingUserID = "отсутствует ID пользователя"
	msgForbidden     = "доступ запрещен"
	msgInvalidStatus = "недопустимый статус занятия"
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

// Handle GET /api/v1/users/{userId}/lessons
// Query params: status (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем userId из URL
	vars := mux.Vars(r)
	userIDStr := vars["userId"]

	pathUserID, err := strconv.ParseInt(userIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /users/{id}/lessons - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	authUserID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /users/{id}/lessons - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Свою историю занятий видит только сам пользователь
	if authUserID != pathUserID {
		h.logger.Warn("GET /users/{id}/lessons - Access denied: path_user_id=%d, auth_user_id=%d",
			pathUserID, authUserID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	// Извлекаем status из query параметров (опционально)
	req := &models.GetStudentLessonsRequest{StudentID: pathUserID}
	if statusStr := r.URL.Query().Get("status"); statusStr != "" {
		req.Status = ptr.Ptr(statusStr)
	}

	result, err := h.service.GetStudentLessons(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, lessons.ErrInvalidInput):
			h.logger.Warn("GET /users/{id}/lessons - Invalid status: user_id=%d", pathUserID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /users/{id}/lessons - Failed to get lessons: user_id=%d, error=%v", pathUserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /users/{id}/lessons - Lessons retrieved successfully: user_id=%d, count=%d",
		pathUserID, len(result.Lessons))
	handlers.RespondJSON(w, http.StatusOK, result)
}
