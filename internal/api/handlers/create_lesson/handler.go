package create_lesson

import (
	"errors"
	"net/http"

	"github.com/m04kA/MTC-LessonService/internal/api/handlers"
	"github.com/m04kA/MTC-LessonService/internal/api/middleware"
	createLesson "github.com/m04kA/MTC-LessonService/internal/usecase/create_lesson"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateFormat  = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidInput       = "некорректные данные запроса"
	msgTeacherNotFound    = "преподаватель не найден"
	msgNotSubscribed      = "сначала подпишитесь на преподавателя"
	msgDurationNotAllowed = "преподаватель не проводит занятия такой длительности"
	msgInvalidLessonDate  = "дата занятия не может быть в прошлом"
	msgSlotNotAvailable   = "выбранный временной слот недоступен"
)

type Handler struct {
	useCase CreateLessonUseCase
	logger  Logger
}

func NewHandler(useCase CreateLessonUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/lessons
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем userID из контекста (через middleware Auth)
	studentID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /lessons - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateLessonRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /lessons - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(studentID)
	if err != nil {
		h.logger.Warn("POST /lessons - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateFormat)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createLesson.ErrSlotNotAvailable):
			h.logger.Warn("POST /lessons - Slot not available: student_id=%d, teacher_id=%d", studentID, req.TeacherID)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createLesson.ErrTeacherNotFound):
			h.logger.Warn("POST /lessons - Teacher not found: teacher_id=%d", req.TeacherID)
			handlers.RespondNotFound(w, msgTeacherNotFound)

		case errors.Is(err, createLesson.ErrNotSubscribed):
			h.logger.Warn("POST /lessons - Not subscribed: student_id=%d, teacher_id=%d", studentID, req.TeacherID)
			handlers.RespondForbidden(w, msgNotSubscribed)

		case errors.Is(err, createLesson.ErrDurationNotAllowed):
			h.logger.Warn("POST /lessons - Duration not allowed: teacher_id=%d, duration=%d", req.TeacherID, req.DurationMinutes)
			handlers.RespondBadRequest(w, msgDurationNotAllowed)

		case errors.Is(err, createLesson.ErrInvalidDate):
			h.logger.Warn("POST /lessons - Invalid lesson date: student_id=%d, date=%s", studentID, req.Date)
			handlers.RespondBadRequest(w, msgInvalidLessonDate)

		case errors.Is(err, createLesson.ErrInvalidInput):
			h.logger.Warn("POST /lessons - Invalid input: student_id=%d, error=%v", studentID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /lessons - Failed to create lesson: student_id=%d, teacher_id=%d, error=%v",
				studentID, req.TeacherID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /lessons - Lesson created successfully: lesson_id=%d, student_id=%d, teacher_id=%d",
		result.ID, studentID, req.TeacherID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
