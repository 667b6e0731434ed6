package lessons

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/MTC-LessonService/internal/domain"
	lessonRepo "github.com/m04kA/MTC-LessonService/internal/infra/storage/lesson"
	"github.com/m04kA/MTC-LessonService/internal/service/lessons/models"
)

// Service сервис для работы с занятиями
type Service struct {
	lessonRepo       LessonRepository
	notificationRepo NotificationRepository
	logger           Logger
}

// NewService создает новый экземпляр сервиса занятий
func NewService(
	lessonRepo LessonRepository,
	notificationRepo NotificationRepository,
	logger Logger,
) *Service {
	return &Service{
		lessonRepo:       lessonRepo,
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

// GetByID получает занятие по ID
// Проверяет права доступа - занятие видят только его студент и преподаватель
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.LessonResponse, error) {
	s.logger.Info("GetByID: fetching lesson id=%d for user=%d", id, userID)

	lesson, err := s.getLesson(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	// Проверяем права доступа
	if !isParticipant(lesson, userID) {
		s.logger.Warn("GetByID: access denied for user=%d to lesson id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched lesson id=%d", id)
	return models.FromDomainLesson(lesson), nil
}

// GetStudentLessons получает историю занятий студента
// Опционально фильтрует по статусу
func (s *Service) GetStudentLessons(ctx context.Context, req *models.GetStudentLessonsRequest) (*models.LessonListResponse, error) {
	s.logger.Info("GetStudentLessons: fetching lessons for student=%d, status=%v", req.StudentID, req.Status)

	// Конвертируем статус из строки в domain.LessonStatus
	var domainStatus *domain.LessonStatus
	if req.Status != nil {
		status, err := models.ToDomainLessonStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetStudentLessons: invalid status=%s for student=%d", *req.Status, req.StudentID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	lessons, err := s.lessonRepo.GetByStudentID(ctx, req.StudentID, domainStatus)
	if err != nil {
		s.logger.Error("GetStudentLessons: repository error for student=%d: %v", req.StudentID, err)
		return nil, fmt.Errorf("%w: GetStudentLessons - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetStudentLessons: successfully fetched %d lessons for student=%d", len(lessons), req.StudentID)
	return models.FromDomainLessonList(lessons), nil
}

// GetTeacherLessons получает занятия преподавателя с гибкой фильтрацией
// Поддерживает фильтрацию по периоду, статусу и включение неактивных занятий
// Доступно только самому преподавателю
func (s *Service) GetTeacherLessons(ctx context.Context, req *models.GetTeacherLessonsRequest) (*models.LessonListResponse, error) {
	s.logger.Info("GetTeacherLessons: fetching lessons for teacher=%d, user=%d", req.TeacherID, req.UserID)

	// Календарь преподавателя видит только он сам
	if req.UserID != req.TeacherID {
		s.logger.Warn("GetTeacherLessons: access denied for user=%d to teacher=%d calendar", req.UserID, req.TeacherID)
		return nil, ErrAccessDenied
	}

	// Конвертируем request в domain фильтр
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetTeacherLessons: invalid filter for teacher=%d: %v", req.TeacherID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	lessons, err := s.lessonRepo.GetByTeacherWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetTeacherLessons: repository error for teacher=%d: %v", req.TeacherID, err)
		return nil, fmt.Errorf("%w: GetTeacherLessons - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetTeacherLessons: successfully fetched %d lessons for teacher=%d", len(lessons), req.TeacherID)
	return models.FromDomainLessonList(lessons), nil
}

// Cancel отменяет занятие
// Отменить может студент или преподаватель занятия, пока оно в статусе
// pending или confirmed. Второй участник получает уведомление.
func (s *Service) Cancel(ctx context.Context, lessonID int64, req *models.CancelLessonRequest) error {
	s.logger.Info("Cancel: cancelling lesson id=%d by user=%d", lessonID, req.UserID)

	lesson, err := s.getLesson(ctx, "Cancel", lessonID)
	if err != nil {
		return err
	}

	// Отменить занятие могут только его участники
	if !isParticipant(lesson, req.UserID) {
		s.logger.Warn("Cancel: access denied for user=%d to cancel lesson id=%d", req.UserID, lessonID)
		return ErrAccessDenied
	}

	// Проверяем, можно ли отменить занятие
	if !lesson.CanBeCancelled() {
		s.logger.Warn("Cancel: lesson id=%d cannot be cancelled, status=%s", lessonID, lesson.Status)
		return ErrCannotCancel
	}

	if err := s.lessonRepo.UpdateStatus(ctx, lessonID, domain.LessonStatusCancelled); err != nil {
		if errors.Is(err, lessonRepo.ErrLessonNotFound) {
			s.logger.Warn("Cancel: lesson id=%d not found during cancellation", lessonID)
			return ErrLessonNotFound
		}
		s.logger.Error("Cancel: repository error for lesson id=%d: %v", lessonID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// Уведомляем второго участника
	s.notifyCounterparty(ctx, lesson, req.UserID, domain.NotificationLessonCancelled,
		fmt.Sprintf("Занятие %s в %s отменено", lesson.Date.Format(domain.DateFormat), lesson.StartTime))

	s.logger.Info("Cancel: successfully cancelled lesson id=%d", lessonID)
	return nil
}

// UpdateStatus обновляет статус занятия решением преподавателя
// Доступно только преподавателю занятия. Допустимые переходы:
// pending -> confirmed, pending -> rejected, confirmed -> completed.
// Отмена выполняется отдельной операцией Cancel.
func (s *Service) UpdateStatus(ctx context.Context, lessonID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating lesson id=%d to status=%s by user=%d",
		lessonID, req.Status, req.UserID)

	lesson, err := s.getLesson(ctx, "UpdateStatus", lessonID)
	if err != nil {
		return err
	}

	// Статусом занятия распоряжается только преподаватель
	if lesson.TeacherID != req.UserID {
		s.logger.Warn("UpdateStatus: access denied for user=%d to lesson id=%d", req.UserID, lessonID)
		return ErrAccessDenied
	}

	// Валидируем и конвертируем статус
	newStatus, err := models.ToDomainLessonStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for lesson id=%d", req.Status, lessonID)
		return fmt.Errorf("%w: invalid status", ErrInvalidStatus)
	}

	// Проверяем переход по состояниям занятия
	notificationType, message, err := s.checkTransition(lesson, newStatus)
	if err != nil {
		s.logger.Warn("UpdateStatus: transition %s -> %s is not allowed for lesson id=%d",
			lesson.Status, newStatus, lessonID)
		return err
	}

	if err := s.lessonRepo.UpdateStatus(ctx, lessonID, newStatus); err != nil {
		if errors.Is(err, lessonRepo.ErrLessonNotFound) {
			s.logger.Warn("UpdateStatus: lesson id=%d not found during update", lessonID)
			return ErrLessonNotFound
		}
		s.logger.Error("UpdateStatus: repository error for lesson id=%d: %v", lessonID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	// Уведомляем студента о решении преподавателя
	if notificationType != "" {
		s.notifyCounterparty(ctx, lesson, req.UserID, notificationType, message)
	}

	s.logger.Info("UpdateStatus: successfully updated lesson id=%d to status=%s", lessonID, newStatus)
	return nil
}

// Вспомогательные методы

// getLesson получает занятие по ID с единообразной обработкой ошибок
func (s *Service) getLesson(ctx context.Context, op string, id int64) (*domain.Lesson, error) {
	lesson, err := s.lessonRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, lessonRepo.ErrLessonNotFound) {
			s.logger.Warn("%s: lesson id=%d not found", op, id)
			return nil, ErrLessonNotFound
		}
		s.logger.Error("%s: repository error for lesson id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return lesson, nil
}

// checkTransition проверяет допустимость перехода и возвращает параметры
// уведомления студенту
func (s *Service) checkTransition(lesson *domain.Lesson, newStatus domain.LessonStatus) (domain.NotificationType, string, error) {
	date := lesson.Date.Format(domain.DateFormat)

	switch newStatus {
	case domain.LessonStatusConfirmed:
		if !lesson.CanBeDecided() {
			return "", "", ErrInvalidTransition
		}
		return domain.NotificationLessonConfirmed,
			fmt.Sprintf("Занятие %s в %s подтверждено", date, lesson.StartTime), nil
	case domain.LessonStatusRejected:
		if !lesson.CanBeDecided() {
			return "", "", ErrInvalidTransition
		}
		return domain.NotificationLessonRejected,
			fmt.Sprintf("Заявка на занятие %s в %s отклонена", date, lesson.StartTime), nil
	case domain.LessonStatusCompleted:
		if !lesson.CanBeCompleted() {
			return "", "", ErrInvalidTransition
		}
		// Завершение занятия не порождает уведомления
		return "", "", nil
	default:
		// pending и cancelled не устанавливаются через это API
		return "", "", ErrInvalidTransition
	}
}

// notifyCounterparty создает уведомление второму участнику занятия.
// Сбой создания уведомления не откатывает смену статуса.
func (s *Service) notifyCounterparty(ctx context.Context, lesson *domain.Lesson, actorID int64, nType domain.NotificationType, message string) {
	recipientID := lesson.StudentID
	if actorID == lesson.StudentID {
		recipientID = lesson.TeacherID
	}

	notification := &domain.Notification{
		UserID:   recipientID,
		Type:     nType,
		Message:  message,
		LessonID: &lesson.ID,
	}

	if _, err := s.notificationRepo.Create(ctx, notification); err != nil {
		s.logger.Error("notifyCounterparty: failed to create notification for user=%d lesson=%d: %v",
			recipientID, lesson.ID, err)
	}
}

// isParticipant проверяет, что пользователь является участником занятия
func isParticipant(lesson *domain.Lesson, userID int64) bool {
	return lesson.StudentID == userID || lesson.TeacherID == userID
}
