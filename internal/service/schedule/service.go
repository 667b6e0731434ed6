package schedule

import (
	"context"
	"errors"
	"fmt"

	availabilityRepo "github.com/m04kA/MTC-LessonService/internal/infra/storage/availability"
	blockedSlotRepo "github.com/m04kA/MTC-LessonService/internal/infra/storage/blockedslot"
	"github.com/m04kA/MTC-LessonService/internal/service/schedule/models"
)

// Service сервис для управления расписанием преподавателя:
// недельными окнами доступности и блокировками конкретных дат
type Service struct {
	availabilityRepo AvailabilityRepository
	blockedSlotRepo  BlockedSlotRepository
	logger           Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	availabilityRepo AvailabilityRepository,
	blockedSlotRepo BlockedSlotRepository,
	logger Logger,
) *Service {
	return &Service{
		availabilityRepo: availabilityRepo,
		blockedSlotRepo:  blockedSlotRepo,
		logger:           logger,
	}
}

// CreateAvailability создает недельное окно доступности
// Доступно только самому преподавателю
func (s *Service) CreateAvailability(ctx context.Context, req *models.CreateAvailabilityRequest) (*models.AvailabilityResponse, error) {
	s.logger.Info("CreateAvailability: teacher=%d, day=%d, %s-%s",
		req.TeacherID, req.DayOfWeek, req.StartTime, req.EndTime)

	if err := s.checkTeacherAccess(req.UserID, req.TeacherID); err != nil {
		s.logger.Warn("CreateAvailability: access denied for user=%d to teacher=%d", req.UserID, req.TeacherID)
		return nil, err
	}

	window := req.ToDomain()
	if err := window.Validate(); err != nil {
		s.logger.Warn("CreateAvailability: validation failed for teacher=%d: %v", req.TeacherID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.availabilityRepo.Create(ctx, window)
	if err != nil {
		s.logger.Error("CreateAvailability: repository error for teacher=%d: %v", req.TeacherID, err)
		return nil, fmt.Errorf("%w: CreateAvailability - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateAvailability: successfully created window id=%d for teacher=%d", created.ID, req.TeacherID)
	return models.FromDomainAvailability(created), nil
}

// DeleteAvailability удаляет недельное окно доступности
// Доступно только самому преподавателю. Уже созданные занятия не затрагиваются.
func (s *Service) DeleteAvailability(ctx context.Context, id int64, userID int64) error {
	s.logger.Info("DeleteAvailability: deleting window id=%d by user=%d", id, userID)

	// Удаление ограничено owner-ом на уровне запроса (WHERE teacher_id)
	if err := s.availabilityRepo.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, availabilityRepo.ErrAvailabilityNotFound) {
			s.logger.Warn("DeleteAvailability: window id=%d not found for teacher=%d", id, userID)
			return ErrAvailabilityNotFound
		}
		s.logger.Error("DeleteAvailability: repository error for window id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteAvailability - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteAvailability: successfully deleted window id=%d", id)
	return nil
}

// CreateBlockedSlot создает блокировку даты (целиком или частично)
// Доступно только самому преподавателю
func (s *Service) CreateBlockedSlot(ctx context.Context, req *models.CreateBlockedSlotRequest) (*models.BlockedSlotResponse, error) {
	s.logger.Info("CreateBlockedSlot: teacher=%d, date=%s, allDay=%v",
		req.TeacherID, req.Date.Format("2006-01-02"), req.AllDay)

	if err := s.checkTeacherAccess(req.UserID, req.TeacherID); err != nil {
		s.logger.Warn("CreateBlockedSlot: access denied for user=%d to teacher=%d", req.UserID, req.TeacherID)
		return nil, err
	}

	if req.Date.IsZero() {
		s.logger.Warn("CreateBlockedSlot: missing date for teacher=%d", req.TeacherID)
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	slot := req.ToDomain()
	if err := slot.Validate(); err != nil {
		s.logger.Warn("CreateBlockedSlot: validation failed for teacher=%d: %v", req.TeacherID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.blockedSlotRepo.Create(ctx, slot)
	if err != nil {
		s.logger.Error("CreateBlockedSlot: repository error for teacher=%d: %v", req.TeacherID, err)
		return nil, fmt.Errorf("%w: CreateBlockedSlot - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateBlockedSlot: successfully created blocked slot id=%d for teacher=%d", created.ID, req.TeacherID)
	return models.FromDomainBlockedSlot(created), nil
}

// DeleteBlockedSlot удаляет блокировку
// Доступно только самому преподавателю
func (s *Service) DeleteBlockedSlot(ctx context.Context, id int64, userID int64) error {
	s.logger.Info("DeleteBlockedSlot: deleting blocked slot id=%d by user=%d", id, userID)

	if err := s.blockedSlotRepo.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, blockedSlotRepo.ErrBlockedSlotNotFound) {
			s.logger.Warn("DeleteBlockedSlot: blocked slot id=%d not found for teacher=%d", id, userID)
			return ErrBlockedSlotNotFound
		}
		s.logger.Error("DeleteBlockedSlot: repository error for blocked slot id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteBlockedSlot - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteBlockedSlot: successfully deleted blocked slot id=%d", id)
	return nil
}

// GetTeacherSchedule возвращает полное расписание преподавателя:
// все недельные окна и все блокировки. Публичная операция.
func (s *Service) GetTeacherSchedule(ctx context.Context, teacherID int64) (*models.ScheduleResponse, error) {
	s.logger.Info("GetTeacherSchedule: fetching schedule for teacher=%d", teacherID)

	availability, err := s.availabilityRepo.ListByTeacher(ctx, teacherID)
	if err != nil {
		s.logger.Error("GetTeacherSchedule: failed to list availability for teacher=%d: %v", teacherID, err)
		return nil, fmt.Errorf("%w: GetTeacherSchedule - repository error: %v", ErrInternal, err)
	}

	blocked, err := s.blockedSlotRepo.ListByTeacher(ctx, teacherID)
	if err != nil {
		s.logger.Error("GetTeacherSchedule: failed to list blocked slots for teacher=%d: %v", teacherID, err)
		return nil, fmt.Errorf("%w: GetTeacherSchedule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetTeacherSchedule: fetched %d windows and %d blocked slots for teacher=%d",
		len(availability), len(blocked), teacherID)

	return &models.ScheduleResponse{
		TeacherID:    teacherID,
		Availability: models.FromDomainAvailabilityList(availability),
		BlockedSlots: models.FromDomainBlockedSlotList(blocked),
	}, nil
}

// checkTeacherAccess проверяет, что пользователь управляет своим расписанием
func (s *Service) checkTeacherAccess(userID, teacherID int64) error {
	if userID != teacherID {
		return ErrAccessDenied
	}
	return nil
}
