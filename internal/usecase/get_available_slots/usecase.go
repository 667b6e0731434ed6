package get_available_slots

import (
	"context"
	"fmt"

	"github.com/m04kA/MTC-LessonService/internal/domain"
)

// UseCase use case для получения слотов преподавателя на дату.
// Чистое вычисление поверх снимка данных: еженедельные окна доступности,
// разовые блокировки и занимающие календарь занятия сливаются в список
// слотов фиксированной длительности с признаком доступности.
type UseCase struct {
	availabilityRepo AvailabilityRepository
	blockedSlotRepo  BlockedSlotRepository
	lessonRepo       LessonRepository
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	availabilityRepo AvailabilityRepository,
	blockedSlotRepo BlockedSlotRepository,
	lessonRepo LessonRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		availabilityRepo: availabilityRepo,
		blockedSlotRepo:  blockedSlotRepo,
		lessonRepo:       lessonRepo,
		logger:           logger,
	}
}

// Execute выполняет use case получения слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: teacher=%d, date=%s, duration=%d",
		req.TeacherID, req.Date.Format(domain.DateFormat), req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Снимок данных: окна, блокировки и занятия на эту дату
	availability, err := uc.availabilityRepo.ListByTeacher(ctx, req.TeacherID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list availability for teacher=%d: %v", req.TeacherID, err)
		return nil, fmt.Errorf("%w: failed to list availability: %v", ErrInternal, err)
	}

	blocked, err := uc.blockedSlotRepo.ListByTeacherBetween(ctx, req.TeacherID, req.Date, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list blocked slots for teacher=%d: %v", req.TeacherID, err)
		return nil, fmt.Errorf("%w: failed to list blocked slots: %v", ErrInternal, err)
	}

	filter := domain.TeacherLessonsFilter{
		TeacherID:       req.TeacherID,
		StartDate:       &req.Date,
		EndDate:         &req.Date,
		IncludeInactive: false, // Отменённые и отклонённые занятия календарь не занимают
	}
	lessons, err := uc.lessonRepo.GetByTeacherWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get lessons for teacher=%d: %v", req.TeacherID, err)
		return nil, fmt.Errorf("%w: failed to get lessons: %v", ErrInternal, err)
	}

	// 3. Резолвим слоты (дата без окон на этот день недели - пустой список)
	resolved, err := domain.ResolveSlotsForDate(req.Date, availability, blocked, lessons, req.DurationMinutes)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to resolve slots: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve slots: %v", ErrInternal, err)
	}

	slots := make([]Slot, len(resolved))
	for i, s := range resolved {
		slots[i] = Slot{StartTime: s.StartTime, EndTime: s.EndTime, Available: s.Available}
	}

	uc.logger.Info("GetAvailableSlots: resolved %d slots for teacher=%d, date=%s",
		len(slots), req.TeacherID, req.Date.Format(domain.DateFormat))

	return &Response{
		TeacherID:       req.TeacherID,
		Date:            req.Date,
		DurationMinutes: req.DurationMinutes,
		Slots:           slots,
	}, nil
}
