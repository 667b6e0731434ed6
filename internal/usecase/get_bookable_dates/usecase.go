package get_bookable_dates

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/MTC-LessonService/internal/domain"
	profileRepo "github.com/m04kA/MTC-LessonService/internal/infra/storage/teacherprofile"
)

// UseCase use case проверки доступности дат месяца.
// Управляет отключением дат в календаре студента: дата предлагается к
// выбору, если на неё влезает хотя бы одно занятие МИНИМАЛЬНОЙ настроенной
// длительности. Это консервативная проверка - последующий выбор большей
// длительности всё ещё может дать пустой список слотов, и UI обязан
// показать это как пустой результат, а не ошибку.
type UseCase struct {
	availabilityRepo AvailabilityRepository
	blockedSlotRepo  BlockedSlotRepository
	lessonRepo       LessonRepository
	profileRepo      ProfileRepository
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	availabilityRepo AvailabilityRepository,
	blockedSlotRepo BlockedSlotRepository,
	lessonRepo LessonRepository,
	profileRepo ProfileRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		availabilityRepo: availabilityRepo,
		blockedSlotRepo:  blockedSlotRepo,
		lessonRepo:       lessonRepo,
		profileRepo:      profileRepo,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case получения доступных дат
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetBookableDates: teacher=%d, month=%04d-%02d", req.TeacherID, req.Year, req.Month)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetBookableDates: validation failed: %v", err)
		return nil, err
	}

	// 2. Профиль преподавателя (нужны настроенные длительности занятий)
	profile, err := uc.profileRepo.GetByTeacherID(ctx, req.TeacherID)
	if err != nil {
		if errors.Is(err, profileRepo.ErrProfileNotFound) {
			uc.logger.Warn("GetBookableDates: teacher id=%d profile not found", req.TeacherID)
			return nil, ErrTeacherNotFound
		}
		uc.logger.Error("GetBookableDates: failed to get profile for teacher=%d: %v", req.TeacherID, err)
		return nil, fmt.Errorf("%w: failed to get profile: %v", ErrInternal, err)
	}

	durations := profile.LessonDurations
	if len(durations) == 0 {
		durations = domain.DefaultLessonDurations
	}

	// 3. Снимок данных на весь месяц одним чтением.
	// Границы месяца строятся в UTC - как и даты из запросов слотов и
	// бронирования, иначе сравнение с DATE-колонкой может сдвинуть
	// граничный день на серверах в не-UTC зоне.
	monthStart := time.Date(req.Year, time.Month(req.Month), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)

	availability, err := uc.availabilityRepo.ListByTeacher(ctx, req.TeacherID)
	if err != nil {
		uc.logger.Error("GetBookableDates: failed to list availability for teacher=%d: %v", req.TeacherID, err)
		return nil, fmt.Errorf("%w: failed to list availability: %v", ErrInternal, err)
	}

	blocked, err := uc.blockedSlotRepo.ListByTeacherBetween(ctx, req.TeacherID, monthStart, monthEnd)
	if err != nil {
		uc.logger.Error("GetBookableDates: failed to list blocked slots for teacher=%d: %v", req.TeacherID, err)
		return nil, fmt.Errorf("%w: failed to list blocked slots: %v", ErrInternal, err)
	}

	filter := domain.TeacherLessonsFilter{
		TeacherID:       req.TeacherID,
		StartDate:       &monthStart,
		EndDate:         &monthEnd,
		IncludeInactive: false,
	}
	lessons, err := uc.lessonRepo.GetByTeacherWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetBookableDates: failed to get lessons for teacher=%d: %v", req.TeacherID, err)
		return nil, fmt.Errorf("%w: failed to get lessons: %v", ErrInternal, err)
	}

	// 4. Проверяем каждый день месяца; прошедшие даты не предлагаем
	now := uc.timeProvider.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	dates := make([]string, 0)
	for day := monthStart; !day.After(monthEnd); day = day.AddDate(0, 0, 1) {
		if day.Before(today) {
			continue
		}

		feasible, err := domain.HasAvailableSlot(day, availability, blocked, lessons, durations)
		if err != nil {
			uc.logger.Error("GetBookableDates: feasibility check failed for %s: %v",
				day.Format(domain.DateFormat), err)
			return nil, fmt.Errorf("%w: feasibility check failed: %v", ErrInternal, err)
		}
		if feasible {
			dates = append(dates, day.Format(domain.DateFormat))
		}
	}

	uc.logger.Info("GetBookableDates: %d bookable dates for teacher=%d in %04d-%02d",
		len(dates), req.TeacherID, req.Year, req.Month)

	return &Response{
		TeacherID: req.TeacherID,
		Year:      req.Year,
		Month:     req.Month,
		Dates:     dates,
	}, nil
}

func validateRequest(req *Request) error {
	if req.TeacherID <= 0 {
		return fmt.Errorf("%w: teacherID must be positive", ErrInvalidInput)
	}
	if req.Year < 2000 || req.Year > 2200 {
		return fmt.Errorf("%w: year out of range", ErrInvalidInput)
	}
	if req.Month < 1 || req.Month > 12 {
		return fmt.Errorf("%w: month must be in range 1-12", ErrInvalidInput)
	}
	return nil
}
