package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/MTC-LessonService/internal/domain"
	profileRepo "github.com/m04kA/MTC-LessonService/internal/infra/storage/teacherprofile"
	"github.com/m04kA/MTC-LessonService/internal/service/config/models"
)

// Service сервис для работы с конфигурацией преподавателя
type Service struct {
	profileRepo ProfileRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса конфигурации
func NewService(profileRepo ProfileRepository, logger Logger) *Service {
	return &Service{
		profileRepo: profileRepo,
		logger:      logger,
	}
}

// Get получает конфигурацию преподавателя
// Публичный метод - доступен всем. Если преподаватель ещё не настраивал
// профиль, возвращаются значения по умолчанию.
func (s *Service) Get(ctx context.Context, teacherID int64) (*models.ConfigResponse, error) {
	s.logger.Info("Get: fetching config for teacher=%d", teacherID)

	profile, err := s.profileRepo.GetByTeacherID(ctx, teacherID)
	if err != nil {
		if errors.Is(err, profileRepo.ErrProfileNotFound) {
			s.logger.Info("Get: teacher=%d has no profile, returning defaults", teacherID)
			return models.FromDomainProfile(defaultProfile(teacherID)), nil
		}
		s.logger.Error("Get: repository error for teacher=%d: %v", teacherID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Get: successfully fetched config for teacher=%d", teacherID)
	return models.FromDomainProfile(profile), nil
}

// Update создает или обновляет конфигурацию преподавателя
// Доступно только самому преподавателю
func (s *Service) Update(ctx context.Context, req *models.UpdateConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("Update: updating config for teacher=%d by user=%d", req.TeacherID, req.UserID)

	// Конфигурацией распоряжается только сам преподаватель
	if req.UserID != req.TeacherID {
		s.logger.Warn("Update: access denied for user=%d to teacher=%d config", req.UserID, req.TeacherID)
		return nil, ErrAccessDenied
	}

	if err := validateConfig(req); err != nil {
		s.logger.Warn("Update: validation failed for teacher=%d: %v", req.TeacherID, err)
		return nil, err
	}

	updated, err := s.profileRepo.Upsert(ctx, req.ToDomain())
	if err != nil {
		s.logger.Error("Update: repository error for teacher=%d: %v", req.TeacherID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated config for teacher=%d", req.TeacherID)
	return models.FromDomainProfile(updated), nil
}

// validateConfig валидирует параметры конфигурации
func validateConfig(req *models.UpdateConfigRequest) error {
	if req.HourlyRate <= 0 {
		return fmt.Errorf("%w: hourlyRate must be positive", ErrInvalidInput)
	}

	if len(req.LessonDurations) == 0 {
		return fmt.Errorf("%w: at least one lesson duration is required", ErrInvalidInput)
	}

	for _, d := range req.LessonDurations {
		if d < domain.MinLessonDurationMinutes || d > domain.MaxLessonDurationMinutes {
			return fmt.Errorf("%w: lesson duration %d is out of range %d-%d",
				ErrInvalidInput, d, domain.MinLessonDurationMinutes, domain.MaxLessonDurationMinutes)
		}
	}

	return nil
}

// defaultProfile собирает профиль со значениями по умолчанию
func defaultProfile(teacherID int64) *domain.TeacherProfile {
	return &domain.TeacherProfile{
		TeacherID:       teacherID,
		HourlyRate:      domain.DefaultHourlyRate,
		LessonDurations: append([]int(nil), domain.DefaultLessonDurations...),
		AutoAccept:      false,
	}
}
