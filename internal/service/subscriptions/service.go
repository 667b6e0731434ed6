package subscriptions

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/MTC-LessonService/internal/domain"
	subscriptionRepo "github.com/m04kA/MTC-LessonService/internal/infra/storage/subscription"
	"github.com/m04kA/MTC-LessonService/internal/service/subscriptions/models"
)

// Service сервис для работы с подписками студентов на преподавателей
type Service struct {
	subscriptionRepo SubscriptionRepository
	logger           Logger
}

// NewService создает новый экземпляр сервиса подписок
func NewService(subscriptionRepo SubscriptionRepository, logger Logger) *Service {
	return &Service{
		subscriptionRepo: subscriptionRepo,
		logger:           logger,
	}
}

// Subscribe подписывает студента на преподавателя
// Подписка обязательна для бронирования занятий
func (s *Service) Subscribe(ctx context.Context, req *models.SubscribeRequest) (*models.SubscriptionResponse, error) {
	s.logger.Info("Subscribe: student=%d subscribing to teacher=%d", req.StudentID, req.TeacherID)

	if req.TeacherID <= 0 {
		s.logger.Warn("Subscribe: invalid teacherID=%d", req.TeacherID)
		return nil, fmt.Errorf("%w: teacherID must be positive", ErrInvalidInput)
	}
	if req.StudentID == req.TeacherID {
		s.logger.Warn("Subscribe: student=%d tried to subscribe to themselves", req.StudentID)
		return nil, fmt.Errorf("%w: cannot subscribe to yourself", ErrInvalidInput)
	}

	created, err := s.subscriptionRepo.Create(ctx, &domain.Subscription{
		StudentID: req.StudentID,
		TeacherID: req.TeacherID,
	})
	if err != nil {
		if errors.Is(err, subscriptionRepo.ErrAlreadySubscribed) {
			s.logger.Warn("Subscribe: student=%d is already subscribed to teacher=%d", req.StudentID, req.TeacherID)
			return nil, ErrAlreadySubscribed
		}
		s.logger.Error("Subscribe: repository error for student=%d teacher=%d: %v", req.StudentID, req.TeacherID, err)
		return nil, fmt.Errorf("%w: Subscribe - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Subscribe: successfully created subscription id=%d", created.ID)
	return models.FromDomainSubscription(created), nil
}

// ListByStudent получает подписки студента
func (s *Service) ListByStudent(ctx context.Context, studentID int64) (*models.SubscriptionListResponse, error) {
	s.logger.Info("ListByStudent: fetching subscriptions for student=%d", studentID)

	subs, err := s.subscriptionRepo.ListByStudent(ctx, studentID)
	if err != nil {
		s.logger.Error("ListByStudent: repository error for student=%d: %v", studentID, err)
		return nil, fmt.Errorf("%w: ListByStudent - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByStudent: successfully fetched %d subscriptions for student=%d", len(subs), studentID)
	return models.FromDomainSubscriptionList(subs), nil
}
