package create_lesson

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/MTC-LessonService/internal/domain"
	profileRepo "github.com/m04kA/MTC-LessonService/internal/infra/storage/teacherprofile"
	"github.com/m04kA/MTC-LessonService/pkg/types"
)

// UseCase use case бронирования занятия.
// Занятие, платёжная запись и уведомление преподавателю создаются как одна
// логическая единица внутри СЕРИАЛИЗУЕМОЙ транзакции: сбой любого шага
// откатывает всё, частичное состояние (занятие без платежа) невозможно.
//
// Внутри той же транзакции слот перепроверяется по свежим данным (занятия
// даты читаются с блокировкой FOR UPDATE). Это закрывает гонку двойного
// бронирования между вычислением слотов на клиенте и подтверждением:
// второй конкурентный запрос на тот же слот получит ErrSlotNotAvailable.
type UseCase struct {
	lessonRepo       LessonRepository
	paymentRepo      PaymentRepository
	notificationRepo NotificationRepository
	subscriptionRepo SubscriptionRepository
	profileRepo      ProfileRepository
	availabilityRepo AvailabilityRepository
	blockedSlotRepo  BlockedSlotRepository
	txManager        TransactionManager
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	lessonRepo LessonRepository,
	paymentRepo PaymentRepository,
	notificationRepo NotificationRepository,
	subscriptionRepo SubscriptionRepository,
	profileRepo ProfileRepository,
	availabilityRepo AvailabilityRepository,
	blockedSlotRepo BlockedSlotRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		lessonRepo:       lessonRepo,
		paymentRepo:      paymentRepo,
		notificationRepo: notificationRepo,
		subscriptionRepo: subscriptionRepo,
		profileRepo:      profileRepo,
		availabilityRepo: availabilityRepo,
		blockedSlotRepo:  blockedSlotRepo,
		txManager:        txManager,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case бронирования занятия
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateLesson: student=%d, teacher=%d, date=%s, time=%s, duration=%d",
		req.StudentID, req.TeacherID, req.Date.Format(domain.DateFormat), req.StartTime, req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateLesson: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Дата занятия не в прошлом
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("CreateLesson: date validation failed: %v", err)
		return nil, err
	}

	// 4. Студент должен быть подписан на преподавателя
	subscribed, err := uc.subscriptionRepo.Exists(ctx, req.StudentID, req.TeacherID)
	if err != nil {
		uc.logger.Error("CreateLesson: failed to check subscription student=%d teacher=%d: %v",
			req.StudentID, req.TeacherID, err)
		return nil, fmt.Errorf("%w: failed to check subscription: %v", ErrInternal, err)
	}
	if !subscribed {
		uc.logger.Warn("CreateLesson: student=%d is not subscribed to teacher=%d", req.StudentID, req.TeacherID)
		return nil, ErrNotSubscribed
	}

	// 5. Профиль преподавателя: ставка, длительности, политика авто-подтверждения
	profile, err := uc.profileRepo.GetByTeacherID(ctx, req.TeacherID)
	if err != nil {
		if errors.Is(err, profileRepo.ErrProfileNotFound) {
			uc.logger.Warn("CreateLesson: teacher id=%d profile not found", req.TeacherID)
			return nil, ErrTeacherNotFound
		}
		uc.logger.Error("CreateLesson: failed to get profile for teacher=%d: %v", req.TeacherID, err)
		return nil, fmt.Errorf("%w: failed to get profile: %v", ErrInternal, err)
	}

	// 6. Длительность должна входить в настроенные преподавателем варианты
	if !profile.AllowsDuration(req.DurationMinutes) {
		uc.logger.Warn("CreateLesson: duration=%d is not offered by teacher=%d",
			req.DurationMinutes, req.TeacherID)
		return nil, ErrDurationNotAllowed
	}

	// 7. Вычисляем границы и стоимость занятия.
	// Сумма фиксируется один раз в момент бронирования и далее не
	// пересчитывается, даже если преподаватель изменит ставку.
	endTime, err := req.StartTime.AddMinutes(req.DurationMinutes)
	if err != nil {
		uc.logger.Warn("CreateLesson: failed to compute end time: %v", err)
		return nil, fmt.Errorf("%w: invalid start time / duration combination: %v", ErrInvalidInput, err)
	}

	status := profile.InitialLessonStatus()
	amount := domain.LessonAmount(req.DurationMinutes, profile.HourlyRate)
	month := domain.MonthString(req.Date)

	var (
		createdLesson  *domain.Lesson
		createdPayment *domain.Payment
	)

	// 8. Занятие + платёж + уведомление в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 8.1. Свежий снимок расписания даты; занятия читаются FOR UPDATE
		availability, err := uc.availabilityRepo.ListByTeacher(txCtx, req.TeacherID)
		if err != nil {
			uc.logger.Error("CreateLesson: failed to list availability: %v", err)
			return fmt.Errorf("%w: failed to list availability: %v", ErrInternal, err)
		}

		blocked, err := uc.blockedSlotRepo.ListByTeacherBetween(txCtx, req.TeacherID, req.Date, req.Date)
		if err != nil {
			uc.logger.Error("CreateLesson: failed to list blocked slots: %v", err)
			return fmt.Errorf("%w: failed to list blocked slots: %v", ErrInternal, err)
		}

		filter := domain.TeacherLessonsFilter{
			TeacherID:       req.TeacherID,
			StartDate:       &req.Date,
			EndDate:         &req.Date,
			IncludeInactive: false,
		}
		lessons, err := uc.lessonRepo.GetByTeacherWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateLesson: failed to get lessons: %v", err)
			return fmt.Errorf("%w: failed to get lessons: %v", ErrInternal, err)
		}

		// 8.2. Перепроверяем выбранный слот по свежим данным
		if err := validateSlotStillAvailable(req, endTime, availability, blocked, lessons); err != nil {
			uc.logger.Warn("CreateLesson: slot %s-%s on %s is no longer available for teacher=%d",
				req.StartTime, endTime, req.Date.Format(domain.DateFormat), req.TeacherID)
			return err
		}

		// 8.3. Создаем занятие
		lesson := &domain.Lesson{
			TeacherID:       req.TeacherID,
			StudentID:       req.StudentID,
			Date:            req.Date,
			StartTime:       req.StartTime,
			EndTime:         endTime,
			DurationMinutes: req.DurationMinutes,
			Status:          status,
			Notes:           req.Notes,
		}

		createdLesson, err = uc.lessonRepo.Create(txCtx, lesson)
		if err != nil {
			uc.logger.Error("CreateLesson: failed to create lesson: %v", err)
			return fmt.Errorf("%w: failed to create lesson: %v", ErrInternal, err)
		}

		// 8.4. Создаем платёжную запись
		payment := &domain.Payment{
			LessonID:  createdLesson.ID,
			TeacherID: req.TeacherID,
			StudentID: req.StudentID,
			Amount:    amount,
			Status:    domain.PaymentStatusUnpaid,
			Month:     month,
		}

		createdPayment, err = uc.paymentRepo.Create(txCtx, payment)
		if err != nil {
			uc.logger.Error("CreateLesson: failed to create payment: %v", err)
			return fmt.Errorf("%w: failed to create payment: %v", ErrInternal, err)
		}

		// 8.5. Создаем уведомление преподавателю
		notification := &domain.Notification{
			UserID:   req.TeacherID,
			Type:     notificationType(status),
			Message:  notificationMessage(req, status),
			LessonID: &createdLesson.ID,
		}

		if _, err := uc.notificationRepo.Create(txCtx, notification); err != nil {
			uc.logger.Error("CreateLesson: failed to create notification: %v", err)
			return fmt.Errorf("%w: failed to create notification: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateLesson: created lesson id=%d status=%s payment id=%d amount=%.2f",
		createdLesson.ID, createdLesson.Status, createdPayment.ID, createdPayment.Amount)

	return &Response{
		ID:              createdLesson.ID,
		TeacherID:       createdLesson.TeacherID,
		StudentID:       createdLesson.StudentID,
		Date:            createdLesson.Date,
		StartTime:       createdLesson.StartTime,
		EndTime:         createdLesson.EndTime,
		DurationMinutes: createdLesson.DurationMinutes,
		Status:          string(createdLesson.Status),
		Notes:           createdLesson.Notes,
		PaymentID:       createdPayment.ID,
		Amount:          createdPayment.Amount,
		Month:           createdPayment.Month,
		CreatedAt:       createdLesson.CreatedAt,
	}, nil
}

// validateSlotStillAvailable перепроверяет, что запрошенный слот существует
// среди слотов даты и всё ещё свободен
func validateSlotStillAvailable(
	req *Request,
	endTime types.TimeString,
	availability []*domain.Availability,
	blocked []*domain.BlockedSlot,
	lessons []*domain.Lesson,
) error {
	resolved, err := domain.ResolveSlotsForDate(req.Date, availability, blocked, lessons, req.DurationMinutes)
	if err != nil {
		return fmt.Errorf("%w: failed to resolve slots: %v", ErrInternal, err)
	}

	for _, slot := range resolved {
		if slot.StartTime == req.StartTime && slot.EndTime == endTime {
			if !slot.Available {
				return ErrSlotNotAvailable
			}
			return nil
		}
	}

	// Слот вообще не порождается окнами этой даты
	return ErrSlotNotAvailable
}

// notificationType тип уведомления преподавателю о новом занятии
func notificationType(status domain.LessonStatus) domain.NotificationType {
	if status == domain.LessonStatusConfirmed {
		return domain.NotificationLessonConfirmed
	}
	return domain.NotificationLessonRequest
}

// notificationMessage текст уведомления преподавателю
func notificationMessage(req *Request, status domain.LessonStatus) string {
	date := req.Date.Format(domain.DateFormat)
	if status == domain.LessonStatusConfirmed {
		return fmt.Sprintf("Новое занятие %s в %s (подтверждено автоматически)", date, req.StartTime)
	}
	return fmt.Sprintf("Новая заявка на занятие %s в %s", date, req.StartTime)
}
