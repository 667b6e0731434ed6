package get_available_slots

import (
	"fmt"

	"github.com/m04kA/MTC-LessonService/internal/domain"
)

// validateRequest валидирует входные данные запроса.
// Длительность проверяется только механически (положительная, в разумных
// пределах); сверка с настроенными преподавателем длительностями - забота
// вызывающей стороны и usecase бронирования.
func validateRequest(req *Request) error {
	if req.TeacherID <= 0 {
		return fmt.Errorf("%w: teacherID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.DurationMinutes <= 0 {
		return fmt.Errorf("%w: duration must be positive", ErrInvalidInput)
	}

	if req.DurationMinutes > domain.MaxLessonDurationMinutes {
		return fmt.Errorf("%w: duration must not exceed %d minutes", ErrInvalidInput, domain.MaxLessonDurationMinutes)
	}

	return nil
}
