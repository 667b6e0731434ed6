package create_lesson

import (
	"time"

	"github.com/m04kA/MTC-LessonService/pkg/types"
)

// Request модель запроса на бронирование занятия
type Request struct {
	StudentID       int64            // ID студента (из заголовка аутентификации)
	TeacherID       int64            // ID преподавателя
	Date            time.Time        // Дата занятия (без времени)
	StartTime       types.TimeString // Время начала слота (например, "10:00")
	DurationMinutes int              // Длительность занятия в минутах
	Notes           *string          // Пожелания студента (опционально)
}

// Response модель ответа с созданным занятием и платёжной записью
type Response struct {
	ID              int64            // ID созданного занятия
	TeacherID       int64            // ID преподавателя
	StudentID       int64            // ID студента
	Date            time.Time        // Дата занятия
	StartTime       types.TimeString // Время начала
	EndTime         types.TimeString // Время окончания
	DurationMinutes int              // Длительность в минутах
	Status          string           // Статус занятия (confirmed при авто-подтверждении, иначе pending)
	Notes           *string          // Пожелания

	// Платёжная запись, созданная вместе с занятием
	PaymentID int64   // ID платёжной записи
	Amount    float64 // Сумма (ставка * длительность/60)
	Month     string  // Биллинговый месяц YYYY-MM

	CreatedAt time.Time // Время создания
}
