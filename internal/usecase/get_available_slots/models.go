package get_available_slots

import (
	"time"

	"github.com/m04kA/MTC-LessonService/pkg/types"
)

// Request модель запроса на получение слотов преподавателя
type Request struct {
	TeacherID       int64     // ID преподавателя
	Date            time.Time // Дата занятия (без времени)
	DurationMinutes int       // Запрошенная длительность занятия
}

// Slot слот с признаком доступности
type Slot struct {
	StartTime types.TimeString
	EndTime   types.TimeString
	Available bool
}

// Response модель ответа со слотами на дату
type Response struct {
	TeacherID       int64
	Date            time.Time
	DurationMinutes int
	Slots           []Slot
}
