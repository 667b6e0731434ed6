package create_lesson

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_lesson: invalid input data")

	// ErrTeacherNotFound возвращается, когда профиль преподавателя не найден
	ErrTeacherNotFound = errors.New("create_lesson: teacher profile not found")

	// ErrNotSubscribed возвращается, когда студент не подписан на преподавателя
	ErrNotSubscribed = errors.New("create_lesson: student is not subscribed to teacher")

	// ErrDurationNotAllowed возвращается, когда длительность не входит в
	// настроенные преподавателем варианты
	ErrDurationNotAllowed = errors.New("create_lesson: duration is not offered by teacher")

	// ErrInvalidDate возвращается при некорректной дате занятия
	ErrInvalidDate = errors.New("create_lesson: invalid lesson date")

	// ErrSlotNotAvailable возвращается, когда выбранный слот больше недоступен
	// (перепроверка внутри транзакции нашла конфликт)
	ErrSlotNotAvailable = errors.New("create_lesson: slot is no longer available")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_lesson: internal error")
)
