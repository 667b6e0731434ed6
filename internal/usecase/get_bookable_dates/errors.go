package get_bookable_dates

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_bookable_dates: invalid input data")

	// ErrTeacherNotFound возвращается, когда профиль преподавателя не найден
	ErrTeacherNotFound = errors.New("get_bookable_dates: teacher profile not found")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_bookable_dates: internal error")
)
