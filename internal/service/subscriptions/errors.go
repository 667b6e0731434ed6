package subscriptions

import "errors"

var (
	// ErrAlreadySubscribed возвращается при повторной подписке на преподавателя
	ErrAlreadySubscribed = errors.New("student is already subscribed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
