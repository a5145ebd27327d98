package reservations

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidTransition возвращается при недопустимом переходе статуса
	// (cancelled и completed - терминальные состояния)
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrSlotTaken возвращается, когда новое время пересекается с другим
	// подтвержденным бронированием преподавателя
	ErrSlotTaken = errors.New("slot is already taken")

	// ErrPlanNotFound возвращается при неизвестном тарифном плане
	ErrPlanNotFound = errors.New("course plan not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
