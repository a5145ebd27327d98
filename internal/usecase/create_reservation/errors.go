package create_reservation

import "errors"

var (
	// ErrAccessDenied возвращается, когда актор не вправе бронировать от имени студента
	ErrAccessDenied = errors.New("create_reservation: access denied")

	// ErrPlanNotFound возвращается при неизвестном тарифном плане
	ErrPlanNotFound = errors.New("create_reservation: course plan not found")

	// ErrInvalidDate возвращается при некорректной дате бронирования
	ErrInvalidDate = errors.New("create_reservation: invalid reservation date")

	// ErrInvalidTimeSlot возвращается, когда время не выровнено по сетке слотов
	// или выходит за рабочие часы
	ErrInvalidTimeSlot = errors.New("create_reservation: invalid time slot")

	// ErrSlotTaken возвращается, когда слот пересекается с другим подтвержденным
	// бронированием преподавателя
	ErrSlotTaken = errors.New("create_reservation: slot is already taken")

	// ErrQuotaExceeded возвращается, когда месячная квота тарифного плана исчерпана
	ErrQuotaExceeded = errors.New("create_reservation: monthly quota exceeded")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
