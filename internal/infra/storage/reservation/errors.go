package reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservation.repository: reservation not found")

	// ErrSlotTaken возвращается, когда слот уже занят подтвержденным бронированием
	// (нарушение exclusion-констрейнта reservations_no_overlap)
	ErrSlotTaken = errors.New("reservation.repository: slot is already taken")

	// ErrNotConfirmed возвращается, когда запись существует, но уже не в статусе confirmed
	ErrNotConfirmed = errors.New("reservation.repository: reservation is not confirmed")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("reservation.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("reservation.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("reservation.repository: failed to scan row")
)
