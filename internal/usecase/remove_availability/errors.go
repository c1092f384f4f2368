package remove_availability

import "errors"

var (
	// ErrSlotInUse возвращается, когда среди удаляемых слотов есть активные записи
	// Операция отклоняется целиком, ни один слот не удаляется
	ErrSlotInUse = errors.New("remove_availability: slot has scheduled appointments")

	// ErrInvalidInput возвращается при невалидных входных данных
	ErrInvalidInput = errors.New("remove_availability: invalid input")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("remove_availability: internal error")
)
