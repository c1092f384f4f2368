package book_slot

import "errors"

var (
	// ErrInvalidAccessCode возвращается, когда код доступа не распознан
	ErrInvalidAccessCode = errors.New("book_slot: access code not recognized")

	// ErrSlotUnavailable возвращается, когда слот не существует, не видим,
	// принадлежит другому учителю или уже занят активной записью.
	// Причина намеренно не различается - родителю важно одно: слот недоступен
	ErrSlotUnavailable = errors.New("book_slot: slot is no longer available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("book_slot: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("book_slot: internal error")
)
