package accesscode

import "errors"

var (
	// ErrAccessCodeNotFound возвращается, когда код доступа не распознан
	// Сообщение намеренно общее - не раскрываем, какая часть поиска не удалась
	ErrAccessCodeNotFound = errors.New("access code not recognized")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("accesscode: internal error")
)
