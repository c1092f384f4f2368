package declare_availability

import "errors"

var (
	// ErrInvalidWindow возвращается, когда временное окно не образует ни одного слота
	ErrInvalidWindow = errors.New("declare_availability: invalid time window")

	// ErrInvalidInput возвращается при невалидных входных данных
	ErrInvalidInput = errors.New("declare_availability: invalid input")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("declare_availability: internal error")
)
