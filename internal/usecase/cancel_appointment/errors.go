package cancel_appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не существует
	ErrAppointmentNotFound = errors.New("cancel_appointment: appointment not found")

	// ErrForbidden возвращается, когда актор не имеет права отменять эту запись
	ErrForbidden = errors.New("cancel_appointment: actor is not allowed to cancel this appointment")

	// ErrAlreadyCancelled возвращается при повторной отмене
	ErrAlreadyCancelled = errors.New("cancel_appointment: appointment is already cancelled")

	// ErrAppointmentInPast возвращается, когда родитель отменяет прошедшую встречу
	ErrAppointmentInPast = errors.New("cancel_appointment: appointment date has already passed")

	// ErrInvalidAccessCode возвращается при нераспознанном коде доступа
	ErrInvalidAccessCode = errors.New("cancel_appointment: access code not recognized")

	// ErrInvalidInput возвращается при невалидных входных данных
	ErrInvalidInput = errors.New("cancel_appointment: invalid input")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("cancel_appointment: internal error")
)
