package domain

// Business validation constants
const (
	MinSlotDurationMinutes = 10
	MaxSlotDurationMinutes = 30

	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxParentNameLength         = 100
	MaxParentEmailLength        = 100
	MaxParentPhoneLength        = 30
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Default cancellation reasons used when the caller supplies none
const (
	DefaultParentCancellationReason  = "Cancelled by parent"
	DefaultTeacherCancellationReason = "Cancelled by teacher"
)
