package book_slot

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/PTC-AppointmentService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.AccessCode) == "" {
		return fmt.Errorf("%w: access code is required", ErrInvalidInput)
	}

	if req.TeacherID <= 0 {
		return fmt.Errorf("%w: teacherID must be positive", ErrInvalidInput)
	}

	if req.AvailabilitySlotID <= 0 {
		return fmt.Errorf("%w: availabilitySlotID must be positive", ErrInvalidInput)
	}

	name := strings.TrimSpace(req.ParentName)
	if name == "" {
		return fmt.Errorf("%w: parent name is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxParentNameLength {
		return fmt.Errorf("%w: parent name exceeds %d characters", ErrInvalidInput, domain.MaxParentNameLength)
	}

	email := strings.TrimSpace(req.ParentEmail)
	if email == "" {
		return fmt.Errorf("%w: parent email is required", ErrInvalidInput)
	}
	if len(email) > domain.MaxParentEmailLength || !strings.Contains(email, "@") {
		return fmt.Errorf("%w: parent email is not valid", ErrInvalidInput)
	}

	if len(req.ParentPhone) > domain.MaxParentPhoneLength {
		return fmt.Errorf("%w: parent phone exceeds %d characters", ErrInvalidInput, domain.MaxParentPhoneLength)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня
// Сравнение только по календарной дате, время суток не учитывается
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
