package models

import (
	"time"

	"github.com/m04kA/PTC-AppointmentService/internal/domain"
)

// ListOpenSlotsRequest запрос списка открытых слотов учителя
type ListOpenSlotsRequest struct {
	TeacherID     int64
	StartDate     *time.Time
	EndDate       *time.Time
	IncludeBooked bool // true - управленческий запрос, забронированные слоты включаются
}

// SlotResponse слот доступности в терминах API
// Имена полей фиксированы контрактом с существующими потребителями
type SlotResponse struct {
	ID           int64   `json:"id"`
	TeacherID    int64   `json:"teacher_id"`
	Date         string  `json:"date"`
	StartTime    string  `json:"start_time"`
	EndTime      string  `json:"end_time"`
	SlotDuration int     `json:"slot_duration"`
	Visible      bool    `json:"visible"`
	Notes        *string `json:"notes,omitempty"`
}

// SlotListResponse список слотов
type SlotListResponse struct {
	Slots []SlotResponse `json:"slots"`
}

// FromDomainSlot конвертирует domain слот в API модель
func FromDomainSlot(slot *domain.AvailabilitySlot) SlotResponse {
	return SlotResponse{
		ID:           slot.ID,
		TeacherID:    slot.TeacherID,
		Date:         slot.Date.Format(domain.DateFormat),
		StartTime:    slot.StartTime.String(),
		EndTime:      slot.EndTime.String(),
		SlotDuration: slot.SlotDuration,
		Visible:      slot.Visible,
		Notes:        slot.Notes,
	}
}

// FromDomainSlotList конвертирует список domain слотов в API модель
func FromDomainSlotList(slots []*domain.AvailabilitySlot) *SlotListResponse {
	result := make([]SlotResponse, 0, len(slots))
	for _, slot := range slots {
		result = append(result, FromDomainSlot(slot))
	}
	return &SlotListResponse{Slots: result}
}
