package get_open_slots

import (
	"context"

	"github.com/m04kA/PTC-AppointmentService/internal/service/availability/models"
)

type AvailabilityService interface {
	ListOpen(ctx context.Context, req *models.ListOpenSlotsRequest) (*models.SlotListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
