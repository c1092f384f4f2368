package create_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/PTC-AppointmentService/internal/api/handlers"
	bookSlot "github.com/m04kA/PTC-AppointmentService/internal/usecase/book_slot"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgAccessCodeNotFound = "access code not recognized"
	msgSlotUnavailable    = "the selected slot is not available"
)

type Handler struct {
	useCase BookSlotUseCase
	logger  Logger
}

func NewHandler(useCase BookSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, bookSlot.ErrInvalidAccessCode):
			h.logger.Warn("POST /appointments - Access code not recognized: teacher_id=%d", req.TeacherID)
			handlers.RespondNotFound(w, msgAccessCodeNotFound)

		case errors.Is(err, bookSlot.ErrSlotUnavailable):
			h.logger.Warn("POST /appointments - Slot unavailable: teacher_id=%d, slot_id=%d",
				req.TeacherID, req.AvailabilitySlotID)
			handlers.RespondError(w, http.StatusConflict, msgSlotUnavailable)

		case errors.Is(err, bookSlot.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /appointments - Failed to book slot: teacher_id=%d, slot_id=%d, error=%v",
				req.TeacherID, req.AvailabilitySlotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created: appointment_id=%d, teacher_id=%d, slot_id=%d",
		result.ID, result.TeacherID, result.AvailabilitySlotID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
