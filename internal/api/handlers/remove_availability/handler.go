package remove_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/PTC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/PTC-AppointmentService/internal/api/middleware"
	removeAvailability "github.com/m04kA/PTC-AppointmentService/internal/usecase/remove_availability"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidDateOrTime  = "invalid date or time format, expected YYYY-MM-DD and HH:MM"
	msgSlotInUse          = "some slots have scheduled appointments, cancel them first"
)

type Handler struct {
	useCase RemoveAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase RemoveAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/availability
// Защищенный маршрут: учитель снимает собственную доступность
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	teacherID, ok := middleware.TeacherIDFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "teacher authentication required")
		return
	}

	var req RemoveAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("DELETE /availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(teacherID)
	if err != nil {
		h.logger.Warn("DELETE /availability - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, removeAvailability.ErrSlotInUse):
			h.logger.Warn("DELETE /availability - Slots in use: teacher_id=%d, error=%v", teacherID, err)
			handlers.RespondError(w, http.StatusConflict, msgSlotInUse)

		case errors.Is(err, removeAvailability.ErrInvalidInput):
			h.logger.Warn("DELETE /availability - Invalid input: teacher_id=%d, error=%v", teacherID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("DELETE /availability - Failed to remove availability: teacher_id=%d, error=%v",
				teacherID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /availability - Removed %d slot(s): teacher_id=%d", len(result.Removed), teacherID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
