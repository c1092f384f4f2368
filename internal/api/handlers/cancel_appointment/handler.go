package cancel_appointment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/PTC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/PTC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/PTC-AppointmentService/internal/domain"
	cancelAppointment "github.com/m04kA/PTC-AppointmentService/internal/usecase/cancel_appointment"
)

const (
	msgInvalidRequestBody   = "invalid request body"
	msgInvalidAppointmentID = "invalid appointment id"
	msgInvalidActor         = "cancelled_by must be Parent or Teacher"
	msgTeacherAuthRequired  = "teacher authentication required"
	msgAppointmentNotFound  = "appointment not found"
	msgAccessCodeNotFound   = "access code not recognized"
	msgForbidden            = "you are not allowed to cancel this appointment"
	msgAlreadyCancelled     = "appointment is already cancelled"
	msgAppointmentInPast    = "past appointments cannot be cancelled"
)

type Handler struct {
	useCase CancelAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CancelAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/appointments/{appointmentId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := strconv.ParseInt(mux.Vars(r)["appointmentId"], 10, 64)
	if err != nil || appointmentID <= 0 {
		h.logger.Warn("PATCH /appointments/{appointmentId}/cancel - Invalid appointment id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	var req CancelAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /appointments/%d/cancel - Invalid request body: %v", appointmentID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	actor, err := domain.ParseCancelledBy(req.CancelledBy)
	if err != nil {
		h.logger.Warn("PATCH /appointments/%d/cancel - Invalid actor %q", appointmentID, req.CancelledBy)
		handlers.RespondBadRequest(w, msgInvalidActor)
		return
	}

	useCaseReq := &cancelAppointment.Request{
		AppointmentID: appointmentID,
		Actor:         actor,
		AccessCode:    req.AccessCode,
		Reason:        req.CancellationReason,
	}

	// Учитель подтверждает право заголовком авторизации
	if actor == domain.CancelledByTeacher {
		teacherID, ok := middleware.TeacherIDFromContext(r.Context())
		if !ok {
			h.logger.Warn("PATCH /appointments/%d/cancel - Teacher actor without auth header", appointmentID)
			handlers.RespondError(w, http.StatusUnauthorized, msgTeacherAuthRequired)
			return
		}
		useCaseReq.TeacherID = teacherID
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, cancelAppointment.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/%d/cancel - Appointment not found", appointmentID)
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		case errors.Is(err, cancelAppointment.ErrInvalidAccessCode):
			h.logger.Warn("PATCH /appointments/%d/cancel - Access code not recognized", appointmentID)
			handlers.RespondNotFound(w, msgAccessCodeNotFound)

		case errors.Is(err, cancelAppointment.ErrForbidden):
			h.logger.Warn("PATCH /appointments/%d/cancel - Forbidden for actor=%s", appointmentID, actor)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, cancelAppointment.ErrAlreadyCancelled):
			h.logger.Warn("PATCH /appointments/%d/cancel - Already cancelled", appointmentID)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyCancelled)

		case errors.Is(err, cancelAppointment.ErrAppointmentInPast):
			h.logger.Warn("PATCH /appointments/%d/cancel - Appointment in the past", appointmentID)
			handlers.RespondBadRequest(w, msgAppointmentInPast)

		case errors.Is(err, cancelAppointment.ErrInvalidInput):
			h.logger.Warn("PATCH /appointments/%d/cancel - Invalid input: %v", appointmentID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PATCH /appointments/%d/cancel - Failed to cancel: error=%v", appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/%d/cancel - Cancelled by %s", appointmentID, result.CancelledBy)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
