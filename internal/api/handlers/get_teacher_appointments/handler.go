package get_teacher_appointments

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/PTC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/PTC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/PTC-AppointmentService/internal/domain"
	appointmentsService "github.com/m04kA/PTC-AppointmentService/internal/service/appointments"
	"github.com/m04kA/PTC-AppointmentService/internal/service/appointments/models"
)

const (
	msgInvalidTeacherID = "invalid teacher id"
	msgInvalidDateRange = "invalid date range, expected YYYY-MM-DD"
	msgForbidden        = "you can only view your own appointments"
)

type Handler struct {
	service AppointmentsService
	logger  Logger
}

func NewHandler(service AppointmentsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/teachers/{teacherId}/appointments
// Защищенный маршрут: учитель видит только собственное расписание
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	teacherID, err := strconv.ParseInt(mux.Vars(r)["teacherId"], 10, 64)
	if err != nil || teacherID <= 0 {
		h.logger.Warn("GET /teachers/{teacherId}/appointments - Invalid teacher id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTeacherID)
		return
	}

	authID, ok := middleware.TeacherIDFromContext(r.Context())
	if !ok || authID != teacherID {
		h.logger.Warn("GET /teachers/%d/appointments - Forbidden for teacher_id=%d", teacherID, authID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	req := &models.GetTeacherAppointmentsRequest{TeacherID: teacherID}

	query := r.URL.Query()
	if raw := query.Get("start_date"); raw != "" {
		startDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidDateRange)
			return
		}
		req.StartDate = &startDate
	}
	if raw := query.Get("end_date"); raw != "" {
		endDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidDateRange)
			return
		}
		req.EndDate = &endDate
	}
	req.IncludeCancelled = query.Get("include_cancelled") == "true"

	result, err := h.service.GetTeacherAppointments(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, appointmentsService.ErrInvalidInput):
			h.logger.Warn("GET /teachers/%d/appointments - Invalid input: %v", teacherID, err)
			handlers.RespondBadRequest(w, msgInvalidDateRange)

		default:
			h.logger.Error("GET /teachers/%d/appointments - Failed to list appointments: %v", teacherID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /teachers/%d/appointments - Returned %d appointment(s)",
		teacherID, len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result)
}
