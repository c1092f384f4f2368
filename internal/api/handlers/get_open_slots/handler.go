package get_open_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/PTC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/PTC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/PTC-AppointmentService/internal/domain"
	availabilityService "github.com/m04kA/PTC-AppointmentService/internal/service/availability"
	"github.com/m04kA/PTC-AppointmentService/internal/service/availability/models"
)

const (
	msgInvalidTeacherID = "invalid teacher id"
	msgInvalidDateRange = "invalid date range, expected YYYY-MM-DD"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/teachers/{teacherId}/slots
// Публичный маршрут для родителей: возвращает только видимые свободные слоты.
// Авторизованный владелец расписания может запросить include_booked=true
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	teacherID, err := strconv.ParseInt(mux.Vars(r)["teacherId"], 10, 64)
	if err != nil || teacherID <= 0 {
		h.logger.Warn("GET /teachers/{teacherId}/slots - Invalid teacher id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTeacherID)
		return
	}

	req := &models.ListOpenSlotsRequest{TeacherID: teacherID}

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

	// Забронированные и скрытые слоты видит только сам учитель
	if query.Get("include_booked") == "true" {
		if authID, ok := middleware.TeacherIDFromContext(r.Context()); ok && authID == teacherID {
			req.IncludeBooked = true
		}
	}

	result, err := h.service.ListOpen(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, availabilityService.ErrInvalidInput):
			h.logger.Warn("GET /teachers/%d/slots - Invalid input: %v", teacherID, err)
			handlers.RespondBadRequest(w, msgInvalidDateRange)

		default:
			h.logger.Error("GET /teachers/%d/slots - Failed to list slots: %v", teacherID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /teachers/%d/slots - Returned %d slot(s)", teacherID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, result)
}
