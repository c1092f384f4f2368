package declare_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/PTC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/PTC-AppointmentService/internal/api/middleware"
	declareAvailability "github.com/m04kA/PTC-AppointmentService/internal/usecase/declare_availability"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidDateOrTime  = "invalid date or time format, expected YYYY-MM-DD and HH:MM"
	msgInvalidWindow      = "the time window does not fit a single slot"
)

type Handler struct {
	useCase DeclareAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase DeclareAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/availability
// Защищенный маршрут: учитель объявляет собственную доступность
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	teacherID, ok := middleware.TeacherIDFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "teacher authentication required")
		return
	}

	var req DeclareAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(teacherID)
	if err != nil {
		h.logger.Warn("POST /availability - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, declareAvailability.ErrInvalidWindow):
			h.logger.Warn("POST /availability - Invalid window: teacher_id=%d, error=%v", teacherID, err)
			handlers.RespondBadRequest(w, msgInvalidWindow)

		case errors.Is(err, declareAvailability.ErrInvalidInput):
			h.logger.Warn("POST /availability - Invalid input: teacher_id=%d, error=%v", teacherID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /availability - Failed to declare availability: teacher_id=%d, error=%v",
				teacherID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /availability - Created %d slot(s): teacher_id=%d", len(result.Created), teacherID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
