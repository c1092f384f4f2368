package resolve_access_code

import (
	"errors"
	"net/http"

	"github.com/m04kA/PTC-AppointmentService/internal/api/handlers"
	accessCodeService "github.com/m04kA/PTC-AppointmentService/internal/service/accesscode"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgAccessCodeRequired = "access code is required"
	// Сообщение намеренно общее: не раскрываем, существует ли код
	msgAccessCodeNotFound = "access code not recognized"
)

type Handler struct {
	service AccessCodeService
	logger  Logger
}

func NewHandler(service AccessCodeService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/access-codes/resolve
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ResolveRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /access-codes/resolve - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	access, err := h.service.Resolve(r.Context(), req.AccessCode)
	if err != nil {
		switch {
		case errors.Is(err, accessCodeService.ErrAccessCodeNotFound):
			h.logger.Warn("POST /access-codes/resolve - Access code not recognized")
			handlers.RespondNotFound(w, msgAccessCodeNotFound)

		case errors.Is(err, accessCodeService.ErrInvalidInput):
			h.logger.Warn("POST /access-codes/resolve - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgAccessCodeRequired)

		default:
			h.logger.Error("POST /access-codes/resolve - Failed to resolve access code: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /access-codes/resolve - Resolved access code: student_id=%d, teachers=%d",
		access.Student.ID, len(access.EligibleTeachers))
	handlers.RespondJSON(w, http.StatusOK, FromDomainContext(access))
}
