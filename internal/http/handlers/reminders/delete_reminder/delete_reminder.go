package deletereminder

import (
	e "beatwatch/internal/core/domain/errors"
	"beatwatch/internal/core/domain/reminder"
	"beatwatch/internal/core/services"
	service "beatwatch/internal/core/services/delete_reminder"
	"beatwatch/internal/http/handlers/response"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service services.Service[service.Input, service.Result]
}

func New(
	service services.Service[service.Input, service.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	rawID := chi.URLParam(r, "eventID")
	eventID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		response.RenderError(rw, "invalid reminder ID", http.StatusBadRequest)
		return
	}

	_, err = h.service.Run(r.Context(), service.Input{EventID: reminder.ID(eventID)})
	if err != nil {
		if errors.Is(err, reminder.ErrEventDoesNotExist) {
			response.RenderNotFound(rw)
			return
		}
		response.RenderInternalError(rw)
		return
	}
	rw.WriteHeader(http.StatusNoContent)
}
