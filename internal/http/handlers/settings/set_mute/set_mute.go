package setmute

import (
	e "beatwatch/internal/core/domain/errors"
	"beatwatch/internal/core/services"
	service "beatwatch/internal/core/services/update_settings"
	"beatwatch/internal/http/handlers/response"
	"encoding/json"
	"io"
	"net/http"
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

type Input struct {
	Muted bool `json:"muted"`
}

type Result struct {
	Muted bool `json:"muted"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderError(rw, "invalid request data", http.StatusBadRequest)
		return
	}

	result, err := h.service.Run(r.Context(), service.Input{Muted: input.Muted})
	if err != nil {
		response.RenderInternalError(rw)
		return
	}
	response.Render(rw, Result{Muted: result.Settings.Muted}, http.StatusOK)
}
