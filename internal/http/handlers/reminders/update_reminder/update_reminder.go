package updatereminder

import (
	c "beatwatch/internal/core/domain/common"
	e "beatwatch/internal/core/domain/errors"
	"beatwatch/internal/core/domain/reminder"
	"beatwatch/internal/core/services"
	service "beatwatch/internal/core/services/update_reminder"
	"beatwatch/internal/http/handlers/response"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation"
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
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Mode        string   `json:"mode"`
	StartDate   string   `json:"start_date"`
	StartTime   string   `json:"start_time"`
	SwatchTime  *float64 `json:"swatch_time"`
}

type Result struct {
	Event response.Event `json:"event"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Title, validation.Required, validation.Length(1, 256)),
		validation.Field(&i.Description, validation.Length(0, 4096)),
		validation.Field(&i.Mode, validation.Required, validation.In("standard", "beat")),
		validation.Field(&i.StartDate, validation.Date("2006-01-02")),
		validation.Field(&i.StartTime, validation.Date("15:04")),
	)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	rawID := chi.URLParam(r, "eventID")
	eventID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		response.RenderError(rw, "invalid reminder ID", http.StatusBadRequest)
		return
	}

	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderError(rw, "invalid request data", http.StatusBadRequest)
		return
	}
	if err := input.Validate(); err != nil {
		response.Render(rw, err, http.StatusBadRequest)
		return
	}

	mode, err := reminder.ParseMode(input.Mode)
	if err != nil {
		response.RenderError(rw, err.Error(), http.StatusBadRequest)
		return
	}
	var swatchTime c.Optional[float64]
	if input.SwatchTime != nil {
		swatchTime = c.NewOptional(*input.SwatchTime, true)
	}

	result, err := h.service.Run(
		r.Context(),
		service.Input{
			EventID:     reminder.ID(eventID),
			Title:       input.Title,
			Description: input.Description,
			Mode:        mode,
			StartDate:   input.StartDate,
			StartTime:   input.StartTime,
			SwatchTime:  swatchTime,
		},
	)
	if err != nil {
		var invalidState *e.InvalidStateError
		switch {
		case errors.Is(err, reminder.ErrEventDoesNotExist):
			response.RenderNotFound(rw)
		case errors.Is(err, reminder.ErrEventDismissed):
			response.RenderError(rw, err.Error(), http.StatusConflict)
		case errors.As(err, &invalidState):
			response.RenderError(rw, err.Error(), http.StatusUnprocessableEntity)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	event := response.Event{}
	event.FromDomainType(result.Event, reminder.StatePending)
	response.Render(rw, Result{Event: event}, http.StatusOK)
}
