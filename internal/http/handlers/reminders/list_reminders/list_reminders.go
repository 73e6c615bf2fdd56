package listreminders

import (
	e "beatwatch/internal/core/domain/errors"
	"beatwatch/internal/core/domain/reminder"
	"beatwatch/internal/core/services"
	service "beatwatch/internal/core/services/list_reminders"
	"beatwatch/internal/http/handlers/response"
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

type Result struct {
	// Due is ordered most recently due first, Upcoming soonest first.
	Due      []response.Event `json:"due"`
	Upcoming []response.Event `json:"upcoming"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	result, err := h.service.Run(r.Context(), service.Input{})
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	response.Render(
		rw,
		Result{
			Due:      renderEvents(result.Due, result.States),
			Upcoming: renderEvents(result.Upcoming, result.States),
		},
		http.StatusOK,
	)
}

func renderEvents(events []reminder.Event, states map[reminder.ID]reminder.State) []response.Event {
	rendered := make([]response.Event, 0, len(events))
	for _, ev := range events {
		view := response.Event{}
		view.FromDomainType(ev, states[ev.ID])
		rendered = append(rendered, view)
	}
	return rendered
}
