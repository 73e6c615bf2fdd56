package queue

import (
	e "beatwatch/internal/core/domain/errors"
	"beatwatch/internal/core/domain/reminder"
	"beatwatch/internal/http/handlers/response"
	"net/http"
)

// Handler exposes the in-process active queue: the due reminders that have
// been surfaced and not dismissed yet, in first-observed-due order.
type Handler struct {
	queue *reminder.ActiveQueue
}

func New(queue *reminder.ActiveQueue) *Handler {
	if queue == nil {
		panic(e.NewNilArgumentError("queue"))
	}
	return &Handler{queue: queue}
}

type Result struct {
	Entries []response.QueueEntry `json:"entries"`
	Current *response.QueueEntry  `json:"current"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	entries := h.queue.Entries()
	rendered := make([]response.QueueEntry, 0, len(entries))
	for _, entry := range entries {
		view := response.QueueEntry{}
		view.FromDomainType(entry)
		rendered = append(rendered, view)
	}

	result := Result{Entries: rendered}
	if current, ok := h.queue.Current(); ok {
		view := response.QueueEntry{}
		view.FromDomainType(current)
		result.Current = &view
	}
	response.Render(rw, result, http.StatusOK)
}
