package events

import (
	e "beatwatch/internal/core/domain/errors"
	"beatwatch/internal/core/domain/logging"
	remindersender "beatwatch/internal/implementations/reminder_sender"
	"net/http"

	"github.com/r3labs/sse/v2"
)

// Handler streams due reminder announcements to in-app clients over SSE.
// All clients share one stream; tag-based coalescing on the client side
// keeps reconnects from showing the same reminder twice.
type Handler struct {
	log       logging.Logger
	sseServer *sse.Server
}

func New(log logging.Logger, sseServer *sse.Server) *Handler {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if sseServer == nil {
		panic(e.NewNilArgumentError("sseServer"))
	}
	return &Handler{log: log, sseServer: sseServer}
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	go func() {
		<-r.Context().Done()
		h.log.Info(r.Context(), "Unsubscribed from reminder events.")
	}()

	query := r.URL.Query()
	query.Set("stream", remindersender.StreamID)
	r.URL.RawQuery = query.Encode()

	h.log.Info(r.Context(), "Subscribed to reminder events.")
	h.sseServer.ServeHTTP(rw, r)
}
