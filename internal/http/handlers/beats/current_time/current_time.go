package currenttime

import (
	"beatwatch/internal/core/domain/beat"
	e "beatwatch/internal/core/domain/errors"
	"beatwatch/internal/http/handlers/response"
	"net/http"
	"time"
)

type Handler struct {
	now func() time.Time
}

func New(now func() time.Time) *Handler {
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &Handler{now: now}
}

type Result struct {
	Beats      float64   `json:"beats"`
	Display    string    `json:"display"`
	Centibeats string    `json:"centibeats"`
	Time       time.Time `json:"time"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	now := h.now()
	beats := beat.ToBeats(now)
	response.Render(
		rw,
		Result{
			Beats:      beats,
			Display:    beat.Format(beats),
			Centibeats: beat.FormatCentibeats(beats),
			Time:       now,
		},
		http.StatusOK,
	)
}
