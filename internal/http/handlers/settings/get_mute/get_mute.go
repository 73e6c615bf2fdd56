package getmute

import (
	e "beatwatch/internal/core/domain/errors"
	"beatwatch/internal/core/domain/settings"
	"beatwatch/internal/http/handlers/response"
	"net/http"
)

type Handler struct {
	cache *settings.Cache
}

func New(cache *settings.Cache) *Handler {
	if cache == nil {
		panic(e.NewNilArgumentError("cache"))
	}
	return &Handler{cache: cache}
}

type Result struct {
	Muted bool `json:"muted"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	response.Render(rw, Result{Muted: h.cache.Muted()}, http.StatusOK)
}
