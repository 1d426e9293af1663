package routers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"collabhub/internal/api"
	"collabhub/internal/services"
	"collabhub/internal/utils"
)

func New(log *utils.Logger, events *services.EventsService) http.Handler {
	h := api.NewHandlers(log, events)
	r := chi.NewRouter()

	r.Get("/api/v1/healthz", h.Health)

	r.Post("/api/v1/sessions", h.CreateSession)
	r.Get("/api/v1/sessions/{id}", h.SessionStatus)

	r.Get("/ws/session/{id}", h.CollabWS)

	return r
}
