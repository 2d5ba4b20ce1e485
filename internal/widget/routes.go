package widget

import "github.com/go-chi/chi/v5"

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/widget", func(r chi.Router) {
		r.Post("/messages", h.SendMessage)
		r.Get("/backend", h.GetBackend)
		r.Put("/backend", h.SetBackend)
		r.Post("/toggle", h.Toggle)
		r.Get("/transcript", h.Transcript)
		r.Get("/ws", h.Stream)
	})
}
