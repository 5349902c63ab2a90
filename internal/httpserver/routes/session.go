package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/logincmd/internal/httpserver/deps"
	"github.com/MrSnakeDoc/logincmd/internal/httpserver/handlers"
)

func init() { Register(registerSession) }

func registerSession(r chi.Router, d deps.Deps) {
	api := r.With(apiGuards(d)...)
	api.Get("/api/session", handlers.Session(d))
	api.Post("/api/session/login", handlers.Login(d))
	api.Post("/api/session/logout", handlers.Logout(d))
	api.Put("/api/character", handlers.SetCharacter(d))
	api.Delete("/api/character", handlers.ClearCharacter(d))
}
