package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/logincmd/internal/httpserver/deps"
	"github.com/MrSnakeDoc/logincmd/internal/httpserver/handlers"
)

func init() { Register(registerSettings) }

func registerSettings(r chi.Router, d deps.Deps) {
	api := r.With(apiGuards(d)...)
	api.Get("/api/settings", handlers.ExportSettings(d))
	api.Put("/api/settings", handlers.ImportSettings(d))
}
