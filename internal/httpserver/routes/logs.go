package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/logincmd/internal/httpserver/deps"
	"github.com/MrSnakeDoc/logincmd/internal/httpserver/handlers"
)

func init() { Register(registerLogs) }

func registerLogs(r chi.Router, d deps.Deps) {
	api := r.With(apiGuards(d)...)
	api.Get("/api/logs", handlers.Logs(d))
	api.Delete("/api/logs", handlers.ClearLogs(d))
}
