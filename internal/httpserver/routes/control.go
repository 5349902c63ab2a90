package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/logincmd/internal/httpserver/deps"
	"github.com/MrSnakeDoc/logincmd/internal/httpserver/handlers"
)

func init() { Register(registerControl) }

func registerControl(r chi.Router, d deps.Deps) {
	api := r.With(apiGuards(d)...)
	api.Post("/api/plan/{seq}/run", handlers.RunEntry(d))
	api.Post("/api/plan/{seq}/skip", handlers.SkipEntry(d))
	api.Post("/api/queue/run-next", handlers.RunNext(d))
	api.Post("/api/queue/skip-next", handlers.SkipNext(d))
	api.Post("/api/queue/clear", handlers.ClearQueue(d))
}
