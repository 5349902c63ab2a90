package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/logincmd/internal/httpserver/deps"
	"github.com/MrSnakeDoc/logincmd/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/logincmd/internal/httpserver/mw"
)

func init() { Register(registerInfra) }

func registerInfra(r chi.Router, d deps.Deps) {
	guarded := r.With(mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger))
	guarded.Get("/infra", handlers.Infra(d))
	if d.MetricsHandler != nil {
		guarded.Method("GET", "/metrics", d.MetricsHandler)
	}
}
