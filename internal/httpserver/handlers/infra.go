package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/logincmd/internal/httpserver/deps"
	"github.com/MrSnakeDoc/logincmd/internal/store"
)

type componentStatus struct {
	OK             bool   `json:"ok"`
	Backend        string `json:"backend,omitempty"`
	ProfilesLoaded *int   `json:"profiles_loaded,omitempty"`
	GlobalsLoaded  *int   `json:"global_commands_loaded,omitempty"`
	LastReload     string `json:"last_reload,omitempty"`
	State          string `json:"state,omitempty"`
	Character      string `json:"character,omitempty"`
	Pending        *int   `json:"pending,omitempty"`
	Entries        *int   `json:"entries,omitempty"`
	Capacity       *int   `json:"capacity,omitempty"`
	Impact         string `json:"impact,omitempty"`
	Error          string `json:"error,omitempty"`
}

type infraResponse struct {
	Mode       string                     `json:"mode"`
	Components map[string]componentStatus `json:"components"`
}

func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profiles, globals := d.Catalog.Counts()
		lastReload := d.Catalog.LastReload()
		lastReloadStr := "never"
		if !lastReload.IsZero() {
			lastReloadStr = lastReload.Format("2006-01-02 15:04:05")
		}

		snap := d.Session.Snapshot()
		pending := len(snap.Pending)
		logSize := d.Logs.Len()
		logCap := d.Logs.Capacity()

		components := map[string]componentStatus{
			"store": checkStore(r.Context(), d),
			"sink": {
				OK:      true,
				Backend: d.SinkName,
			},
			"catalog": {
				OK:             profiles+globals > 0,
				ProfilesLoaded: &profiles,
				GlobalsLoaded:  &globals,
				LastReload:     lastReloadStr,
			},
			"session": {
				OK:        true,
				State:     string(snap.State),
				Character: snap.ActiveCharacter,
				Pending:   &pending,
			},
			"audit_log": {
				OK:       true,
				Entries:  &logSize,
				Capacity: &logCap,
			},
		}

		writeJSON(w, d, http.StatusOK, infraResponse{
			Mode:       determineMode(components),
			Components: components,
		})
	}
}

func determineMode(components map[string]componentStatus) string {
	// Nothing to dispatch without commands
	if c, ok := components["catalog"]; ok && !c.OK {
		return "idle"
	}
	// Store down: dispatch continues, history is not persisted
	if s, ok := components["store"]; ok && !s.OK {
		return "degraded"
	}
	return "operational"
}

func checkStore(parent context.Context, d deps.Deps) componentStatus {
	if d.Persister == nil {
		return componentStatus{
			OK:     false,
			Impact: "settings-not-persisted",
			Error:  "store not initialized",
		}
	}

	st := d.Persister.Store()
	status := componentStatus{OK: true, Backend: store.Describe(st)}

	pinger, ok := st.(interface{ Ping(context.Context) error })
	if !ok {
		return status
	}

	ctx, cancel := context.WithTimeout(parent, 2*time.Second)
	defer cancel()

	if err := pinger.Ping(ctx); err != nil {
		status.OK = false
		status.Impact = "settings-not-persisted"
		status.Error = err.Error()
	}
	return status
}
