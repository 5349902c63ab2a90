package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/logincmd/internal/httpserver/deps"
	"github.com/MrSnakeDoc/logincmd/internal/logger"
)

// Reload triggers a manual re-read of the settings file.
func Reload(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.ReloadTrigger == nil {
			writeJSON(w, d, http.StatusConflict, errorResponse{Error: "settings watcher disabled"})
			return
		}

		select {
		case d.ReloadTrigger <- struct{}{}:
			d.Logger.Info("manual settings reload triggered via endpoint",
				logger.String("remote_ip", r.RemoteAddr))
			writeJSON(w, d, http.StatusAccepted, map[string]string{"status": "reload triggered"})
		default:
			d.Logger.Warn("settings reload already in progress",
				logger.String("remote_ip", r.RemoteAddr))
			writeJSON(w, d, http.StatusTooManyRequests, errorResponse{Error: "reload already in progress"})
		}
	}
}
