package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/MrSnakeDoc/logincmd/internal/auditlog"
	"github.com/MrSnakeDoc/logincmd/internal/domain"
	"github.com/MrSnakeDoc/logincmd/internal/httpserver/deps"
)

type logsResponse struct {
	Total    int               `json:"total"`
	Capacity int               `json:"capacity"`
	Entries  []domain.LogEntry `json:"entries"`
}

func parseLogQuery(r *http.Request) (auditlog.Query, error) {
	v := r.URL.Query()
	q := auditlog.Query{Search: strings.TrimSpace(v.Get("q"))}

	if raw := v.Get("status"); raw != "" {
		st, err := domain.ParseStatus(raw)
		if err != nil {
			return q, fmt.Errorf("%w: %w", errBadRequest, err)
		}
		q.Status = st
	}
	if raw := v.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return q, fmt.Errorf("%w: invalid limit %q", errBadRequest, raw)
		}
		q.Limit = n
	}
	return q, nil
}

// Logs lists the audit history, oldest first, filtered by q, status and limit.
func Logs(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := parseLogQuery(r)
		if err != nil {
			writeError(w, d, err)
			return
		}
		writeJSON(w, d, http.StatusOK, logsResponse{
			Total:    d.Logs.Len(),
			Capacity: d.Logs.Capacity(),
			Entries:  d.Logs.Filter(q),
		})
	}
}

func ClearLogs(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.Session.ClearLogs(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}
}
