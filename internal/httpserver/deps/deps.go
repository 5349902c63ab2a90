package deps

import (
	"net/http"
	"time"

	"github.com/MrSnakeDoc/logincmd/internal/auditlog"
	"github.com/MrSnakeDoc/logincmd/internal/catalog"
	"github.com/MrSnakeDoc/logincmd/internal/identity"
	"github.com/MrSnakeDoc/logincmd/internal/logger"
	"github.com/MrSnakeDoc/logincmd/internal/session"
	"github.com/MrSnakeDoc/logincmd/internal/store"
)

type Deps struct {
	Logger         logger.Logger
	StartTime      time.Time
	Version        string
	Commit         string
	BuildDate      string
	GoVersion      string
	TimeNow        func() time.Time                  // for testing, defaults to time.Now
	AllowedHosts   []string                          // Host headers allowed on /api
	AllowedCIDRS   []string                          // IPs allowed on /api, /infra, /readyz and /metrics
	TrustProxy     bool                              // true if running behind a trusted reverse proxy
	APILimiter     func(http.Handler) http.Handler   // shared per-IP limiter for /api (nil = none)
	Session        *session.Manager                  // login state machine and dispatch queue
	Identity       *identity.Holder                  // current character as pushed by the host
	Catalog        *catalog.Catalog                  // profiles and global commands
	Logs           *auditlog.Log                     // bounded audit log
	Persister      *store.Persister                  // settings import + save
	SinkName       string                            // configured command sink, for /infra
	MetricsHandler http.Handler                      // Prometheus exposition (nil = /metrics disabled)
	ReloadTrigger  chan struct{}                     // manual settings reload (nil when not watching a file)
}
