package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Store backends.
const (
	StoreFile   = "file"
	StoreRedis  = "redis"
	StoreSQLite = "sqlite"
)

// Sink kinds.
const (
	SinkExec  = "exec"
	SinkRedis = "redis"
	SinkLog   = "log"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	// Dispatch
	TickInterval time.Duration // cadence of the dispatch driver (default: 100ms)
	LogCapacity  int           // audit log bound (default: 500)

	// Settings store
	Store         string        // "file" | "redis" | "sqlite"
	SettingsFile  string        // YAML settings document for the file store
	SQLitePath    string        // database path for the sqlite store
	WatchSettings bool          // reload profiles/commands when SettingsFile changes
	WatchDebounce time.Duration // coalesce editor write bursts (default: 300ms)

	// Command sink
	Sink                  string        // "exec" | "redis" | "log"
	ExecShell             string        // shell used by the exec sink (default: sh)
	ExecTimeout           time.Duration // per-command timeout for the exec sink
	SinkChannel           string        // pub/sub channel for the redis sink
	SinkRequireSubscriber bool          // redis sink fails when nobody is listening

	// Identity preset (optional): host identity known at startup
	CharacterName  string
	CharacterWorld uint16
	WorldName      string

	// Redis (only required when the store or sink is "redis")
	RedisAddr           string        // ex: "localhost:6379"
	RedisUser           string        // optional
	RedisPassword       string        // optional
	RedisDB             int           // Redis DB number
	RedisDT             time.Duration // Redis dial timeout (ex: 5s)
	RedisRT             time.Duration // Redis read timeout (ex: 3s)
	RedisWT             time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait        time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout    time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize       int           // Redis connection pool size
	RedisConnectTimeout time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval  time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold  int           // warn after this many attempts

	// Access restrictions
	AllowedHosts    []string // optional, Host headers accepted on /api (supports *.example.com)
	AllowedCIDRS    []string // optional, restrict /api and /infra to specific IPs/CIDRs
	TrustProxy      bool     // true => trust X-Forwarded-For headers
	RateLimitBurst  int      // per-IP burst on /api (0 disables)
	RateLimitPerMin int      // per-IP refill rate on /api
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("LOGINCMD_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("LOGINCMD_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("LOGINCMD_LOG_LEVEL", "info"),
		PrettyLog: mustBool("LOGINCMD_PRETTY_LOG", true),

		// Dispatch
		TickInterval: mustDuration("LOGINCMD_TICK_INTERVAL", 100*time.Millisecond),
		LogCapacity:  getenvInt("LOGINCMD_LOG_CAPACITY", 500),

		// Settings store
		Store:         strings.ToLower(getenv("LOGINCMD_STORE", StoreFile)),
		SettingsFile:  getenv("LOGINCMD_SETTINGS_FILE", "./logincmd.yaml"),
		SQLitePath:    getenv("LOGINCMD_SQLITE_PATH", "./logincmd.db"),
		WatchSettings: mustBool("LOGINCMD_WATCH_SETTINGS", true),
		WatchDebounce: mustDuration("LOGINCMD_WATCH_DEBOUNCE", 300*time.Millisecond),

		// Command sink
		Sink:                  strings.ToLower(getenv("LOGINCMD_SINK", SinkLog)),
		ExecShell:             getenv("LOGINCMD_EXEC_SHELL", "sh"),
		ExecTimeout:           mustDuration("LOGINCMD_EXEC_TIMEOUT", 10*time.Second),
		SinkChannel:           getenv("LOGINCMD_SINK_CHANNEL", "logincmd:commands"),
		SinkRequireSubscriber: mustBool("LOGINCMD_SINK_REQUIRE_SUBSCRIBER", false),

		// Identity preset
		CharacterName:  getenv("LOGINCMD_CHARACTER_NAME", ""),
		CharacterWorld: uint16(getenvInt("LOGINCMD_CHARACTER_WORLD_ID", 0)),
		WorldName:      getenv("LOGINCMD_CHARACTER_WORLD_NAME", ""),

		// Redis settings
		RedisAddr:           getenv("LOGINCMD_REDIS_ADDR", ""),
		RedisUser:           getenv("LOGINCMD_REDIS_USERNAME", ""),
		RedisPassword:       getenv("LOGINCMD_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("LOGINCMD_REDIS_DB", 0),
		RedisDT:             mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:             mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:             mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:        mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:       getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:  getenvInt("REDIS_WARN_THRESHOLD", 3),

		// Access restrictions
		AllowedHosts:    splitAndTrim(getenv("LOGINCMD_ALLOWED_HOSTS", "")),
		AllowedCIDRS:    parseAllowedIPs(getenv("LOGINCMD_ALLOWED_CIDRS", "")),
		TrustProxy:      mustBool("LOGINCMD_TRUST_PROXY", false),
		RateLimitBurst:  getenvInt("LOGINCMD_RATE_LIMIT_BURST", 20),
		RateLimitPerMin: getenvInt("LOGINCMD_RATE_LIMIT_PER_MIN", 120),
	}

	switch cfg.Store {
	case StoreFile, StoreRedis, StoreSQLite:
	default:
		panic(fmt.Sprintf("❌ FATAL: LOGINCMD_STORE must be file, redis or sqlite, got %q", cfg.Store))
	}
	switch cfg.Sink {
	case SinkExec, SinkRedis, SinkLog:
	default:
		panic(fmt.Sprintf("❌ FATAL: LOGINCMD_SINK must be exec, redis or log, got %q", cfg.Sink))
	}

	if cfg.NeedsRedis() {
		cfg.RedisAddr = requireEnv("LOGINCMD_REDIS_ADDR")
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		if cfgCopy.RedisPassword != "" {
			cfgCopy.RedisPassword = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// NeedsRedis reports whether any configured component talks to Redis.
func (c *Config) NeedsRedis() bool {
	return c.Store == StoreRedis || c.Sink == SinkRedis
}

// HasPresetCharacter reports whether an identity was configured at startup.
func (c *Config) HasPresetCharacter() bool {
	return strings.TrimSpace(c.CharacterName) != ""
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func parseAllowedIPs(allowed string) []string {
	if allowed == "" {
		return nil
	}
	ips := make([]string, 0, 4)
	for _, ip := range splitAndTrim(allowed) {
		if ip != "" {
			ips = append(ips, ip)
		}
	}
	return ips
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
