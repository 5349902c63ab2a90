package config

import (
	"os"
	"testing"
	"time"
)

func TestRequireEnv(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		value     string
		shouldSet bool
		wantPanic bool
	}{
		{
			name:      "variable set",
			key:       "TEST_VAR",
			value:     "test_value",
			shouldSet: true,
			wantPanic: false,
		},
		{
			name:      "variable not set",
			key:       "TEST_VAR_MISSING",
			shouldSet: false,
			wantPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.shouldSet {
				if err := os.Setenv(tt.key, tt.value); err != nil {
					t.Fatalf("failed to set env var: %v", err)
				}
				defer func() {
					if err := os.Unsetenv(tt.key); err != nil {
						t.Errorf("failed to unset env var: %v", err)
					}
				}()
			}

			if tt.wantPanic {
				defer func() {
					if r := recover(); r == nil {
						t.Errorf("requireEnv() should have panicked")
					}
				}()
			}

			result := requireEnv(tt.key)
			if !tt.wantPanic && result != tt.value {
				t.Errorf("requireEnv() = %v, want %v", result, tt.value)
			}
		})
	}
}

func TestGetenvInt(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		def      int
		expected int
	}{
		{name: "valid integer", value: "42", def: 1, expected: 42},
		{name: "invalid integer uses default", value: "not_a_number", def: 7, expected: 7},
		{name: "missing variable uses default", value: "", def: 500, expected: 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_INT", tt.value)
			if result := getenvInt("TEST_INT", tt.def); result != tt.expected {
				t.Errorf("getenvInt() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestParseAllowedIPs(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected []string
	}{
		{name: "empty", value: "", expected: nil},
		{name: "single cidr", value: "10.0.0.0/8", expected: []string{"10.0.0.0/8"}},
		{name: "quoted list", value: `"192.168.1.0/24", '127.0.0.1' ,`, expected: []string{"192.168.1.0/24", "127.0.0.1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := parseAllowedIPs(tt.value)
			if len(result) != len(tt.expected) {
				t.Fatalf("parseAllowedIPs() length = %v, want %v", len(result), len(tt.expected))
			}
			for i := range result {
				if result[i] != tt.expected[i] {
					t.Errorf("parseAllowedIPs()[%d] = %v, want %v", i, result[i], tt.expected[i])
				}
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"LOGINCMD_STORE", "LOGINCMD_SINK", "LOGINCMD_TICK_INTERVAL", "LOGINCMD_LOG_CAPACITY", "LOGINCMD_CHARACTER_NAME"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	if cfg.Store != StoreFile {
		t.Errorf("Store = %q, want %q", cfg.Store, StoreFile)
	}
	if cfg.Sink != SinkLog {
		t.Errorf("Sink = %q, want %q", cfg.Sink, SinkLog)
	}
	if cfg.TickInterval != 100*time.Millisecond {
		t.Errorf("TickInterval = %v, want 100ms", cfg.TickInterval)
	}
	if cfg.LogCapacity != 500 {
		t.Errorf("LogCapacity = %d, want 500", cfg.LogCapacity)
	}
	if cfg.NeedsRedis() {
		t.Error("NeedsRedis() = true with file store and log sink")
	}
	if cfg.HasPresetCharacter() {
		t.Error("HasPresetCharacter() = true without LOGINCMD_CHARACTER_NAME")
	}
}

func TestLoadPanics(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "unknown store", env: map[string]string{"LOGINCMD_STORE": "mongo"}},
		{name: "unknown sink", env: map[string]string{"LOGINCMD_SINK": "carrier-pigeon"}},
		{name: "redis sink without address", env: map[string]string{"LOGINCMD_SINK": "redis", "LOGINCMD_REDIS_ADDR": ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			defer func() {
				if r := recover(); r == nil {
					t.Errorf("Load() should have panicked")
				}
			}()
			Load()
		})
	}
}

func TestLoadPresetCharacter(t *testing.T) {
	t.Setenv("LOGINCMD_STORE", "")
	t.Setenv("LOGINCMD_SINK", "")
	t.Setenv("LOGINCMD_CHARACTER_NAME", "Alys Rowe")
	t.Setenv("LOGINCMD_CHARACTER_WORLD_ID", "73")
	t.Setenv("LOGINCMD_CHARACTER_WORLD_NAME", "Adamantoise")

	cfg := Load()
	if !cfg.HasPresetCharacter() {
		t.Fatal("HasPresetCharacter() = false")
	}
	if cfg.CharacterWorld != 73 || cfg.WorldName != "Adamantoise" {
		t.Errorf("preset = %d/%q, want 73/Adamantoise", cfg.CharacterWorld, cfg.WorldName)
	}
}

func TestLoadAccessLists(t *testing.T) {
	t.Setenv("LOGINCMD_STORE", "")
	t.Setenv("LOGINCMD_SINK", "")
	t.Setenv("LOGINCMD_ALLOWED_HOSTS", "logincmd.lan, '*.home.arpa'")
	t.Setenv("LOGINCMD_ALLOWED_CIDRS", "10.0.0.0/8,192.0.2.7")

	cfg := Load()
	if len(cfg.AllowedHosts) != 2 || cfg.AllowedHosts[1] != "*.home.arpa" {
		t.Errorf("AllowedHosts = %v", cfg.AllowedHosts)
	}
	if len(cfg.AllowedCIDRS) != 2 {
		t.Errorf("AllowedCIDRS = %v", cfg.AllowedCIDRS)
	}
}

func TestMustDuration(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		value    string
		def      time.Duration
		expected time.Duration
	}{
		{
			name:     "valid duration",
			key:      "TEST_DURATION",
			value:    "5s",
			def:      1 * time.Second,
			expected: 5 * time.Second,
		},
		{
			name:     "invalid duration uses default",
			key:      "TEST_DURATION_INVALID",
			value:    "invalid",
			def:      10 * time.Second,
			expected: 10 * time.Second,
		},
		{
			name:     "missing variable uses default",
			key:      "TEST_DURATION_MISSING",
			value:    "",
			def:      15 * time.Second,
			expected: 15 * time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				if err := os.Setenv(tt.key, tt.value); err != nil {
					t.Fatalf("failed to set env var: %v", err)
				}
				defer func() {
					if err := os.Unsetenv(tt.key); err != nil {
						t.Errorf("failed to unset env var: %v", err)
					}
				}()
			}

			result := mustDuration(tt.key, tt.def)
			if result != tt.expected {
				t.Errorf("mustDuration() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestMustBool(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		value    string
		def      bool
		expected bool
	}{
		{
			name:     "true value",
			key:      "TEST_BOOL",
			value:    "true",
			def:      false,
			expected: true,
		},
		{
			name:     "false value",
			key:      "TEST_BOOL_FALSE",
			value:    "false",
			def:      true,
			expected: false,
		},
		{
			name:     "invalid value uses default",
			key:      "TEST_BOOL_INVALID",
			value:    "invalid",
			def:      true,
			expected: true,
		},
		{
			name:     "missing variable uses default",
			key:      "TEST_BOOL_MISSING",
			value:    "",
			def:      false,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				if err := os.Setenv(tt.key, tt.value); err != nil {
					t.Fatalf("failed to set env var: %v", err)
				}
				defer func() {
					if err := os.Unsetenv(tt.key); err != nil {
						t.Errorf("failed to unset env var: %v", err)
					}
				}()
			}

			result := mustBool(tt.key, tt.def)
			if result != tt.expected {
				t.Errorf("mustBool() = %v, want %v", result, tt.expected)
			}
		})
	}
}
