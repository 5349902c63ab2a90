package redis

import "strings"

const (
	// DefaultPrefix namespaces every key written by the store
	DefaultPrefix = "logincmd"

	keySettings = "settings"
	keyLogs     = "logs"
)

// SettingsKey returns the key holding the profiles and global commands document
func SettingsKey(prefix string) string {
	return join(prefix, keySettings)
}

// LogsKey returns the key of the audit log list (oldest entry at index 0)
func LogsKey(prefix string) string {
	return join(prefix, keyLogs)
}

func join(prefix, key string) string {
	prefix = strings.TrimSuffix(prefix, ":")
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return prefix + ":" + key
}
