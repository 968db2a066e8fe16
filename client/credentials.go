package client

import (
	"fmt"
	"os"
	"strings"
)

// APIKeyEnv is the configuration key holding the Dixa API key.
const APIKeyEnv = "DIXA_API_KEY"

// Source provides read-only configuration values.
type Source interface {
	Lookup(key string) (string, bool)
}

// EnvSource reads from the process environment.
type EnvSource struct{}

func (EnvSource) Lookup(key string) (string, bool) { return os.LookupEnv(key) }

// MapSource serves values from a fixed map. Useful for tests and for callers
// that resolve secrets elsewhere.
type MapSource map[string]string

func (m MapSource) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// ConfigurationError reports a missing or unusable configuration value.
type ConfigurationError struct {
	Key    string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s environment variable %s", e.Key, e.Reason)
}

// LoadAPIKey reads and trims the Dixa API key from src. It is evaluated on
// every call; nothing is cached.
func LoadAPIKey(src Source) (string, error) {
	if src == nil {
		src = EnvSource{}
	}
	raw, ok := src.Lookup(APIKeyEnv)
	if !ok || raw == "" {
		return "", &ConfigurationError{
			Key:    APIKeyEnv,
			Reason: "is not set. Please set it in your hosting environment under Environment Variables.",
		}
	}
	key := strings.TrimSpace(raw)
	if key == "" {
		return "", &ConfigurationError{
			Key:    APIKeyEnv,
			Reason: "is set but is empty. Please check your hosting environment settings.",
		}
	}
	return key, nil
}
