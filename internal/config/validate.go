package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/leapstack-labs/chainsql/pkg/adapter"
)

var (
	validLevels  = []string{"debug", "info", "warn", "error"}
	validFormats = []string{"console", "json"}
)

// Validate checks the configuration against the registered adapters.
func Validate(c *Config) error {
	if c == nil {
		return fmt.Errorf("config is nil")
	}
	if c.Database.Type == "" {
		return fmt.Errorf("database type is required")
	}
	if !adapter.IsRegistered(c.Database.Type) {
		return &adapter.UnknownAdapterError{
			Type:      c.Database.Type,
			Available: adapter.ListAdapters(),
		}
	}
	if c.Database.Port < 0 || c.Database.Port > 65535 {
		return fmt.Errorf("database port %d out of range", c.Database.Port)
	}
	if !contains(validLevels, c.Log.Level) {
		return fmt.Errorf("invalid log level %q (expected one of %s)", c.Log.Level, strings.Join(validLevels, ", "))
	}
	if !contains(validFormats, c.Log.Format) {
		return fmt.Errorf("invalid log format %q (expected one of %s)", c.Log.Format, strings.Join(validFormats, ", "))
	}
	if gw := c.Metrics.PushGateway; gw != "" {
		u, err := url.Parse(gw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("invalid metrics pushgateway %q (expected an http or https URL)", gw)
		}
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if strings.EqualFold(s, v) {
			return true
		}
	}
	return false
}
