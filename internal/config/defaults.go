package config

import (
	"strings"

	"github.com/leapstack-labs/chainsql/pkg/dialect"
)

// Default configuration values.
const (
	DefaultType      = "mariadb"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "console"
	DefaultJob       = "chainsql"
)

// defaultValues seeds the loader before the file is read.
func defaultValues() map[string]any {
	return map[string]any{
		"database.type": DefaultType,
		"log.level":     DefaultLogLevel,
		"log.format":    DefaultLogFormat,
		"metrics.job":   DefaultJob,
	}
}

// ApplyDefaults fills values that depend on other values, such as the port
// for the configured database type.
func ApplyDefaults(c *Config) {
	if c == nil {
		return
	}
	if c.Database.Type == "" {
		c.Database.Type = DefaultType
	}
	c.Database.Type = strings.ToLower(c.Database.Type)

	if c.Database.Port == 0 {
		if d, ok := dialect.Get(c.Database.Type); ok {
			c.Database.Port = d.DefaultPort
		}
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}
	if c.Metrics.Job == "" {
		c.Metrics.Job = DefaultJob
	}
}
