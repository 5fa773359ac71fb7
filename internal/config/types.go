// Package config loads chainsql configuration.
//
// Values are layered, lowest priority first: built-in defaults, the YAML
// config file, CHAINSQL_ environment variables, then explicitly set CLI
// flags. The types themselves live in pkg/core and are aliased here.
package config

import "github.com/leapstack-labs/chainsql/pkg/core"

// Config is an alias for the shared configuration type.
type Config = core.Config

// DatabaseConfig is an alias for the shared [database] section.
type DatabaseConfig = core.DatabaseConfig

// ValidationConfig is an alias for the shared [validation] section.
type ValidationConfig = core.ValidationConfig

// LogConfig is an alias for the shared logging section.
type LogConfig = core.LogConfig

// MetricsConfig is an alias for the shared metrics section.
type MetricsConfig = core.MetricsConfig

// FileName is the config file looked up in the working directory.
const FileName = "config.yaml"

// EnvPrefix prefixes every environment variable the loader reads.
// CHAINSQL_DATABASE_HOST sets database.host.
const EnvPrefix = "CHAINSQL_"
