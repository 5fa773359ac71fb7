package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// flagKeys maps CLI flag names onto config keys. Flags not listed here are
// not configuration.
var flagKeys = map[string]string{
	"type":       "database.type",
	"host":       "database.host",
	"port":       "database.port",
	"user":       "database.user",
	"password":   "database.password",
	"database":   "database.database",
	"path":       "database.path",
	"hmac":       "validation.hmac",
	"log-level":  "log.level",
	"log-format": "log.format",

	"push-gateway": "metrics.pushgateway",
}

var envRef = regexp.MustCompile(`\$\{([^}]+)\}`)

// Resolve returns the config file to read. An explicit path must exist.
// Without one, FileName in the working directory is used if present and
// "" is returned otherwise.
func Resolve(path string) (string, error) {
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("config file %s: %w", path, err)
		}
		return path, nil
	}
	if _, err := os.Stat(FileName); err == nil {
		return FileName, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("config file %s: %w", FileName, err)
	}
	return "", nil
}

// Load reads configuration from defaults, the config file, environment
// variables and flags, in increasing order of precedence. flags may be nil;
// only flags that were explicitly set override other sources.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(defaultValues(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	cfgFile, err := Resolve(path)
	if err != nil {
		return nil, err
	}
	if cfgFile != "" {
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", cfgFile, err)
		}
	}

	// 3. Environment (CHAINSQL_DATABASE_HOST -> database.host)
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			key, ok := flagKeys[f.Name]
			if !ok || !f.Changed {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	expandSecrets(&cfg)
	ApplyDefaults(&cfg)
	return &cfg, nil
}

// envKey turns CHAINSQL_SECTION_KEY into section.key. Driver options keep
// their own underscores: CHAINSQL_DATABASE_OPTIONS_SSL_MODE sets
// database.options.ssl_mode.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	section, rest, ok := strings.Cut(key, "_")
	if !ok || rest == "" {
		return ""
	}
	if opt, isOpt := strings.CutPrefix(rest, "options_"); isOpt && opt != "" {
		return section + ".options." + opt
	}
	return section + "." + rest
}

// expandEnvVars replaces ${VAR} with the value of VAR. References to unset
// variables are left as they are.
func expandEnvVars(s string) string {
	return envRef.ReplaceAllStringFunc(s, func(match string) string {
		if val := os.Getenv(match[2 : len(match)-1]); val != "" {
			return val
		}
		return match
	})
}

func expandSecrets(c *Config) {
	c.Database.User = expandEnvVars(c.Database.User)
	c.Database.Password = expandEnvVars(c.Database.Password)
	c.Database.Host = expandEnvVars(c.Database.Host)
	c.Database.Database = expandEnvVars(c.Database.Database)
	c.Database.Path = expandEnvVars(c.Database.Path)
	c.Validation.HMAC = expandEnvVars(c.Validation.HMAC)
}
