package core

// DatabaseConfig holds the [database] section of the configuration file.
type DatabaseConfig struct {
	Type     string            `koanf:"type" yaml:"type"` // mariadb, mysql, postgres, sqlite
	User     string            `koanf:"user" yaml:"user"`
	Password string            `koanf:"password" yaml:"password"`
	Host     string            `koanf:"host" yaml:"host"`
	Port     int               `koanf:"port" yaml:"port"`
	Database string            `koanf:"database" yaml:"database"`
	Path     string            `koanf:"path" yaml:"path,omitempty"` // SQLite file; falls back to Database
	Options  map[string]string `koanf:"options" yaml:"options,omitempty"`
}

// AdapterConfig converts the section into the settings an adapter connects with.
func (d DatabaseConfig) AdapterConfig() AdapterConfig {
	var opts map[string]string
	if len(d.Options) > 0 {
		opts = make(map[string]string, len(d.Options))
		for k, v := range d.Options {
			opts[k] = v
		}
	}
	return AdapterConfig{
		Type:     d.Type,
		Path:     d.Path,
		Host:     d.Host,
		Port:     d.Port,
		Database: d.Database,
		Username: d.User,
		Password: d.Password,
		Options:  opts,
	}
}

// ValidationConfig holds the [validation] section.
type ValidationConfig struct {
	// HMAC is handed to callers unmodified; chainsql never uses it itself.
	HMAC string `koanf:"hmac" yaml:"hmac"`
}

// LogConfig controls the CLI logger.
type LogConfig struct {
	Level  string `koanf:"level" yaml:"level"`   // debug, info, warn, error
	Format string `koanf:"format" yaml:"format"` // console, json
}

// MetricsConfig controls pushing CLI metrics to a Prometheus Pushgateway.
type MetricsConfig struct {
	PushGateway string `koanf:"pushgateway" yaml:"pushgateway,omitempty"` // empty disables pushing
	Job         string `koanf:"job" yaml:"job"`
}

// Config is the complete chainsql configuration.
type Config struct {
	Database   DatabaseConfig   `koanf:"database" yaml:"database"`
	Validation ValidationConfig `koanf:"validation" yaml:"validation"`
	Log        LogConfig        `koanf:"log" yaml:"log"`
	Metrics    MetricsConfig    `koanf:"metrics" yaml:"metrics"`
}
