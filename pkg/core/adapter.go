package core

// AdapterConfig holds configuration for connecting to a database.
type AdapterConfig struct {
	Type     string
	Path     string // file-based databases (SQLite)
	Host     string
	Port     int
	Database string
	Username string
	Password string
	Options  map[string]string
}
