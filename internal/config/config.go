package config

// Config is the root configuration for memoryd.
type Config struct {
	Database DatabaseConfig `json:"database"`
	Log      LogConfig      `json:"log"`
}

// DatabaseConfig holds the SQLite database settings.
type DatabaseConfig struct {
	Path string `json:"path"` // database file (default: $MEMORYD_PATH/memories.db)
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `json:"level"` // debug, info, warn, error (default: warn)
}
