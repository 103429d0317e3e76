package config

import (
	"os"
	"path/filepath"
)

// MemorydPath returns the root directory for memoryd data.
// It uses $MEMORYD_PATH if set, otherwise defaults to ~/.memoryd.
func MemorydPath() string {
	if v := os.Getenv("MEMORYD_PATH"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".memoryd")
	}
	return filepath.Join(home, ".memoryd")
}

// ConfigPath returns the path to the memoryd config file.
func ConfigPath() string {
	return filepath.Join(MemorydPath(), "config.jsonc")
}

// DotenvPath returns the path to the memoryd .env file.
func DotenvPath() string {
	return filepath.Join(MemorydPath(), ".env")
}

// DatabasePath returns the default path to the memory database.
func DatabasePath() string {
	return filepath.Join(MemorydPath(), "memories.db")
}
