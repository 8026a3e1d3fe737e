package config

import (
	"os"
	"path/filepath"
)

// DataPath returns the root directory for scicalc files.
// It uses $SCICALC_PATH if set, otherwise defaults to ~/.scicalc.
func DataPath() string {
	if v := os.Getenv("SCICALC_PATH"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".scicalc")
	}
	return filepath.Join(home, ".scicalc")
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	return filepath.Join(DataPath(), "config.jsonc")
}

// DotenvPath returns the path to the .env file.
func DotenvPath() string {
	return filepath.Join(DataPath(), ".env")
}

// KeymapPath returns the default key binding override file.
func KeymapPath() string {
	return filepath.Join(DataPath(), "keys.yaml")
}
