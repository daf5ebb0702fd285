package commands

import (
	"os"
	"path/filepath"

	"github.com/hay-kot/i2edit/internal/core/config"
	"github.com/hay-kot/i2edit/internal/core/recent"
	"github.com/hay-kot/i2edit/internal/core/status"
)

const appName = "i2edit"

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	DataDir    string

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config

	// Catalog renders localized status messages
	Catalog *status.Catalog

	// Recent remembers opened documents
	Recent recent.Store
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, appName, "config.yaml")
}

// DefaultDataDir returns the default data directory using XDG_DATA_HOME.
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, appName)
}
