package config

import (
	"os"
	"path/filepath"
)

const (
	AppName        = "chatapp"
	ConfigFileName = "config.toml"
	EnvConfigPath  = "CHATAPP_CONFIG"
)

// AppDir is the per-user directory holding config and logs.
func AppDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		home, herr := os.UserHomeDir()
		if herr != nil {
			return "", err
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, AppName), nil
}

// DefaultPath resolves the config file location, honouring CHATAPP_CONFIG.
func DefaultPath() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p, nil
	}
	dir, err := AppDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}

func LogDir() (string, error) {
	dir, err := AppDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "logs"), nil
}
