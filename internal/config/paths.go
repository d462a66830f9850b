package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	configFileName   = "config.toml"
	messagesFileName = "messages.md"
	sessionsDirName  = "sessions"

	envPrefix = "SAMTALE_"
)

// EnvName returns the environment variable that overrides the given
// setting, e.g. "config_dir" -> "SAMTALE_CONFIG_DIR".
func EnvName(key string) string {
	return envPrefix + strings.ToUpper(key)
}

// Dir returns the configuration directory, honoring the directory
// override variable.
func Dir() (string, error) {
	if value := os.Getenv(EnvName("config_dir")); value != "" {
		return value, nil
	}

	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(base, "samtale"), nil
}

// File returns the settings file path.
func File() (string, error) {
	if value := os.Getenv(EnvName("config_file")); value != "" {
		return value, nil
	}
	return localPath(configFileName)
}

// MessagesFile returns the append-only transcript path.
func MessagesFile() (string, error) {
	if value := os.Getenv(EnvName("messages_file")); value != "" {
		return value, nil
	}
	return localPath(messagesFileName)
}

// SessionsDir returns the directory session files live in.
func SessionsDir() (string, error) {
	if value := os.Getenv(EnvName("sessions_dir")); value != "" {
		return value, nil
	}
	return localPath(sessionsDirName)
}

func localPath(name string) (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

func ensureParent(path string) error {
	parent := filepath.Dir(path)
	if _, err := os.Stat(parent); err == nil {
		return nil
	}
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return fmt.Errorf("create parent directory for %s: %w", path, err)
	}
	return nil
}
