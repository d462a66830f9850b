package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/erg0nix/samtale/internal/models"
)

// Settings holds the process-wide defaults loaded once at startup. An
// active session overlays model, temperature, top-p, and save_session;
// save and function_calling are never session-overridable.
type Settings struct {
	ModelID         string                `toml:"model"`
	Temperature     *float64              `toml:"temperature,omitempty"`
	TopP            *float64              `toml:"top_p,omitempty"`
	Save            bool                  `toml:"save"`
	SaveSession     *bool                 `toml:"save_session,omitempty"`
	FunctionCalling bool                  `toml:"function_calling"`
	Clients         []models.ClientConfig `toml:"clients"`
}

func loadSettingsFile(path string) (Settings, error) {
	var settings Settings

	data, err := os.ReadFile(path)
	if err != nil {
		return settings, fmt.Errorf("read settings %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &settings); err != nil {
		return settings, fmt.Errorf("parse settings %s: %w", path, err)
	}
	return settings, nil
}

// loadSettingsEnv synthesizes a minimal settings store from the platform
// override variable, bypassing the settings file entirely.
func loadSettingsEnv(platform string) Settings {
	modelID := platform
	if name := os.Getenv(EnvName("model_name")); name != "" {
		modelID = platform + ":" + name
	}

	client := models.ClientConfig{Type: platform}
	if models.IsOpenAICompatible(platform) {
		client = models.ClientConfig{Type: "openai-compatible", Name: platform}
	}

	return Settings{
		ModelID: modelID,
		Clients: []models.ClientConfig{client},
	}
}

// WriteSettingsFile persists settings as TOML, creating parent
// directories on first use. The file is written 0600 since client
// entries may carry credentials.
func WriteSettingsFile(path string, settings Settings) error {
	data, err := toml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	if err := ensureParent(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write settings %s: %w", path, err)
	}
	return nil
}
