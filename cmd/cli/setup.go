package main

import (
	"errors"

	"github.com/charmbracelet/huh"
	lipgloss "github.com/charmbracelet/lipgloss/v2"

	"github.com/erg0nix/samtale/internal/config"
	"github.com/erg0nix/samtale/internal/models"
)

// errSetupDeclined signals that the user chose not to create a settings
// file; the caller exits cleanly instead of reporting a failure.
var errSetupDeclined = errors.New("setup declined")

// runSetupWizard is the first-run collaborator: it asks for a platform
// and a default model, writes the settings file, and hands the settings
// back to the facade.
func runSetupWizard(path string) (config.Settings, error) {
	create := true
	if err := huh.NewConfirm().
		Title("No settings file, create a new one?").
		Value(&create).
		Run(); err != nil {
		return config.Settings{}, err
	}
	if !create {
		return config.Settings{}, errSetupDeclined
	}

	var clientType string
	if err := huh.NewSelect[string]().
		Title("Platform:").
		Options(huh.NewOptions(models.ClientTypes()...)...).
		Value(&clientType).
		Run(); err != nil {
		return config.Settings{}, err
	}

	var modelName string
	if err := huh.NewInput().
		Title("Default model name (empty to decide later):").
		Value(&modelName).
		Run(); err != nil {
		return config.Settings{}, err
	}

	client := models.ClientConfig{Type: clientType}
	modelID := client.ClientName()
	if modelName != "" {
		client.Models = []models.ModelConfig{{Name: modelName}}
		modelID = client.ClientName() + ":" + modelName
	}

	settings := config.Settings{
		ModelID: modelID,
		Clients: []models.ClientConfig{client},
	}

	if err := config.WriteSettingsFile(path, settings); err != nil {
		return config.Settings{}, err
	}

	lipgloss.Printf("%s settings saved to %s\n", styleSuccess.Render("Saved"), path)
	return settings, nil
}
