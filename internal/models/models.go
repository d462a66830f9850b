// Package models describes the chat-model catalog: client configurations
// loaded from settings, the model descriptors derived from them, and the
// token-window metadata the session layer needs for accounting.
package models

import "strings"

// ModelConfig is one model entry under a client in the settings file.
type ModelConfig struct {
	Name            string `toml:"name" yaml:"name"`
	MaxInputTokens  *int   `toml:"max_input_tokens,omitempty" yaml:"max_input_tokens,omitempty"`
	MaxOutputTokens *int   `toml:"max_output_tokens,omitempty" yaml:"max_output_tokens,omitempty"`
}

// ClientConfig is one provider entry in the settings file. Name is
// optional; a client without one is addressed by its type.
type ClientConfig struct {
	Type   string        `toml:"type" yaml:"type"`
	Name   string        `toml:"name,omitempty" yaml:"name,omitempty"`
	Models []ModelConfig `toml:"models,omitempty" yaml:"models,omitempty"`
}

// ClientName returns the name the client's models are addressed by.
func (c ClientConfig) ClientName() string {
	if c.Name != "" {
		return c.Name
	}
	return c.Type
}

// Model is a resolved chat-model descriptor bound to a client.
type Model struct {
	ClientName      string
	Name            string
	MaxInputTokens  *int
	MaxOutputTokens *int
}

// ID returns the catalog identifier, "client:model" or the bare client
// name when the client declares no named models.
func (m Model) ID() string {
	if m.Name == "" {
		return m.ClientName
	}
	return m.ClientName + ":" + m.Name
}

// MaxInputWindow returns the model's input-token limit, or 0 when the
// catalog does not declare one.
func (m Model) MaxInputWindow() int {
	if m.MaxInputTokens == nil {
		return 0
	}
	return *m.MaxInputTokens
}

// SetMaxOutputTokens overrides the output-token cap on the live model.
// A nil value restores "no explicit cap".
func (m *Model) SetMaxOutputTokens(value *int) {
	m.MaxOutputTokens = value
}

// List expands the configured clients into the full catalog of chat
// models. A client with no model entries still contributes one bare
// descriptor so the client remains addressable.
func List(clients []ClientConfig) []Model {
	var result []Model
	for _, client := range clients {
		if len(client.Models) == 0 {
			result = append(result, Model{ClientName: client.ClientName()})
			continue
		}
		for _, mc := range client.Models {
			result = append(result, Model{
				ClientName:      client.ClientName(),
				Name:            mc.Name,
				MaxInputTokens:  mc.MaxInputTokens,
				MaxOutputTokens: mc.MaxOutputTokens,
			})
		}
	}
	return result
}

// Find resolves an identifier against the catalog. An exact ID match
// wins; a bare client name matches that client's first model. Returns
// nil when nothing resolves.
func Find(catalog []Model, id string) *Model {
	for i := range catalog {
		if catalog[i].ID() == id {
			m := catalog[i]
			return &m
		}
	}
	if !strings.Contains(id, ":") {
		for i := range catalog {
			if catalog[i].ClientName == id {
				m := catalog[i]
				return &m
			}
		}
	}
	return nil
}

// EstimateTokens returns a rough token estimate (total bytes / 4).
func EstimateTokens(text string) int {
	return len(text) / 4
}
