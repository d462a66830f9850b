package config

import (
	"fmt"
	"strconv"
	"strings"
)

// RenderContext derives the string-keyed dictionary the prompt-template
// renderer consumes. Keys are only present while the feature they
// describe is active; consumers treat absence as "inactive".
func (c *Config) RenderContext() map[string]string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	output := map[string]string{
		"model":            c.model.ID(),
		"client_name":      c.model.ClientName,
		"model_name":       c.model.Name,
		"max_input_tokens": strconv.Itoa(c.model.MaxInputWindow()),
	}

	if c.settings.Temperature != nil && *c.settings.Temperature != 0 {
		output["temperature"] = formatFloat(*c.settings.Temperature)
	}
	if c.settings.TopP != nil && *c.settings.TopP != 0 {
		output["top_p"] = formatFloat(*c.settings.TopP)
	}
	if c.settings.Save {
		output["save"] = "true"
	}

	if c.session != nil {
		tokens, percent := c.session.TokensAndPercent()
		output["session"] = c.session.Name
		output["dirty"] = strconv.FormatBool(c.session.Dirty())
		output["consume_tokens"] = strconv.Itoa(tokens)
		output["consume_percent"] = strconv.Itoa(percent)
		output["user_messages_len"] = strconv.Itoa(c.session.UserExchangeCount())
	}

	return output
}

// SystemInfo renders the settings store and the derived file locations
// as an aligned key-value listing.
func (c *Config) SystemInfo() (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	configFile, err := File()
	if err != nil {
		return "", err
	}
	messagesFile, err := MessagesFile()
	if err != nil {
		return "", err
	}
	sessionsDir, err := SessionsDir()
	if err != nil {
		return "", err
	}

	temperature, topP := c.settings.Temperature, c.settings.TopP
	if c.session != nil {
		temperature, topP = c.session.Temperature, c.session.TopP
	}

	items := []struct {
		name  string
		value string
	}{
		{"model", c.model.ID()},
		{"max_output_tokens", formatOptionalInt(c.model.MaxOutputTokens)},
		{"temperature", formatOptionalFloat(temperature)},
		{"top_p", formatOptionalFloat(topP)},
		{"function_calling", strconv.FormatBool(c.settings.FunctionCalling)},
		{"save", strconv.FormatBool(c.settings.Save)},
		{"save_session", formatOptionalBool(c.settings.SaveSession)},
		{"config_file", configFile},
		{"messages_file", messagesFile},
		{"sessions_dir", sessionsDir},
	}

	var b strings.Builder
	for _, item := range items {
		fmt.Fprintf(&b, "%-20s%s\n", item.name, item.value)
	}
	return b.String(), nil
}

// Info renders the active session's export when one exists, the system
// info otherwise.
func (c *Config) Info() (string, error) {
	c.mu.RLock()
	if c.session != nil {
		defer c.mu.RUnlock()
		return c.session.Export()
	}
	c.mu.RUnlock()
	return c.SystemInfo()
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func formatOptionalFloat(value *float64) string {
	if value == nil {
		return "-"
	}
	return formatFloat(*value)
}

func formatOptionalInt(value *int) string {
	if value == nil {
		return "-"
	}
	return strconv.Itoa(*value)
}

func formatOptionalBool(value *bool) string {
	if value == nil {
		return "-"
	}
	return strconv.FormatBool(*value)
}
