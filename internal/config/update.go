package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUpdateUsage is returned when the update command is not exactly
// "<key> <value>".
var ErrUpdateUsage = errors.New("usage: .set <key> <value> (a value of 'null' unsets the key)")

// Update applies a single "<key> <value>" command to the recognized
// settings keys. Model, temperature, top-p, and save_session route
// through the session-aware setters; function_calling and save always
// target the settings store; max_output_tokens targets the live model.
// Unknown keys and unparsable values fail without mutating state.
func (c *Config) Update(data string) error {
	parts := strings.Fields(data)
	if len(parts) != 2 {
		return ErrUpdateUsage
	}
	key, value := parts[0], parts[1]

	c.mu.Lock()
	defer c.mu.Unlock()

	switch key {
	case "max_output_tokens":
		parsed, err := parseOptionalInt(value)
		if err != nil {
			return err
		}
		c.model.SetMaxOutputTokens(parsed)
	case "temperature":
		parsed, err := parseOptionalFloat(value)
		if err != nil {
			return err
		}
		c.target().SetTemperature(parsed)
	case "top_p":
		parsed, err := parseOptionalFloat(value)
		if err != nil {
			return err
		}
		c.target().SetTopP(parsed)
	case "function_calling":
		parsed, err := parseBool(value)
		if err != nil {
			return err
		}
		c.settings.FunctionCalling = parsed
	case "save":
		parsed, err := parseBool(value)
		if err != nil {
			return err
		}
		c.settings.Save = parsed
	case "save_session":
		parsed, err := parseOptionalBool(value)
		if err != nil {
			return err
		}
		c.target().SetSaveSession(parsed)
	default:
		return fmt.Errorf("unknown key '%s'", key)
	}

	return nil
}

const nullValue = "null"

func parseOptionalFloat(value string) (*float64, error) {
	if value == nullValue {
		return nil, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid value '%s'", value)
	}
	return &parsed, nil
}

func parseOptionalInt(value string) (*int, error) {
	if value == nullValue {
		return nil, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid value '%s'", value)
	}
	return &parsed, nil
}

func parseOptionalBool(value string) (*bool, error) {
	if value == nullValue {
		return nil, nil
	}
	parsed, err := parseBool(value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func parseBool(value string) (bool, error) {
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid value '%s'", value)
	}
	return parsed, nil
}
