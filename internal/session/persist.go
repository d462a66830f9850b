package session

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const fileExt = ".yaml"

// FilePath returns the on-disk location of a named session.
func FilePath(sessionsDir, name string) string {
	return filepath.Join(sessionsDir, name+fileExt)
}

// Load deserializes a persisted session. The stored model identifier
// still has to be re-resolved by the caller before the session is usable.
func Load(name, path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read session %s: %w", path, err)
	}

	var loaded Session
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("parse session %s: %w", path, err)
	}

	loaded.Name = name
	return &loaded, nil
}

// Save writes the session to the sessions directory, creating it if
// needed. The write goes through a temporary file and a rename so a
// crash mid-write cannot corrupt the previous save. A successful save
// clears the dirty flag.
func (s *Session) Save(sessionsDir string) error {
	if err := os.MkdirAll(sessionsDir, 0o755); err != nil {
		return fmt.Errorf("create sessions directory %s: %w", sessionsDir, err)
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal session %s: %w", s.Name, err)
	}

	path := FilePath(sessionsDir, s.Name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write session %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename session %s: %w", path, err)
	}

	s.dirty = false
	return nil
}

// Exit runs the end-of-life persistence pass: the session is written out
// when it is dirty and the effective save-on-exit toggle resolves true.
func (s *Session) Exit(sessionsDir string, settingsSaveSession *bool) error {
	if !s.dirty || !s.ShouldSave(settingsSaveSession) {
		return nil
	}
	return s.Save(sessionsDir)
}

// List returns the sorted names of all persisted sessions. A missing or
// unreadable directory yields an empty list, not an error.
func List(sessionsDir string) []string {
	entries, err := os.ReadDir(sessionsDir)
	if err != nil {
		return nil
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), fileExt) {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), fileExt))
	}

	sort.Strings(names)
	return names
}

// Export renders the session and its token accounting as YAML for the
// in-session info view.
func (s *Session) Export() (string, error) {
	tokens, percent := s.TokensAndPercent()

	info := struct {
		Name        string   `yaml:"name"`
		Model       string   `yaml:"model"`
		Temperature *float64 `yaml:"temperature,omitempty"`
		TopP        *float64 `yaml:"top_p,omitempty"`
		SaveSession *bool    `yaml:"save_session,omitempty"`
		TotalTokens int      `yaml:"total_tokens"`
		Percent     int      `yaml:"consume_percent,omitempty"`
		Messages    int      `yaml:"messages"`
	}{
		Name:        s.Name,
		Model:       s.ModelID,
		Temperature: s.Temperature,
		TopP:        s.TopP,
		SaveSession: s.SaveSession,
		TotalTokens: tokens,
		Percent:     percent,
		Messages:    len(s.Exchanges),
	}

	data, err := yaml.Marshal(info)
	if err != nil {
		return "", fmt.Errorf("export session %s: %w", s.Name, err)
	}
	return string(data), nil
}
