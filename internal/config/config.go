// Package config owns the runtime configuration of the chat client: the
// file-loaded defaults, the optional session overlay, and the single
// lock-guarded facade the rest of the program talks to. Every read and
// write of model, temperature, top-p, and the save toggles goes through
// the facade, which routes it to the active session when one exists and
// to the settings store otherwise.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/erg0nix/samtale/internal/core"
	"github.com/erg0nix/samtale/internal/models"
	"github.com/erg0nix/samtale/internal/session"
)

var (
	// ErrNoSession is returned by session-only operations while no
	// session is active.
	ErrNoSession = errors.New("no active session")

	// ErrSessionActive is returned when a session start is attempted
	// while one is already active.
	ErrSessionActive = errors.New("already in a session; run '.exit session' first")
)

// Confirm asks the user a yes/no question and reports the answer. The
// default answer is no; implementations must not block indefinitely when
// no terminal is attached.
type Confirm func(prompt string) bool

// SetupWizard is invoked when no settings file exists yet. It is
// expected to interact with the user, write the file at the given path,
// and return the resulting settings.
type SetupWizard func(path string) (Settings, error)

// Config is the single mutation and query surface for settings and
// session state. One instance is created at startup and passed by
// handle; all access is serialized under its lock.
type Config struct {
	mu sync.RWMutex

	settings Settings
	model    models.Model
	session  *session.Session

	// lastExchange caches the most recent turn independent of any
	// session, so a newly started session can be seeded with it.
	lastExchange *core.Exchange
}

// Init loads settings and returns the bound facade. The platform
// override variable bypasses the file; a missing file hands control to
// the setup wizard collaborator.
func Init(path string, wizard SetupWizard) (*Config, error) {
	if platform := os.Getenv(EnvName("platform")); platform != "" {
		slog.Debug("loading settings from environment", "platform", platform)
		return New(loadSettingsEnv(platform))
	}

	if path == "" {
		var err error
		path, err = File()
		if err != nil {
			return nil, err
		}
	}

	var settings Settings
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("stat settings %s: %w", path, err)
		}
		if wizard == nil {
			return nil, fmt.Errorf("no settings file at %s", path)
		}
		settings, err = wizard(path)
		if err != nil {
			return nil, err
		}
	} else {
		slog.Debug("loading settings", "path", path)
		var err error
		settings, err = loadSettingsFile(path)
		if err != nil {
			return nil, err
		}
	}

	return New(settings)
}

// New builds a facade around already-loaded settings and binds the
// startup model: the configured identifier, or the catalog's first model
// when none is configured.
func New(settings Settings) (*Config, error) {
	cfg := &Config{settings: settings}

	modelID := settings.ModelID
	if modelID == "" {
		catalog := models.List(settings.Clients)
		if len(catalog) == 0 {
			return nil, errors.New("no available model")
		}
		modelID = catalog[0].ID()
	}

	if err := cfg.setModel(modelID); err != nil {
		return nil, err
	}
	cfg.settings.ModelID = modelID

	return cfg, nil
}

// Settings returns a copy of the current defaults.
func (c *Config) Settings() Settings {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.settings
}

// Model returns the live model descriptor.
func (c *Config) Model() models.Model {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.model
}

// Temperature returns the effective temperature: the session's when one
// is active, else the settings default.
func (c *Config) Temperature() *float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.session != nil {
		return c.session.Temperature
	}
	return c.settings.Temperature
}

// TopP returns the effective top-p.
func (c *Config) TopP() *float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.session != nil {
		return c.session.TopP
	}
	return c.settings.TopP
}

// SetTemperature writes the temperature to the active session, or to the
// settings store when none is active — never both.
func (c *Config) SetTemperature(value *float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.target().SetTemperature(value)
}

// SetTopP writes the top-p to the session-or-settings target.
func (c *Config) SetTopP(value *float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.target().SetTopP(value)
}

// SetSaveSession writes the save-session toggle to the session-or-settings
// target. A nil value restores the inherit state.
func (c *Config) SetSaveSession(value *bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.target().SetSaveSession(value)
}

// SetModel resolves the identifier against the catalog and rebinds the
// live model, updating the active session in the same step so the two
// can never disagree. An unresolvable identifier fails without mutating
// state.
func (c *Config) SetModel(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.setModel(id)
}

func (c *Config) setModel(id string) error {
	found := models.Find(models.List(c.settings.Clients), id)
	if found == nil {
		return fmt.Errorf("no model '%s'", id)
	}
	if c.session != nil {
		c.session.SetModel(*found)
	}
	c.model = *found
	return nil
}

// MarkModelID snapshots the live model's identifier into the settings
// store so RestoreModel can return to it after a session ends.
func (c *Config) MarkModelID() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.markModelID()
}

func (c *Config) markModelID() {
	c.settings.ModelID = c.model.ID()
}

// RestoreModel re-resolves the snapshotted identifier. It fails the same
// way SetModel does when the identifier no longer resolves.
func (c *Config) RestoreModel() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.setModel(c.settings.ModelID)
}

// SaveMessage records one completed turn. The last-message cache is
// always updated; an active session takes the turn instead of the
// transcript, which is only appended when the save toggle is on and the
// output is non-empty.
func (c *Config) SaveMessage(input, output string, toolResults []core.ToolResult) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	exchange := core.Exchange{Input: input, Output: output, ToolResults: toolResults}
	c.lastExchange = &exchange

	if c.session != nil {
		c.session.AddExchange(exchange)
		return nil
	}

	if !c.settings.Save || output == "" {
		return nil
	}
	return appendTranscript(exchange)
}

// LastReply returns the output of the most recent turn, or "".
func (c *Config) LastReply() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.lastExchange == nil {
		return ""
	}
	return c.lastExchange.Output
}

// UseSession activates a session. Without a name it starts a fresh
// temporary session, removing any stale temp file first. With a name it
// loads the persisted session if one exists — re-resolving its stored
// model and failing the whole operation when that model is gone — or
// creates a new session seeded from the current defaults. A newly
// started empty session may be seeded with the cached last turn, behind
// the confirm collaborator.
func (c *Config) UseSession(name string, confirm Confirm) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session != nil {
		return ErrSessionActive
	}

	// Snapshot the live model so ExitSession returns to it even when it
	// was changed after startup.
	c.markModelID()

	sessionsDir, err := SessionsDir()
	if err != nil {
		return err
	}

	switch {
	case name == "":
		path := session.FilePath(sessionsDir, session.TempName)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("cleanup previous '%s' session: %w", session.TempName, err)
		}
		c.session = c.newSession(session.TempName)

	default:
		path := session.FilePath(sessionsDir, name)
		if _, err := os.Stat(path); err != nil {
			if !os.IsNotExist(err) {
				return fmt.Errorf("stat session %s: %w", path, err)
			}
			c.session = c.newSession(name)
			break
		}

		loaded, err := session.Load(name, path)
		if err != nil {
			return err
		}
		// Bind the live model before activating so an unresolvable
		// identifier leaves the facade untouched.
		found := models.Find(models.List(c.settings.Clients), loaded.ModelID)
		if found == nil {
			return fmt.Errorf("no model '%s'", loaded.ModelID)
		}
		c.session = loaded
		c.session.SetModel(*found)
		c.model = *found
	}

	if c.session.IsEmpty() && c.lastExchange != nil && confirm != nil {
		if confirm("Start a session that incorporates the last question and answer?") {
			c.session.AddExchange(*c.lastExchange)
		}
	}

	return nil
}

func (c *Config) newSession(name string) *session.Session {
	return session.New(
		name,
		c.model.ID(),
		c.settings.Temperature,
		c.settings.TopP,
		c.settings.SaveSession,
		c.model.MaxInputWindow(),
	)
}

// SaveSession persists the active session, renaming it first when a
// non-empty name is given.
func (c *Config) SaveSession(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session == nil {
		return ErrNoSession
	}
	if name != "" {
		c.session.Name = name
	}

	sessionsDir, err := SessionsDir()
	if err != nil {
		return err
	}
	return c.session.Save(sessionsDir)
}

// ExitSession tears the active session down: it runs the persistence
// pass, clears the last-message cache, discards the session, and
// restores the pre-session model. The session is discarded even when
// persisting or restoring fails; those errors are surfaced, not
// swallowed.
func (c *Config) ExitSession() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session == nil {
		return ErrNoSession
	}

	exiting := c.session
	c.session = nil
	c.lastExchange = nil

	var saveErr error
	sessionsDir, err := SessionsDir()
	if err != nil {
		saveErr = err
	} else {
		saveErr = exiting.Exit(sessionsDir, c.settings.SaveSession)
	}

	restoreErr := c.setModel(c.settings.ModelID)
	if restoreErr != nil {
		slog.Warn("failed to restore pre-session model", "model", c.settings.ModelID, "error", restoreErr)
	}

	if saveErr != nil {
		return saveErr
	}
	return restoreErr
}

// ClearSessionMessages drops the active session's history.
func (c *Config) ClearSessionMessages() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session == nil {
		return ErrNoSession
	}
	c.session.ClearExchanges()
	return nil
}

// ListSessions enumerates the sessions directory, returning sorted names
// with the file extension stripped. A missing or unreadable directory
// yields an empty list.
func (c *Config) ListSessions() []string {
	sessionsDir, err := SessionsDir()
	if err != nil {
		return nil
	}
	return session.List(sessionsDir)
}

// IsCompressingSession reports whether a history summarization is
// pending on the active session.
func (c *Config) IsCompressingSession() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session != nil && c.session.Compressing()
}

// StartCompressingSession marks the active session as waiting on a
// summarization exchange.
func (c *Config) StartCompressingSession() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session != nil {
		c.session.SetCompressing(true)
	}
}

// EndCompressingSession clears the pending-summarization mark once the
// response has been folded into history.
func (c *Config) EndCompressingSession() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session != nil {
		c.session.SetCompressing(false)
	}
}

// State derives the current flag set from session presence and
// emptiness.
func (c *Config) State() StateFlags {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var flags StateFlags
	if c.session != nil {
		if c.session.IsEmpty() {
			flags |= FlagSessionEmpty
		} else {
			flags |= FlagSession
		}
	}
	return flags
}

// target returns the settings sink mutations are routed to: the active
// session when one exists, the settings store otherwise.
func (c *Config) target() settingsTarget {
	if c.session != nil {
		return c.session
	}
	return (*storeTarget)(c)
}

// settingsTarget routes sampling-parameter writes without duplicating the
// session-or-settings branch in every setter.
type settingsTarget interface {
	SetTemperature(value *float64)
	SetTopP(value *float64)
	SetSaveSession(value *bool)
}

// storeTarget is the settings-store implementation of settingsTarget.
type storeTarget Config

func (t *storeTarget) SetTemperature(value *float64) { t.settings.Temperature = value }
func (t *storeTarget) SetTopP(value *float64)        { t.settings.TopP = value }
func (t *storeTarget) SetSaveSession(value *bool)    { t.settings.SaveSession = value }
