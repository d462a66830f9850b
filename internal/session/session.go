// Package session manages the lifetime and on-disk persistence of a chat
// session: the overlay settings it copies from the defaults at creation,
// its ordered message history, and its derived token accounting.
package session

import (
	"github.com/erg0nix/samtale/internal/core"
	"github.com/erg0nix/samtale/internal/models"
)

// TempName is the reserved name for the unsaved scratch session. Its
// on-disk artifact is removed before a new temporary session starts.
const TempName = "temp"

// Session is the optional overlay over the default settings. At most one
// is active at a time; while active it is authoritative for its own copy
// of model, temperature, top-p, and the save-session toggle.
type Session struct {
	Name        string          `yaml:"name"`
	ModelID     string          `yaml:"model"`
	Temperature *float64        `yaml:"temperature,omitempty"`
	TopP        *float64        `yaml:"top_p,omitempty"`
	SaveSession *bool           `yaml:"save_session,omitempty"`
	Exchanges   []core.Exchange `yaml:"messages"`

	dirty          bool
	compressing    bool
	maxInputTokens int
}

// New creates an in-memory session seeded from the current defaults. A
// fresh session is not dirty.
func New(name, modelID string, temperature, topP *float64, saveSession *bool, maxInputTokens int) *Session {
	return &Session{
		Name:           name,
		ModelID:        modelID,
		Temperature:    temperature,
		TopP:           topP,
		SaveSession:    saveSession,
		maxInputTokens: maxInputTokens,
	}
}

// IsEmpty reports whether the session has no history yet.
func (s *Session) IsEmpty() bool {
	return len(s.Exchanges) == 0
}

// Dirty reports whether the session has been mutated since it was last
// saved.
func (s *Session) Dirty() bool {
	return s.dirty
}

// Compressing reports whether a history-summarization exchange is still
// pending. Consumers must not dispatch another compression while true.
func (s *Session) Compressing() bool {
	return s.compressing
}

// SetCompressing marks or clears the pending-summarization sub-state.
func (s *Session) SetCompressing(value bool) {
	s.compressing = value
}

// AddExchange appends one turn to the history.
func (s *Session) AddExchange(exchange core.Exchange) {
	s.Exchanges = append(s.Exchanges, exchange)
	s.dirty = true
}

// ClearExchanges drops the whole history.
func (s *Session) ClearExchanges() {
	s.Exchanges = nil
	s.dirty = true
}

// SetTemperature overrides the session's temperature.
func (s *Session) SetTemperature(value *float64) {
	s.Temperature = value
	s.dirty = true
}

// SetTopP overrides the session's top-p.
func (s *Session) SetTopP(value *float64) {
	s.TopP = value
	s.dirty = true
}

// SetSaveSession overrides the session's save-on-exit toggle. A nil
// value falls back to the settings-level toggle.
func (s *Session) SetSaveSession(value *bool) {
	s.SaveSession = value
	s.dirty = true
}

// SetModel rebinds the session to a resolved model. The caller is
// responsible for having resolved the identifier first. Rebinding to
// the already-stored model only refreshes the window metadata and does
// not count as a mutation.
func (s *Session) SetModel(model models.Model) {
	if s.ModelID != model.ID() {
		s.dirty = true
	}
	s.ModelID = model.ID()
	s.maxInputTokens = model.MaxInputWindow()
}

// ShouldSave resolves the effective save-on-exit toggle: the session's
// own toggle if set, else the settings-level toggle if set, else true.
func (s *Session) ShouldSave(settingsSaveSession *bool) bool {
	if s.SaveSession != nil {
		return *s.SaveSession
	}
	if settingsSaveSession != nil {
		return *settingsSaveSession
	}
	return true
}

// UserExchangeCount returns the number of user-authored turns.
func (s *Session) UserExchangeCount() int {
	return len(s.Exchanges)
}

// TokensAndPercent returns the estimated token consumption of the
// history and its share of the model's input window. The percent is 0
// when the window size is unknown.
func (s *Session) TokensAndPercent() (int, int) {
	tokens := 0
	for _, exchange := range s.Exchanges {
		tokens += models.EstimateTokens(exchange.Input)
		tokens += models.EstimateTokens(exchange.Output)
		for _, result := range exchange.ToolResults {
			tokens += models.EstimateTokens(result.Output)
		}
	}

	percent := 0
	if s.maxInputTokens > 0 {
		percent = tokens * 100 / s.maxInputTokens
	}
	return tokens, percent
}
