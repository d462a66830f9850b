package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/erg0nix/samtale/internal/core"
	"github.com/erg0nix/samtale/internal/models"
)

func floatPtr(v float64) *float64 { return &v }
func boolPtr(v bool) *bool        { return &v }

func newTestSession(t *testing.T) *Session {
	t.Helper()
	return New("work", "openai:gpt-4", floatPtr(0.5), nil, nil, 8192)
}

func TestNewSessionNotDirty(t *testing.T) {
	s := newTestSession(t)

	if s.Dirty() {
		t.Fatal("fresh session must not be dirty")
	}
	if !s.IsEmpty() {
		t.Fatal("fresh session must be empty")
	}
	if s.ModelID != "openai:gpt-4" {
		t.Fatalf("unexpected model: %s", s.ModelID)
	}
	if s.Temperature == nil || *s.Temperature != 0.5 {
		t.Fatalf("temperature not inherited: %v", s.Temperature)
	}
}

func TestMutationsMarkDirty(t *testing.T) {
	mutations := map[string]func(*Session){
		"add exchange":     func(s *Session) { s.AddExchange(core.Exchange{Input: "hi", Output: "yo"}) },
		"clear exchanges":  func(s *Session) { s.ClearExchanges() },
		"set temperature":  func(s *Session) { s.SetTemperature(floatPtr(0.9)) },
		"set top_p":        func(s *Session) { s.SetTopP(floatPtr(0.7)) },
		"set save_session": func(s *Session) { s.SetSaveSession(boolPtr(false)) },
		"set model":        func(s *Session) { s.SetModel(models.Model{ClientName: "ollama", Name: "llama3"}) },
	}

	for name, mutate := range mutations {
		s := newTestSession(t)
		mutate(s)
		if !s.Dirty() {
			t.Fatalf("%s: session must be dirty after mutation", name)
		}
	}
}

func TestRebindSameModelNotDirty(t *testing.T) {
	s := newTestSession(t)

	s.SetModel(models.Model{ClientName: "openai", Name: "gpt-4"})
	if s.Dirty() {
		t.Fatal("rebinding the stored model must not mark the session dirty")
	}

	s.SetModel(models.Model{ClientName: "ollama", Name: "llama3"})
	if !s.Dirty() {
		t.Fatal("changing the model must mark the session dirty")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()

	s := New("trip", "openai:gpt-4", floatPtr(0.7), floatPtr(0.9), boolPtr(true), 8192)
	s.AddExchange(core.Exchange{Input: "first question", Output: "first answer"})
	s.AddExchange(core.Exchange{
		Input:       "second question",
		Output:      "second answer",
		ToolResults: []core.ToolResult{{Name: "search", Output: "results"}},
	})

	if err := s.Save(dir); err != nil {
		t.Fatalf("save: %v", err)
	}
	if s.Dirty() {
		t.Fatal("save must clear the dirty flag")
	}

	loaded, err := Load("trip", FilePath(dir, "trip"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if loaded.ModelID != "openai:gpt-4" {
		t.Fatalf("model not preserved: %s", loaded.ModelID)
	}
	if loaded.Temperature == nil || *loaded.Temperature != 0.7 {
		t.Fatalf("temperature not preserved: %v", loaded.Temperature)
	}
	if loaded.TopP == nil || *loaded.TopP != 0.9 {
		t.Fatalf("top_p not preserved: %v", loaded.TopP)
	}
	if loaded.SaveSession == nil || !*loaded.SaveSession {
		t.Fatalf("save_session not preserved: %v", loaded.SaveSession)
	}
	if len(loaded.Exchanges) != 2 {
		t.Fatalf("expected 2 exchanges, got %d", len(loaded.Exchanges))
	}
	if loaded.Exchanges[0].Input != "first question" || loaded.Exchanges[1].Input != "second question" {
		t.Fatal("exchange order not preserved")
	}
	if loaded.Exchanges[1].ToolResults[0].Name != "search" {
		t.Fatal("tool results not preserved")
	}
	if loaded.Dirty() {
		t.Fatal("loaded session must not be dirty")
	}
}

func TestSaveLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()

	s := newTestSession(t)
	s.AddExchange(core.Exchange{Input: "q", Output: "a"})
	if err := s.Save(dir); err != nil {
		t.Fatalf("save: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected exactly the session file, got %d entries", len(entries))
	}
	if entries[0].Name() != "work.yaml" {
		t.Fatalf("unexpected file: %s", entries[0].Name())
	}
}

func TestShouldSaveResolution(t *testing.T) {
	cases := []struct {
		name     string
		session  *bool
		settings *bool
		want     bool
	}{
		{"session toggle wins", boolPtr(false), boolPtr(true), false},
		{"settings toggle when session unset", nil, boolPtr(false), false},
		{"built-in default persists", nil, nil, true},
		{"session true over settings false", boolPtr(true), boolPtr(false), true},
	}

	for _, tc := range cases {
		s := New("x", "m", nil, nil, tc.session, 0)
		if got := s.ShouldSave(tc.settings); got != tc.want {
			t.Fatalf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestExitHonorsToggle(t *testing.T) {
	dir := t.TempDir()

	s := New("discard", "m", nil, nil, boolPtr(false), 0)
	s.AddExchange(core.Exchange{Input: "q", Output: "a"})
	if err := s.Exit(dir, nil); err != nil {
		t.Fatalf("exit: %v", err)
	}
	if _, err := os.Stat(FilePath(dir, "discard")); !os.IsNotExist(err) {
		t.Fatal("session with save_session=false must not be persisted on exit")
	}

	s = New("keep", "m", nil, nil, nil, 0)
	s.AddExchange(core.Exchange{Input: "q", Output: "a"})
	if err := s.Exit(dir, nil); err != nil {
		t.Fatalf("exit: %v", err)
	}
	if _, err := os.Stat(FilePath(dir, "keep")); err != nil {
		t.Fatal("dirty session must be persisted on exit by default")
	}
}

func TestExitSkipsCleanSession(t *testing.T) {
	dir := t.TempDir()

	s := New("clean", "m", nil, nil, nil, 0)
	if err := s.Exit(dir, nil); err != nil {
		t.Fatalf("exit: %v", err)
	}
	if _, err := os.Stat(FilePath(dir, "clean")); !os.IsNotExist(err) {
		t.Fatal("clean session must not be written on exit")
	}
}

func TestTokensAndPercent(t *testing.T) {
	s := New("t", "m", nil, nil, nil, 100)
	s.AddExchange(core.Exchange{
		Input:  "aaaaaaaaaaaaaaaaaaaa", // 20 bytes -> 5 tokens
		Output: "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb", // 40 bytes -> 10 tokens
	})

	tokens, percent := s.TokensAndPercent()
	if tokens != 15 {
		t.Fatalf("expected 15 tokens, got %d", tokens)
	}
	if percent != 15 {
		t.Fatalf("expected 15 percent, got %d", percent)
	}

	unknown := New("u", "m", nil, nil, nil, 0)
	unknown.AddExchange(core.Exchange{Input: "qqqq", Output: "aaaa"})
	if _, percent := unknown.TokensAndPercent(); percent != 0 {
		t.Fatalf("unknown window must report 0 percent, got %d", percent)
	}
}

func TestListSorted(t *testing.T) {
	dir := t.TempDir()

	if got := List(dir); got != nil {
		t.Fatalf("empty dir: expected nil, got %v", got)
	}
	if got := List(filepath.Join(dir, "missing")); got != nil {
		t.Fatalf("missing dir: expected nil, got %v", got)
	}

	for _, name := range []string{"zebra", "alpha", "mid"} {
		if err := os.WriteFile(FilePath(dir, name), []byte("name: "+name+"\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip"), 0o644); err != nil {
		t.Fatal(err)
	}

	got := List(dir)
	want := []string{"alpha", "mid", "zebra"}
	if len(got) != len(want) {
		t.Fatalf("expected %d names, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestClearExchanges(t *testing.T) {
	s := newTestSession(t)
	s.AddExchange(core.Exchange{Input: "q", Output: "a"})

	s.ClearExchanges()

	if !s.IsEmpty() {
		t.Fatal("history must be empty after clear")
	}
	if !s.Dirty() {
		t.Fatal("clear must mark the session dirty")
	}
}
