package config

import "testing"

func TestUpdateUsageErrors(t *testing.T) {
	cfg := newTestConfig(t, testSettings())

	for _, data := range []string{"", "temperature", "temperature 0.5 extra"} {
		if err := cfg.Update(data); err != ErrUpdateUsage {
			t.Fatalf("%q: expected usage error, got %v", data, err)
		}
	}

	if err := cfg.Update("volume 11"); err == nil {
		t.Fatal("expected unknown-key error")
	}
	if err := cfg.Update("temperature warm"); err == nil {
		t.Fatal("expected invalid-value error")
	}
	if cfg.Settings().Temperature != nil {
		t.Fatal("failed update must not mutate state")
	}
}

func TestUpdateSettingsKeys(t *testing.T) {
	cfg := newTestConfig(t, testSettings())

	if err := cfg.Update("temperature 0.8"); err != nil {
		t.Fatalf("update: %v", err)
	}
	if got := cfg.Temperature(); got == nil || *got != 0.8 {
		t.Fatalf("temperature not applied: %v", got)
	}

	if err := cfg.Update("top_p 0.95"); err != nil {
		t.Fatalf("update: %v", err)
	}
	if got := cfg.TopP(); got == nil || *got != 0.95 {
		t.Fatalf("top_p not applied: %v", got)
	}

	if err := cfg.Update("save true"); err != nil {
		t.Fatalf("update: %v", err)
	}
	if !cfg.Settings().Save {
		t.Fatal("save not applied")
	}

	if err := cfg.Update("function_calling true"); err != nil {
		t.Fatalf("update: %v", err)
	}
	if !cfg.Settings().FunctionCalling {
		t.Fatal("function_calling not applied")
	}

	if err := cfg.Update("max_output_tokens 512"); err != nil {
		t.Fatalf("update: %v", err)
	}
	if got := cfg.Model().MaxOutputTokens; got == nil || *got != 512 {
		t.Fatalf("max_output_tokens not applied: %v", got)
	}
}

func TestUpdateNullUnsets(t *testing.T) {
	settings := testSettings()
	settings.Temperature = floatPtr(0.4)
	settings.SaveSession = boolPtr(false)
	cfg := newTestConfig(t, settings)

	if err := cfg.Update("temperature null"); err != nil {
		t.Fatalf("update: %v", err)
	}
	if cfg.Temperature() != nil {
		t.Fatal("'null' must clear the temperature")
	}

	if err := cfg.Update("save_session null"); err != nil {
		t.Fatalf("update: %v", err)
	}
	if cfg.Settings().SaveSession != nil {
		t.Fatal("'null' must restore save_session to unset")
	}
}

func TestUpdateRoutesToSession(t *testing.T) {
	cfg := newTestConfig(t, testSettings())

	if err := cfg.UseSession("", nil); err != nil {
		t.Fatalf("use session: %v", err)
	}
	if err := cfg.Update("temperature 0.9"); err != nil {
		t.Fatalf("update: %v", err)
	}

	if got := cfg.Temperature(); got == nil || *got != 0.9 {
		t.Fatalf("session temperature not applied: %v", got)
	}
	if cfg.Settings().Temperature != nil {
		t.Fatal("settings must be untouched while a session is active")
	}

	// save and function_calling are not session-overridable.
	if err := cfg.Update("save true"); err != nil {
		t.Fatalf("update: %v", err)
	}
	if !cfg.Settings().Save {
		t.Fatal("save must always target the settings store")
	}
}
