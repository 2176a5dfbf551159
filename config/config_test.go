package config

import (
	"os"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.VariantName != "No Variant" {
		t.Errorf("expected VariantName=%q, got %q", "No Variant", cfg.VariantName)
	}
	if len(cfg.PlayerNames) != 2 {
		t.Errorf("expected 2 default player names, got %d", len(cfg.PlayerNames))
	}
	if cfg.OurPlayerIndex != 0 {
		t.Errorf("expected OurPlayerIndex=0, got %d", cfg.OurPlayerIndex)
	}
	if cfg.CatchingUp {
		t.Error("expected CatchingUp=false by default")
	}
	if cfg.EndgameDeadlineMS != 1000 {
		t.Errorf("expected EndgameDeadlineMS=1000, got %d", cfg.EndgameDeadlineMS)
	}
	if cfg.MonteCarloEndgame {
		t.Error("expected MonteCarloEndgame=false by default")
	}
	if cfg.WSPort != 8080 {
		t.Errorf("expected WSPort=8080, got %d", cfg.WSPort)
	}
	if cfg.MaxLatencyMS != 500 {
		t.Errorf("expected MaxLatencyMS=500, got %d", cfg.MaxLatencyMS)
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	os.Setenv("VARIANT_NAME", "Six Suits")
	os.Setenv("OUR_PLAYER_INDEX", "1")
	os.Setenv("ENDGAME_DEADLINE_MS", "2500")
	os.Setenv("WS_PORT", "9090")
	os.Setenv("PLAYER_NAMES", "Ada,Grace,Margaret")
	defer func() {
		os.Unsetenv("VARIANT_NAME")
		os.Unsetenv("OUR_PLAYER_INDEX")
		os.Unsetenv("ENDGAME_DEADLINE_MS")
		os.Unsetenv("WS_PORT")
		os.Unsetenv("PLAYER_NAMES")
	}()

	cfg := Load()

	if cfg.VariantName != "Six Suits" {
		t.Errorf("expected VariantName=%q after env override, got %q", "Six Suits", cfg.VariantName)
	}
	if cfg.OurPlayerIndex != 1 {
		t.Errorf("expected OurPlayerIndex=1 after env override, got %d", cfg.OurPlayerIndex)
	}
	if cfg.EndgameDeadlineMS != 2500 {
		t.Errorf("expected EndgameDeadlineMS=2500 after env override, got %d", cfg.EndgameDeadlineMS)
	}
	if cfg.WSPort != 9090 {
		t.Errorf("expected WSPort=9090 after env override, got %d", cfg.WSPort)
	}
	if len(cfg.PlayerNames) != 3 || cfg.PlayerNames[1] != "Grace" {
		t.Errorf("expected 3 player names with Grace second, got %v", cfg.PlayerNames)
	}
	// Non-overridden fields should remain default.
	if cfg.MaxLatencyMS != 500 {
		t.Errorf("expected MaxLatencyMS=500 (default), got %d", cfg.MaxLatencyMS)
	}
}

func TestLoadWithMonteCarloEnvOverride(t *testing.T) {
	os.Setenv("MONTE_CARLO_ENDGAME", "true")
	os.Setenv("CATCHING_UP", "true")
	defer func() {
		os.Unsetenv("MONTE_CARLO_ENDGAME")
		os.Unsetenv("CATCHING_UP")
	}()

	cfg := Load()

	if !cfg.MonteCarloEndgame {
		t.Error("expected MonteCarloEndgame=true after env override")
	}
	if !cfg.CatchingUp {
		t.Error("expected CatchingUp=true after env override")
	}
}

func TestLoadWithInvalidEnv(t *testing.T) {
	os.Setenv("OUR_PLAYER_INDEX", "invalid")
	defer os.Unsetenv("OUR_PLAYER_INDEX")

	cfg := Load()

	// Should fall back to default when env value is invalid.
	if cfg.OurPlayerIndex != 0 {
		t.Errorf("expected OurPlayerIndex=0 (default) with invalid env, got %d", cfg.OurPlayerIndex)
	}
}
