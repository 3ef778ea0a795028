package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return configPath
}

func TestLoad_ValidConfig(t *testing.T) {
	content := `
server:
  host: "127.0.0.1"
  port: 9090
database:
  path: "/tmp/angel-test.db"
decision_engine:
  threshold_confidence: 0.7
  decision_rules:
    manger: ["diffuser_musique", "suggerer_boisson"]
    default: ["suggerer_activite"]
devices:
  tv:
    host: "192.168.1.20"
    port: 8080
  music_player:
    host: "192.168.1.21"
    playlists:
      repas: "playlist_repas"
      ambiance: "playlist_ambiance"
`
	cfg, err := Load(writeConfig(t, content))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Decision.ThresholdConfidence != 0.7 {
		t.Errorf("ThresholdConfidence = %v, want 0.7", cfg.Decision.ThresholdConfidence)
	}
	if got := cfg.Decision.DecisionRules["manger"]; len(got) != 2 {
		t.Errorf("DecisionRules[manger] = %v, want 2 entries", got)
	}
	if cfg.Devices.MusicPlayer.Playlists["repas"] != "playlist_repas" {
		t.Errorf("playlist repas = %q, want %q", cfg.Devices.MusicPlayer.Playlists["repas"], "playlist_repas")
	}
	// Defaults survive partial files
	if cfg.Decision.HistorySize != 32 {
		t.Errorf("HistorySize = %d, want default 32", cfg.Decision.HistorySize)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("Load() expected error for missing file, got nil")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "invalid: [yaml: content"))
	if err == nil {
		t.Error("Load() expected error for invalid YAML, got nil")
	}
}

func TestLoad_MissingDefaultRule(t *testing.T) {
	content := `
decision_engine:
  decision_rules:
    manger: ["diffuser_musique"]
`
	_, err := Load(writeConfig(t, content))
	if err == nil {
		t.Error("Load() expected validation error for missing default rule, got nil")
	}
}

func TestLoad_OmittedRulesKeepDefaults(t *testing.T) {
	content := `
database:
  path: "/tmp/angel-test.db"
`
	cfg, err := Load(writeConfig(t, content))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if _, ok := cfg.Decision.DecisionRules["default"]; !ok {
		t.Error("omitting decision_rules should keep the built-in rule table")
	}
}

func TestLoad_FileRulesReplaceDefaults(t *testing.T) {
	content := `
decision_engine:
  decision_rules:
    lire: ["suggerer_boisson"]
    default: ["suggerer_activite"]
`
	cfg, err := Load(writeConfig(t, content))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if _, ok := cfg.Decision.DecisionRules["manger"]; ok {
		t.Error("file-defined rules should replace the built-in table, not merge with it")
	}
	if got := cfg.Decision.DecisionRules["lire"]; len(got) != 1 {
		t.Errorf("DecisionRules[lire] = %v, want 1 entry", got)
	}
}

func TestLoad_InvalidThreshold(t *testing.T) {
	content := `
decision_engine:
  threshold_confidence: 1.5
  decision_rules:
    default: ["suggerer_activite"]
`
	_, err := Load(writeConfig(t, content))
	if err == nil {
		t.Error("Load() expected validation error for threshold > 1, got nil")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("ANGELCORE_DATABASE_PATH", "/tmp/env-override.db")
	t.Setenv("ANGELCORE_CONTENT_API_KEY", "test-key")

	content := `
database:
  path: "/tmp/file-value.db"
`
	cfg, err := Load(writeConfig(t, content))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Database.Path != "/tmp/env-override.db" {
		t.Errorf("Database.Path = %q, want env override", cfg.Database.Path)
	}
	if cfg.Content.APIKey != "test-key" {
		t.Errorf("Content.APIKey = %q, want %q", cfg.Content.APIKey, "test-key")
	}
}

func TestGetActionTimeout(t *testing.T) {
	cfg := defaultConfig()
	if got := cfg.GetActionTimeout().Seconds(); got != 5 {
		t.Errorf("GetActionTimeout() = %vs, want 5s", got)
	}
}

func TestMusicPlaylists(t *testing.T) {
	var devices DevicesConfig
	if devices.MusicPlaylists() != nil {
		t.Error("MusicPlaylists() without a music player should be nil")
	}

	devices.MusicPlayer = &MusicConfig{Playlists: map[string]string{"repas": "playlist_repas"}}
	if got := devices.MusicPlaylists()["repas"]; got != "playlist_repas" {
		t.Errorf("MusicPlaylists()[repas] = %q, want playlist_repas", got)
	}
}
