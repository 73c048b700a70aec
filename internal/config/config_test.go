package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

// isolate points every config lookup at a fresh temp dir
func isolate(t *testing.T) string {
	t.Helper()
	tempDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tempDir)
	t.Setenv(EnvConfigFile, "")
	t.Setenv(EnvThemeFile, "")
	t.Setenv(EnvDataDir, "")
	t.Setenv(EnvPort, "")
	return tempDir
}

func TestLoadConfigWithoutFile(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() without config file failed: %v", err)
	}

	if cfg.Server.Addr != ":3000" {
		t.Errorf("Server.Addr = %s, want :3000 (default)", cfg.Server.Addr)
	}
	if cfg.DefaultUser != "guest" {
		t.Errorf("DefaultUser = %s, want guest (default)", cfg.DefaultUser)
	}
	if !cfg.ShouldSeed() {
		t.Error("ShouldSeed() = false, want true by default")
	}
	if cfg.ColorScheme.Preset != "default" {
		t.Errorf("ColorScheme.Preset = %s, want default", cfg.ColorScheme.Preset)
	}
}

func TestLoadConfigWithFile(t *testing.T) {
	tempDir := isolate(t)

	configDir := filepath.Join(tempDir, "lineage")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		t.Fatalf("Failed to create config dir: %v", err)
	}

	configContent := `data_dir: /var/lib/lineage
log_level: debug
seed_on_empty: false
server:
  addr: ":8080"
  allowed_origins:
    - https://family.example.com
`
	configPath := filepath.Join(configDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(configContent), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() with config file failed: %v", err)
	}

	if cfg.DataDir != "/var/lib/lineage" {
		t.Errorf("DataDir = %s, want /var/lib/lineage", cfg.DataDir)
	}
	if cfg.SlogLevel() != slog.LevelDebug {
		t.Errorf("SlogLevel() = %v, want debug", cfg.SlogLevel())
	}
	if cfg.ShouldSeed() {
		t.Error("ShouldSeed() = true, want false")
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %s, want :8080", cfg.Server.Addr)
	}
	if len(cfg.Server.AllowedOrigins) != 1 || cfg.Server.AllowedOrigins[0] != "https://family.example.com" {
		t.Errorf("AllowedOrigins = %v", cfg.Server.AllowedOrigins)
	}

	// Unspecified values should use defaults
	if cfg.DefaultUser != "guest" {
		t.Errorf("DefaultUser = %s, want guest (default)", cfg.DefaultUser)
	}
	if cfg.Server.StaticDir != "." {
		t.Errorf("Server.StaticDir = %s, want . (default)", cfg.Server.StaticDir)
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	tempDir := isolate(t)

	configPath := filepath.Join(tempDir, "broken.yaml")
	if err := os.WriteFile(configPath, []byte("server: [unterminated"), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	t.Setenv(EnvConfigFile, configPath)

	if _, err := Load(); err == nil {
		t.Fatal("Load() with invalid YAML should fail")
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	tempDir := isolate(t)
	t.Setenv(EnvPort, "4242")
	t.Setenv(EnvDataDir, filepath.Join(tempDir, "data"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Server.Addr != ":4242" {
		t.Errorf("Server.Addr = %s, want :4242", cfg.Server.Addr)
	}
	if cfg.DataDir != filepath.Join(tempDir, "data") {
		t.Errorf("DataDir = %s, want %s", cfg.DataDir, filepath.Join(tempDir, "data"))
	}
}

func TestSlogLevelFallsBackToInfo(t *testing.T) {
	cfg := &Config{LogLevel: "chatty"}
	if cfg.SlogLevel() != slog.LevelInfo {
		t.Errorf("SlogLevel() = %v, want info", cfg.SlogLevel())
	}
}

func TestSaveConfig(t *testing.T) {
	tempDir := isolate(t)

	cfg := &Config{
		DefaultUser: "ada",
		Server:      ServerConfig{Addr: ":9000"},
	}

	// Apply defaults to fill missing fields
	cfg.applyDefaults()

	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	configPath := filepath.Join(tempDir, "lineage", "config.yaml")
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Fatalf("Config file not created at %s", configPath)
	}

	cfg2, err := Load()
	if err != nil {
		t.Fatalf("Load() after Save() failed: %v", err)
	}

	if cfg2.DefaultUser != "ada" {
		t.Errorf("Reloaded DefaultUser = %s, want ada", cfg2.DefaultUser)
	}
	if cfg2.Server.Addr != ":9000" {
		t.Errorf("Reloaded Server.Addr = %s, want :9000", cfg2.Server.Addr)
	}
}
