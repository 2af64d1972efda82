package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Render.Alpha != 0.8 {
		t.Errorf("expected alpha 0.8, got %g", cfg.Render.Alpha)
	}
	if cfg.Render.EdgeWidth != 0.1 {
		t.Errorf("expected edge width 0.1, got %g", cfg.Render.EdgeWidth)
	}
	if cfg.Render.Elev != 20 || cfg.Render.Azim != 30 {
		t.Errorf("expected viewpoint 20/30, got %g/%g", cfg.Render.Elev, cfg.Render.Azim)
	}
	if cfg.Render.PointSize != 0 {
		t.Errorf("expected adaptive point size (0), got %g", cfg.Render.PointSize)
	}
	if cfg.Render.ShowVertices || cfg.Render.Lightweight {
		t.Error("expected vertices and lightweight mode off by default")
	}

	if cfg.Export.DPI != 150 {
		t.Errorf("expected DPI 150, got %d", cfg.Export.DPI)
	}
	if cfg.Export.MaxVectorSizeMB != 5 {
		t.Errorf("expected max vector size 5, got %g", cfg.Export.MaxVectorSizeMB)
	}

	if cfg.Window.Width != 1120 || cfg.Window.Height != 800 {
		t.Errorf("expected window 1120x800, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if !cfg.Window.VSync {
		t.Error("expected vsync on by default")
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "polyview.yaml")

	yamlContent := `
render:
  alpha: 0.5
  edge_width: 0.25
  elev: 45
  lightweight: true

export:
  dpi: 300

window:
  width: 1920
  height: 1080
  vsync: false

logging:
  level: debug
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("writing config fixture: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("loadFromFile failed: %v", err)
	}

	if cfg.Render.Alpha != 0.5 {
		t.Errorf("expected alpha 0.5, got %g", cfg.Render.Alpha)
	}
	if cfg.Render.EdgeWidth != 0.25 {
		t.Errorf("expected edge width 0.25, got %g", cfg.Render.EdgeWidth)
	}
	if cfg.Render.Elev != 45 {
		t.Errorf("expected elev 45, got %g", cfg.Render.Elev)
	}
	if !cfg.Render.Lightweight {
		t.Error("expected lightweight mode on")
	}
	if cfg.Export.DPI != 300 {
		t.Errorf("expected DPI 300, got %d", cfg.Export.DPI)
	}
	if cfg.Window.Width != 1920 || cfg.Window.Height != 1080 {
		t.Errorf("expected window 1920x1080, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Window.VSync {
		t.Error("expected vsync off")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}

	// Unset fields keep their defaults.
	if cfg.Render.Azim != 30 {
		t.Errorf("expected default azim 30, got %g", cfg.Render.Azim)
	}
	if cfg.Export.MaxVectorSizeMB != 5 {
		t.Errorf("expected default max vector size 5, got %g", cfg.Export.MaxVectorSizeMB)
	}
}

func TestLoadFromFile_Missing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected an error for a missing config file")
	}
}

func TestLoadFromFile_Invalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "polyview.yaml")
	if err := os.WriteFile(configPath, []byte("render: ["), 0644); err != nil {
		t.Fatalf("writing config fixture: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected an error for invalid YAML")
	}
}

func TestSaveTo_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "polyview.yaml")

	cfg := Default()
	cfg.Render.Alpha = 0.65
	cfg.Export.DPI = 200
	cfg.Logging.Level = "warn"

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reloading saved config failed: %v", err)
	}

	if loaded.Render.Alpha != 0.65 {
		t.Errorf("expected alpha 0.65, got %g", loaded.Render.Alpha)
	}
	if loaded.Export.DPI != 200 {
		t.Errorf("expected DPI 200, got %d", loaded.Export.DPI)
	}
	if loaded.Logging.Level != "warn" {
		t.Errorf("expected log level 'warn', got %s", loaded.Logging.Level)
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("expected a non-empty config dir")
	}
	if filepath.Base(dir) != "polyview" {
		t.Errorf("expected config dir named polyview, got %s", dir)
	}
}
