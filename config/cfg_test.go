package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ghostandthemachine/garden/css"
)

func TestLoadConfiguration_NoFile(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() with empty path error = %v", err)
	}

	if cfg == nil {
		t.Fatal("LoadConfiguration() returned nil config")
	}

	if cfg.Version != 1 {
		t.Errorf("Default config version = %d, want 1", cfg.Version)
	}

	if cfg.Style.Output != "expanded" {
		t.Errorf("Default output style = %q, want expanded", cfg.Style.Output)
	}

	if cfg.Style.IndentWidth != 2 {
		t.Errorf("Default indent width = %d, want 2", cfg.Style.IndentWidth)
	}
}

func TestLoadConfiguration_WithFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `version: 1
style:
  output: compressed
  indent_width: 4
logging:
  console:
    level: debug
`

	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := LoadConfiguration(configPath)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if cfg.Style.Output != "compressed" {
		t.Errorf("Output = %q, want compressed", cfg.Style.Output)
	}

	if cfg.Style.IndentWidth != 4 {
		t.Errorf("IndentWidth = %d, want 4", cfg.Style.IndentWidth)
	}

	if cfg.Logging.ConsoleLogger.Level != "debug" {
		t.Errorf("Console level = %q, want debug", cfg.Logging.ConsoleLogger.Level)
	}

	opts, err := cfg.Style.Options()
	if err != nil {
		t.Fatalf("Options() error = %v", err)
	}
	if opts.Style != css.OutputStyleCompressed {
		t.Errorf("Options().Style = %v, want compressed", opts.Style)
	}
}

func TestLoadConfiguration_NonExistentFile(t *testing.T) {
	_, err := LoadConfiguration("/nonexistent/config.yaml")
	if err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestLoadConfiguration_InvalidStyle(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	if err := os.WriteFile(configPath, []byte("version: 1\nstyle:\n  output: fancy\n"), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	if _, err := LoadConfiguration(configPath); err == nil {
		t.Error("Expected validation error for unknown output style")
	}
}

func TestLoadConfiguration_UnknownField(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	if err := os.WriteFile(configPath, []byte("version: 1\nbogus: true\n"), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	_, err := LoadConfiguration(configPath)
	if err == nil || !strings.Contains(err.Error(), "bogus") {
		t.Errorf("Expected unknown field error, got %v", err)
	}
}

func TestPrepareAndDump(t *testing.T) {
	data, err := Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if !strings.Contains(string(data), "output: expanded") {
		t.Errorf("Prepare() output missing defaults:\n%s", data)
	}

	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	dump, err := Dump(cfg)
	if err != nil {
		t.Fatalf("Dump() error = %v", err)
	}
	if !strings.Contains(string(dump), "version: 1") {
		t.Errorf("Dump() output missing version:\n%s", dump)
	}
}
