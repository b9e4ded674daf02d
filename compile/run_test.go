package compile

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/ghostandthemachine/garden/config"
	"github.com/ghostandthemachine/garden/css"
	"github.com/ghostandthemachine/garden/state"
)

const sampleSource = `version: 1
rules:
  - selector: body
    declarations:
      margin: 0
      font:
        family: Helvetica
`

const sampleCompiled = "body{margin:0;font-family:Helvetica}\n"

// setupTestEnv creates a test environment with proper context and logger
func setupTestEnv(t *testing.T) (context.Context, *state.LocalEnv) {
	logger := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))
	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	ctx := state.ContextWithEnv(context.Background())
	env := state.EnvFromContext(ctx)
	env.Log = logger
	env.Cfg = cfg
	// compressed output keeps expected strings short
	env.Options = css.Options{Style: css.OutputStyleCompressed, IndentWidth: 2}
	return ctx, env
}

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create source directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create source file: %v", err)
	}
	return path
}

// TestProcess_NonExistentPath tests process with non-existent path
func TestProcess_NonExistentPath(t *testing.T) {
	ctx, _ := setupTestEnv(t)
	logger := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))

	err := process(ctx, "/nonexistent/path/style.yaml", "/tmp", logger)
	if err == nil {
		t.Fatal("Expected error for non-existent path, got nil")
	}
	expectedMsg := "input source was not found"
	if !strings.Contains(err.Error(), expectedMsg) {
		t.Errorf("Expected error containing '%s', got: %v", expectedMsg, err)
	}
}

// TestProcess_CancelledContext tests process with cancelled context
func TestProcess_CancelledContext(t *testing.T) {
	ctx, _ := setupTestEnv(t)
	cancelCtx, cancel := context.WithCancel(ctx)
	logger := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))
	cancel() // Cancel immediately

	tmpDir := t.TempDir()
	writeSource(t, tmpDir, "style.yaml", sampleSource)

	err := process(cancelCtx, tmpDir, tmpDir, logger)
	if err != context.Canceled {
		t.Errorf("Expected context.Canceled error, got %v", err)
	}
}

// TestProcess_SingleFile tests process with a single source file
func TestProcess_SingleFile(t *testing.T) {
	ctx, _ := setupTestEnv(t)
	logger := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))

	tmpDir := t.TempDir()
	dstDir := t.TempDir()
	src := writeSource(t, tmpDir, "style.yaml", sampleSource)

	if err := process(ctx, src, dstDir, logger); err != nil {
		t.Fatalf("process() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dstDir, "style.css"))
	if err != nil {
		t.Fatalf("Failed to read compiled output: %v", err)
	}
	if string(data) != sampleCompiled {
		t.Errorf("Compiled output = %q, want %q", data, sampleCompiled)
	}
}

// TestProcess_NonStylesheetFile tests process with an unrecognized file
func TestProcess_NonStylesheetFile(t *testing.T) {
	ctx, _ := setupTestEnv(t)
	logger := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))

	tmpDir := t.TempDir()
	src := writeSource(t, tmpDir, "style.txt", sampleSource)

	err := process(ctx, src, tmpDir, logger)
	if err == nil {
		t.Fatal("Expected error for non-stylesheet file, got nil")
	}
	expectedMsg := "input was not recognized as stylesheet source"
	if !strings.Contains(err.Error(), expectedMsg) {
		t.Errorf("Expected error containing '%s', got: %v", expectedMsg, err)
	}
}

// TestProcess_Directory tests process walking a directory tree
func TestProcess_Directory(t *testing.T) {
	ctx, _ := setupTestEnv(t)
	logger := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))

	tmpDir := t.TempDir()
	dstDir := t.TempDir()
	writeSource(t, tmpDir, "style.yaml", sampleSource)
	writeSource(t, tmpDir, filepath.Join("sub", "other.yml"), sampleSource)
	writeSource(t, tmpDir, "notes.txt", "not a stylesheet")

	if err := process(ctx, tmpDir, dstDir, logger); err != nil {
		t.Fatalf("process() error = %v", err)
	}

	for _, name := range []string{"style.css", filepath.Join("sub", "other.css")} {
		data, err := os.ReadFile(filepath.Join(dstDir, name))
		if err != nil {
			t.Errorf("Missing compiled output %s: %v", name, err)
			continue
		}
		if string(data) != sampleCompiled {
			t.Errorf("Compiled output %s = %q, want %q", name, data, sampleCompiled)
		}
	}
	if _, err := os.Stat(filepath.Join(dstDir, "notes.css")); !os.IsNotExist(err) {
		t.Error("Non-stylesheet file should not produce output")
	}
}

// TestProcessDir_AggregatesErrors tests that broken sources do not stop the walk
func TestProcessDir_AggregatesErrors(t *testing.T) {
	ctx, _ := setupTestEnv(t)
	logger := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))

	tmpDir := t.TempDir()
	dstDir := t.TempDir()
	writeSource(t, tmpDir, "broken.yaml", "version: 2\nrules: []\n")
	writeSource(t, tmpDir, "good.yaml", sampleSource)

	err := processDir(ctx, tmpDir, dstDir, logger)
	if err == nil {
		t.Fatal("Expected aggregated error for broken source, got nil")
	}
	if errs := multierr.Errors(err); len(errs) != 1 {
		t.Errorf("Expected 1 aggregated error, got %d: %v", len(errs), errs)
	}
	if !strings.Contains(err.Error(), "broken.yaml") {
		t.Errorf("Expected error naming broken source, got: %v", err)
	}

	// good file still compiled
	if _, err := os.Stat(filepath.Join(dstDir, "good.css")); err != nil {
		t.Errorf("Expected good source to compile despite broken sibling: %v", err)
	}
}

// TestProcessDir_EmptyDir tests processDir with empty directory
func TestProcessDir_EmptyDir(t *testing.T) {
	ctx, _ := setupTestEnv(t)
	logger := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))

	tmpDir := t.TempDir()

	if err := processDir(ctx, tmpDir, tmpDir, logger); err != nil {
		t.Errorf("Expected no error for empty directory, got %v", err)
	}
}

// TestProcessFile_Overwrite tests existing destination handling
func TestProcessFile_Overwrite(t *testing.T) {
	ctx, env := setupTestEnv(t)
	logger := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))

	tmpDir := t.TempDir()
	src := writeSource(t, tmpDir, "style.yaml", sampleSource)
	out := filepath.Join(tmpDir, "style.css")
	if err := os.WriteFile(out, []byte("stale"), 0644); err != nil {
		t.Fatalf("Failed to create existing output: %v", err)
	}

	err := processFile(ctx, src, out, logger)
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("Expected destination exists error, got: %v", err)
	}

	env.Overwrite = true
	if err := processFile(ctx, src, out, logger); err != nil {
		t.Fatalf("processFile() with overwrite error = %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("Failed to read compiled output: %v", err)
	}
	if string(data) != sampleCompiled {
		t.Errorf("Compiled output = %q, want %q", data, sampleCompiled)
	}
}

// TestProcessFile_ExpandedStyle tests that environment options drive formatting
func TestProcessFile_ExpandedStyle(t *testing.T) {
	ctx, env := setupTestEnv(t)
	logger := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))
	env.Options = css.Options{Style: css.OutputStyleExpanded, IndentWidth: 2}

	tmpDir := t.TempDir()
	dstDir := t.TempDir()
	src := writeSource(t, tmpDir, "style.yaml", sampleSource)

	if err := process(ctx, src, dstDir, logger); err != nil {
		t.Fatalf("process() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dstDir, "style.css"))
	if err != nil {
		t.Fatalf("Failed to read compiled output: %v", err)
	}
	want := "body {\n  margin: 0;\n  font-family: Helvetica;\n}\n"
	if string(data) != want {
		t.Errorf("Compiled output = %q, want %q", data, want)
	}
}

// TestIsStylesheetFile tests source file detection
func TestIsStylesheetFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"style.yaml", true},
		{"style.yml", true},
		{"STYLE.YAML", true},
		{"style.css", false},
		{"style", false},
		{"yaml", false},
	}
	for _, tt := range tests {
		if got := isStylesheetFile(tt.path); got != tt.want {
			t.Errorf("isStylesheetFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

// TestOutputPath tests destination name derivation
func TestOutputPath(t *testing.T) {
	got := outputPath("/out", filepath.Join("sub", "style.yaml"))
	want := filepath.Join("/out", "sub", "style.css")
	if got != want {
		t.Errorf("outputPath() = %q, want %q", got, want)
	}
}
