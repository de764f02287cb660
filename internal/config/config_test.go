package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"altotriage/internal/config"
)

func isolateEnv(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("ALTOTRIAGE_INPUT_DIR", "")
	t.Setenv("ALTOTRIAGE_STATE_DIR", "")
	t.Setenv("ALTOTRIAGE_LOG_LEVEL", "")
	return home
}

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	home := isolateEnv(t)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantState := filepath.Join(home, ".local", "share", "altotriage")
	if cfg.Paths.StateDir != wantState {
		t.Fatalf("unexpected state dir: got %q want %q", cfg.Paths.StateDir, wantState)
	}
	if cfg.Paths.InputDir != "" {
		t.Fatalf("expected empty input dir, got %q", cfg.Paths.InputDir)
	}
	if cfg.Triage.AnnotationExtension != ".xml" || cfg.Triage.ImageExtension != ".jpg" {
		t.Fatalf("unexpected extensions: %q %q", cfg.Triage.AnnotationExtension, cfg.Triage.ImageExtension)
	}
	if cfg.Triage.Namespace != "http://www.loc.gov/standards/alto/ns-v4#" {
		t.Fatalf("unexpected namespace: %q", cfg.Triage.Namespace)
	}
	if cfg.Triage.ValidSuffix != "_valid" || cfg.Triage.NoPolygonSuffix != "_valid_no_poly" {
		t.Fatalf("unexpected suffixes: %q %q", cfg.Triage.ValidSuffix, cfg.Triage.NoPolygonSuffix)
	}
	if cfg.Triage.PolygonTokens != 8 {
		t.Fatalf("expected 8 polygon tokens, got %d", cfg.Triage.PolygonTokens)
	}
	if cfg.Triage.OnParseError != config.ParseErrorSkip {
		t.Fatalf("expected skip parse policy, got %q", cfg.Triage.OnParseError)
	}
	if cfg.Validation.CheckImageBounds {
		t.Fatal("expected image bounds check disabled by default")
	}
	if !cfg.Ledger.Enabled {
		t.Fatal("expected ledger enabled by default")
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.StateDir, cfg.LocksDir()} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %q to be directory", dir)
		}
	}
}

func TestLoadCustomPath(t *testing.T) {
	isolateEnv(t)
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "altotriage.toml")

	type payload struct {
		Paths struct {
			InputDir string `toml:"input_dir"`
			StateDir string `toml:"state_dir"`
		} `toml:"paths"`
		Triage struct {
			AnnotationExtension string `toml:"annotation_extension"`
			ImageExtension      string `toml:"image_extension"`
			OnParseError        string `toml:"on_parse_error"`
		} `toml:"triage"`
	}
	custom := payload{}
	custom.Paths.InputDir = filepath.Join(tempDir, "pages")
	custom.Paths.StateDir = filepath.Join(tempDir, "state")
	custom.Triage.AnnotationExtension = "XML"
	custom.Triage.ImageExtension = "tif"
	custom.Triage.OnParseError = " ABORT "

	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("expected custom config to be used, got %q exists=%v", resolved, exists)
	}
	if cfg.Paths.InputDir != filepath.Join(tempDir, "pages") {
		t.Fatalf("unexpected input dir: %q", cfg.Paths.InputDir)
	}
	if cfg.Triage.AnnotationExtension != ".XML" || cfg.Triage.ImageExtension != ".tif" {
		t.Fatalf("expected extensions to gain a leading dot, got %q %q", cfg.Triage.AnnotationExtension, cfg.Triage.ImageExtension)
	}
	if cfg.Triage.OnParseError != config.ParseErrorAbort {
		t.Fatalf("expected abort policy, got %q", cfg.Triage.OnParseError)
	}
	if cfg.LedgerPath() != filepath.Join(tempDir, "state", "ledger.db") {
		t.Fatalf("unexpected ledger path: %q", cfg.LedgerPath())
	}
}

func TestLoadUsesEnvironmentFallbacks(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	t.Setenv("ALTOTRIAGE_INPUT_DIR", filepath.Join(dir, "scans"))
	t.Setenv("ALTOTRIAGE_STATE_DIR", filepath.Join(dir, "state"))
	t.Setenv("ALTOTRIAGE_LOG_LEVEL", "DEBUG")

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Paths.InputDir != filepath.Join(dir, "scans") {
		t.Fatalf("unexpected input dir: %q", cfg.Paths.InputDir)
	}
	if cfg.Paths.StateDir != filepath.Join(dir, "state") {
		t.Fatalf("unexpected state dir: %q", cfg.Paths.StateDir)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("expected debug level, got %q", cfg.Logging.Level)
	}
}

func TestValidateRejectsBadTriageSettings(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{
			name:   "odd token count",
			mutate: func(c *config.Config) { c.Triage.PolygonTokens = 7 },
			want:   "polygon_tokens",
		},
		{
			name:   "negative token count",
			mutate: func(c *config.Config) { c.Triage.PolygonTokens = -8 },
			want:   "polygon_tokens",
		},
		{
			name:   "same suffixes",
			mutate: func(c *config.Config) { c.Triage.NoPolygonSuffix = c.Triage.ValidSuffix },
			want:   "must differ",
		},
		{
			name:   "suffix with separator",
			mutate: func(c *config.Config) { c.Triage.ValidSuffix = "/valid" },
			want:   "path separators",
		},
		{
			name:   "same extensions",
			mutate: func(c *config.Config) { c.Triage.ImageExtension = ".xml" },
			want:   "must differ",
		},
		{
			name:   "unknown parse policy",
			mutate: func(c *config.Config) { c.Triage.OnParseError = "retry" },
			want:   "on_parse_error",
		},
		{
			name:   "unknown log level",
			mutate: func(c *config.Config) { c.Logging.Level = "trace" },
			want:   "logging.level",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestImageNameFor(t *testing.T) {
	cfg := config.Default()
	if got := cfg.ImageNameFor("page_001.xml"); got != "page_001.jpg" {
		t.Fatalf("unexpected image name: %q", got)
	}
	// Only the trailing extension is substituted.
	if got := cfg.ImageNameFor("a.xml.xml"); got != "a.xml.jpg" {
		t.Fatalf("unexpected image name: %q", got)
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	isolateEnv(t)
	target := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(target); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	cfg, _, exists, err := config.Load(target)
	if err != nil {
		t.Fatalf("Load sample: %v", err)
	}
	if !exists {
		t.Fatal("expected sample file to exist")
	}
	if cfg.Triage.PolygonTokens != 8 {
		t.Fatalf("unexpected tokens from sample: %d", cfg.Triage.PolygonTokens)
	}
}
