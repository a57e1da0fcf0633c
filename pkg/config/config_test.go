package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/perimetric/clearbox/pkg/obstacle"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clearbox.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.MinSpacing != 5 || cfg.BoxGap != 20 {
		t.Errorf("buffers = %v/%v, want 5/20", cfg.MinSpacing, cfg.BoxGap)
	}
	if cfg.DefaultMethod != "generalized" {
		t.Errorf("default method = %q, want generalized", cfg.DefaultMethod)
	}
	if cfg.ArcSamples != 5 {
		t.Errorf("arc samples = %d, want 5", cfg.ArcSamples)
	}
	if time.Duration(cfg.EvalTimeout) != 5*time.Second {
		t.Errorf("eval timeout = %v, want 5s", cfg.EvalTimeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
min_spacing: 8
default_method: convex
eval_timeout: 500ms
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MinSpacing != 8 {
		t.Errorf("min_spacing = %v, want 8", cfg.MinSpacing)
	}
	if cfg.Method() != obstacle.Beveled {
		t.Errorf("method = %v, want Beveled", cfg.Method())
	}
	if time.Duration(cfg.EvalTimeout) != 500*time.Millisecond {
		t.Errorf("eval_timeout = %v, want 500ms", cfg.EvalTimeout)
	}
	// Untouched fields keep their defaults.
	if cfg.BoxGap != 20 || cfg.ArcSamples != 5 {
		t.Errorf("defaults lost: box_gap=%v arc_samples=%d", cfg.BoxGap, cfg.ArcSamples)
	}
}

func TestLoadNumericTimeout(t *testing.T) {
	cfg, err := Load(writeConfig(t, "eval_timeout: 2\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if time.Duration(cfg.EvalTimeout) != 2*time.Second {
		t.Errorf("eval_timeout = %v, want 2s", cfg.EvalTimeout)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"negative spacing", "min_spacing: -1\n"},
		{"unknown method", "default_method: rounded\n"},
		{"zero arc samples", "arc_samples: 0\n"},
		{"bad duration", "eval_timeout: soon\n"},
		{"not yaml", "{{{\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.body)); err == nil {
				t.Error("Load accepted an invalid config")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Load of a missing file did not error")
	}
}

func TestDetector(t *testing.T) {
	cfg := Default()
	cfg.MinSpacing = 7
	cfg.BoxGap = 31
	cfg.ArcSamples = 9
	det := cfg.Detector()
	if det.MinSpacing != 7 || det.BoxGap != 31 || det.ArcSamples != 9 {
		t.Errorf("detector = %+v, not built from the config", det)
	}
}
