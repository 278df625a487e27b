package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatalf("Load returned error for missing file: %v", err)
	}
	if cfg != Default() {
		t.Errorf("got %+v, want stock defaults", cfg)
	}
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error for empty path: %v", err)
	}
	if cfg != Default() {
		t.Errorf("got %+v, want stock defaults", cfg)
	}
}

func TestLoad_FileOverridesSelectedFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "signalbox.yml")
	doc := []byte("signals:\n  max_signal_evaluations: 16\nsim:\n  steps: 7\n")
	if err := os.WriteFile(path, doc, 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Signals.MaxSignalEvaluations != 16 {
		t.Errorf("max_signal_evaluations = %d, want 16", cfg.Signals.MaxSignalEvaluations)
	}
	if cfg.Sim.Steps != 7 {
		t.Errorf("sim steps = %d, want 7", cfg.Sim.Steps)
	}
	if cfg.Sim.StepDelayMS != Default().Sim.StepDelayMS {
		t.Errorf("step_delay_ms = %d, want default %d untouched", cfg.Sim.StepDelayMS, Default().Sim.StepDelayMS)
	}
}

func TestLoad_MalformedFileReportsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yml")
	if err := os.WriteFile(path, []byte("signals: [not a map"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Load accepted a malformed document")
	}
}

func TestBlockSettings_MirrorsSignalsSection(t *testing.T) {
	cfg := Default()
	cfg.Signals.PathProtectedCrossings = true
	cfg.Signals.MaxSignalEvaluations = 9

	s := cfg.BlockSettings()
	if !s.PathProtectedCrossings || s.MaxSignalEvaluations != 9 {
		t.Errorf("got %+v, want signals section mirrored", s)
	}
}
