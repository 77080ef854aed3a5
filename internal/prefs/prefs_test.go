package prefs_test

import (
	"os"
	"strings"
	"testing"

	"taskflow/internal/config"
	"taskflow/internal/prefs"
)

func TestDefaultIsLight(t *testing.T) {
	cfg := &config.Config{Dir: t.TempDir()}
	s := prefs.NewStore(cfg)
	if s.DarkMode() {
		t.Error("dark mode must default to off")
	}
}

func TestSetDarkMode_Persists(t *testing.T) {
	cfg := &config.Config{Dir: t.TempDir()}
	s := prefs.NewStore(cfg)

	if err := s.SetDarkMode(true); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if !s.DarkMode() {
		t.Error("dark mode should be on")
	}

	data, err := os.ReadFile(cfg.PrefsPath())
	if err != nil {
		t.Fatalf("reading prefs file: %v", err)
	}
	if !strings.Contains(string(data), `"darkMode": true`) {
		t.Errorf("prefs file missing darkMode key: %s", data)
	}

	// Survives a fresh store over the same config dir.
	s2 := prefs.NewStore(cfg)
	if !s2.DarkMode() {
		t.Error("preference must survive a restart")
	}
}

func TestSetDarkMode_Toggle(t *testing.T) {
	cfg := &config.Config{Dir: t.TempDir()}
	s := prefs.NewStore(cfg)

	if err := s.SetDarkMode(true); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := s.SetDarkMode(false); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if prefs.NewStore(cfg).DarkMode() {
		t.Error("toggle back to light must persist")
	}
}

func TestCorruptFileFallsBackToDefaults(t *testing.T) {
	cfg := &config.Config{Dir: t.TempDir()}
	if err := cfg.EnsureDir(); err != nil {
		t.Fatalf("ensure dir: %v", err)
	}
	if err := os.WriteFile(cfg.PrefsPath(), []byte("{nope"), 0600); err != nil {
		t.Fatalf("write prefs: %v", err)
	}

	s := prefs.NewStore(cfg)
	if s.DarkMode() {
		t.Error("corrupt prefs file must fall back to defaults")
	}
}
