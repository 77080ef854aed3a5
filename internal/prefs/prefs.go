// Package prefs owns display preferences. Preferences are independent of
// the session lifecycle: they persist across logout and login and change
// only when the user toggles them.
package prefs

import (
	"encoding/json"
	"os"
	"sync"

	"taskflow/internal/config"
)

type prefsFile struct {
	DarkMode bool `json:"darkMode"`
}

// Store owns the persisted preferences. Defaults apply when no file exists.
type Store struct {
	mu  sync.Mutex
	cfg *config.Config
	cur prefsFile
}

// NewStore creates a preference store, loading any persisted values.
func NewStore(cfg *config.Config) *Store {
	s := &Store{cfg: cfg}
	if data, err := os.ReadFile(cfg.PrefsPath()); err == nil {
		// A corrupt file falls back to defaults.
		_ = json.Unmarshal(data, &s.cur)
	}
	return s
}

// DarkMode returns the dark-mode preference. Default false.
func (s *Store) DarkMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur.DarkMode
}

// SetDarkMode updates the preference and persists it immediately.
func (s *Store) SetDarkMode(on bool) error {
	s.mu.Lock()
	s.cur.DarkMode = on
	cur := s.cur
	s.mu.Unlock()

	if err := s.cfg.EnsureDir(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cur, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.cfg.PrefsPath(), data, 0600)
}
