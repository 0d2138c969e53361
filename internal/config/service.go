// Package config exposes the display configuration: a small key-value set
// backed by the settings table, with defaults filled in for absent keys. All
// values are strings; display clients parse them.
package config

import (
	"errors"
	"fmt"

	"github.com/emberhall/homeboard/internal/store"
)

// Defaults mirror the rows seeded at first boot. They also backstop a key
// that was somehow removed from the table.
var defaults = map[string]string{
	"current_view":              "dashboard",
	"photo_rotation_interval":   "30",
	"calendar_refresh_interval": "300",
	"display_brightness":        "80",
	"sleep_enabled":             "false",
	"sleep_start":               "22:00",
	"sleep_end":                 "06:30",
}

type Service struct {
	settings *store.SettingsStore
}

func NewService(ss *store.SettingsStore) *Service {
	return &Service{settings: ss}
}

// Display returns the full display configuration as one object, defaults
// applied for any absent key.
func (s *Service) Display() (map[string]string, error) {
	stored, err := s.settings.GetAll()
	if err != nil {
		return nil, err
	}

	cfg := make(map[string]string, len(defaults))
	for key, def := range defaults {
		if v, ok := stored[key]; ok {
			cfg[key] = v
		} else {
			cfg[key] = def
		}
	}
	return cfg, nil
}

// Get returns one setting, falling back to its default when unset.
func (s *Service) Get(key string) (string, error) {
	v, err := s.settings.Get(key)
	if err == nil {
		return v, nil
	}
	if errors.Is(err, store.ErrNotFound) {
		if def, ok := defaults[key]; ok {
			return def, nil
		}
	}
	return "", err
}

// Set upserts a known display key. Unknown keys are rejected so arbitrary
// client input cannot grow the config set.
func (s *Service) Set(key, value string) error {
	if _, ok := defaults[key]; !ok {
		return fmt.Errorf("unknown config key %q: %w", key, store.ErrValidation)
	}
	return s.settings.Set(key, value)
}

// SetAll upserts a batch of display keys. Every key is validated before the
// first write, so a batch with one unknown key changes nothing.
func (s *Service) SetAll(values map[string]string) error {
	for key := range values {
		if _, ok := defaults[key]; !ok {
			return fmt.Errorf("unknown config key %q: %w", key, store.ErrValidation)
		}
	}
	for key, value := range values {
		if err := s.settings.Set(key, value); err != nil {
			return err
		}
	}
	return nil
}
