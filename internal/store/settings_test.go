package store

import (
	"errors"
	"testing"
)

func TestSettingsSeedData(t *testing.T) {
	_, _, ss := setupTestDB(t)

	settings, err := ss.GetAll()
	if err != nil {
		t.Fatalf("get all settings: %v", err)
	}
	if len(settings) != 7 {
		t.Fatalf("expected 7 seed settings, got %d", len(settings))
	}

	if settings["current_view"] != "dashboard" {
		t.Errorf("current_view = %q, want %q", settings["current_view"], "dashboard")
	}
	if settings["photo_rotation_interval"] != "30" {
		t.Errorf("photo_rotation_interval = %q, want %q", settings["photo_rotation_interval"], "30")
	}
}

func TestSettingsUpsert(t *testing.T) {
	_, _, ss := setupTestDB(t)

	if err := ss.Set("current_view", "chores"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := ss.Set("current_view", "messages"); err != nil {
		t.Fatalf("set again: %v", err)
	}

	got, err := ss.Get("current_view")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != "messages" {
		t.Errorf("value = %q, want %q (last write wins)", got, "messages")
	}

	// Upsert must not duplicate rows
	settings, err := ss.GetAll()
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if len(settings) != 7 {
		t.Errorf("expected 7 settings after upserts, got %d", len(settings))
	}
}

func TestSettingsGetAbsent(t *testing.T) {
	_, _, ss := setupTestDB(t)

	_, err := ss.Get("no_such_key")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
