package store

import (
	"errors"
	"testing"

	"github.com/emberhall/homeboard/internal/database"
)

func setupTestDB(t *testing.T) (*ChoreStore, *FamilyMemberStore, *SettingsStore) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewChoreStore(db), NewFamilyMemberStore(db), NewSettingsStore(db)
}

func TestClosedStoreSurfacesErrClosed(t *testing.T) {
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	cs := NewChoreStore(db)
	ms := NewFamilyMemberStore(db)
	ss := NewSettingsStore(db)

	if err := db.Close(); err != nil {
		t.Fatalf("close db: %v", err)
	}

	if _, err := ms.List(); !errors.Is(err, ErrClosed) {
		t.Errorf("member list after close: got %v, want ErrClosed", err)
	}
	if _, err := cs.List(ChoreFilter{}); !errors.Is(err, ErrClosed) {
		t.Errorf("chore list after close: got %v, want ErrClosed", err)
	}
	if err := ss.Set("current_view", "photos"); !errors.Is(err, ErrClosed) {
		t.Errorf("setting write after close: got %v, want ErrClosed", err)
	}
}
