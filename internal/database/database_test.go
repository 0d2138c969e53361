package database

import (
	"path/filepath"
	"testing"
)

func TestOpenSeedsOnce(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "homeboard.db")

	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}

	var members, settings int
	if err := db.QueryRow(`SELECT COUNT(*) FROM family_members`).Scan(&members); err != nil {
		t.Fatalf("count members: %v", err)
	}
	if err := db.QueryRow(`SELECT COUNT(*) FROM settings`).Scan(&settings); err != nil {
		t.Fatalf("count settings: %v", err)
	}
	if members != 4 {
		t.Errorf("expected 4 seed members, got %d", members)
	}
	if settings != 7 {
		t.Errorf("expected 7 seed settings, got %d", settings)
	}

	// Values the admin changed must survive a restart
	if _, err := db.Exec(`UPDATE settings SET value = '99' WHERE key = 'display_brightness'`); err != nil {
		t.Fatalf("update setting: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO family_members (name, color) VALUES ('Extra', '#000000')`); err != nil {
		t.Fatalf("insert member: %v", err)
	}
	db.Close()

	db, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer db.Close()

	if err := db.QueryRow(`SELECT COUNT(*) FROM family_members`).Scan(&members); err != nil {
		t.Fatalf("recount members: %v", err)
	}
	if members != 5 {
		t.Errorf("expected 5 members after reopen (no reseed), got %d", members)
	}

	var brightness string
	if err := db.QueryRow(`SELECT value FROM settings WHERE key = 'display_brightness'`).Scan(&brightness); err != nil {
		t.Fatalf("read setting: %v", err)
	}
	if brightness != "99" {
		t.Errorf("display_brightness = %q, want 99 (seed must not overwrite)", brightness)
	}
}
