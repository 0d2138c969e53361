package store

import (
	"errors"
	"testing"

	"github.com/emberhall/homeboard/internal/model"
)

func TestMemberSeedData(t *testing.T) {
	_, ms, _ := setupTestDB(t)

	members, err := ms.List()
	if err != nil {
		t.Fatalf("list members: %v", err)
	}
	if len(members) != 4 {
		t.Fatalf("expected 4 seed members, got %d", len(members))
	}

	// List order is by name
	expected := []string{"Dad", "Emma", "Jack", "Mom"}
	for i, name := range expected {
		if members[i].Name != name {
			t.Errorf("members[%d].Name = %q, want %q", i, members[i].Name, name)
		}
	}
}

func TestMemberCreate(t *testing.T) {
	_, ms, _ := setupTestDB(t)

	m, err := ms.Create("Test User", "#2196F3", model.RoleMember)
	if err != nil {
		t.Fatalf("create member: %v", err)
	}
	if m.ID <= 0 {
		t.Errorf("id = %d, want positive", m.ID)
	}
	if m.Name != "Test User" {
		t.Errorf("name = %q, want %q", m.Name, "Test User")
	}
	if m.Role != model.RoleMember {
		t.Errorf("role = %q, want member", m.Role)
	}
	if m.HasPIN {
		t.Error("new member should have no PIN")
	}
}

func TestMemberDuplicateName(t *testing.T) {
	_, ms, _ := setupTestDB(t)

	if _, err := ms.Create("Alex", "#FF0000", model.RoleMember); err != nil {
		t.Fatalf("create member: %v", err)
	}

	_, err := ms.Create("Alex", "#00FF00", model.RoleAdmin)
	if !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}

	// Reject must not create a second row
	members, err := ms.List()
	if err != nil {
		t.Fatalf("list members: %v", err)
	}
	count := 0
	for _, m := range members {
		if m.Name == "Alex" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected 1 row named Alex, got %d", count)
	}
}

func TestMemberGetByIDNotFound(t *testing.T) {
	_, ms, _ := setupTestDB(t)

	m, err := ms.GetByID(9999)
	if err != nil {
		t.Fatalf("get member: %v", err)
	}
	if m != nil {
		t.Error("expected nil for nonexistent member")
	}
}

func TestMemberPIN(t *testing.T) {
	_, ms, _ := setupTestDB(t)

	m, err := ms.Create("Pin Holder", "#123456", model.RoleAdmin)
	if err != nil {
		t.Fatalf("create member: %v", err)
	}

	hash, err := ms.GetPINHash(m.ID)
	if err != nil {
		t.Fatalf("get pin hash: %v", err)
	}
	if hash != "" {
		t.Errorf("expected empty hash before SetPIN, got %q", hash)
	}

	if err := ms.SetPIN(m.ID, "hashedvalue"); err != nil {
		t.Fatalf("set pin: %v", err)
	}

	hash, err = ms.GetPINHash(m.ID)
	if err != nil {
		t.Fatalf("get pin hash: %v", err)
	}
	if hash != "hashedvalue" {
		t.Errorf("hash = %q, want %q", hash, "hashedvalue")
	}

	if err := ms.SetPIN(9999, "x"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown member, got %v", err)
	}
}
