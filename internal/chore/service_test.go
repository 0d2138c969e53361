package chore

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/emberhall/homeboard/internal/database"
	"github.com/emberhall/homeboard/internal/model"
	"github.com/emberhall/homeboard/internal/store"
)

func setupService(t *testing.T) *Service {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewService(store.NewChoreStore(db), store.NewFamilyMemberStore(db), slog.Default())
}

func seedMember(t *testing.T, s *Service) *model.FamilyMember {
	t.Helper()
	members, err := s.ListMembers()
	if err != nil {
		t.Fatalf("list members: %v", err)
	}
	return &members[0]
}

func TestAddChoreRequiresTitle(t *testing.T) {
	s := setupService(t)

	_, err := s.AddChore(store.ChoreInput{Title: "   "})
	if !errors.Is(err, store.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestAddChoreUnknownAssignee(t *testing.T) {
	s := setupService(t)

	bogus := int64(12345)
	_, err := s.AddChore(store.ChoreInput{Title: "Sweep", AssignedTo: &bogus})
	if !errors.Is(err, store.ErrUnknownMember) {
		t.Fatalf("expected ErrUnknownMember, got %v", err)
	}

	chores, err := s.ListChores(store.ChoreFilter{})
	if err != nil {
		t.Fatalf("list chores: %v", err)
	}
	if len(chores) != 0 {
		t.Errorf("rejected chore must not persist, got %d rows", len(chores))
	}
}

func TestUpdateChoreNotFound(t *testing.T) {
	s := setupService(t)

	_, err := s.UpdateChore(404, store.ChoreUpdate{Status: strPtr(model.StatusInProgress)})
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateChoreBlankTitle(t *testing.T) {
	s := setupService(t)

	c, err := s.AddChore(store.ChoreInput{Title: "Valid"})
	if err != nil {
		t.Fatalf("add chore: %v", err)
	}

	_, err = s.UpdateChore(c.ID, store.ChoreUpdate{Title: strPtr("  ")})
	if !errors.Is(err, store.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestCompleteChore(t *testing.T) {
	s := setupService(t)
	member := seedMember(t, s)

	c, err := s.AddChore(store.ChoreInput{Title: "Laundry", Points: 4})
	if err != nil {
		t.Fatalf("add chore: %v", err)
	}

	completion, err := s.CompleteChore(c.ID, member.ID)
	if err != nil {
		t.Fatalf("complete chore: %v", err)
	}
	if completion.PointsEarned != 4 {
		t.Errorf("points_earned = %d, want 4", completion.PointsEarned)
	}

	got, err := s.GetChore(c.ID)
	if err != nil {
		t.Fatalf("get chore: %v", err)
	}
	if got.Status != model.StatusCompleted || got.CompletedAt == nil {
		t.Errorf("chore not marked completed: status=%q completed_at=%v", got.Status, got.CompletedAt)
	}
}

func TestCompleteChoreTwiceRejected(t *testing.T) {
	s := setupService(t)
	member := seedMember(t, s)

	c, err := s.AddChore(store.ChoreInput{Title: "Vacuum"})
	if err != nil {
		t.Fatalf("add chore: %v", err)
	}

	if _, err := s.CompleteChore(c.ID, member.ID); err != nil {
		t.Fatalf("first complete: %v", err)
	}

	_, err = s.CompleteChore(c.ID, member.ID)
	if !errors.Is(err, store.ErrAlreadyCompleted) {
		t.Fatalf("expected ErrAlreadyCompleted, got %v", err)
	}
}

func TestCompleteChoreUnknownMember(t *testing.T) {
	s := setupService(t)

	c, err := s.AddChore(store.ChoreInput{Title: "Dust"})
	if err != nil {
		t.Fatalf("add chore: %v", err)
	}

	_, err = s.CompleteChore(c.ID, 9999)
	if !errors.Is(err, store.ErrUnknownMember) {
		t.Fatalf("expected ErrUnknownMember, got %v", err)
	}
}

func TestDeleteChoreNotImplemented(t *testing.T) {
	s := setupService(t)

	if err := s.DeleteChore(1); !errors.Is(err, store.ErrNotImplemented) {
		t.Fatalf("expected ErrNotImplemented, got %v", err)
	}
}

func TestAddMemberValidation(t *testing.T) {
	s := setupService(t)

	if _, err := s.AddMember("", "#FFFFFF", model.RoleMember); !errors.Is(err, store.ErrValidation) {
		t.Fatalf("expected ErrValidation for empty name, got %v", err)
	}

	if _, err := s.AddMember("Zed", "", "overlord"); !errors.Is(err, store.ErrValidation) {
		t.Fatalf("expected ErrValidation for bad role, got %v", err)
	}
}

func TestAddMemberDuplicate(t *testing.T) {
	s := setupService(t)

	_, err := s.AddMember("Mom", "#FFFFFF", model.RoleMember)
	if !errors.Is(err, store.ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName for seeded name, got %v", err)
	}
}

func TestMemberPINRoundTrip(t *testing.T) {
	s := setupService(t)
	member := seedMember(t, s)

	if err := s.SetMemberPIN(member.ID, "12a4"); !errors.Is(err, store.ErrValidation) {
		t.Fatalf("expected ErrValidation for non-digit PIN, got %v", err)
	}

	if err := s.SetMemberPIN(member.ID, "1234"); err != nil {
		t.Fatalf("set pin: %v", err)
	}

	ok, err := s.VerifyMemberPIN(member.ID, "1234")
	if err != nil {
		t.Fatalf("verify pin: %v", err)
	}
	if !ok {
		t.Error("correct PIN should verify")
	}

	ok, err = s.VerifyMemberPIN(member.ID, "4321")
	if err != nil {
		t.Fatalf("verify wrong pin: %v", err)
	}
	if ok {
		t.Error("wrong PIN must not verify")
	}
}

func strPtr(s string) *string { return &s }
