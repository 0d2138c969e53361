// Package chore holds the domain service for chores and family members. It is
// the only caller of the store's mutation primitives: cross-entity validation
// happens here, and raw store failures are translated into the small error
// taxonomy the API layer maps to status codes.
package chore

import (
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/emberhall/homeboard/internal/model"
	"github.com/emberhall/homeboard/internal/store"
)

type Service struct {
	chores  *store.ChoreStore
	members *store.FamilyMemberStore
	logger  *slog.Logger
}

func NewService(cs *store.ChoreStore, ms *store.FamilyMemberStore, logger *slog.Logger) *Service {
	return &Service{chores: cs, members: ms, logger: logger}
}

// ListChores returns filtered, assignee-enriched chores.
func (s *Service) ListChores(filter store.ChoreFilter) ([]model.Chore, error) {
	return s.chores.List(filter)
}

// AddChore validates and creates a chore. Title is required; an assignee must
// reference an existing member before the insert is attempted.
func (s *Service) AddChore(in store.ChoreInput) (*model.Chore, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return nil, fmt.Errorf("title is required: %w", store.ErrValidation)
	}

	if in.AssignedTo != nil {
		if err := s.memberMustExist(*in.AssignedTo); err != nil {
			return nil, err
		}
	}

	chore, err := s.chores.Create(in)
	if err != nil {
		return nil, err
	}
	s.logger.Info("chore created", "id", chore.ID, "title", chore.Title)
	return chore, nil
}

// UpdateChore applies a partial update. A nonexistent id is reported as
// ErrNotFound, distinct from validation failures, so the API layer can answer
// 404 rather than 400.
func (s *Service) UpdateChore(id int64, upd store.ChoreUpdate) (*model.Chore, error) {
	if upd.Title != nil {
		trimmed := strings.TrimSpace(*upd.Title)
		if trimmed == "" {
			return nil, fmt.Errorf("title is required: %w", store.ErrValidation)
		}
		upd.Title = &trimmed
	}
	if upd.AssignedTo != nil {
		if err := s.memberMustExist(*upd.AssignedTo); err != nil {
			return nil, err
		}
	}

	rows, err := s.chores.Update(id, upd)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, fmt.Errorf("chore %d: %w", id, store.ErrNotFound)
	}
	return s.chores.GetByID(id)
}

// GetChore returns one chore, assignee enriched. Unknown ids are ErrNotFound.
func (s *Service) GetChore(id int64) (*model.Chore, error) {
	c, err := s.chores.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("chore %d: %w", id, store.ErrNotFound)
	}
	return c, nil
}

// CompleteChore marks a chore completed and appends exactly one completion
// record. Completing an already-completed chore is rejected rather than
// appending a second ledger row. The status check here is only the fast path
// for a clean message; the store transaction enforces the same guard, so two
// racing completes cannot both land.
func (s *Service) CompleteChore(choreID, memberID int64) (*model.ChoreCompletion, error) {
	chore, err := s.chores.GetByID(choreID)
	if err != nil {
		return nil, err
	}
	if chore == nil {
		return nil, fmt.Errorf("chore %d: %w", choreID, store.ErrNotFound)
	}
	if chore.Status == model.StatusCompleted {
		return nil, fmt.Errorf("chore %d: %w", choreID, store.ErrAlreadyCompleted)
	}
	if err := s.memberMustExist(memberID); err != nil {
		return nil, err
	}

	completion, err := s.chores.Complete(choreID, memberID)
	if err != nil {
		return nil, err
	}
	s.logger.Info("chore completed", "chore_id", choreID, "member_id", memberID, "points", completion.PointsEarned)
	return completion, nil
}

// DeleteChore is declared but not built yet.
// TODO: deletion needs a policy for the completion ledger (cascade vs keep).
func (s *Service) DeleteChore(id int64) error {
	return fmt.Errorf("delete chore: %w", store.ErrNotImplemented)
}

// ListMembers returns all family members ordered by name.
func (s *Service) ListMembers() ([]model.FamilyMember, error) {
	return s.members.List()
}

// AddMember validates and creates a family member. Duplicate names are
// rejected; the pre-check gives a clean answer and the unique constraint
// backstops the race.
func (s *Service) AddMember(name, color string, role model.Role) (*model.FamilyMember, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("name is required: %w", store.ErrValidation)
	}
	if color == "" {
		color = "#9E9E9E"
	}
	switch role {
	case "":
		role = model.RoleMember
	case model.RoleAdmin, model.RoleMember:
	default:
		return nil, fmt.Errorf("role must be admin or member: %w", store.ErrValidation)
	}

	exists, err := s.members.NameExists(name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("member %q: %w", name, store.ErrDuplicateName)
	}

	member, err := s.members.Create(name, color, role)
	if err != nil {
		return nil, err
	}
	s.logger.Info("family member created", "id", member.ID, "name", member.Name)
	return member, nil
}

// SetMemberPIN hashes and stores a 4-digit PIN for a member.
func (s *Service) SetMemberPIN(id int64, pin string) error {
	if len(pin) != 4 || !isDigits(pin) {
		return fmt.Errorf("PIN must be exactly 4 digits: %w", store.ErrValidation)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash pin: %w", err)
	}
	return s.members.SetPIN(id, string(hash))
}

// VerifyMemberPIN reports whether the PIN matches. A member with no PIN set
// never verifies.
func (s *Service) VerifyMemberPIN(id int64, pin string) (bool, error) {
	hash, err := s.members.GetPINHash(id)
	if err != nil {
		return false, err
	}
	if hash == "" {
		return false, nil
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pin)) == nil, nil
}

// Leaderboard returns per-member point totals, highest first.
func (s *Service) Leaderboard() ([]model.PointTotal, error) {
	return s.chores.PointTotals()
}

func (s *Service) memberMustExist(id int64) error {
	member, err := s.members.GetByID(id)
	if err != nil {
		return err
	}
	if member == nil {
		return fmt.Errorf("member %d: %w", id, store.ErrUnknownMember)
	}
	return nil
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
