package store

import (
	"database/sql"
	"fmt"

	"github.com/emberhall/homeboard/internal/model"
)

type FamilyMemberStore struct {
	db *sql.DB
}

func NewFamilyMemberStore(db *sql.DB) *FamilyMemberStore {
	return &FamilyMemberStore{db: db}
}

const memberCols = `id, name, color, role, pin IS NOT NULL, created_at, updated_at`

func scanMember(scanner interface{ Scan(...any) error }) (*model.FamilyMember, error) {
	var m model.FamilyMember
	err := scanner.Scan(&m.ID, &m.Name, &m.Color, &m.Role, &m.HasPIN, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create inserts a member. A duplicate name fails with ErrDuplicateName.
func (s *FamilyMemberStore) Create(name, color string, role model.Role) (*model.FamilyMember, error) {
	result, err := s.db.Exec(
		`INSERT INTO family_members (name, color, role) VALUES (?, ?, ?)`,
		name, color, role,
	)
	if err != nil {
		return nil, fmt.Errorf("insert family member: %w", translate(err))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

// List returns all members in stable name order.
func (s *FamilyMemberStore) List() ([]model.FamilyMember, error) {
	rows, err := s.db.Query(`SELECT ` + memberCols + ` FROM family_members ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query family members: %w", translate(err))
	}
	defer rows.Close()

	var members []model.FamilyMember
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("scan family member: %w", err)
		}
		members = append(members, *m)
	}
	return members, rows.Err()
}

// GetByID returns the member, or nil with no error when the id is unknown.
func (s *FamilyMemberStore) GetByID(id int64) (*model.FamilyMember, error) {
	row := s.db.QueryRow(`SELECT `+memberCols+` FROM family_members WHERE id = ?`, id)
	m, err := scanMember(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query family member: %w", translate(err))
	}
	return m, nil
}

func (s *FamilyMemberStore) NameExists(name string) (bool, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM family_members WHERE name = ?`, name).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check name exists: %w", translate(err))
	}
	return count > 0, nil
}

func (s *FamilyMemberStore) SetPIN(id int64, hashedPIN string) error {
	res, err := s.db.Exec(`UPDATE family_members SET pin = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, hashedPIN, id)
	if err != nil {
		return fmt.Errorf("set pin: %w", translate(err))
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *FamilyMemberStore) GetPINHash(id int64) (string, error) {
	var pin sql.NullString
	err := s.db.QueryRow(`SELECT pin FROM family_members WHERE id = ?`, id).Scan(&pin)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("query pin: %w", translate(err))
	}
	if !pin.Valid {
		return "", nil
	}
	return pin.String, nil
}
