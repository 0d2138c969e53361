package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/emberhall/homeboard/internal/model"
)

type ChoreStore struct {
	db *sql.DB
}

func NewChoreStore(db *sql.DB) *ChoreStore {
	return &ChoreStore{db: db}
}

// ChoreInput holds the fields accepted when creating a chore. Zero values
// fall back to the schema defaults (pending / normal / 1 point / general).
type ChoreInput struct {
	Title       string
	Description string
	AssignedTo  *int64
	Status      string
	Priority    string
	DueDate     *time.Time
	Points      int
	Category    string
}

// ChoreUpdate is the closed set of updatable fields. Nil means "leave as-is".
type ChoreUpdate struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	AssignedTo  *int64     `json:"assigned_to"`
	Status      *string    `json:"status"`
	Priority    *string    `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
	Category    *string    `json:"category"`
	Points      *int       `json:"points"`
}

// ChoreFilter narrows List results. Zero values match everything.
type ChoreFilter struct {
	Status     string
	AssignedTo *int64
}

const choreCols = `c.id, c.title, c.description, c.assigned_to, c.status, c.priority,
	c.due_date, c.completed_at, c.points, c.category, c.created_at, c.updated_at,
	COALESCE(m.name, ''), COALESCE(m.color, '')`

func scanChore(scanner interface{ Scan(...any) error }) (*model.Chore, error) {
	var c model.Chore
	var assignedTo sql.NullInt64
	var dueDate, completedAt sql.NullTime

	err := scanner.Scan(
		&c.ID, &c.Title, &c.Description, &assignedTo, &c.Status, &c.Priority,
		&dueDate, &completedAt, &c.Points, &c.Category, &c.CreatedAt, &c.UpdatedAt,
		&c.AssigneeName, &c.AssigneeColor,
	)
	if err != nil {
		return nil, err
	}

	if assignedTo.Valid {
		c.AssignedTo = &assignedTo.Int64
	}
	if dueDate.Valid {
		t := dueDate.Time
		c.DueDate = &t
	}
	if completedAt.Valid {
		t := completedAt.Time
		c.CompletedAt = &t
	}
	return &c, nil
}

// Create inserts a chore. An assigned_to pointing at no member fails with
// ErrUnknownMember via the foreign key; callers validate first for a clean
// message but the constraint is the backstop.
func (s *ChoreStore) Create(in ChoreInput) (*model.Chore, error) {
	if in.Status == "" {
		in.Status = model.StatusPending
	}
	if in.Priority == "" {
		in.Priority = "normal"
	}
	if in.Category == "" {
		in.Category = "general"
	}
	if in.Points == 0 {
		in.Points = 1
	}

	var assignedTo sql.NullInt64
	if in.AssignedTo != nil {
		assignedTo = sql.NullInt64{Int64: *in.AssignedTo, Valid: true}
	}
	var dueDate sql.NullTime
	if in.DueDate != nil {
		dueDate = sql.NullTime{Time: in.DueDate.UTC(), Valid: true}
	}

	result, err := s.db.Exec(
		`INSERT INTO chores (title, description, assigned_to, status, priority, due_date, points, category)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		in.Title, in.Description, assignedTo, in.Status, in.Priority, dueDate, in.Points, in.Category,
	)
	if err != nil {
		return nil, fmt.Errorf("insert chore: %w", translate(err))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

// GetByID returns the chore with assignee name/color joined in, or nil with
// no error when the id is unknown.
func (s *ChoreStore) GetByID(id int64) (*model.Chore, error) {
	row := s.db.QueryRow(
		`SELECT `+choreCols+` FROM chores c
		 LEFT JOIN family_members m ON m.id = c.assigned_to
		 WHERE c.id = ?`, id)
	c, err := scanChore(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get chore: %w", translate(err))
	}
	return c, nil
}

// List returns chores matching the filter, assignee enriched, ordered by due
// date ascending with undated chores last, then by priority descending.
// Priority is opaque text so the secondary ordering is lexicographic.
func (s *ChoreStore) List(filter ChoreFilter) ([]model.Chore, error) {
	query := `SELECT ` + choreCols + ` FROM chores c
		 LEFT JOIN family_members m ON m.id = c.assigned_to`
	var conds []string
	var args []any

	if filter.Status != "" {
		conds = append(conds, "c.status = ?")
		args = append(args, filter.Status)
	}
	if filter.AssignedTo != nil {
		conds = append(conds, "c.assigned_to = ?")
		args = append(args, *filter.AssignedTo)
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY c.due_date IS NULL, c.due_date ASC, c.priority DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list chores: %w", translate(err))
	}
	defer rows.Close()

	var chores []model.Chore
	for rows.Next() {
		c, err := scanChore(rows)
		if err != nil {
			return nil, fmt.Errorf("scan chore: %w", err)
		}
		chores = append(chores, *c)
	}
	return chores, rows.Err()
}

// Update applies the non-nil fields of upd to the chore and returns the rows
// affected. Zero rows is not an error; the caller maps it to not-found.
func (s *ChoreStore) Update(id int64, upd ChoreUpdate) (int64, error) {
	var sets []string
	var args []any

	set := func(col string, val any) {
		sets = append(sets, col+" = ?")
		args = append(args, val)
	}

	if upd.Title != nil {
		set("title", *upd.Title)
	}
	if upd.Description != nil {
		set("description", *upd.Description)
	}
	if upd.AssignedTo != nil {
		set("assigned_to", *upd.AssignedTo)
	}
	if upd.Status != nil {
		set("status", *upd.Status)
	}
	if upd.Priority != nil {
		set("priority", *upd.Priority)
	}
	if upd.DueDate != nil {
		set("due_date", upd.DueDate.UTC())
	}
	if upd.Category != nil {
		set("category", *upd.Category)
	}
	if upd.Points != nil {
		set("points", *upd.Points)
	}
	if len(sets) == 0 {
		return 0, fmt.Errorf("update chore: %w: no fields to update", ErrValidation)
	}

	set("updated_at", time.Now().UTC())
	args = append(args, id)

	result, err := s.db.Exec(
		`UPDATE chores SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return 0, fmt.Errorf("update chore: %w", translate(err))
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return rows, nil
}

// Complete marks a chore completed and appends a completion record, as one
// atomic transaction. The status guard lives in the UPDATE's WHERE clause, so
// two racing completes cannot both flip the chore and double-append the
// ledger: the loser matches zero rows and gets ErrAlreadyCompleted.
func (s *ChoreStore) Complete(choreID, memberID int64) (*model.ChoreCompletion, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", translate(err))
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	result, err := tx.Exec(
		`UPDATE chores SET status = ?, completed_at = ?, updated_at = ? WHERE id = ? AND status != ?`,
		model.StatusCompleted, now, now, choreID, model.StatusCompleted,
	)
	if err != nil {
		return nil, fmt.Errorf("mark chore completed: %w", translate(err))
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		var status string
		err := tx.QueryRow(`SELECT status FROM chores WHERE id = ?`, choreID).Scan(&status)
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("complete chore %d: %w", choreID, ErrNotFound)
		}
		if err != nil {
			return nil, fmt.Errorf("read chore status: %w", translate(err))
		}
		return nil, fmt.Errorf("complete chore %d: %w", choreID, ErrAlreadyCompleted)
	}

	var points int
	if err := tx.QueryRow(`SELECT points FROM chores WHERE id = ?`, choreID).Scan(&points); err != nil {
		return nil, fmt.Errorf("read chore points: %w", translate(err))
	}

	result, err = tx.Exec(
		`INSERT INTO chore_completions (chore_id, member_id, completed_at, points_earned) VALUES (?, ?, ?, ?)`,
		choreID, memberID, now, points,
	)
	if err != nil {
		return nil, fmt.Errorf("insert completion: %w", translate(err))
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit completion: %w", translate(err))
	}

	return &model.ChoreCompletion{
		ID:           id,
		ChoreID:      choreID,
		MemberID:     memberID,
		CompletedAt:  now,
		PointsEarned: points,
	}, nil
}

// CompletionsForChore returns the completion ledger for one chore, newest first.
func (s *ChoreStore) CompletionsForChore(choreID int64) ([]model.ChoreCompletion, error) {
	rows, err := s.db.Query(
		`SELECT id, chore_id, member_id, completed_at, points_earned
		 FROM chore_completions WHERE chore_id = ? ORDER BY completed_at DESC, id DESC`,
		choreID,
	)
	if err != nil {
		return nil, fmt.Errorf("list completions: %w", translate(err))
	}
	defer rows.Close()

	var completions []model.ChoreCompletion
	for rows.Next() {
		var c model.ChoreCompletion
		if err := rows.Scan(&c.ID, &c.ChoreID, &c.MemberID, &c.CompletedAt, &c.PointsEarned); err != nil {
			return nil, fmt.Errorf("scan completion: %w", err)
		}
		completions = append(completions, c)
	}
	return completions, rows.Err()
}

// PointTotals sums earned points per member, highest first. Members with no
// completions appear with zero.
func (s *ChoreStore) PointTotals() ([]model.PointTotal, error) {
	rows, err := s.db.Query(
		`SELECT m.id, m.name, m.color, COALESCE(SUM(cc.points_earned), 0)
		 FROM family_members m
		 LEFT JOIN chore_completions cc ON cc.member_id = m.id
		 GROUP BY m.id, m.name, m.color
		 ORDER BY COALESCE(SUM(cc.points_earned), 0) DESC, m.name ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("point totals: %w", translate(err))
	}
	defer rows.Close()

	var totals []model.PointTotal
	for rows.Next() {
		var t model.PointTotal
		if err := rows.Scan(&t.MemberID, &t.MemberName, &t.Color, &t.Points); err != nil {
			return nil, fmt.Errorf("scan point total: %w", err)
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}
