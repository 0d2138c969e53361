package model

import "time"

// Chore status values. Any transition between the three is allowed via a
// direct update; only Complete appends a completion record.
const (
	StatusPending    = "pending"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
)

type Chore struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	AssignedTo  *int64     `json:"assigned_to"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
	CompletedAt *time.Time `json:"completed_at"`
	Points      int        `json:"points"`
	Category    string     `json:"category"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Joined from family_members when the chore is assigned.
	AssigneeName  string `json:"assignee_name,omitempty"`
	AssigneeColor string `json:"assignee_color,omitempty"`
}

// ChoreCompletion is an immutable ledger entry. PointsEarned is copied from
// the chore at completion time and never recomputed.
type ChoreCompletion struct {
	ID           int64     `json:"id"`
	ChoreID      int64     `json:"chore_id"`
	MemberID     int64     `json:"member_id"`
	CompletedAt  time.Time `json:"completed_at"`
	PointsEarned int       `json:"points_earned"`
}

// PointTotal is one leaderboard row.
type PointTotal struct {
	MemberID   int64  `json:"member_id"`
	MemberName string `json:"member_name"`
	Color      string `json:"color"`
	Points     int    `json:"points"`
}
