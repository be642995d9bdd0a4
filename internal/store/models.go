package store

import "time"

const (
	RoleEmployee = "employee"
	RoleManager  = "manager"

	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"

	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Firstname    string    `json:"first_name"`
	Lastname     string    `json:"last_name"`
	Department   string    `json:"department,omitempty"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

func (u User) FullName() string {
	return u.Firstname + " " + u.Lastname
}

func (u User) IsManager() bool {
	return u.Role == RoleManager
}

type Task struct {
	TaskID         int64      `json:"taskid"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Status         string     `json:"status"`
	Priority       string     `json:"priority"`
	DueDate        *time.Time `json:"due_date,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	AssigneeID     int64      `json:"assignee_id"`
	CreatedByID    int64      `json:"created_by_id"`
	EstimatedHours *float64   `json:"estimated_hours,omitempty"`
	ActualHours    *float64   `json:"actual_hours,omitempty"`
	Category       string     `json:"category,omitempty"`
	Tags           string     `json:"tags,omitempty"`
}

// IsOverdue is a point-in-time predicate, never persisted.
func (t *Task) IsOverdue(now time.Time) bool {
	return t.DueDate != nil && t.DueDate.Before(now) && t.Status != StatusCompleted
}

type Team struct {
	TeamID      int64     `json:"teamid"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ManagerID   int64     `json:"manager_id"`
	CreatedAt   time.Time `json:"created_at"`

	MemberCount int          `json:"memberCount"`
	Members     []TeamMember `json:"members,omitempty"`
}

type TeamMember struct {
	TeamID   int64     `json:"teamid,omitempty"`
	UserID   int64     `json:"user_id"`
	JoinedAt time.Time `json:"joined_at"`
}

func ValidStatus(status string) bool {
	return status == StatusPending || status == StatusInProgress || status == StatusCompleted
}

func ValidPriority(priority string) bool {
	return priority == PriorityLow || priority == PriorityMedium || priority == PriorityHigh
}

func ValidRole(role string) bool {
	return role == RoleEmployee || role == RoleManager
}

// CompletionStamp resolves the completed_at column for a status change:
// entering completed sets it (keeping an earlier stamp if one exists),
// leaving completed clears it.
func CompletionStamp(prev *time.Time, newStatus string, now time.Time) *time.Time {
	if newStatus != StatusCompleted {
		return nil
	}
	if prev != nil {
		return prev
	}
	return &now
}

func taskOrderClause(sortBy, order string) string {
	var col string
	switch sortBy {
	case "title":
		col = "title"
	case "due_date":
		col = "due_date"
	case "priority":
		col = "priority"
	case "status":
		col = "status"
	case "created_at":
		fallthrough
	default:
		col = "created_at"
	}

	dir := "DESC"
	if order == "asc" {
		dir = "ASC"
	}

	// explicit id tie-break keeps result order deterministic
	return col + " " + dir + ", id ASC"
}
