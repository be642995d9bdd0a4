package webapp

import (
	"strconv"
	"time"

	"kyri56xcaesar/task-tracker/internal/flash"
	"kyri56xcaesar/task-tracker/internal/stats"
	"kyri56xcaesar/task-tracker/internal/store"
)

type LoginRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

type CreateTaskRequest struct {
	Title          string `json:"title" form:"title" binding:"required,min=1,max=200"`
	Description    string `json:"description" form:"description" binding:"max=2000"`
	AssigneeID     int64  `json:"assignee_id" form:"assignee_id" binding:"required,gt=0"`
	Priority       string `json:"priority" form:"priority" binding:"omitempty,oneof=low medium high"`
	DueDate        string `json:"due_date" form:"due_date"` // YYYY-MM-DD, optional
	Category       string `json:"category" form:"category" binding:"max=100"`
	Tags           string `json:"tags" form:"tags" binding:"max=500"`
	EstimatedHours string `json:"estimated_hours" form:"estimated_hours"`
}

type EditTaskRequest struct {
	Title          string `json:"title" form:"title" binding:"omitempty,min=1,max=200"`
	Description    string `json:"description" form:"description" binding:"max=2000"`
	Status         string `json:"status" form:"status" binding:"omitempty,oneof=pending in_progress completed"`
	Priority       string `json:"priority" form:"priority" binding:"omitempty,oneof=low medium high"`
	AssigneeID     int64  `json:"assignee_id" form:"assignee_id"` // managers only
	DueDate        string `json:"due_date" form:"due_date"`
	Category       string `json:"category" form:"category" binding:"max=100"`
	Tags           string `json:"tags" form:"tags" binding:"max=500"`
	EstimatedHours string `json:"estimated_hours" form:"estimated_hours"`
	ActualHours    string `json:"actual_hours" form:"actual_hours"`
}

type AddUserRequest struct {
	Firstname  string `json:"first_name" form:"first_name" binding:"required,max=50"`
	Lastname   string `json:"last_name" form:"last_name" binding:"required,max=50"`
	Username   string `json:"username" form:"username" binding:"required,max=80"`
	Email      string `json:"email" form:"email" binding:"required,email,max=120"`
	Role       string `json:"role" form:"role" binding:"omitempty,oneof=employee manager"`
	Department string `json:"department" form:"department" binding:"max=100"`
	Password   string `json:"password" form:"password" binding:"required"`
}

type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" form:"new_password" binding:"required"`
}

// view models

type UserVM struct {
	ID        int64
	Username  string
	Firstname string
	Lastname  string
	FullName  string
	IsManager bool
}

func userVM(u *store.User) UserVM {
	return UserVM{
		ID:        u.ID,
		Username:  u.Username,
		Firstname: u.Firstname,
		Lastname:  u.Lastname,
		FullName:  u.FullName(),
		IsManager: u.IsManager(),
	}
}

type TaskVM struct {
	store.Task

	AssigneeName string
	CreatorName  string
	Overdue      bool
}

func taskVM(t store.Task, usersByID map[int64]store.User, now time.Time) TaskVM {
	vm := TaskVM{Task: t, Overdue: t.IsOverdue(now)}
	if u, ok := usersByID[t.AssigneeID]; ok {
		vm.AssigneeName = u.FullName()
	}
	if u, ok := usersByID[t.CreatedByID]; ok {
		vm.CreatorName = u.FullName()
	}
	return vm
}

type DashboardVM struct {
	Title  string
	User   UserVM
	Flash  flash.Flash
	Stats  stats.Summary
	Team   []stats.UserPerformance
	Recent []TaskVM
}

type TaskFiltersVM struct {
	Status   string
	Priority string
	Assignee string
	Search   string
	Sort     string
	Order    string
}

type TasksVM struct {
	Title     string
	User      UserVM
	Flash     flash.Flash
	Tasks     []TaskVM
	Employees []store.User
	Filters   TaskFiltersVM
}

type TaskFormVM struct {
	Title     string
	User      UserVM
	Flash     flash.Flash
	Task      *TaskVM
	Employees []store.User
}

type AnalyticsVM struct {
	Title        string
	User         UserVM
	Flash        flash.Flash
	Completion   []stats.SeriesPoint
	ByPriority   map[string]int
	ByStatus     map[string]int
	Productivity []stats.UserPerformance
}

type AdminUsersVM struct {
	Title string
	User  UserVM
	Flash flash.Flash
	Users []store.User
}

// fmtHours renders an optional hours value for forms and reports.
func fmtHours(h *float64) string {
	if h == nil {
		return ""
	}
	return strconv.FormatFloat(*h, 'f', -1, 64)
}

// bootstrap badge classes, same palette the original views used
func statusBadgeClass(status string) string {
	switch status {
	case store.StatusPending:
		return "bg-warning"
	case store.StatusInProgress:
		return "bg-info"
	case store.StatusCompleted:
		return "bg-success"
	default:
		return "bg-secondary"
	}
}

func priorityBadgeClass(priority string) string {
	switch priority {
	case store.PriorityLow:
		return "bg-success"
	case store.PriorityMedium:
		return "bg-warning"
	case store.PriorityHigh:
		return "bg-danger"
	default:
		return "bg-secondary"
	}
}
