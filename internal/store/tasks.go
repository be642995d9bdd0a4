package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
)

const taskColumns = `id, title, COALESCE(description,''), status, priority, due_date,
       created_at, updated_at, completed_at, assignee_id, created_by_id,
       estimated_hours, actual_hours, COALESCE(category,''), COALESCE(tags,'')`

func scanTask(row pgx.Row) (Task, error) {
	var t Task
	err := row.Scan(
		&t.TaskID,
		&t.Title,
		&t.Description,
		&t.Status,
		&t.Priority,
		&t.DueDate,
		&t.CreatedAt,
		&t.UpdatedAt,
		&t.CompletedAt,
		&t.AssigneeID,
		&t.CreatedByID,
		&t.EstimatedHours,
		&t.ActualHours,
		&t.Category,
		&t.Tags,
	)
	return t, err
}

type CreateTaskParams struct {
	Title          string
	Description    string
	Priority       string
	DueDate        *time.Time
	AssigneeID     int64
	CreatedByID    int64
	Category       string
	Tags           string
	EstimatedHours *float64
}

func CreateTask(ctx context.Context, p CreateTaskParams) (int64, error) {
	priority := p.Priority
	if priority == "" {
		priority = PriorityMedium
	}

	var id int64
	err := pool.QueryRow(ctx, `
		INSERT INTO tasks (title, description, priority, due_date, assignee_id, created_by_id,
		                   category, tags, estimated_hours)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING id
	`, p.Title, p.Description, priority, p.DueDate, p.AssigneeID, p.CreatedByID,
		p.Category, p.Tags, p.EstimatedHours).Scan(&id)
	return id, err
}

func GetTaskByID(ctx context.Context, taskID int64) (*Task, error) {
	row := pool.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, taskID)
	t, err := scanTask(row)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func DeleteTask(ctx context.Context, taskID int64) error {
	ct, err := pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, taskID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

type UpdateTaskParams struct {
	Title          *string
	Description    *string
	Status         *string
	Priority       *string
	DueDate        *time.Time
	AssigneeID     *int64
	Category       *string
	Tags           *string
	EstimatedHours *float64
	ActualHours    *float64
	// CompletedAt is written whenever Status is set, resolved by
	// CompletionStamp so the completed iff completed_at invariant holds.
	CompletedAt *time.Time
}

func UpdateTask(ctx context.Context, taskID int64, p UpdateTaskParams) error {
	sets := make([]string, 0, 11)
	args := make([]any, 0, 12)
	i := 1

	add := func(col string, val any) {
		sets = append(sets, fmt.Sprintf("%s = $%d", col, i))
		args = append(args, val)
		i++
	}

	if p.Title != nil {
		add("title", *p.Title)
	}
	if p.Description != nil {
		add("description", *p.Description)
	}
	if p.Status != nil {
		add("status", *p.Status)
		add("completed_at", p.CompletedAt)
	}
	if p.Priority != nil {
		add("priority", *p.Priority)
	}
	if p.DueDate != nil {
		add("due_date", *p.DueDate)
	}
	if p.AssigneeID != nil {
		add("assignee_id", *p.AssigneeID)
	}
	if p.Category != nil {
		add("category", *p.Category)
	}
	if p.Tags != nil {
		add("tags", *p.Tags)
	}
	if p.EstimatedHours != nil {
		add("estimated_hours", *p.EstimatedHours)
	}
	if p.ActualHours != nil {
		add("actual_hours", *p.ActualHours)
	}

	if len(sets) == 0 {
		return fmt.Errorf("no fields to update")
	}
	sets = append(sets, "updated_at = now()")

	args = append(args, taskID)
	q := fmt.Sprintf("UPDATE tasks SET %s WHERE id = $%d", strings.Join(sets, ", "), i)

	ct, err := pool.Exec(ctx, q, args...)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// TaskFilter composes the role scope with the optional list filters.
type TaskFilter struct {
	ActorID int64
	Manager bool

	Status     string
	Priority   string
	AssigneeID int64 // managers only; ignored otherwise
	Search     string
	SortBy     string
	Order      string
}

// taskWhereClause builds the WHERE part of the task list query. Employees are
// always pinned to their own assignments; the assignee filter only widens a
// manager's view.
func taskWhereClause(f TaskFilter) (string, []any) {
	where := make([]string, 0, 4)
	args := make([]any, 0, 4)
	i := 1

	if !f.Manager {
		where = append(where, fmt.Sprintf("assignee_id = $%d", i))
		args = append(args, f.ActorID)
		i++
	} else if f.AssigneeID > 0 {
		where = append(where, fmt.Sprintf("assignee_id = $%d", i))
		args = append(args, f.AssigneeID)
		i++
	}

	if f.Status != "" {
		where = append(where, fmt.Sprintf("status = $%d", i))
		args = append(args, f.Status)
		i++
	}
	if f.Priority != "" {
		where = append(where, fmt.Sprintf("priority = $%d", i))
		args = append(args, f.Priority)
		i++
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		// case-insensitive substring across title OR description OR tags
		where = append(where, fmt.Sprintf(
			"(title ILIKE $%d OR description ILIKE $%d OR tags ILIKE $%d)", i, i, i))
		args = append(args, "%"+s+"%")
		i++
	}

	if len(where) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(where, " AND "), args
}

func ListTasks(ctx context.Context, f TaskFilter) ([]Task, error) {
	whereSQL, args := taskWhereClause(f)
	orderSQL := taskOrderClause(f.SortBy, f.Order)

	q := fmt.Sprintf(`
		SELECT %s
		FROM tasks
		%s
		ORDER BY %s
	`, taskColumns, whereSQL, orderSQL)

	rows, err := pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Task, 0, 16)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// TasksInScope returns every task the actor may see, for the aggregators.
func TasksInScope(ctx context.Context, actorID int64, manager bool) ([]Task, error) {
	return ListTasks(ctx, TaskFilter{ActorID: actorID, Manager: manager})
}

func RecentTasks(ctx context.Context, actorID int64, manager bool, limit int) ([]Task, error) {
	if limit <= 0 {
		limit = 5
	}

	where := ""
	args := []any{limit}
	if !manager {
		where = "WHERE assignee_id = $2"
		args = append(args, actorID)
	}

	q := fmt.Sprintf(`
		SELECT %s
		FROM tasks
		%s
		ORDER BY created_at DESC, id ASC
		LIMIT $1
	`, taskColumns, where)

	rows, err := pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Task, 0, limit)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
