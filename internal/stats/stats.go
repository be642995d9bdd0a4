// Package stats computes the dashboard and analytics aggregates over the
// actor-scoped task set. Everything here is recomputed per call: overdue in
// particular is a point-in-time predicate and must never be cached.
package stats

import (
	"sort"
	"time"

	"kyri56xcaesar/task-tracker/internal/store"
)

// Summary holds the dashboard counters.
type Summary struct {
	Total      int `json:"total_tasks"`
	Pending    int `json:"pending_tasks"`
	InProgress int `json:"in_progress_tasks"`
	Completed  int `json:"completed_tasks"`
	Overdue    int `json:"overdue_tasks"`
}

func Summarize(tasks []store.Task, now time.Time) Summary {
	var s Summary
	s.Total = len(tasks)
	for i := range tasks {
		t := &tasks[i]
		switch t.Status {
		case store.StatusPending:
			s.Pending++
		case store.StatusInProgress:
			s.InProgress++
		case store.StatusCompleted:
			s.Completed++
		}
		if t.IsOverdue(now) {
			s.Overdue++
		}
	}
	return s
}

// UserPerformance is one row of the team performance / productivity reports.
type UserPerformance struct {
	UserID    int64  `json:"user_id"`
	Firstname string `json:"first_name"`
	Lastname  string `json:"last_name"`
	Total     int    `json:"total_tasks"`
	Completed int    `json:"completed_tasks"`

	// mean hours from created_at to completed_at over completed tasks;
	// nil when the user has no completed tasks
	AvgCompletionHours *float64 `json:"avg_completion_time,omitempty"`
}

// TeamPerformance groups per-assignee counts. Users with no assigned tasks do
// not appear (inner-join semantics). Rows come back sorted by user id so
// report output is deterministic.
func TeamPerformance(tasks []store.Task, usersByID map[int64]store.User) []UserPerformance {
	rows := map[int64]*UserPerformance{}

	for i := range tasks {
		t := &tasks[i]
		row := rows[t.AssigneeID]
		if row == nil {
			row = &UserPerformance{UserID: t.AssigneeID}
			if u, ok := usersByID[t.AssigneeID]; ok {
				row.Firstname = u.Firstname
				row.Lastname = u.Lastname
			}
			rows[t.AssigneeID] = row
		}
		row.Total++
		if t.Status == store.StatusCompleted {
			row.Completed++
		}
	}

	out := make([]UserPerformance, 0, len(rows))
	for _, row := range rows {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out
}

// Productivity extends TeamPerformance with the average completion time.
func Productivity(tasks []store.Task, usersByID map[int64]store.User) []UserPerformance {
	rows := TeamPerformance(tasks, usersByID)

	sums := map[int64]float64{}
	counts := map[int64]int{}
	for i := range tasks {
		t := &tasks[i]
		if t.CompletedAt == nil {
			continue
		}
		sums[t.AssigneeID] += t.CompletedAt.Sub(t.CreatedAt).Hours()
		counts[t.AssigneeID]++
	}

	for i := range rows {
		if n := counts[rows[i].UserID]; n > 0 {
			avg := sums[rows[i].UserID] / float64(n)
			rows[i].AvgCompletionHours = &avg
		}
	}
	return rows
}

// SeriesPoint is one day of the completion time series.
type SeriesPoint struct {
	Date  string `json:"date"` // YYYY-MM-DD, UTC
	Count int    `json:"completed_count"`
}

// CompletionSeries counts completions per calendar day over the trailing 30
// days. The series is sparse: days with zero completions are absent.
func CompletionSeries(tasks []store.Task, now time.Time) []SeriesPoint {
	cutoff := now.AddDate(0, 0, -30)

	byDay := map[string]int{}
	for i := range tasks {
		t := &tasks[i]
		if t.Status != store.StatusCompleted || t.CompletedAt == nil {
			continue
		}
		if t.CompletedAt.Before(cutoff) {
			continue
		}
		byDay[t.CompletedAt.UTC().Format("2006-01-02")]++
	}

	out := make([]SeriesPoint, 0, len(byDay))
	for day, n := range byDay {
		out = append(out, SeriesPoint{Date: day, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// Distribution counts tasks per status or priority value.
func Distribution(tasks []store.Task, key func(*store.Task) string) map[string]int {
	out := map[string]int{}
	for i := range tasks {
		out[key(&tasks[i])]++
	}
	return out
}

func CountByStatus(tasks []store.Task) map[string]int {
	return Distribution(tasks, func(t *store.Task) string { return t.Status })
}

func CountByPriority(tasks []store.Task) map[string]int {
	return Distribution(tasks, func(t *store.Task) string { return t.Priority })
}
