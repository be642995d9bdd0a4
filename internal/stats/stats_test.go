package stats

import (
	"testing"
	"time"

	"kyri56xcaesar/task-tracker/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func hoursAgo(h int) time.Time { return now.Add(-time.Duration(h) * time.Hour) }

func tp(t time.Time) *time.Time { return &t }

func TestSummarize(t *testing.T) {
	yesterday := hoursAgo(24)
	tomorrow := now.Add(24 * time.Hour)

	tasks := []store.Task{
		{TaskID: 1, Status: store.StatusPending, DueDate: &yesterday},
		{TaskID: 2, Status: store.StatusInProgress, DueDate: &tomorrow},
		{TaskID: 3, Status: store.StatusCompleted, DueDate: &yesterday, CompletedAt: tp(hoursAgo(1))},
		{TaskID: 4, Status: store.StatusPending},
	}

	s := Summarize(tasks, now)
	assert.Equal(t, Summary{Total: 4, Pending: 2, InProgress: 1, Completed: 1, Overdue: 1}, s)
}

func TestSummarizeEmpty(t *testing.T) {
	assert.Equal(t, Summary{}, Summarize(nil, now))
}

// Completing an overdue task moves it from overdue to completed on the next
// call; there is no cached state to invalidate.
func TestSummarizeOverdueFlip(t *testing.T) {
	yesterday := hoursAgo(24)
	tasks := []store.Task{
		{TaskID: 1, Status: store.StatusPending, Priority: store.PriorityHigh, DueDate: &yesterday, AssigneeID: 2},
	}

	before := Summarize(tasks, now)
	assert.Equal(t, 1, before.Overdue)
	assert.Equal(t, 0, before.Completed)

	tasks[0].Status = store.StatusCompleted
	tasks[0].CompletedAt = tp(now)

	after := Summarize(tasks, now)
	assert.Equal(t, 0, after.Overdue)
	assert.Equal(t, 1, after.Completed)
	assert.Equal(t, before.Total, after.Total)
}

func TestTeamPerformance(t *testing.T) {
	users := map[int64]store.User{
		2: {ID: 2, Firstname: "Alice", Lastname: "Smith"},
		3: {ID: 3, Firstname: "Bob", Lastname: "Johnson"},
		4: {ID: 4, Firstname: "Zero", Lastname: "Tasks"},
	}
	tasks := []store.Task{
		{TaskID: 1, AssigneeID: 2, Status: store.StatusCompleted},
		{TaskID: 2, AssigneeID: 2, Status: store.StatusPending},
		{TaskID: 3, AssigneeID: 3, Status: store.StatusCompleted},
	}

	rows := TeamPerformance(tasks, users)
	require.Len(t, rows, 2, "users with zero assigned tasks are absent")

	assert.Equal(t, int64(2), rows[0].UserID)
	assert.Equal(t, "Alice", rows[0].Firstname)
	assert.Equal(t, 2, rows[0].Total)
	assert.Equal(t, 1, rows[0].Completed)

	assert.Equal(t, int64(3), rows[1].UserID)
	assert.Equal(t, 1, rows[1].Total)
	assert.Equal(t, 1, rows[1].Completed)
}

func TestProductivity(t *testing.T) {
	users := map[int64]store.User{
		2: {ID: 2, Firstname: "Alice", Lastname: "Smith"},
		3: {ID: 3, Firstname: "Bob", Lastname: "Johnson"},
	}
	tasks := []store.Task{
		// two completed tasks: 10h and 20h to complete
		{TaskID: 1, AssigneeID: 2, Status: store.StatusCompleted,
			CreatedAt: hoursAgo(30), CompletedAt: tp(hoursAgo(20))},
		{TaskID: 2, AssigneeID: 2, Status: store.StatusCompleted,
			CreatedAt: hoursAgo(25), CompletedAt: tp(hoursAgo(5))},
		// nothing completed for Bob
		{TaskID: 3, AssigneeID: 3, Status: store.StatusPending, CreatedAt: hoursAgo(4)},
	}

	rows := Productivity(tasks, users)
	require.Len(t, rows, 2)

	require.NotNil(t, rows[0].AvgCompletionHours)
	assert.InDelta(t, 15.0, *rows[0].AvgCompletionHours, 0.001)

	// no completed tasks contribute no average, not a zero
	assert.Nil(t, rows[1].AvgCompletionHours)
	assert.Equal(t, 1, rows[1].Total)
}

func TestCompletionSeries(t *testing.T) {
	tasks := []store.Task{
		{TaskID: 1, Status: store.StatusCompleted, CompletedAt: tp(hoursAgo(2))},
		{TaskID: 2, Status: store.StatusCompleted, CompletedAt: tp(hoursAgo(3))},
		{TaskID: 3, Status: store.StatusCompleted, CompletedAt: tp(hoursAgo(24 * 5))},
		// outside the trailing 30-day window
		{TaskID: 4, Status: store.StatusCompleted, CompletedAt: tp(hoursAgo(24 * 45))},
		// not completed: never counted even with a stale stamp
		{TaskID: 5, Status: store.StatusPending, CompletedAt: tp(hoursAgo(1))},
	}

	series := CompletionSeries(tasks, now)
	require.Len(t, series, 2, "series is sparse and window-bounded")

	assert.Equal(t, "2025-06-10", series[0].Date)
	assert.Equal(t, 1, series[0].Count)
	assert.Equal(t, "2025-06-15", series[1].Date)
	assert.Equal(t, 2, series[1].Count)
}

func TestDistributions(t *testing.T) {
	tasks := []store.Task{
		{Status: store.StatusPending, Priority: store.PriorityHigh},
		{Status: store.StatusPending, Priority: store.PriorityLow},
		{Status: store.StatusCompleted, Priority: store.PriorityHigh},
	}

	assert.Equal(t, map[string]int{"pending": 2, "completed": 1}, CountByStatus(tasks))
	assert.Equal(t, map[string]int{"high": 2, "low": 1}, CountByPriority(tasks))
}
