package webapp

import (
	"testing"
	"time"

	"kyri56xcaesar/task-tracker/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBadgeClasses(t *testing.T) {
	assert.Equal(t, "bg-warning", statusBadgeClass("pending"))
	assert.Equal(t, "bg-info", statusBadgeClass("in_progress"))
	assert.Equal(t, "bg-success", statusBadgeClass("completed"))
	assert.Equal(t, "bg-secondary", statusBadgeClass("???"))

	assert.Equal(t, "bg-success", priorityBadgeClass("low"))
	assert.Equal(t, "bg-warning", priorityBadgeClass("medium"))
	assert.Equal(t, "bg-danger", priorityBadgeClass("high"))
	assert.Equal(t, "bg-secondary", priorityBadgeClass("???"))
}

func TestParseDueDate(t *testing.T) {
	t.Run("empty is valid and nil", func(t *testing.T) {
		d, ok := parseDueDate("")
		assert.True(t, ok)
		assert.Nil(t, d)
	})

	t.Run("well-formed date", func(t *testing.T) {
		d, ok := parseDueDate("2025-06-15")
		require.True(t, ok)
		require.NotNil(t, d)
		assert.Equal(t, 2025, d.Year())
		assert.Equal(t, 15, d.Day())
	})

	t.Run("malformed date", func(t *testing.T) {
		_, ok := parseDueDate("15/06/2025")
		assert.False(t, ok)
	})
}

func TestParseHours(t *testing.T) {
	assert.Nil(t, parseHours(""))
	assert.Nil(t, parseHours("abc"))

	h := parseHours("2.5")
	require.NotNil(t, h)
	assert.Equal(t, 2.5, *h)
}

func TestEditTaskParams(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	task := &store.Task{TaskID: 10, Status: store.StatusPending, AssigneeID: 2}

	t.Run("simple field mapping", func(t *testing.T) {
		p, warnings := editTaskParams(EditTaskRequest{
			Title:    "New title",
			Priority: store.PriorityHigh,
			DueDate:  "2025-07-01",
		}, task, false, now)

		assert.Empty(t, warnings)
		require.NotNil(t, p.Title)
		assert.Equal(t, "New title", *p.Title)
		require.NotNil(t, p.Priority)
		assert.Equal(t, store.PriorityHigh, *p.Priority)
		require.NotNil(t, p.DueDate)
		assert.Equal(t, 2025, p.DueDate.Year())
	})

	t.Run("completing sets the completion stamp", func(t *testing.T) {
		p, warnings := editTaskParams(EditTaskRequest{Status: store.StatusCompleted}, task, false, now)

		assert.Empty(t, warnings)
		require.NotNil(t, p.Status)
		require.NotNil(t, p.CompletedAt)
		assert.Equal(t, now, *p.CompletedAt)
	})

	t.Run("bad due date is skipped with a warning, other fields survive", func(t *testing.T) {
		p, warnings := editTaskParams(EditTaskRequest{
			Title:   "Still applies",
			DueDate: "15/07/2025",
		}, task, false, now)

		require.Len(t, warnings, 1)
		assert.Contains(t, warnings[0], "due date")
		assert.Nil(t, p.DueDate)
		require.NotNil(t, p.Title)
		assert.Equal(t, "Still applies", *p.Title)
	})

	t.Run("only managers reassign", func(t *testing.T) {
		p, _ := editTaskParams(EditTaskRequest{AssigneeID: 5}, task, false, now)
		assert.Nil(t, p.AssigneeID)

		p, _ = editTaskParams(EditTaskRequest{AssigneeID: 5}, task, true, now)
		require.NotNil(t, p.AssigneeID)
		assert.Equal(t, int64(5), *p.AssigneeID)
	})
}
