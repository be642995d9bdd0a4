package authmw

import (
	"testing"

	"kyri56xcaesar/task-tracker/internal/store"

	"github.com/stretchr/testify/assert"
)

func TestAuthorize(t *testing.T) {
	manager := &store.User{ID: 1, Role: store.RoleManager}
	assignee := &store.User{ID: 2, Role: store.RoleEmployee}
	creator := &store.User{ID: 3, Role: store.RoleEmployee}
	outsider := &store.User{ID: 4, Role: store.RoleEmployee}

	task := &store.Task{TaskID: 10, AssigneeID: 2, CreatedByID: 3}

	cases := []struct {
		name   string
		actor  *store.User
		action Action
		want   bool
	}{
		{"manager views any task", manager, ActionViewTask, true},
		{"assignee views own task", assignee, ActionViewTask, true},
		{"creator cannot view unassigned task", creator, ActionViewTask, false},
		{"outsider cannot view", outsider, ActionViewTask, false},

		{"manager edits any task", manager, ActionEditTask, true},
		{"assignee edits own task", assignee, ActionEditTask, true},
		{"creator edits created task", creator, ActionEditTask, true},
		{"outsider cannot edit", outsider, ActionEditTask, false},

		{"manager deletes any task", manager, ActionDeleteTask, true},
		{"assignee alone cannot delete", assignee, ActionDeleteTask, false},
		{"creator deletes created task", creator, ActionDeleteTask, true},
		{"outsider cannot delete", outsider, ActionDeleteTask, false},

		{"manager does admin", manager, ActionAdmin, true},
		{"employee cannot do admin", assignee, ActionAdmin, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := Authorize(tc.actor, tc.action, task)
			assert.Equal(t, tc.want, d.Allowed)
			if !tc.want {
				assert.NotEmpty(t, d.Reason)
			}
		})
	}

	t.Run("nil actor always denied", func(t *testing.T) {
		assert.False(t, Authorize(nil, ActionViewTask, task).Allowed)
	})

	t.Run("unknown action denied for non-managers", func(t *testing.T) {
		assert.False(t, Authorize(outsider, Action("task.transmogrify"), task).Allowed)
	})

	t.Run("nil task denies row actions for non-managers", func(t *testing.T) {
		assert.False(t, Authorize(assignee, ActionEditTask, nil).Allowed)
		assert.False(t, Authorize(creator, ActionDeleteTask, nil).Allowed)
	})
}
