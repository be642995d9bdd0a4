package authmw

import (
	"fmt"

	"kyri56xcaesar/task-tracker/internal/store"
)

type Action string

const (
	ActionViewTask   Action = "task.view"
	ActionEditTask   Action = "task.edit"
	ActionDeleteTask Action = "task.delete"
	ActionAdmin      Action = "admin"
)

// Decision is the typed allow/deny result handlers branch on.
type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(reason string) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// Authorize applies the role/ownership rules for actor performing action on
// task. task may be nil for actions that do not target a row (ActionAdmin).
//
// Rules:
//   - view: managers see everything, others only their own assignments
//   - edit: manager, assignee or creator
//   - delete: manager or creator (assignee alone is not enough)
//   - admin: manager only
func Authorize(actor *store.User, action Action, task *store.Task) Decision {
	if actor == nil {
		return deny("not authenticated")
	}
	if actor.IsManager() {
		return allow()
	}

	switch action {
	case ActionViewTask:
		if task != nil && task.AssigneeID == actor.ID {
			return allow()
		}
		return deny("you do not have permission to view this task")
	case ActionEditTask:
		if task != nil && (task.AssigneeID == actor.ID || task.CreatedByID == actor.ID) {
			return allow()
		}
		return deny("you do not have permission to edit this task")
	case ActionDeleteTask:
		if task != nil && task.CreatedByID == actor.ID {
			return allow()
		}
		return deny("you do not have permission to delete this task")
	case ActionAdmin:
		return deny("manager access required")
	default:
		return deny(fmt.Sprintf("unknown action %q", action))
	}
}
