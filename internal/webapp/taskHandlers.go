package webapp

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"kyri56xcaesar/task-tracker/internal/authmw"
	"kyri56xcaesar/task-tracker/internal/flash"
	"kyri56xcaesar/task-tracker/internal/store"
	"kyri56xcaesar/task-tracker/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

func handleTasks(c *gin.Context) {
	actor := authmw.CurrentUser(c)
	ctx := c.Request.Context()

	filters := TaskFiltersVM{
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
		Assignee: c.Query("assignee"),
		Search:   c.Query("search"),
		Sort:     c.DefaultQuery("sort", "created_at"),
		Order:    c.DefaultQuery("order", "desc"),
	}

	f := store.TaskFilter{
		ActorID:  actor.ID,
		Manager:  actor.IsManager(),
		Status:   filters.Status,
		Priority: filters.Priority,
		Search:   filters.Search,
		SortBy:   filters.Sort,
		Order:    filters.Order,
	}
	if actor.IsManager() && filters.Assignee != "" {
		if id, err := strconv.ParseInt(filters.Assignee, 10, 64); err == nil {
			f.AssigneeID = id
		}
	}

	tasks, err := store.ListTasks(ctx, f)
	if err != nil {
		log.Printf("failed to list tasks: %v", err)
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"error": "failed to load tasks"})
		return
	}

	users, err := store.ListUsers(ctx, false)
	if err != nil {
		log.Printf("failed to list users: %v", err)
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"error": "failed to load tasks"})
		return
	}
	usersByID := store.UsersByID(users)
	now := time.Now().UTC()

	vm := TasksVM{
		Title: "Tasks",
		User:  userVM(actor),
		Flash: flash.Pop(c),
		Tasks: utils.Map(tasks, func(t store.Task) TaskVM {
			return taskVM(t, usersByID, now)
		}),
		Filters: filters,
	}
	if actor.IsManager() {
		vm.Employees = utils.Filter(users, func(u store.User) bool { return u.IsActive })
	}

	respondInFormat(c, vm, "tasks.html")
}

func handleCreateTaskPage(c *gin.Context) {
	actor := authmw.CurrentUser(c)

	employees, err := store.ListUsers(c.Request.Context(), true)
	if err != nil {
		log.Printf("failed to list users: %v", err)
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"error": "failed to load form"})
		return
	}

	c.HTML(http.StatusOK, "create_task.html", TaskFormVM{
		Title:     "Create Task",
		User:      userVM(actor),
		Flash:     flash.Pop(c),
		Employees: employees,
	})
}

func handleCreateTask(c *gin.Context) {
	actor := authmw.CurrentUser(c)

	var req CreateTaskRequest
	if err := c.ShouldBind(&req); err != nil {
		flash.Set(c, "danger", "Title and assignee are required.")
		c.Redirect(http.StatusSeeOther, "/tasks/create")
		return
	}

	dueDate, ok := parseDueDate(req.DueDate)
	if !ok {
		flash.Set(c, "danger", "Invalid due date format.")
		c.Redirect(http.StatusSeeOther, "/tasks/create")
		return
	}

	p := store.CreateTaskParams{
		Title:          req.Title,
		Description:    req.Description,
		Priority:       req.Priority,
		DueDate:        dueDate,
		AssigneeID:     req.AssigneeID,
		CreatedByID:    actor.ID,
		Category:       req.Category,
		Tags:           req.Tags,
		EstimatedHours: parseHours(req.EstimatedHours),
	}

	if _, err := store.CreateTask(c.Request.Context(), p); err != nil {
		log.Printf("failed to create task: %v", err)
		flash.Set(c, "danger", "Error creating task. Please try again.")
		c.Redirect(http.StatusSeeOther, "/tasks/create")
		return
	}

	flash.Set(c, "success", "Task created successfully!")
	c.Redirect(http.StatusSeeOther, "/tasks")
}

func handleEditTaskPage(c *gin.Context) {
	actor := authmw.CurrentUser(c)
	ctx := c.Request.Context()

	task, ok := fetchTask(c)
	if !ok {
		return
	}

	if d := authmw.Authorize(actor, authmw.ActionEditTask, task); !d.Allowed {
		flash.Set(c, "danger", "You do not have permission to edit this task.")
		c.Redirect(http.StatusSeeOther, "/tasks")
		return
	}

	employees, err := store.ListUsers(ctx, true)
	if err != nil {
		log.Printf("failed to list users: %v", err)
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"error": "failed to load form"})
		return
	}

	users, _ := store.ListUsers(ctx, false)
	vm := taskVM(*task, store.UsersByID(users), time.Now().UTC())

	c.HTML(http.StatusOK, "edit_task.html", TaskFormVM{
		Title:     "Edit Task",
		User:      userVM(actor),
		Flash:     flash.Pop(c),
		Task:      &vm,
		Employees: employees,
	})
}

func handleEditTask(c *gin.Context) {
	actor := authmw.CurrentUser(c)

	task, ok := fetchTask(c)
	if !ok {
		return
	}

	if d := authmw.Authorize(actor, authmw.ActionEditTask, task); !d.Allowed {
		flash.Set(c, "danger", "You do not have permission to edit this task.")
		c.Redirect(http.StatusSeeOther, "/tasks")
		return
	}

	var req EditTaskRequest
	if err := c.ShouldBind(&req); err != nil {
		flash.Set(c, "danger", "Invalid input.")
		c.Redirect(http.StatusSeeOther, "/tasks")
		return
	}

	p, warnings := editTaskParams(req, task, actor.IsManager(), time.Now().UTC())

	if err := store.UpdateTask(c.Request.Context(), task.TaskID, p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			flash.Set(c, "danger", "Task not found.")
		} else {
			log.Printf("failed to update task %d: %v", task.TaskID, err)
			flash.Set(c, "danger", "Error updating task. Please try again.")
		}
		c.Redirect(http.StatusSeeOther, "/tasks")
		return
	}

	// the flash holds one message, so a field warning takes the slot the
	// success notice would have used
	if len(warnings) > 0 {
		flash.Set(c, "warning", "Task updated. "+strings.Join(warnings, " "))
	} else {
		flash.Set(c, "success", "Task updated successfully!")
	}
	c.Redirect(http.StatusSeeOther, "/tasks")
}

// editTaskParams maps the submitted form onto a partial update. Fields that
// fail to parse are skipped and reported as warnings rather than failing the
// whole edit.
func editTaskParams(req EditTaskRequest, task *store.Task, manager bool, now time.Time) (store.UpdateTaskParams, []string) {
	var warnings []string

	p := store.UpdateTaskParams{}
	if req.Title != "" {
		p.Title = &req.Title
	}
	if req.Description != "" {
		p.Description = &req.Description
	}
	if req.Status != "" {
		p.Status = &req.Status
		p.CompletedAt = store.CompletionStamp(task.CompletedAt, req.Status, now)
	}
	if req.Priority != "" {
		p.Priority = &req.Priority
	}
	if req.Category != "" {
		p.Category = &req.Category
	}
	if req.Tags != "" {
		p.Tags = &req.Tags
	}
	// only managers reassign
	if manager && req.AssigneeID > 0 {
		p.AssigneeID = &req.AssigneeID
	}
	if req.DueDate != "" {
		if due, ok := parseDueDate(req.DueDate); ok {
			p.DueDate = due
		} else {
			warnings = append(warnings, "Invalid due date format, due date unchanged.")
		}
	}
	if h := parseHours(req.EstimatedHours); h != nil {
		p.EstimatedHours = h
	}
	if h := parseHours(req.ActualHours); h != nil {
		p.ActualHours = h
	}

	return p, warnings
}

func handleDeleteTask(c *gin.Context) {
	actor := authmw.CurrentUser(c)

	task, ok := fetchTask(c)
	if !ok {
		return
	}

	if d := authmw.Authorize(actor, authmw.ActionDeleteTask, task); !d.Allowed {
		flash.Set(c, "danger", "You do not have permission to delete this task.")
		c.Redirect(http.StatusSeeOther, "/tasks")
		return
	}

	if err := store.DeleteTask(c.Request.Context(), task.TaskID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			flash.Set(c, "danger", "Task not found.")
		} else {
			log.Printf("failed to delete task %d: %v", task.TaskID, err)
			flash.Set(c, "danger", "Error deleting task. Please try again.")
		}
		c.Redirect(http.StatusSeeOther, "/tasks")
		return
	}

	flash.Set(c, "success", "Task deleted successfully!")
	c.Redirect(http.StatusSeeOther, "/tasks")
}

// handleTaskDetail serves one task as JSON, gated by view permission.
func handleTaskDetail(c *gin.Context) {
	actor := authmw.CurrentUser(c)
	ctx := c.Request.Context()

	taskID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || taskID <= 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}

	task, err := store.GetTaskByID(ctx, taskID)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			log.Printf("failed to fetch task %d: %v", taskID, err)
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}

	if d := authmw.Authorize(actor, authmw.ActionViewTask, task); !d.Allowed {
		c.JSON(http.StatusForbidden, gin.H{"error": d.Reason})
		return
	}

	users, err := store.ListUsers(ctx, false)
	if err != nil {
		log.Printf("failed to list users: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}

	c.JSON(http.StatusOK, taskVM(*task, store.UsersByID(users), time.Now().UTC()))
}

// fetchTask resolves the :id param. On failure it writes the response and
// returns ok=false.
func fetchTask(c *gin.Context) (*store.Task, bool) {
	taskID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || taskID <= 0 {
		flash.Set(c, "danger", "Task not found.")
		c.Redirect(http.StatusSeeOther, "/tasks")
		return nil, false
	}

	task, err := store.GetTaskByID(c.Request.Context(), taskID)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			log.Printf("failed to fetch task %d: %v", taskID, err)
		}
		flash.Set(c, "danger", "Task not found.")
		c.Redirect(http.StatusSeeOther, "/tasks")
		return nil, false
	}
	return task, true
}

func parseDueDate(s string) (*time.Time, bool) {
	if s == "" {
		return nil, true
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, false
	}
	return &t, true
}

func parseHours(s string) *float64 {
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}
