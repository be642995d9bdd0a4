package webapp

import (
	"errors"
	"log"
	"net/http"
	"time"

	"kyri56xcaesar/task-tracker/internal/authmw"
	"kyri56xcaesar/task-tracker/internal/flash"
	"kyri56xcaesar/task-tracker/internal/stats"
	"kyri56xcaesar/task-tracker/internal/store"
	"kyri56xcaesar/task-tracker/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

func handleIndex(c *gin.Context) {
	if _, err := c.Cookie(authmw.SessionCookie); err == nil {
		c.Redirect(http.StatusSeeOther, "/dashboard")
		return
	}
	c.Redirect(http.StatusSeeOther, "/login")
}

func handleLoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{"Flash": flash.Pop(c)})
}

func handleLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		flash.Set(c, "danger", "Invalid username or password.")
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	u, err := store.GetUserByUsername(c.Request.Context(), req.Username)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			log.Printf("login lookup failed: %v", err)
		}
		flash.Set(c, "danger", "Invalid username or password.")
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	// an inactive user may not authenticate even with the right credentials
	if !authmw.CheckPassword(u.PasswordHash, req.Password) || !u.IsActive {
		flash.Set(c, "danger", "Invalid username or password.")
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	token, err := sessionAuth.IssueToken(&u, time.Now())
	if err != nil {
		log.Printf("failed to issue session token: %v", err)
		flash.Set(c, "danger", "Something went wrong. Please try again.")
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	c.SetCookie(authmw.SessionCookie, token, config.SessionTTLMins*60, "/", "", false, true)
	flash.Set(c, "success", "Welcome back, "+u.Firstname+"!")
	c.Redirect(http.StatusSeeOther, "/dashboard")
}

func handleLogout(c *gin.Context) {
	c.SetCookie(authmw.SessionCookie, "", -1, "/", "", false, true)
	flash.Set(c, "info", "You have been logged out.")
	c.Redirect(http.StatusSeeOther, "/login")
}

func handleDashboard(c *gin.Context) {
	actor := authmw.CurrentUser(c)
	ctx := c.Request.Context()

	tasks, err := store.TasksInScope(ctx, actor.ID, actor.IsManager())
	if err != nil {
		log.Printf("failed to load dashboard tasks: %v", err)
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"error": "failed to load dashboard"})
		return
	}

	now := time.Now().UTC()
	vm := DashboardVM{
		Title: "Dashboard",
		User:  userVM(actor),
		Flash: flash.Pop(c),
		Stats: stats.Summarize(tasks, now),
	}

	users, err := store.ListUsers(ctx, false)
	if err != nil {
		log.Printf("failed to list users: %v", err)
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"error": "failed to load dashboard"})
		return
	}
	usersByID := store.UsersByID(users)

	if actor.IsManager() {
		vm.Team = stats.TeamPerformance(tasks, usersByID)
	}

	recent, err := store.RecentTasks(ctx, actor.ID, actor.IsManager(), 5)
	if err != nil {
		log.Printf("failed to load recent tasks: %v", err)
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"error": "failed to load dashboard"})
		return
	}
	vm.Recent = utils.Map(recent, func(t store.Task) TaskVM {
		return taskVM(t, usersByID, now)
	})

	respondInFormat(c, vm, "dashboard.html")
}

// handleDashboardStats backs the JSON widget refresh on the dashboard.
func handleDashboardStats(c *gin.Context) {
	actor := authmw.CurrentUser(c)

	tasks, err := store.TasksInScope(c.Request.Context(), actor.ID, actor.IsManager())
	if err != nil {
		log.Printf("failed to load stats: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}

	c.JSON(http.StatusOK, stats.Summarize(tasks, time.Now().UTC()))
}
