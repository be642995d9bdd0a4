package webapp

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"kyri56xcaesar/task-tracker/internal/authmw"
	"kyri56xcaesar/task-tracker/internal/flash"
	"kyri56xcaesar/task-tracker/internal/provision"
	"kyri56xcaesar/task-tracker/internal/stats"
	"kyri56xcaesar/task-tracker/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

func handleAnalytics(c *gin.Context) {
	actor := authmw.CurrentUser(c)
	ctx := c.Request.Context()

	// manager scope: every task
	tasks, err := store.TasksInScope(ctx, actor.ID, true)
	if err != nil {
		log.Printf("failed to load analytics tasks: %v", err)
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"error": "failed to load analytics"})
		return
	}

	users, err := store.ListUsers(ctx, false)
	if err != nil {
		log.Printf("failed to list users: %v", err)
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"error": "failed to load analytics"})
		return
	}

	now := time.Now().UTC()
	vm := AnalyticsVM{
		Title:        "Analytics",
		User:         userVM(actor),
		Flash:        flash.Pop(c),
		Completion:   stats.CompletionSeries(tasks, now),
		ByPriority:   stats.CountByPriority(tasks),
		ByStatus:     stats.CountByStatus(tasks),
		Productivity: stats.Productivity(tasks, store.UsersByID(users)),
	}

	respondInFormat(c, vm, "analytics.html")
}

func handleAdminUsers(c *gin.Context) {
	actor := authmw.CurrentUser(c)

	users, err := store.ListUsers(c.Request.Context(), false)
	if err != nil {
		log.Printf("failed to list users: %v", err)
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"error": "failed to load users"})
		return
	}

	respondInFormat(c, AdminUsersVM{
		Title: "User Management",
		User:  userVM(actor),
		Flash: flash.Pop(c),
		Users: users,
	}, "admin_users.html")
}

func handleAdminAddUser(c *gin.Context) {
	var req AddUserRequest
	if err := c.ShouldBind(&req); err != nil {
		flash.Set(c, "danger", "All user fields are required.")
		c.Redirect(http.StatusSeeOther, "/admin/users")
		return
	}

	u, err := provision.CreateUser(c.Request.Context(), provision.Params{
		Username:   req.Username,
		Email:      req.Email,
		Password:   req.Password,
		Firstname:  req.Firstname,
		Lastname:   req.Lastname,
		Role:       req.Role,
		Department: req.Department,
	})
	if err != nil {
		switch {
		case errors.Is(err, provision.ErrDuplicateUsername):
			flash.Set(c, "danger", "Username already exists!")
		case errors.Is(err, provision.ErrDuplicateEmail):
			flash.Set(c, "danger", "Email already exists!")
		case errors.Is(err, provision.ErrWeakPassword):
			flash.Set(c, "danger", "Password must be at least 6 characters.")
		case errors.Is(err, provision.ErrMissingField), errors.Is(err, provision.ErrInvalidField):
			flash.Set(c, "danger", "Invalid user details. Please check the form.")
		default:
			log.Printf("failed to create user: %v", err)
			flash.Set(c, "danger", "Error creating user. Please try again.")
		}
		c.Redirect(http.StatusSeeOther, "/admin/users")
		return
	}

	flash.Set(c, "success", "User "+u.FullName()+" added successfully!")
	c.Redirect(http.StatusSeeOther, "/admin/users")
}

func handleAdminToggleUser(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || userID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false})
		return
	}

	active, err := store.ToggleUserActive(c.Request.Context(), userID)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			log.Printf("failed to toggle user %d: %v", userID, err)
		}
		c.JSON(http.StatusOK, gin.H{"success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "is_active": active})
}

func handleAdminResetPassword(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || userID <= 0 {
		flash.Set(c, "danger", "User not found.")
		c.Redirect(http.StatusSeeOther, "/admin/users")
		return
	}

	var req ResetPasswordRequest
	if err := c.ShouldBind(&req); err != nil {
		flash.Set(c, "danger", "Password must be at least 6 characters.")
		c.Redirect(http.StatusSeeOther, "/admin/users")
		return
	}

	user, err := store.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		flash.Set(c, "danger", "User not found.")
		c.Redirect(http.StatusSeeOther, "/admin/users")
		return
	}

	if err := provision.ResetPassword(c.Request.Context(), userID, req.NewPassword); err != nil {
		if errors.Is(err, provision.ErrWeakPassword) {
			flash.Set(c, "danger", "Password must be at least 6 characters.")
		} else {
			log.Printf("failed to reset password for user %d: %v", userID, err)
			flash.Set(c, "danger", "Error updating password.")
		}
		c.Redirect(http.StatusSeeOther, "/admin/users")
		return
	}

	flash.Set(c, "success", "Password updated for "+user.FullName())
	c.Redirect(http.StatusSeeOther, "/admin/users")
}
