// Package webapp wires the HTTP surface of the task tracker: session login,
// role-scoped dashboards and task views, manager analytics and user admin.
package webapp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"kyri56xcaesar/task-tracker/internal/authmw"
	"kyri56xcaesar/task-tracker/internal/store"
	"kyri56xcaesar/task-tracker/internal/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const templatesPath = "./internal/webapp/web/templates"

var (
	config      Config
	engine      *gin.Engine
	sessionAuth *authmw.SessionAuth
)

func setCors() {
	corsconfig := cors.DefaultConfig()
	corsconfig.AllowOrigins = config.AllowedOrigins
	corsconfig.AllowMethods = config.AllowedMethods
	corsconfig.AllowHeaders = config.AllowedHeaders
	engine.Use(cors.New(corsconfig))
}

func setTemplateEngine() {
	funcMap := template.FuncMap{
		"add": func(a, b any) float64 {
			return utils.ToFloat64(a) + utils.ToFloat64(b)
		},
		"sub": func(a, b any) float64 {
			return utils.ToFloat64(a) - utils.ToFloat64(b)
		},
		"mul": func(a, b any) float64 {
			return utils.ToFloat64(a) * utils.ToFloat64(b)
		},
		"div": func(a, b any) float64 {
			if utils.ToFloat64(b) == 0 {
				return 0
			}

			return utils.ToFloat64(a) / utils.ToFloat64(b)
		},
		"toJSON": func(v any) string {
			b, err := json.Marshal(v)
			if err != nil {
				return "{}"
			}
			return template.HTMLEscapeString(string(b))
		},
		"lower":         strings.ToLower,
		"ago":           utils.Ago,
		"fmtHours":      fmtHours,
		"statusBadge":   statusBadgeClass,
		"priorityBadge": priorityBadgeClass,
	}
	engine.SetHTMLTemplate(template.Must(template.New("").Funcs(funcMap).ParseGlob(templatesPath + "/*.html")))
}

func setRoutes() {
	root := engine.Group("/")
	{
		root.GET("/healthz", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "alive"})
		})
		root.GET("/", handleIndex)
		root.GET("/login", handleLoginPage)
		root.POST("/login", handleLogin)
		root.GET("/logout", handleLogout)
	}

	authed := engine.Group("/")
	authed.Use(sessionAuth.RequireUser())
	{
		authed.GET("/dashboard", handleDashboard)

		authed.GET("/tasks", handleTasks)
		authed.GET("/tasks/create", handleCreateTaskPage)
		authed.POST("/tasks/create", handleCreateTask)
		authed.GET("/tasks/:id/edit", handleEditTaskPage)
		authed.POST("/tasks/:id/edit", handleEditTask)
		authed.POST("/tasks/:id/delete", handleDeleteTask)

		authed.GET("/api/dashboard-stats", handleDashboardStats)
		authed.GET("/api/tasks/:id", handleTaskDetail)
	}

	admin := engine.Group("/")
	admin.Use(sessionAuth.RequireUser(), sessionAuth.RequireManager())
	{
		admin.GET("/analytics", handleAnalytics)
		admin.GET("/admin/users", handleAdminUsers)
		admin.POST("/admin/add-user", handleAdminAddUser)
		admin.POST("/admin/toggle-user/:id", handleAdminToggleUser)
		admin.POST("/admin/reset-password/:id", handleAdminResetPassword)
	}

	engine.NoRoute(func(c *gin.Context) {
		c.HTML(http.StatusNotFound, "error.html", gin.H{"error": "bad path"})
	})
}

func InitAndServe(confPath string) {
	config = loadConfig(confPath)

	engine = gin.Default()
	setGinMode(config.ApiGinMode)

	sessionAuth = authmw.NewSessionAuth(
		[]byte(config.SessionSecret),
		time.Duration(config.SessionTTLMins)*time.Minute,
	)

	setCors()
	setTemplateEngine()
	setRoutes()

	store.MustConnect(context.Background(), config.storeConfig())

	if config.DemoData {
		seedDemoData(context.Background())
	}

	// serve http
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", config.Port),
		Handler:           engine,
		ReadHeaderTimeout: time.Second * 5,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	<-ctx.Done()

	stop()
	log.Println("shutting down gracefully, press Ctrl+C again to force")

	// close db conn
	store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown: ", err)
	}

	log.Println("Server exiting")
}

func setGinMode(mode string) {
	switch strings.ToLower(mode) {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "envgin":
		gin.SetMode(gin.EnvGinMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
}

func respondInFormat(c *gin.Context, data any, templateName string) {
	format := c.DefaultQuery("format", "html")

	switch strings.ToLower(format) {
	case "json":
		c.JSON(http.StatusOK, data)

	case "html":
		if templateName == "" {
			c.JSON(http.StatusNotAcceptable, gin.H{"error": "HTML format not supported for this endpoint"})
			return
		}
		c.HTML(http.StatusOK, templateName, data)

	default:
		c.JSON(http.StatusOK, data)
	}
}
