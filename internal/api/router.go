// Package api is the HTTP transport: a thin mapping from routes to domain
// operations, with the error taxonomy mapped onto status codes.
package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studysync/studysync/internal/analytics"
	"github.com/studysync/studysync/internal/notify"
	"github.com/studysync/studysync/internal/service"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps are the collaborators the routes dispatch to. Outbox may be nil,
// in which case the notifications route is not registered.
type Deps struct {
	Service   *service.Service
	Analytics *analytics.Engine
	Health    Pinger
	Outbox    *notify.Outbox
}

// Handler holds the route handlers.
type Handler struct {
	svc       *service.Service
	analytics *analytics.Engine
	health    Pinger
	outbox    *notify.Outbox
}

// NewHandler creates a Handler from deps.
func NewHandler(deps Deps) *Handler {
	return &Handler{
		svc:       deps.Service,
		analytics: deps.Analytics,
		health:    deps.Health,
		outbox:    deps.Outbox,
	}
}

// NewRouter builds the gin engine with every route registered. mode is a
// gin mode ("debug", "release", "test"); empty keeps the current mode.
func NewRouter(deps Deps, mode string) *gin.Engine {
	if mode != "" {
		gin.SetMode(mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), allowOrigin())
	SetupRoutes(r, NewHandler(deps))
	return r
}

// SetupRoutes registers every route on r.
func SetupRoutes(r *gin.Engine, h *Handler) {
	r.GET("/health", h.Health)

	api := r.Group("/api")
	{
		tasks := api.Group("/tasks")
		{
			tasks.GET("", h.ListTasks)
			tasks.POST("", h.CreateTask)
			tasks.GET("/:id", h.GetTask)
			tasks.PUT("/:id", h.UpdateTask)
			tasks.DELETE("/:id", h.DeleteTask)
			tasks.POST("/:id/subtasks", h.CreateSubtask)
			tasks.PUT("/subtasks/:subtaskId", h.UpdateSubtask)
			tasks.DELETE("/subtasks/:subtaskId", h.DeleteSubtask)
			tasks.POST("/:id/notes/:noteId", h.LinkNote)
			tasks.DELETE("/:id/notes/:noteId", h.UnlinkNote)
		}

		notes := api.Group("/notes")
		{
			notes.GET("", h.ListNotes)
			notes.POST("", h.CreateNote)
			notes.GET("/:id", h.GetNote)
			notes.PUT("/:id", h.UpdateNote)
			notes.DELETE("/:id", h.DeleteNote)
		}

		reflections := api.Group("/reflections")
		{
			reflections.GET("", h.ListReflections)
			reflections.GET("/summary", h.ReflectionSummary)
			reflections.GET("/:day", h.GetReflection)
			reflections.PUT("/:day", h.UpsertReflection)
		}

		reminders := api.Group("/reminders")
		{
			reminders.GET("", h.ListReminders)
			reminders.POST("", h.CreateReminder)
			reminders.GET("/due", h.DueReminders)
			reminders.PUT("/:id", h.AcknowledgeReminder)
		}

		api.GET("/analytics/dashboard", h.Dashboard)

		if h.outbox != nil {
			api.GET("/notifications", h.DrainNotifications)
		}
	}
}

// allowOrigin reflects the request origin so the browser client can call
// the API from its dev server.
func allowOrigin() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin == "" {
			c.Next()
			return
		}
		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", origin)
		h.Add("Vary", "Origin")
		h.Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
