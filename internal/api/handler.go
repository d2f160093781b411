package api

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studysync/studysync/internal/apperr"
	"github.com/studysync/studysync/internal/validate"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// respondError writes err as {"error": message} with the status its class
// maps to. Internal faults are logged and reported generically.
func respondError(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.Printf("[api] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(status, gin.H{"error": "Internal error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// bindBody decodes an optional JSON body into dst. An empty body leaves
// dst untouched.
func bindBody(c *gin.Context, dst any) bool {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return false
	}
	return true
}

// paramID parses a positive integer path parameter.
func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := validate.RequireID(c.Param(name), name)
	if err != nil {
		respondError(c, err)
		return 0, false
	}
	return id, true
}

// Health reports liveness and store reachability.
// GET /health
func (h *Handler) Health(c *gin.Context) {
	if h.health != nil {
		if err := h.health.Ping(c.Request.Context()); err != nil {
			log.Printf("[api] health check: %v", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "error": "store unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Dashboard returns overdue, due-soon and in-progress tasks.
// GET /api/analytics/dashboard?now=
func (h *Handler) Dashboard(c *gin.Context) {
	now, ok := validate.ParseInstant(c.Query("now"))
	if !ok {
		now = h.svc.Now()
	}
	dash, err := h.analytics.Dashboard(c.Request.Context(), now)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dash)
}

// DrainNotifications returns and clears the browser notification outbox.
// GET /api/notifications
func (h *Handler) DrainNotifications(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"items": h.outbox.Drain()})
}
