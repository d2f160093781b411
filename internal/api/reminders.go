package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studysync/studysync/internal/service"
	"github.com/studysync/studysync/internal/validate"
)

// ackRequest is the body of a reminder acknowledgement.
type ackRequest struct {
	Status any `json:"status"`
}

// ListReminders returns recent reminders, latest fire_at first
// GET /api/reminders
func (h *Handler) ListReminders(c *gin.Context) {
	items, err := h.svc.ListReminders(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// CreateReminder schedules a reminder
// POST /api/reminders
func (h *Handler) CreateReminder(c *gin.Context) {
	var in service.ReminderInput
	if !bindBody(c, &in) {
		return
	}
	r, err := h.svc.CreateReminder(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"item": r})
}

// DueReminders returns scheduled reminders with fire_at <= now. An absent
// or unparseable now falls back to the server clock.
// GET /api/reminders/due?now=
func (h *Handler) DueReminders(c *gin.Context) {
	now, ok := validate.ParseInstant(c.Query("now"))
	if !ok {
		now = h.svc.Now()
	}
	items, err := h.svc.DueReminders(c.Request.Context(), now)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"now": now.UTC(), "items": items})
}

// AcknowledgeReminder moves a reminder to fired or cancelled.
// PUT /api/reminders/:id
func (h *Handler) AcknowledgeReminder(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req ackRequest
	if !bindBody(c, &req) {
		return
	}
	r, err := h.svc.AcknowledgeReminder(c.Request.Context(), id, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": r})
}
