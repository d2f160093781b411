package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studysync/studysync/internal/service"
)

// ListTasks returns tasks in planner order
// GET /api/tasks?status=&q=&due_before=&due_after=
func (h *Handler) ListTasks(c *gin.Context) {
	var q service.TaskQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query"})
		return
	}
	tasks, err := h.svc.ListTasks(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": tasks})
}

// CreateTask creates a task
// POST /api/tasks
func (h *Handler) CreateTask(c *gin.Context) {
	var in service.TaskInput
	if !bindBody(c, &in) {
		return
	}
	task, err := h.svc.CreateTask(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"item": task})
}

// GetTask returns a task with its subtasks and linked notes.
// GET /api/tasks/:id
func (h *Handler) GetTask(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	detail, err := h.svc.GetTask(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// UpdateTask merges the given fields into a task
// PUT /api/tasks/:id
func (h *Handler) UpdateTask(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var in service.TaskInput
	if !bindBody(c, &in) {
		return
	}
	task, err := h.svc.UpdateTask(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": task})
}

// DeleteTask deletes a task with its subtasks and links
// DELETE /api/tasks/:id
func (h *Handler) DeleteTask(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteTask(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateSubtask adds a subtask to a task
// POST /api/tasks/:id/subtasks
func (h *Handler) CreateSubtask(c *gin.Context) {
	taskID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var in service.SubtaskInput
	if !bindBody(c, &in) {
		return
	}
	st, err := h.svc.CreateSubtask(c.Request.Context(), taskID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"item": st})
}

// UpdateSubtask merges the given fields into a subtask
// PUT /api/tasks/subtasks/:subtaskId
func (h *Handler) UpdateSubtask(c *gin.Context) {
	id, ok := paramID(c, "subtaskId")
	if !ok {
		return
	}
	var in service.SubtaskInput
	if !bindBody(c, &in) {
		return
	}
	st, err := h.svc.UpdateSubtask(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": st})
}

// DeleteSubtask deletes a subtask
// DELETE /api/tasks/subtasks/:subtaskId
func (h *Handler) DeleteSubtask(c *gin.Context) {
	id, ok := paramID(c, "subtaskId")
	if !ok {
		return
	}
	if err := h.svc.DeleteSubtask(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// LinkNote attaches a note to a task. Linking twice is a no-op.
// POST /api/tasks/:id/notes/:noteId
func (h *Handler) LinkNote(c *gin.Context) {
	taskID, ok := paramID(c, "id")
	if !ok {
		return
	}
	noteID, ok := paramID(c, "noteId")
	if !ok {
		return
	}
	if err := h.svc.LinkTaskNote(c.Request.Context(), taskID, noteID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UnlinkNote detaches a note from a task
// DELETE /api/tasks/:id/notes/:noteId
func (h *Handler) UnlinkNote(c *gin.Context) {
	taskID, ok := paramID(c, "id")
	if !ok {
		return
	}
	noteID, ok := paramID(c, "noteId")
	if !ok {
		return
	}
	if err := h.svc.UnlinkTaskNote(c.Request.Context(), taskID, noteID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
