package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studysync/studysync/internal/service"
)

// ListNotes returns notes, most recently updated first
// GET /api/notes?q=&tag=
func (h *Handler) ListNotes(c *gin.Context) {
	var q service.NoteQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query"})
		return
	}
	notes, err := h.svc.ListNotes(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": notes})
}

// CreateNote creates a note
// POST /api/notes
func (h *Handler) CreateNote(c *gin.Context) {
	var in service.NoteInput
	if !bindBody(c, &in) {
		return
	}
	note, err := h.svc.CreateNote(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"item": note})
}

// GetNote returns a note with the tasks it is linked to.
// GET /api/notes/:id
func (h *Handler) GetNote(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	detail, err := h.svc.GetNote(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// UpdateNote merges the given fields into a note
// PUT /api/notes/:id
func (h *Handler) UpdateNote(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var in service.NoteInput
	if !bindBody(c, &in) {
		return
	}
	note, err := h.svc.UpdateNote(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": note})
}

// DeleteNote deletes a note
// DELETE /api/notes/:id
func (h *Handler) DeleteNote(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteNote(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
