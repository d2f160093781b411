package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studysync/studysync/internal/service"
)

// ListReflections returns reflections newest first, optionally bounded by
// from/to (YYYY-MM-DD, inclusive).
// GET /api/reflections?from=&to=
func (h *Handler) ListReflections(c *gin.Context) {
	items, err := h.svc.ListReflections(c.Request.Context(), c.Query("from"), c.Query("to"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// ReflectionSummary averages the last 7 days, or 30 with window=30.
// GET /api/reflections/summary?window=
func (h *Handler) ReflectionSummary(c *gin.Context) {
	window := 7
	if c.Query("window") == "30" {
		window = 30
	}
	summary, err := h.analytics.ReflectionSummary(c.Request.Context(), window)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GetReflection returns the reflection stored for one day.
// GET /api/reflections/:day
func (h *Handler) GetReflection(c *gin.Context) {
	r, err := h.svc.GetReflection(c.Request.Context(), c.Param("day"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": r})
}

// UpsertReflection writes the reflection for a day
// PUT /api/reflections/:day
func (h *Handler) UpsertReflection(c *gin.Context) {
	var in service.ReflectionInput
	if !bindBody(c, &in) {
		return
	}
	r, err := h.svc.UpsertReflection(c.Request.Context(), c.Param("day"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": r})
}
