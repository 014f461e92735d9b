package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"planner-api/internal/middleware"
	"planner-api/internal/service"
)

// Dashboard computes the summary block from the user's full schedule and
// reminder sets on every call; the collections are small and unpaginated.
func (h *Handler) Dashboard(c *gin.Context) {
	uid := middleware.UserID(c)
	ctx := c.Request.Context()

	schedules, err := h.store.ListSchedules(ctx, uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	reminders, err := h.store.ListReminders(ctx, uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	today := time.Now().Format("2006-01-02")
	c.JSON(http.StatusOK, service.BuildDashboard(schedules, reminders, today))
}

func (h *Handler) ListReminders(c *gin.Context) {
	reminders, err := h.store.ListReminders(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reminders": reminders})
}
