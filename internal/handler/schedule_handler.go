package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"planner-api/internal/middleware"
	"planner-api/internal/model"
	"planner-api/internal/service"
	"planner-api/internal/store"
)

// ListSchedules returns the user's schedules newest-date-first, filtered by
// ?q= and ?status=, plus the status counts over the unfiltered list.
func (h *Handler) ListSchedules(c *gin.Context) {
	status := c.DefaultQuery("status", "all")
	if status != "all" && !model.Status(status).Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status filter"})
		return
	}

	list, err := h.store.ListSchedules(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	filtered := service.FilterSchedules(list, c.Query("q"), status)
	c.JSON(http.StatusOK, gin.H{
		"schedules": filtered,
		"counts":    service.CountByStatus(list),
	})
}

func (h *Handler) CreateSchedule(c *gin.Context) {
	var req service.ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if err := service.ValidateScheduleRequest(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sc := &model.Schedule{
		ID:        uuid.New().String(),
		UserID:    middleware.UserID(c),
		Title:     req.Title,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Location:  req.Location,
		Priority:  model.PriorityMedium,
		Status:    model.StatusPending,
	}
	if req.Priority != "" {
		sc.Priority = model.Priority(req.Priority)
	}
	if req.Status != "" {
		sc.Status = model.Status(req.Status)
	}

	if err := h.store.CreateSchedule(c.Request.Context(), sc); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusCreated, sc)
}

func (h *Handler) GetSchedule(c *gin.Context) {
	sc, err := h.store.GetSchedule(c.Request.Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		// foreign records look identical to missing ones
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, sc)
}

// UpdateSchedule is the edit form: the full field set is resubmitted.
func (h *Handler) UpdateSchedule(c *gin.Context) {
	var req service.ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if err := service.ValidateScheduleRequest(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Priority == "" || req.Status == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "priority and status required"})
		return
	}

	sc := &model.Schedule{
		ID:        c.Param("id"),
		UserID:    middleware.UserID(c),
		Title:     req.Title,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Location:  req.Location,
		Priority:  model.Priority(req.Priority),
		Status:    model.Status(req.Status),
	}
	if err := h.store.UpdateSchedule(c.Request.Context(), sc); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, sc)
}

type statusChangeRequest struct {
	Status string `json:"status" binding:"required"`
}

// ChangeScheduleStatus performs an explicit lifecycle action. Anything the
// transition table does not allow answers 409, including re-completing a
// completed schedule.
func (h *Handler) ChangeScheduleStatus(c *gin.Context) {
	var req statusChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status required"})
		return
	}
	next := model.Status(req.Status)
	if !next.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status"})
		return
	}

	uid := middleware.UserID(c)
	sc, err := h.store.GetSchedule(c.Request.Context(), c.Param("id"), uid)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	if err := service.Transition(sc.Status, next); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	if err := h.store.UpdateScheduleStatus(c.Request.Context(), sc.ID, uid, next); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	sc.Status = next
	c.JSON(http.StatusOK, sc)
}

// DeleteSchedule removes exactly one record, immediately. Confirmation is
// the client's concern.
func (h *Handler) DeleteSchedule(c *gin.Context) {
	err := h.store.DeleteSchedule(c.Request.Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.Status(http.StatusNoContent)
}
