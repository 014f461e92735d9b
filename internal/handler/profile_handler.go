package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"planner-api/internal/middleware"
	"planner-api/internal/store"
)

func (h *Handler) GetProfile(c *gin.Context) {
	p, err := h.store.ProfileByID(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}
	c.JSON(http.StatusOK, p)
}

type profileUpdateRequest struct {
	Username  *string `json:"username"`
	FullName  *string `json:"full_name"`
	Phone     *string `json:"phone"`
	Gender    *string `json:"gender"`
	BirthDate *string `json:"birth_date"`
}

// UpdateProfile patches only the provided fields, then re-reads the
// canonical row so the response cannot drift from what was stored.
func (h *Handler) UpdateProfile(c *gin.Context) {
	var req profileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	uid := middleware.UserID(c)
	patch := store.ProfilePatch{
		Username:  req.Username,
		FullName:  req.FullName,
		Phone:     req.Phone,
		Gender:    req.Gender,
		BirthDate: req.BirthDate,
	}
	if err := h.store.UpdateProfile(c.Request.Context(), uid, patch); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}

	p, err := h.store.ProfileByID(c.Request.Context(), uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, p)
}
