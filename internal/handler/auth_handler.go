package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"planner-api/internal/auth"
	"planner-api/internal/middleware"
	"planner-api/internal/model"
	"planner-api/internal/store"
)

type registerRequest struct {
	Email     string  `json:"email" binding:"required,email"`
	Password  string  `json:"password" binding:"required"`
	Username  string  `json:"username" binding:"required"`
	FullName  string  `json:"full_name" binding:"required"`
	Phone     *string `json:"phone"`
	Gender    *string `json:"gender"`
	BirthDate *string `json:"birth_date"`
}

type tokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Register creates the account and then patches the profile with the
// optional fields, as two separate steps. A failed patch is reported but
// the account stays; the caller can finish the profile later.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email, password, username and full_name required"})
		return
	}
	if len(req.Password) < 8 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password too short"})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	u := &model.User{
		ID:           uuid.New().String(),
		Email:        req.Email,
		PasswordHash: hash,
	}
	if err := h.store.CreateUser(c.Request.Context(), u); err != nil {
		// unique violation = dup email, but don't reveal that
		c.JSON(http.StatusConflict, gin.H{"error": "registration failed"})
		return
	}
	if err := h.store.CreateProfile(c.Request.Context(), &model.Profile{
		ID: u.ID, Username: req.Username, Email: req.Email, FullName: req.FullName,
	}); err != nil {
		h.log.Errorw("profile create failed after signup", "user_id", u.ID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "profile setup failed"})
		return
	}

	if req.Phone != nil || req.Gender != nil || req.BirthDate != nil {
		patch := store.ProfilePatch{Phone: req.Phone, Gender: req.Gender, BirthDate: req.BirthDate}
		if err := h.store.UpdateProfile(c.Request.Context(), u.ID, patch); err != nil {
			// account already exists at this point; surfaced, not rolled back
			h.log.Errorw("profile patch failed after signup", "user_id", u.ID, "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "profile setup failed"})
			return
		}
	}

	pair, err := h.issueTokens(c, u.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user_id": u.ID, "access_token": pair.AccessToken, "refresh_token": pair.RefreshToken})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password required"})
		return
	}

	u, err := h.store.UserByEmail(c.Request.Context(), req.Email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	if !auth.CheckPassword(u.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	pair, err := h.issueTokens(c, u.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	// canonical profile rides along so the client never guesses
	profile, err := h.store.ProfileByID(c.Request.Context(), u.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id":       u.ID,
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
		"profile":       profile,
	})
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Refresh rotates the refresh token and mints a new access token. This is
// how a client re-syncs an existing session without credentials.
func (h *Handler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "refresh_token required"})
		return
	}

	rt, err := h.store.RefreshTokenByHash(c.Request.Context(), auth.HashRefreshToken(req.RefreshToken))
	if err != nil || rt.Revoked || time.Now().After(rt.ExpiresAt) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid session"})
		return
	}

	raw, hash, err := auth.GenerateRefreshToken()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	newID := uuid.New().String()
	if err := h.store.RotateRefreshToken(c.Request.Context(), rt.ID, newID, rt.UserID, hash, time.Now().Add(auth.RefreshTokenTTL)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	access, err := auth.MakeAccessToken(rt.UserID, h.secret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, tokenPair{AccessToken: access, RefreshToken: raw})
}

// Logout revokes every refresh token for the user, clearing the durable
// session marker on all devices.
func (h *Handler) Logout(c *gin.Context) {
	if err := h.store.RevokeAllRefreshTokens(c.Request.Context(), middleware.UserID(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) issueTokens(c *gin.Context, userID string) (*tokenPair, error) {
	access, err := auth.MakeAccessToken(userID, h.secret)
	if err != nil {
		return nil, err
	}
	raw, hash, err := auth.GenerateRefreshToken()
	if err != nil {
		return nil, err
	}
	if _, err := h.store.CreateRefreshToken(c.Request.Context(), userID, hash, time.Now().Add(auth.RefreshTokenTTL)); err != nil {
		return nil, err
	}
	return &tokenPair{AccessToken: access, RefreshToken: raw}, nil
}
