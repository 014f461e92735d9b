package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"planner-api/internal/middleware"
	"planner-api/internal/store"
)

type Handler struct {
	store  *store.Store
	secret string
	log    *zap.SugaredLogger
}

func New(st *store.Store, secret string, log *zap.SugaredLogger) *Handler {
	return &Handler{store: st, secret: secret, log: log}
}

// Routes mounts the API. Only register and login sit behind the limiter;
// everything under /me, /schedules, /reminders and /dashboard requires a
// session token.
func (h *Handler) Routes(r *gin.Engine, rl *middleware.RateLimiter) {
	v1 := r.Group("/api/v1")

	authGroup := v1.Group("/auth")
	authGroup.POST("/register", middleware.RateLimit(rl), h.Register)
	authGroup.POST("/login", middleware.RateLimit(rl), h.Login)
	authGroup.POST("/refresh", h.Refresh)

	authed := v1.Group("", middleware.Auth(h.secret))
	authed.POST("/auth/logout", h.Logout)
	authed.GET("/me/profile", h.GetProfile)
	authed.PUT("/me/profile", h.UpdateProfile)

	authed.GET("/schedules", h.ListSchedules)
	authed.POST("/schedules", h.CreateSchedule)
	authed.GET("/schedules/:id", h.GetSchedule)
	authed.PUT("/schedules/:id", h.UpdateSchedule)
	authed.PATCH("/schedules/:id/status", h.ChangeScheduleStatus)
	authed.DELETE("/schedules/:id", h.DeleteSchedule)

	authed.GET("/reminders", h.ListReminders)
	authed.GET("/dashboard", h.Dashboard)
}
