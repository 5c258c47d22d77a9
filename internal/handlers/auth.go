package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/LaBanHSPO/premium-bio-website/internal/apperror"
	"github.com/LaBanHSPO/premium-bio-website/internal/models"
	"github.com/LaBanHSPO/premium-bio-website/internal/services"
	"github.com/LaBanHSPO/premium-bio-website/pkg/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// sessionExpirySeconds is reported to the client on login; it matches
// the session store's TTL.
const sessionExpirySeconds = 86400

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, apperror.NewBadRequest("Username and password required"))
		return
	}

	ctx := c.Request.Context()

	check, err := h.loginLimiter.CheckAndIncrement(ctx, req.Username, services.DefaultMaxAttempts)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !check.Allowed {
		h.respondError(c, apperror.NewRateLimited(*check.ResetAt))
		return
	}

	var user models.AdminUser
	if err := h.db.WithContext(ctx).Where("username = ?", req.Username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Same message as a wrong password: don't reveal which part
			// of the credentials failed.
			h.respondError(c, apperror.NewUnauthorized("Invalid credentials"))
			return
		}
		h.respondError(c, err)
		return
	}

	valid, err := utils.CheckPasswordHash(req.Password, user.PasswordHash)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !valid {
		h.respondError(c, apperror.NewUnauthorized("Invalid credentials"))
		return
	}

	token, err := h.sessions.Create(ctx, req.Username, services.DefaultSessionTTL)
	if err != nil {
		h.respondError(c, err)
		return
	}

	now := time.Now()
	if err := h.db.WithContext(ctx).Model(&user).Update("last_login", now).Error; err != nil {
		h.logger.Warn("Failed to update last login", "username", req.Username, "error", err)
	}

	if err := h.loginLimiter.Reset(ctx, req.Username); err != nil {
		h.logger.Warn("Failed to reset login attempt counter", "username", req.Username, "error", err)
	}

	h.auditService.LogAction(req.Username, "LOGIN", nil, c.ClientIP())

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"token":     token,
		"username":  req.Username,
		"expiresIn": sessionExpirySeconds,
	})
}

func (h *Handler) Logout(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		h.respondError(c, apperror.NewBadRequest("No token provided"))
		return
	}

	if err := h.sessions.Destroy(c.Request.Context(), token); err != nil {
		h.respondError(c, err)
		return
	}

	if session := sessionFromContext(c); session != nil {
		h.auditService.LogAction(session.Username, "LOGOUT", nil, c.ClientIP())
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logged out successfully",
	})
}
