package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/LaBanHSPO/premium-bio-website/internal/apperror"
	"github.com/LaBanHSPO/premium-bio-website/internal/config"
	"github.com/LaBanHSPO/premium-bio-website/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	cfg            config.Config
	logger         *slog.Logger
	db             *gorm.DB
	profileService *services.ProfileService
	sessions       *services.SessionStore
	loginLimiter   *services.LoginRateLimiter
	auditService   *services.AuditService
}

func NewHandler(
	cfg config.Config,
	logger *slog.Logger,
	db *gorm.DB,
	profileService *services.ProfileService,
	sessions *services.SessionStore,
	loginLimiter *services.LoginRateLimiter,
	auditService *services.AuditService,
) *Handler {
	return &Handler{
		cfg:            cfg,
		logger:         logger,
		db:             db,
		profileService: profileService,
		sessions:       sessions,
		loginLimiter:   loginLimiter,
		auditService:   auditService,
	}
}

// respondError maps a domain error onto the wire shape
// {"error": ..., "details"?: [...], "resetAt"?: ...}. Internal causes are
// logged server-side and never reach the client.
func (h *Handler) respondError(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		appErr = apperror.NewInternal(err)
	}

	if appErr.Code == http.StatusInternalServerError {
		h.logger.Error("Request failed", "path", c.Request.URL.Path, "error", err)
	}

	body := gin.H{"error": appErr.Message}
	if len(appErr.Details) > 0 {
		body["details"] = appErr.Details
	}
	if appErr.ResetAt != nil {
		body["resetAt"] = appErr.ResetAt.UTC().Format(time.RFC3339)
	}

	c.JSON(appErr.Code, body)
}
