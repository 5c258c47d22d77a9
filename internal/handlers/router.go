package handlers

import (
	"github.com/LaBanHSPO/premium-bio-website/internal/services"

	"github.com/gin-gonic/gin"
)

func (h *Handler) SetupRouter(rateLimiter *services.IPRateLimiter) *gin.Engine {
	r := gin.Default()

	// Middleware
	if rateLimiter != nil {
		r.Use(h.RateLimitMiddleware(rateLimiter))
	}
	r.Use(CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy"})
	})

	// Public Routes
	r.GET("/api/config", h.GetConfig)
	r.GET("/api/qr", h.GetShareQR)
	r.POST("/api/admin/login", h.Login)

	// Protected Routes
	admin := r.Group("/api/admin")
	admin.Use(h.AuthRequired())
	{
		admin.POST("/logout", h.Logout)
		admin.POST("/update", h.UpdateConfig)
		admin.POST("/import", h.ImportConfig)
		admin.GET("/export", h.ExportConfig)
		admin.POST("/export", h.ExportConfig)
	}

	return r
}
