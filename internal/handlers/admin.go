package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/LaBanHSPO/premium-bio-website/internal/apperror"
	"github.com/LaBanHSPO/premium-bio-website/internal/models"

	"github.com/gin-gonic/gin"
)

type configPayload struct {
	BioData *models.BioData `json:"bioData"`
}

// UpdateConfig replaces the stored profile document wholesale and
// invalidates its cache entry.
func (h *Handler) UpdateConfig(c *gin.Context) {
	var payload configPayload
	if err := c.ShouldBindJSON(&payload); err != nil || payload.BioData == nil {
		h.respondError(c, apperror.NewBadRequest("Bio data is required"))
		return
	}

	username := c.DefaultQuery("username", h.cfg.Domain)

	if err := h.profileService.UpdateProfile(c.Request.Context(), username, payload.BioData); err != nil {
		h.respondError(c, err)
		return
	}

	if session := sessionFromContext(c); session != nil {
		h.auditService.LogAction(session.Username, "UPDATE_CONFIG", gin.H{"username": username}, c.ClientIP())
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Configuration updated successfully",
	})
}

// ImportConfig is the same write path as UpdateConfig fed from an
// uploaded export file; validation errors come back itemized.
func (h *Handler) ImportConfig(c *gin.Context) {
	var payload configPayload
	if err := c.ShouldBindJSON(&payload); err != nil || payload.BioData == nil {
		h.respondError(c, apperror.NewBadRequest("Bio data is required for import"))
		return
	}

	username := c.DefaultQuery("username", h.cfg.Domain)

	if err := h.profileService.UpdateProfile(c.Request.Context(), username, payload.BioData); err != nil {
		h.respondError(c, err)
		return
	}

	if session := sessionFromContext(c); session != nil {
		h.auditService.LogAction(session.Username, "IMPORT_CONFIG", gin.H{"username": username}, c.ClientIP())
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Bio data imported successfully",
	})
}

// ExportConfig returns the document as a downloadable JSON file.
func (h *Handler) ExportConfig(c *gin.Context) {
	username := c.DefaultQuery("username", h.cfg.Domain)

	doc, err := h.profileService.GetByUsername(c.Request.Context(), username)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if doc == nil {
		h.respondError(c, apperror.NewNotFound("No data found to export"))
		return
	}

	if session := sessionFromContext(c); session != nil {
		h.auditService.LogAction(session.Username, "EXPORT_CONFIG", gin.H{"username": username}, c.ClientIP())
	}

	filename := fmt.Sprintf("bio-data-export-%s.json", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.IndentedJSON(http.StatusOK, doc)
}
