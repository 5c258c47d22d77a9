package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/LaBanHSPO/premium-bio-website/internal/apperror"
	"github.com/LaBanHSPO/premium-bio-website/internal/models"
	"github.com/LaBanHSPO/premium-bio-website/internal/services"

	"github.com/gin-gonic/gin"
)

// GetConfig serves the public profile document. Unknown usernames fall
// back to the static default document rather than a 404 so a fresh
// deployment still renders a page.
func (h *Handler) GetConfig(c *gin.Context) {
	username := c.DefaultQuery("username", h.cfg.Domain)

	doc, err := h.profileService.GetByUsername(c.Request.Context(), username)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if doc == nil {
		c.JSON(http.StatusOK, models.DefaultBioData())
		return
	}

	c.JSON(http.StatusOK, doc)
}

// GetShareQR renders a QR code pointing at the public bio page.
func (h *Handler) GetShareQR(c *gin.Context) {
	username := c.DefaultQuery("username", h.cfg.Domain)

	doc, err := h.profileService.GetByUsername(c.Request.Context(), username)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if doc == nil {
		h.respondError(c, apperror.NewNotFound("Profile not found"))
		return
	}

	size, err := strconv.Atoi(c.DefaultQuery("size", "256"))
	if err != nil || size < 64 || size > 1024 {
		size = 256
	}

	opts := services.QROptions{
		Content: strings.TrimRight(h.cfg.PublicURL, "/") + "/" + username,
		Size:    size,
		FgColor: c.DefaultQuery("fg", "#000000"),
		BgColor: c.DefaultQuery("bg", "#FFFFFF"),
	}

	if c.Query("format") == "svg" {
		svg, err := services.GenerateQRCodeSVG(opts)
		if err != nil {
			h.respondError(c, err)
			return
		}
		c.Data(http.StatusOK, "image/svg+xml", []byte(svg))
		return
	}

	data, err := services.GenerateQRCode(opts)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", data)
}
