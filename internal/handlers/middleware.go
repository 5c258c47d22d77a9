package handlers

import (
	"net/http"
	"strings"

	"github.com/LaBanHSPO/premium-bio-website/internal/services"

	"github.com/gin-gonic/gin"
)

// sessionContextKey is where AuthRequired stores the verified session
// for downstream handlers.
const sessionContextKey = "session"

// CORSMiddleware appends the CORS headers to every response and
// short-circuits preflight requests with no body.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// AuthRequired gates admin routes on a valid bearer session. The login
// route is registered outside the gated group and never passes through
// here.
func (h *Handler) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No token provided"})
			return
		}

		session, err := h.sessions.Verify(c.Request.Context(), token)
		if err != nil {
			h.logger.Error("Session lookup failed", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		if session == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(sessionContextKey, session)
		c.Next()
	}
}

// RateLimitMiddleware applies the router-wide per-IP token bucket.
func (h *Handler) RateLimitMiddleware(limiter *services.IPRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		l := limiter.GetLimiter(ip)
		if !l.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded. Please try again later.",
			})
			return
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	return strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
}

// sessionFromContext returns the session attached by AuthRequired, or
// nil on unauthenticated routes.
func sessionFromContext(c *gin.Context) *services.SessionData {
	val, ok := c.Get(sessionContextKey)
	if !ok {
		return nil
	}
	session, _ := val.(*services.SessionData)
	return session
}
