package handlers

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/LaBanHSPO/premium-bio-website/internal/config"
	"github.com/LaBanHSPO/premium-bio-website/internal/models"
	"github.com/LaBanHSPO/premium-bio-website/internal/repository"
	"github.com/LaBanHSPO/premium-bio-website/internal/services"
	"github.com/LaBanHSPO/premium-bio-website/pkg/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestHandler(t *testing.T) (*Handler, *gorm.DB, *miniredis.Miniredis) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// One connection only: each sqlite :memory: connection is a separate
	// database and the profile reads fan out across goroutines.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, repository.AutoMigrateSchema(db))

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	cfg := config.Config{
		AppEnv:    "test",
		Domain:    "default",
		PublicURL: "https://bio.example.com",
	}

	cache := services.NewConfigCache(rdb, logger)
	profileService := services.NewProfileService(db, cache, logger)
	sessions := services.NewSessionStore(rdb)
	loginLimiter := services.NewLoginRateLimiter(rdb)
	audit := services.NewAuditService(db, logger)

	h := NewHandler(cfg, logger, db, profileService, sessions, loginLimiter, audit)
	return h, db, mr
}

func setupTestRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return h.SetupRouter(nil)
}

func createAdminUser(t *testing.T, db *gorm.DB, username, password string) {
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.AdminUser{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
	}).Error)
}

func performJSON(r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func loginAs(t *testing.T, r *gin.Engine, username, password string) string {
	w := performJSON(r, "POST", "/api/admin/login", "", gin.H{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	token, _ := resp["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func testDocument() map[string]interface{} {
	return map[string]interface{}{
		"profile": map[string]interface{}{
			"name":       "Jane",
			"tagline":    "Creator",
			"avatar":     "https://cdn.example.com/avatar.png",
			"coverImage": "https://cdn.example.com/cover.png",
			"socialLinks": []map[string]interface{}{
				{"name": "Instagram", "url": "https://instagram.com/jane", "icon": "instagram"},
			},
		},
		"links": []map[string]interface{}{
			{"id": 7, "name": "Blog", "url": "https://blog.example.com", "description": "My blog", "backgroundImage": "https://cdn.example.com/bg.png"},
			{"id": 8, "name": "Newsletter", "url": "https://news.example.com", "description": "Notes", "backgroundImage": "https://cdn.example.com/bg2.png"},
		},
		"products": []map[string]interface{}{
			{"name": "Preset Pack", "image": "https://cdn.example.com/p.png", "price": "$19", "url": "https://shop.example.com/p"},
		},
		"aiTools": []map[string]interface{}{},
	}
}
