package services

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/LaBanHSPO/premium-bio-website/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCache(t *testing.T) (*ConfigCache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	return NewConfigCache(rdb, logger), mr
}

func sampleDocument() *models.BioData {
	return &models.BioData{
		Profile: models.BioProfile{
			Name:       "Jane",
			Tagline:    "Creator",
			Avatar:     "https://cdn.example.com/avatar.png",
			CoverImage: "https://cdn.example.com/cover.png",
			SocialLinks: []models.SocialLinkItem{
				{Name: "Instagram", URL: "https://instagram.com/jane", Icon: "instagram"},
			},
		},
		Links: []models.LinkItem{
			{ID: 1, Name: "Blog", URL: "https://blog.example.com", Description: "My blog", BackgroundImage: "https://cdn.example.com/bg.png"},
		},
		Products: []models.ProductItem{},
		AITools:  []models.ToolItem{},
	}
}

func TestConfigCache(t *testing.T) {
	ctx := context.Background()

	t.Run("Miss returns nil without error", func(t *testing.T) {
		cache, _ := setupCache(t)
		doc, err := cache.Get(ctx, "nobody")
		assert.NoError(t, err)
		assert.Nil(t, doc)
	})

	t.Run("Set then Get round-trips", func(t *testing.T) {
		cache, mr := setupCache(t)
		require.NoError(t, cache.Set(ctx, "jane", sampleDocument(), DefaultCacheTTL))

		assert.True(t, mr.Exists("profile:jane"))

		doc, err := cache.Get(ctx, "jane")
		require.NoError(t, err)
		assert.Equal(t, sampleDocument(), doc)
	})

	t.Run("Set overwrites prior entry", func(t *testing.T) {
		cache, _ := setupCache(t)
		require.NoError(t, cache.Set(ctx, "jane", sampleDocument(), DefaultCacheTTL))

		updated := sampleDocument()
		updated.Profile.Name = "Jane II"
		require.NoError(t, cache.Set(ctx, "jane", updated, DefaultCacheTTL))

		doc, err := cache.Get(ctx, "jane")
		require.NoError(t, err)
		assert.Equal(t, "Jane II", doc.Profile.Name)
	})

	t.Run("Entry expires after TTL", func(t *testing.T) {
		cache, mr := setupCache(t)
		require.NoError(t, cache.Set(ctx, "jane", sampleDocument(), time.Hour))

		mr.FastForward(time.Hour + time.Second)

		doc, err := cache.Get(ctx, "jane")
		assert.NoError(t, err)
		assert.Nil(t, doc)
	})

	t.Run("Invalidate deletes the entry", func(t *testing.T) {
		cache, mr := setupCache(t)
		require.NoError(t, cache.Set(ctx, "jane", sampleDocument(), DefaultCacheTTL))
		require.NoError(t, cache.Invalidate(ctx, "jane"))

		assert.False(t, mr.Exists("profile:jane"))

		doc, err := cache.Get(ctx, "jane")
		assert.NoError(t, err)
		assert.Nil(t, doc)
	})

	t.Run("InvalidateAll deletes nothing", func(t *testing.T) {
		cache, mr := setupCache(t)
		require.NoError(t, cache.Set(ctx, "jane", sampleDocument(), DefaultCacheTTL))
		cache.InvalidateAll()
		assert.True(t, mr.Exists("profile:jane"))
	})

	t.Run("Store failure surfaces as error", func(t *testing.T) {
		cache, mr := setupCache(t)
		mr.Close()

		_, err := cache.Get(ctx, "jane")
		assert.Error(t, err)
		assert.Error(t, cache.Set(ctx, "jane", sampleDocument(), DefaultCacheTTL))
		assert.Error(t, cache.Invalidate(ctx, "jane"))
	})
}
