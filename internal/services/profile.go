package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/LaBanHSPO/premium-bio-website/internal/apperror"
	"github.com/LaBanHSPO/premium-bio-website/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProfileService owns the relational representation of a profile and the
// assembly into the denormalized document. Reads go through the cache;
// writes replace all four child collections in one transaction and
// invalidate the cache entry last.
type ProfileService struct {
	db     *gorm.DB
	cache  DocumentCache
	logger *slog.Logger
}

func NewProfileService(db *gorm.DB, cache DocumentCache, logger *slog.Logger) *ProfileService {
	return &ProfileService{
		db:     db,
		cache:  cache,
		logger: logger,
	}
}

// GetByUsername returns the assembled document for a username, or nil
// when no profile row exists (callers fall back to a static default).
// Cache failures degrade to a database read.
func (s *ProfileService) GetByUsername(ctx context.Context, username string) (*models.BioData, error) {
	cached, err := s.cache.Get(ctx, username)
	if err != nil {
		s.logger.Warn("Config cache read failed, falling back to database", "username", username, "error", err)
	} else if cached != nil {
		return cached, nil
	}

	var profile models.Profile
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("loading profile: %w", err)
	}

	// The four child collections are independent; load them concurrently
	// and join before assembly.
	var (
		socials  []models.SocialLink
		links    []models.BioLink
		products []models.Product
		tools    []models.CarouselItem
	)

	loads := []struct {
		name string
		fn   func() error
	}{
		{"social_links", func() error { return s.loadChildren(ctx, profile.ID, &socials) }},
		{"bio_links", func() error { return s.loadChildren(ctx, profile.ID, &links) }},
		{"products", func() error { return s.loadChildren(ctx, profile.ID, &products) }},
		{"carousel_items", func() error { return s.loadChildren(ctx, profile.ID, &tools) }},
	}

	var wg sync.WaitGroup
	errs := make([]error, len(loads))
	for idx, load := range loads {
		wg.Add(1)
		go func(idx int, name string, fn func() error) {
			defer wg.Done()
			if err := fn(); err != nil {
				errs[idx] = fmt.Errorf("loading %s: %w", name, err)
			}
		}(idx, load.name, load.fn)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	doc := assembleDocument(&profile, socials, links, products, tools)

	if err := s.cache.Set(ctx, username, doc, DefaultCacheTTL); err != nil {
		s.logger.Warn("Config cache write failed", "username", username, "error", err)
	}

	return doc, nil
}

func (s *ProfileService) loadChildren(ctx context.Context, profileID string, dest interface{}) error {
	return s.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Order("order_index asc").
		Find(dest).Error
}

// UpdateProfile validates the document, upserts the core row and
// replaces all child rows in a single transaction, then invalidates the
// cache entry. Nothing is written when validation fails. Concurrent
// updates for the same username are last-writer-wins; there is no
// optimistic lock.
func (s *ProfileService) UpdateProfile(ctx context.Context, username string, doc *models.BioData) error {
	if details := doc.Validate(); details != nil {
		return apperror.NewValidation(details)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var profile models.Profile
		err := tx.Where("username = ?", username).First(&profile).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			profile = models.Profile{
				ID:          uuid.NewString(),
				Username:    username,
				DisplayName: doc.Profile.Name,
				Tagline:     optionalText(doc.Profile.Tagline),
				AvatarURL:   optionalText(doc.Profile.Avatar),
				CoverURL:    optionalText(doc.Profile.CoverImage),
				CreatedAt:   time.Now(),
				UpdatedAt:   time.Now(),
			}
			if err := tx.Create(&profile).Error; err != nil {
				return fmt.Errorf("creating profile: %w", err)
			}
		case err != nil:
			return fmt.Errorf("loading profile: %w", err)
		default:
			profile.DisplayName = doc.Profile.Name
			profile.Tagline = optionalText(doc.Profile.Tagline)
			profile.AvatarURL = optionalText(doc.Profile.Avatar)
			profile.CoverURL = optionalText(doc.Profile.CoverImage)
			profile.UpdatedAt = time.Now()
			if err := tx.Save(&profile).Error; err != nil {
				return fmt.Errorf("updating profile: %w", err)
			}
		}

		// Replace all four child collections as a unit. Deletes must land
		// before the inserts within the same transaction.
		for _, model := range []interface{}{
			&models.SocialLink{}, &models.BioLink{}, &models.Product{}, &models.CarouselItem{},
		} {
			if err := tx.Where("profile_id = ?", profile.ID).Delete(model).Error; err != nil {
				return fmt.Errorf("clearing children: %w", err)
			}
		}

		if len(doc.Profile.SocialLinks) > 0 {
			rows := make([]models.SocialLink, len(doc.Profile.SocialLinks))
			for i, sl := range doc.Profile.SocialLinks {
				rows[i] = models.SocialLink{
					ID:         uuid.NewString(),
					ProfileID:  profile.ID,
					Platform:   sl.Name,
					URL:        sl.URL,
					Icon:       optionalText(sl.Icon),
					OrderIndex: i,
				}
			}
			if err := tx.Create(&rows).Error; err != nil {
				return fmt.Errorf("inserting social links: %w", err)
			}
		}

		if len(doc.Links) > 0 {
			rows := make([]models.BioLink, len(doc.Links))
			for i, l := range doc.Links {
				rows[i] = models.BioLink{
					ID:              uuid.NewString(),
					ProfileID:       profile.ID,
					Name:            l.Name,
					URL:             l.URL,
					Description:     optionalText(l.Description),
					BackgroundImage: optionalText(l.BackgroundImage),
					OrderIndex:      i,
				}
			}
			if err := tx.Create(&rows).Error; err != nil {
				return fmt.Errorf("inserting bio links: %w", err)
			}
		}

		if len(doc.Products) > 0 {
			rows := make([]models.Product, len(doc.Products))
			for i, p := range doc.Products {
				rows[i] = models.Product{
					ID:         uuid.NewString(),
					ProfileID:  profile.ID,
					Name:       p.Name,
					ImageURL:   optionalText(p.Image),
					Price:      p.Price,
					URL:        p.URL,
					OrderIndex: i,
				}
			}
			if err := tx.Create(&rows).Error; err != nil {
				return fmt.Errorf("inserting products: %w", err)
			}
		}

		if len(doc.AITools) > 0 {
			rows := make([]models.CarouselItem, len(doc.AITools))
			for i, tool := range doc.AITools {
				rows[i] = models.CarouselItem{
					ID:         uuid.NewString(),
					ProfileID:  profile.ID,
					Name:       tool.Name,
					LogoURL:    optionalText(tool.Logo),
					URL:        tool.URL,
					OrderIndex: i,
				}
			}
			if err := tx.Create(&rows).Error; err != nil {
				return fmt.Errorf("inserting carousel items: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	// Invalidation is the last step of every successful write so the
	// next read is guaranteed a miss.
	if err := s.cache.Invalidate(ctx, username); err != nil {
		return fmt.Errorf("invalidating cache: %w", err)
	}

	return nil
}

// assembleDocument maps rows to the external document shape: null
// optional text becomes the empty string and list items get 1-based
// sequential ids in display order.
func assembleDocument(
	profile *models.Profile,
	socials []models.SocialLink,
	links []models.BioLink,
	products []models.Product,
	tools []models.CarouselItem,
) *models.BioData {
	doc := &models.BioData{
		Profile: models.BioProfile{
			Name:        profile.DisplayName,
			Tagline:     textOrEmpty(profile.Tagline),
			Avatar:      textOrEmpty(profile.AvatarURL),
			CoverImage:  textOrEmpty(profile.CoverURL),
			SocialLinks: make([]models.SocialLinkItem, 0, len(socials)),
		},
		Links:    make([]models.LinkItem, 0, len(links)),
		Products: make([]models.ProductItem, 0, len(products)),
		AITools:  make([]models.ToolItem, 0, len(tools)),
	}

	for _, sl := range socials {
		doc.Profile.SocialLinks = append(doc.Profile.SocialLinks, models.SocialLinkItem{
			Name: sl.Platform,
			URL:  sl.URL,
			Icon: textOrEmpty(sl.Icon),
		})
	}
	for i, l := range links {
		doc.Links = append(doc.Links, models.LinkItem{
			ID:              i + 1,
			Name:            l.Name,
			URL:             l.URL,
			Description:     textOrEmpty(l.Description),
			BackgroundImage: textOrEmpty(l.BackgroundImage),
		})
	}
	for i, p := range products {
		doc.Products = append(doc.Products, models.ProductItem{
			ID:    i + 1,
			Name:  p.Name,
			Image: textOrEmpty(p.ImageURL),
			Price: p.Price,
			URL:   p.URL,
		})
	}
	for i, tool := range tools {
		doc.AITools = append(doc.AITools, models.ToolItem{
			ID:   i + 1,
			Name: tool.Name,
			Logo: textOrEmpty(tool.LogoURL),
			URL:  tool.URL,
		})
	}

	return doc
}

func optionalText(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func textOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
