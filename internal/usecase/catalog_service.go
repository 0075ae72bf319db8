package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/trazia/backend/internal/domain"
	"github.com/trazia/backend/internal/infrastructure/usda"
	"github.com/trazia/backend/internal/log"
)

// CatalogServiceConfig holds configuration for the catalog service
type CatalogServiceConfig struct {
	CacheTTL time.Duration
}

// CatalogService resolves product nutrient profiles from FoodData Central
// with a read-through cache
type CatalogService struct {
	cache      domain.CacheRepository
	usdaClient domain.USDAClient
	cacheTTL   time.Duration
}

// NewCatalogService creates a new catalog service with dependencies
func NewCatalogService(
	cache domain.CacheRepository,
	usdaClient domain.USDAClient,
	config CatalogServiceConfig,
) *CatalogService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 720 * time.Hour // Default 30 days
	}

	return &CatalogService{
		cache:      cache,
		usdaClient: usdaClient,
		cacheTTL:   cacheTTL,
	}
}

// GetProductProfile returns the per-100 g profile of a FoodData Central product.
// Flow: check cache -> fetch USDA details -> map -> cache -> return
func (s *CatalogService) GetProductProfile(ctx context.Context, fdcID string) (*domain.CatalogProduct, error) {
	fdcID = strings.TrimSpace(fdcID)
	if fdcID == "" {
		return nil, fmt.Errorf("%w: fdcId is required", domain.ErrInvalidRequest)
	}
	if s.usdaClient == nil {
		return nil, domain.ErrCatalogUnavailable
	}

	cacheKey := catalogCacheKey(fdcID)
	if cached, err := s.getFromCache(ctx, cacheKey); err == nil && cached != nil {
		cached.Source = "Cache"
		return cached, nil
	}

	food, err := s.usdaClient.GetFoodDetails(ctx, fdcID)
	if err != nil {
		return nil, err
	}

	product := usda.MapToCatalogProduct(food)
	if err := s.setInCache(ctx, cacheKey, product); err != nil {
		log.Error(ctx, "catalog cache write failed", "fdc_id", fdcID, "err", err)
	}
	return product, nil
}

// catalogCacheKey format: "catalog:{fdcId}"
func catalogCacheKey(fdcID string) string {
	return "catalog:" + strings.ToLower(fdcID)
}

// getFromCache retrieves a product from cache; undecodable entries count as a miss
func (s *CatalogService) getFromCache(ctx context.Context, key string) (*domain.CatalogProduct, error) {
	if s.cache == nil {
		return nil, domain.ErrCacheMiss
	}
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	var product domain.CatalogProduct
	if err := json.Unmarshal(raw, &product); err != nil {
		log.Warn(ctx, "discarding corrupt catalog cache entry", "key", key, "err", err)
		return nil, domain.ErrCacheMiss
	}
	return &product, nil
}

// setInCache stores a product in cache
func (s *CatalogService) setInCache(ctx context.Context, key string, product *domain.CatalogProduct) error {
	if s.cache == nil {
		return nil
	}
	product.CachedAt = time.Now().UTC()
	raw, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("encode catalog product: %w", err)
	}
	return s.cache.Set(ctx, key, raw, s.cacheTTL)
}
