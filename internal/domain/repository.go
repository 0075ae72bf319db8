package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// CacheRepository is a byte-oriented TTL cache. Get returns ErrCacheMiss
// for absent or expired keys.
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// USDAClient defines the interface for interacting with USDA FoodData Central API
type USDAClient interface {
	GetFoodDetails(ctx context.Context, fdcID string) (*USDAFood, error)
}

// RetentionTable is the read-only (nutrient, processing method) lookup
// built at startup. Implementations must be safe for concurrent readers.
type RetentionTable interface {
	Lookup(nutrient, processingMethod string) (decimal.Decimal, error)
	Methods() []string
}

// ProfileSource resolves the nutrient profile of a catalog product
type ProfileSource interface {
	GetProductProfile(ctx context.Context, fdcID string) (*CatalogProduct, error)
}
