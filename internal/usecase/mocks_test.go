package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/trazia/backend/internal/domain"
)

// MockCacheRepository is a mock implementation of domain.CacheRepository
type MockCacheRepository struct {
	data      map[string][]byte
	getError  error
	setError  error
	getCalled bool
	setCalled bool
	lastTTL   time.Duration
}

func NewMockCacheRepository() *MockCacheRepository {
	return &MockCacheRepository{
		data: make(map[string][]byte),
	}
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	m.getCalled = true
	if m.getError != nil {
		return nil, m.getError
	}
	if value, ok := m.data[key]; ok {
		return value, nil
	}
	return nil, domain.ErrCacheMiss
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.setCalled = true
	m.lastTTL = ttl
	if m.setError != nil {
		return m.setError
	}
	m.data[key] = value
	return nil
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := m.data[key]
	return ok, nil
}

// MockUSDAClient is a mock implementation of domain.USDAClient
type MockUSDAClient struct {
	foodResult *domain.USDAFood
	foodError  error
	calls      int
}

func NewMockUSDAClient() *MockUSDAClient {
	return &MockUSDAClient{}
}

func (m *MockUSDAClient) GetFoodDetails(ctx context.Context, fdcID string) (*domain.USDAFood, error) {
	m.calls++
	if m.foodError != nil {
		return nil, m.foodError
	}
	return m.foodResult, nil
}

// fakeRetentionTable is a map-backed domain.RetentionTable
type fakeRetentionTable map[string]decimal.Decimal

func (f fakeRetentionTable) Lookup(nutrient, method string) (decimal.Decimal, error) {
	factor, ok := f[strings.ToLower(nutrient)+"/"+strings.ToLower(method)]
	if !ok {
		return decimal.Zero, &domain.RetentionLookupError{Nutrient: nutrient, ProcessingMethod: method}
	}
	return factor, nil
}

func (f fakeRetentionTable) Methods() []string {
	seen := map[string]bool{}
	var methods []string
	for k := range f {
		m := k[strings.Index(k, "/")+1:]
		if !seen[m] {
			seen[m] = true
			methods = append(methods, m)
		}
	}
	return methods
}

// fakeProfileSource is a map-backed domain.ProfileSource
type fakeProfileSource struct {
	products map[string]*domain.CatalogProduct
	err      error
	calls    int
}

func (f *fakeProfileSource) GetProductProfile(ctx context.Context, fdcID string) (*domain.CatalogProduct, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	product, ok := f.products[fdcID]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	copied := *product
	return &copied, nil
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func nd(s string) decimal.NullDecimal { return decimal.NewNullDecimal(d(s)) }

// assertDecimal compares numerically so a result of 1.50 matches "1.5"
func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, got.Equal(d(want)), "want %s, got %s", want, got.String())
}

func assertKnown(t *testing.T, want string, got decimal.NullDecimal, name string) {
	t.Helper()
	if assert.True(t, got.Valid, "%s should be known", name) {
		assert.True(t, got.Decimal.Equal(d(want)), "%s: want %s, got %s", name, want, got.Decimal.String())
	}
}
