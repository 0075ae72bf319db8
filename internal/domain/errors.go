package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyRecipe is returned when there is no ingredient mass to aggregate
	ErrEmptyRecipe = errors.New("recipe has no ingredients to aggregate")

	// ErrInvalidYield is returned when the declared yield is missing, zero or negative
	ErrInvalidYield = errors.New("invalid declared yield")

	// ErrRetentionFactorNotFound is returned when no retention factor matches a nutrient and processing method
	ErrRetentionFactorNotFound = errors.New("retention factor not found")

	// ErrStartupConfiguration is returned when a startup resource is missing or malformed
	ErrStartupConfiguration = errors.New("startup configuration error")

	// ErrInvalidIngredient is returned when an ingredient line carries invalid quantities
	ErrInvalidIngredient = errors.New("invalid ingredient line")

	// ErrUnsupportedRegion is returned for an unknown labeling region
	ErrUnsupportedRegion = errors.New("unsupported labeling region")

	// ErrInvalidServingSize is returned when a basis or serving size is missing or not positive
	ErrInvalidServingSize = errors.New("invalid serving size")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrProductNotFound is returned when a product cannot be found in USDA database
	ErrProductNotFound = errors.New("product not found in USDA database")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrUSDAAPIFailure is returned when USDA API request fails
	ErrUSDAAPIFailure = errors.New("USDA API request failed")

	// ErrCatalogUnavailable is returned when no product catalog is configured
	ErrCatalogUnavailable = errors.New("product catalog unavailable")
)

// RetentionLookupError names the key that had no retention factor
type RetentionLookupError struct {
	Nutrient         string
	ProcessingMethod string
}

func (e *RetentionLookupError) Error() string {
	return fmt.Sprintf("%s: nutrient %q, processing method %q",
		ErrRetentionFactorNotFound, e.Nutrient, e.ProcessingMethod)
}

func (e *RetentionLookupError) Unwrap() error {
	return ErrRetentionFactorNotFound
}

// IngredientError attaches the offending line to an ingredient failure
type IngredientError struct {
	Index        int
	DisplayOrder int
	Field        string
	Err          error
}

func (e *IngredientError) Error() string {
	return fmt.Sprintf("ingredient line %d (display order %d) %s: %v",
		e.Index, e.DisplayOrder, e.Field, e.Err)
}

func (e *IngredientError) Unwrap() error {
	return e.Err
}
