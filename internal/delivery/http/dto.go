package http

import (
	"github.com/shopspring/decimal"
	"github.com/trazia/backend/internal/domain"
)

// AggregateRequest is the body of POST /api/v1/nutrition/aggregate
type AggregateRequest struct {
	IngredientLines []domain.IngredientLine `json:"ingredientLines"`
}

// AggregateResponse carries the mass-weighted ingredient profile
type AggregateResponse struct {
	Aggregate           domain.NutrientProfile `json:"aggregate"`
	TotalIngredientMass decimal.Decimal        `json:"totalIngredientMass"`
}

// NormalizeRequest is the body of POST /api/v1/nutrition/normalize.
// SourceBasisGrams defaults to 100.
type NormalizeRequest struct {
	Profile          domain.NutrientProfile `json:"profile"`
	TargetBasisGrams decimal.NullDecimal    `json:"targetBasisGrams"`
	SourceBasisGrams decimal.NullDecimal    `json:"sourceBasisGrams"`
	ZeroFill         bool                   `json:"zeroFill"`
}

// ProfileRequest is the body of POST /api/v1/nutrition/daily-values
type ProfileRequest struct {
	Profile domain.NutrientProfile `json:"profile"`
}

// DailyValuesResponse carries %DV per nutrient
type DailyValuesResponse struct {
	DailyValues domain.NutrientProfile `json:"dailyValues"`
}

// RetentionRequest is the body of POST /api/v1/retention/apply.
// FinalYieldFraction defaults to 1.
type RetentionRequest struct {
	Nutrient           string              `json:"nutrient" binding:"required"`
	ProcessingMethod   string              `json:"processingMethod" binding:"required"`
	InitialAmount      decimal.NullDecimal `json:"initialAmount"`
	FinalYieldFraction decimal.NullDecimal `json:"finalYieldFraction"`
}

// RetentionResponse carries the adjusted amount
type RetentionResponse struct {
	Nutrient         string          `json:"nutrient"`
	ProcessingMethod string          `json:"processingMethod"`
	AdjustedAmount   decimal.Decimal `json:"adjustedAmount"`
}

// CostingRequest is the body of POST /api/v1/recipes/costing
type CostingRequest struct {
	IngredientLines    []domain.IngredientLine `json:"ingredientLines"`
	DeclaredYieldGrams decimal.NullDecimal     `json:"declaredYieldGrams"`
}

// CostingResponse carries full-precision and display-rounded costing
type CostingResponse struct {
	Costing domain.CostingResult `json:"costing"`
	Display domain.CostingResult `json:"display"`
}

// LabelRequest is the body of POST /api/v1/labels
type LabelRequest struct {
	Recipe domain.Recipe `json:"recipe"`
	Region string        `json:"region"`
}
