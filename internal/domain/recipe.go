package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// IngredientLine is one entry of a recipe: a product profile, how much of
// it goes in and what it costs
type IngredientLine struct {
	Name                string          `json:"name,omitempty"`
	FdcID               string          `json:"fdcId,omitempty"`
	Profile             NutrientProfile `json:"profile"`
	QuantityGrams       decimal.Decimal `json:"quantityGrams"`
	UnitCostPerKilogram decimal.Decimal `json:"unitCostPerKilogram"`
	DisplayOrder        int             `json:"displayOrder"`
	Allergens           []string        `json:"allergens,omitempty"`
}

// Recipe is the caller-owned snapshot the engine computes over
type Recipe struct {
	Name               string              `json:"name"`
	IngredientLines    []IngredientLine    `json:"ingredientLines"`
	DeclaredYieldGrams decimal.NullDecimal `json:"declaredYieldGrams"`
	ProcessingMethod   string              `json:"processingMethod,omitempty"`
	ServingSizeGrams   decimal.NullDecimal `json:"servingSizeGrams"`
}

// TotalIngredientMass sums quantityGrams over all lines
func (r Recipe) TotalIngredientMass() decimal.Decimal {
	return TotalMass(r.IngredientLines)
}

// ValidateYield enforces that a positive yield is declared before any
// nutrition or costing calculation runs
func (r Recipe) ValidateYield() error {
	return ValidateYield(r.DeclaredYieldGrams)
}

// ValidateYield checks a declared yield value
func ValidateYield(yield decimal.NullDecimal) error {
	if !yield.Valid {
		return fmt.Errorf("%w: declared yield is missing", ErrInvalidYield)
	}
	if !yield.Decimal.IsPositive() {
		return fmt.Errorf("%w: declared yield must be positive, got %s", ErrInvalidYield, yield.Decimal.String())
	}
	return nil
}

// TotalMass sums quantityGrams over the given lines
func TotalMass(lines []IngredientLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.QuantityGrams)
	}
	return total
}

// LineCost is the cost breakdown of one ingredient line
type LineCost struct {
	DisplayOrder     int             `json:"displayOrder"`
	Name             string          `json:"name,omitempty"`
	QuantityGrams    decimal.Decimal `json:"quantityGrams"`
	Cost             decimal.Decimal `json:"cost"`
	PercentageOfMass decimal.Decimal `json:"percentageOfMass"`
}

// CostingResult holds recipe cost metrics. Money and per-gram figures
// carry 6 fractional digits; YieldLossPercentage carries 2.
type CostingResult struct {
	TotalCost           decimal.Decimal `json:"totalCost"`
	CostPerGram         decimal.Decimal `json:"costPerGram"`
	CostPer100g         decimal.Decimal `json:"costPer100g"`
	YieldLossPercentage decimal.Decimal `json:"yieldLossPercentage"`
	TotalIngredientMass decimal.Decimal `json:"totalIngredientMass"`
	Lines               []LineCost      `json:"lines,omitempty"`
}

// Display returns a copy with money figures rounded to 2 places for labels
// and reports. CostPerGram keeps its precision since it is rarely above a cent.
func (c CostingResult) Display() CostingResult {
	out := c
	out.TotalCost = c.TotalCost.Round(DisplayScale)
	out.CostPer100g = c.CostPer100g.Round(DisplayScale)
	out.YieldLossPercentage = c.YieldLossPercentage.Round(DisplayScale)
	out.Lines = make([]LineCost, len(c.Lines))
	for i, line := range c.Lines {
		line.Cost = line.Cost.Round(DisplayScale)
		line.PercentageOfMass = line.PercentageOfMass.Round(DisplayScale)
		out.Lines[i] = line
	}
	return out
}

const (
	// IntermediateScale is the number of fractional digits kept in cost math
	IntermediateScale int32 = 6
	// DisplayScale is the number of fractional digits on display figures
	DisplayScale int32 = 2
)
