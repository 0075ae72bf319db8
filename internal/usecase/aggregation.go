package usecase

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/trazia/backend/internal/domain"
)

// aggregateScale is the number of fractional digits kept on the aggregate.
// It stays finer than profileScale so normalization rounds only once.
const aggregateScale int32 = 6

// AggregateNutrients combines ingredient lines into one profile: for every
// nutrient, the mass-weighted average of the per-100 g values of the lines.
// It also returns the total ingredient mass.
//
// A line that lacks a nutrient contributes 0 to that nutrient's sum; the
// nutrient is reported absent only when no line knows it.
func AggregateNutrients(lines []domain.IngredientLine) (domain.NutrientProfile, decimal.Decimal, error) {
	if len(lines) == 0 {
		return domain.NutrientProfile{}, decimal.Zero, fmt.Errorf("%w: ingredient list is empty", domain.ErrEmptyRecipe)
	}
	if err := validateLines(lines); err != nil {
		return domain.NutrientProfile{}, decimal.Zero, err
	}

	totalMass := domain.TotalMass(lines)
	if !totalMass.IsPositive() {
		return domain.NutrientProfile{}, decimal.Zero, fmt.Errorf("%w: total ingredient mass is %s",
			domain.ErrEmptyRecipe, totalMass.String())
	}

	// Σ qtyᵢ·vᵢ / Σ qty equals Σ fᵢ·vᵢ and keeps one division per nutrient
	sums := make(map[domain.Nutrient]decimal.Decimal, len(domain.AllNutrients))
	for _, line := range lines {
		for _, n := range domain.AllNutrients {
			v := line.Profile.Get(n)
			if !v.Valid {
				continue
			}
			sums[n] = sums[n].Add(line.QuantityGrams.Mul(v.Decimal))
		}
	}

	aggregate := domain.NutrientProfile{}
	for _, n := range domain.AllNutrients {
		sum, known := sums[n]
		if !known {
			continue
		}
		aggregate = aggregate.With(n, sum.DivRound(totalMass, aggregateScale))
	}
	return aggregate, totalMass, nil
}

// validateLines rejects negative quantities, costs and nutrient values
func validateLines(lines []domain.IngredientLine) error {
	for i, line := range lines {
		if line.QuantityGrams.IsNegative() {
			return &domain.IngredientError{
				Index:        i,
				DisplayOrder: line.DisplayOrder,
				Field:        "quantityGrams",
				Err:          fmt.Errorf("%w: quantity must not be negative, got %s", domain.ErrInvalidIngredient, line.QuantityGrams.String()),
			}
		}
		if line.UnitCostPerKilogram.IsNegative() {
			return &domain.IngredientError{
				Index:        i,
				DisplayOrder: line.DisplayOrder,
				Field:        "unitCostPerKilogram",
				Err:          fmt.Errorf("%w: unit cost must not be negative, got %s", domain.ErrInvalidIngredient, line.UnitCostPerKilogram.String()),
			}
		}
		if err := line.Profile.Validate(); err != nil {
			return &domain.IngredientError{
				Index:        i,
				DisplayOrder: line.DisplayOrder,
				Field:        "profile",
				Err:          err,
			}
		}
	}
	return nil
}
