package usecase

import (
	"github.com/shopspring/decimal"
	"github.com/trazia/backend/internal/domain"
)

// IngredientCost is unitCostPerKilogram × quantityGrams / 1000 at 6 places.
func IngredientCost(line domain.IngredientLine) decimal.Decimal {
	return line.UnitCostPerKilogram.Mul(line.QuantityGrams).DivRound(gramsPerKilogram, domain.IntermediateScale)
}

// ComputeCosting derives recipe cost metrics and yield loss from the
// ingredient lines and the declared yield.
//
// Yield loss is (mass − yield) / mass × 100 and may be negative when the
// finished product outweighs its inputs (e.g. absorbed water). It is 0
// when there is no ingredient mass.
func ComputeCosting(lines []domain.IngredientLine, declaredYieldGrams decimal.NullDecimal) (*domain.CostingResult, error) {
	if err := domain.ValidateYield(declaredYieldGrams); err != nil {
		return nil, err
	}
	if err := validateLines(lines); err != nil {
		return nil, err
	}
	yield := declaredYieldGrams.Decimal

	totalMass := domain.TotalMass(lines)
	totalCost := decimal.Zero
	lineCosts := make([]domain.LineCost, 0, len(lines))
	for _, line := range lines {
		cost := IngredientCost(line)
		totalCost = totalCost.Add(cost)

		share := decimal.Zero
		if totalMass.IsPositive() {
			share = line.QuantityGrams.Mul(hundred).DivRound(totalMass, domain.IntermediateScale)
		}
		lineCosts = append(lineCosts, domain.LineCost{
			DisplayOrder:     line.DisplayOrder,
			Name:             line.Name,
			QuantityGrams:    line.QuantityGrams,
			Cost:             cost,
			PercentageOfMass: share,
		})
	}
	totalCost = totalCost.Round(domain.IntermediateScale)

	costPerGram := totalCost.DivRound(yield, domain.IntermediateScale)
	costPer100g := costPerGram.Mul(hundred).Round(domain.IntermediateScale)

	return &domain.CostingResult{
		TotalCost:           totalCost,
		CostPerGram:         costPerGram,
		CostPer100g:         costPer100g,
		YieldLossPercentage: YieldLossPercentage(totalMass, yield),
		TotalIngredientMass: totalMass,
		Lines:               lineCosts,
	}, nil
}

// YieldLossPercentage is (totalMass − yield) / totalMass × 100 at 2 places,
// or 0 when totalMass is 0.
func YieldLossPercentage(totalMassGrams, yieldGrams decimal.Decimal) decimal.Decimal {
	if totalMassGrams.IsZero() {
		return decimal.Zero
	}
	return totalMassGrams.Sub(yieldGrams).Mul(hundred).DivRound(totalMassGrams, domain.DisplayScale)
}
