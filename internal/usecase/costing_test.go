package usecase

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trazia/backend/internal/domain"
)

func costLine(order int, qty, costPerKg string) domain.IngredientLine {
	return domain.IngredientLine{DisplayOrder: order, QuantityGrams: d(qty), UnitCostPerKilogram: d(costPerKg)}
}

func TestIngredientCost(t *testing.T) {
	assertDecimal(t, "0.9975", IngredientCost(costLine(1, "250", "3.99")))
	assertDecimal(t, "0", IngredientCost(costLine(1, "0", "3.99")))
}

func TestComputeCosting(t *testing.T) {
	lines := []domain.IngredientLine{
		costLine(1, "500", "10"),
		costLine(2, "500", "20"),
	}

	result, err := ComputeCosting(lines, nd("900"))
	require.NoError(t, err)

	assertDecimal(t, "15", result.TotalCost)
	assertDecimal(t, "0.016667", result.CostPerGram)
	assertDecimal(t, "1.6667", result.CostPer100g)
	assertDecimal(t, "10", result.YieldLossPercentage)
	assertDecimal(t, "1000", result.TotalIngredientMass)

	require.Len(t, result.Lines, 2)
	assertDecimal(t, "5", result.Lines[0].Cost)
	assertDecimal(t, "10", result.Lines[1].Cost)
	assertDecimal(t, "50", result.Lines[0].PercentageOfMass)
	assert.Equal(t, 2, result.Lines[1].DisplayOrder)

	display := result.Display()
	assertDecimal(t, "15", display.TotalCost)
	assertDecimal(t, "1.67", display.CostPer100g)
	assertDecimal(t, "0.016667", display.CostPerGram)
	// Display copies the lines
	assertDecimal(t, "5", result.Lines[0].Cost)
}

func TestComputeCosting_YieldAboveMass(t *testing.T) {
	result, err := ComputeCosting([]domain.IngredientLine{costLine(1, "1000", "2")}, nd("1200"))
	require.NoError(t, err)
	assertDecimal(t, "-20", result.YieldLossPercentage)
	assertDecimal(t, "0.001667", result.CostPerGram)
}

func TestComputeCosting_NoIngredientMass(t *testing.T) {
	result, err := ComputeCosting(nil, nd("100"))
	require.NoError(t, err)
	assertDecimal(t, "0", result.TotalCost)
	assertDecimal(t, "0", result.CostPerGram)
	assertDecimal(t, "0", result.YieldLossPercentage)
	assert.Empty(t, result.Lines)
}

func TestComputeCosting_InvalidYield(t *testing.T) {
	tests := []struct {
		name  string
		yield decimal.NullDecimal
	}{
		{"missing", decimal.NullDecimal{}},
		{"zero", nd("0")},
		{"negative", nd("-10")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ComputeCosting([]domain.IngredientLine{costLine(1, "100", "1")}, tt.yield)
			assert.Nil(t, result)
			assert.True(t, errors.Is(err, domain.ErrInvalidYield), "error = %v", err)
		})
	}
}

func TestComputeCosting_InvalidLine(t *testing.T) {
	_, err := ComputeCosting([]domain.IngredientLine{costLine(3, "100", "-1")}, nd("100"))
	require.Error(t, err)

	var lineErr *domain.IngredientError
	require.True(t, errors.As(err, &lineErr))
	assert.Equal(t, 3, lineErr.DisplayOrder)
	assert.True(t, errors.Is(err, domain.ErrInvalidIngredient))
}

func TestYieldLossPercentage(t *testing.T) {
	assertDecimal(t, "0", YieldLossPercentage(d("0"), d("100")))
	assertDecimal(t, "33.33", YieldLossPercentage(d("300"), d("200")))
	assertDecimal(t, "0", YieldLossPercentage(d("500"), d("500")))
}
