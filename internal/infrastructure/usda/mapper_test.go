package usda

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/trazia/backend/internal/domain"
)

func amount(v float64) *float64 { return &v }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestMapToCatalogProduct(t *testing.T) {
	food := &domain.USDAFood{
		FdcID:       171705,
		Description: "Avocados, raw",
		Nutrients: []domain.USDANutrient{
			{NutrientID: NutrientIDEnergy, UnitName: "KCAL", Value: 160},
			{NutrientID: NutrientIDProtein, UnitName: "G", Value: 2},
			{NutrientID: NutrientIDTotalFat, UnitName: "G", Value: 14.66},
			{NutrientID: NutrientIDSodium, UnitName: "MG", Value: 7},
		},
	}

	product := MapToCatalogProduct(food)

	assert.Equal(t, "171705", product.FdcID)
	assert.Equal(t, "Avocados, raw", product.Description)
	assert.Equal(t, "USDA", product.Source)
	assert.True(t, product.Profile.Energy.Decimal.Equal(dec("160")))
	assert.True(t, product.Profile.Fat.Decimal.Equal(dec("14.66")))
	// sodium arrives in mg and is stored in g
	assert.True(t, product.Profile.Sodium.Decimal.Equal(dec("0.007")), "sodium = %s", product.Profile.Sodium.Decimal)
}

func TestExtractProfile_MissingNutrientsStayUnknown(t *testing.T) {
	profile := ExtractProfile([]domain.USDANutrient{
		{NutrientID: NutrientIDProtein, Value: 10},
	})

	assert.True(t, profile.Protein.Valid)
	assert.False(t, profile.Fat.Valid)
	assert.False(t, profile.Sugars.Valid)
	assert.False(t, profile.Salt.Valid)
}

func TestExtractProfile_NestedShape(t *testing.T) {
	profile := ExtractProfile([]domain.USDANutrient{
		{Nutrient: &domain.USDANutrientRef{ID: NutrientIDSugars, UnitName: "g"}, Amount: amount(4.5)},
		{Nutrient: &domain.USDANutrientRef{ID: NutrientIDSaturatedFat, UnitName: "g"}, Amount: amount(0)},
	})

	assert.True(t, profile.Sugars.Decimal.Equal(dec("4.5")))
	// a reported zero is known, not absent
	assert.True(t, profile.SaturatedFat.Valid)
	assert.True(t, profile.SaturatedFat.Decimal.IsZero())
}

func TestExtractProfile_EnergyFallbackFromKilojoules(t *testing.T) {
	tests := []struct {
		name      string
		nutrients []domain.USDANutrient
		want      string
	}{
		{
			name:      "kJ nutrient id",
			nutrients: []domain.USDANutrient{{NutrientID: NutrientIDEnergyKJ, UnitName: "kJ", Value: 418.4}},
			want:      "100",
		},
		{
			name:      "energy id reported in kJ",
			nutrients: []domain.USDANutrient{{NutrientID: NutrientIDEnergy, UnitName: "kJ", Value: 836.8}},
			want:      "200",
		},
		{
			name: "kcal wins over kJ",
			nutrients: []domain.USDANutrient{
				{NutrientID: NutrientIDEnergyKJ, UnitName: "kJ", Value: 1000},
				{NutrientID: NutrientIDEnergy, UnitName: "kcal", Value: 250},
			},
			want: "250",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := ExtractProfile(tt.nutrients)
			assert.True(t, profile.Energy.Valid)
			assert.True(t, profile.Energy.Decimal.Equal(dec(tt.want)), "energy = %s", profile.Energy.Decimal)
		})
	}
}

func TestExtractProfile_SkipsNegativeValues(t *testing.T) {
	profile := ExtractProfile([]domain.USDANutrient{
		{NutrientID: NutrientIDFiber, Value: -1},
	})
	assert.False(t, profile.Fiber.Valid)
}
