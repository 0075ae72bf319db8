package usda

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/trazia/backend/internal/domain"
	"github.com/trazia/backend/internal/units"
)

// USDA Nutrient IDs for the label nutrients
const (
	NutrientIDEnergy       = 1008 // Energy (kcal)
	NutrientIDEnergyKJ     = 1062 // Energy (kJ)
	NutrientIDProtein      = 1003 // Protein (g)
	NutrientIDTotalFat     = 1004 // Total lipid (fat) (g)
	NutrientIDCarbohydrate = 1005 // Carbohydrate, by difference (g)
	NutrientIDFiber        = 1079 // Fiber, total dietary (g)
	NutrientIDSodium       = 1093 // Sodium, Na (mg)
	NutrientIDSaturatedFat = 1258 // Fatty acids, total saturated (g)
	NutrientIDSugars       = 2000 // Sugars, total including NLEA (g)
)

var gramNutrients = map[int]domain.Nutrient{
	NutrientIDProtein:      domain.NutrientProtein,
	NutrientIDTotalFat:     domain.NutrientFat,
	NutrientIDCarbohydrate: domain.NutrientCarbohydrate,
	NutrientIDFiber:        domain.NutrientFiber,
	NutrientIDSaturatedFat: domain.NutrientSaturatedFat,
	NutrientIDSugars:       domain.NutrientSugars,
}

// MapToCatalogProduct converts USDA food data to a catalog product
func MapToCatalogProduct(food *domain.USDAFood) *domain.CatalogProduct {
	return &domain.CatalogProduct{
		FdcID:       strconv.Itoa(food.FdcID),
		Description: food.Description,
		Profile:     ExtractProfile(food.Nutrients),
		Source:      "USDA",
	}
}

// ExtractProfile builds a per-100 g profile from USDA nutrients. Nutrients
// USDA does not report stay unknown rather than zero.
func ExtractProfile(nutrients []domain.USDANutrient) domain.NutrientProfile {
	profile := domain.NutrientProfile{}
	var energyKJ decimal.NullDecimal

	for _, nutrient := range nutrients {
		value := decimal.NewFromFloat(nutrient.Quantity())
		if value.IsNegative() {
			continue
		}
		id := nutrient.ID()
		if n, ok := gramNutrients[id]; ok {
			profile = profile.With(n, value)
			continue
		}
		switch id {
		case NutrientIDEnergy:
			if strings.EqualFold(nutrient.Unit(), "kJ") {
				energyKJ = decimal.NewNullDecimal(value)
				continue
			}
			profile = profile.With(domain.NutrientEnergy, value)
		case NutrientIDEnergyKJ:
			energyKJ = decimal.NewNullDecimal(value)
		case NutrientIDSodium:
			profile = profile.With(domain.NutrientSodium, units.MilligramsToGrams(value))
		}
	}

	if !profile.Energy.Valid && energyKJ.Valid {
		profile = profile.With(domain.NutrientEnergy, units.KilocaloriesFromKilojoules(energyKJ.Decimal))
	}
	return profile
}
