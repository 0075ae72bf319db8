package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ReferenceIntakes maps a nutrient to its recommended daily quantity,
// based on a 2000 kcal diet. Units follow Nutrient.Unit.
type ReferenceIntakes map[Nutrient]decimal.Decimal

// Get returns the reference quantity for n
func (r ReferenceIntakes) Get(n Nutrient) (decimal.Decimal, bool) {
	v, ok := r[n]
	return v, ok
}

// Validate fails when any nutrient lacks a positive reference
func (r ReferenceIntakes) Validate() error {
	for _, n := range AllNutrients {
		v, ok := r[n]
		if !ok || !v.IsPositive() {
			return fmt.Errorf("%w: reference intake for %s must be positive", ErrStartupConfiguration, n)
		}
	}
	return nil
}

var defaultReferenceIntakes = ReferenceIntakes{
	NutrientEnergy:       decimal.NewFromInt(2000),
	NutrientProtein:      decimal.NewFromInt(50),
	NutrientCarbohydrate: decimal.NewFromInt(275),
	NutrientSugars:       decimal.NewFromInt(50),
	NutrientFat:          decimal.NewFromInt(70),
	NutrientSaturatedFat: decimal.NewFromInt(20),
	NutrientFiber:        decimal.NewFromInt(28),
	NutrientSodium:       decimal.RequireFromString("2.3"),
	NutrientSalt:         decimal.NewFromInt(5),
}

func init() {
	if err := defaultReferenceIntakes.Validate(); err != nil {
		panic(err)
	}
}

// DefaultReferenceIntakes returns a copy of the process-wide reference table
func DefaultReferenceIntakes() ReferenceIntakes {
	out := make(ReferenceIntakes, len(defaultReferenceIntakes))
	for k, v := range defaultReferenceIntakes {
		out[k] = v
	}
	return out
}
