package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Nutrient identifies one field of a NutrientProfile
type Nutrient string

const (
	NutrientEnergy       Nutrient = "energy" // kcal
	NutrientProtein      Nutrient = "protein"
	NutrientCarbohydrate Nutrient = "carbohydrate"
	NutrientSugars       Nutrient = "sugars"
	NutrientFat          Nutrient = "fat"
	NutrientSaturatedFat Nutrient = "saturated_fat"
	NutrientFiber        Nutrient = "fiber"
	NutrientSodium       Nutrient = "sodium" // grams, converted to mg for display
	NutrientSalt         Nutrient = "salt"
)

// AllNutrients lists every recognized nutrient in label order
var AllNutrients = []Nutrient{
	NutrientEnergy,
	NutrientFat,
	NutrientSaturatedFat,
	NutrientCarbohydrate,
	NutrientSugars,
	NutrientFiber,
	NutrientProtein,
	NutrientSalt,
	NutrientSodium,
}

// Unit returns the unit the nutrient is stored in
func (n Nutrient) Unit() string {
	if n == NutrientEnergy {
		return "kcal"
	}
	return "g"
}

// NutrientProfile holds one quantity per nutrient, per 100 g unless the
// caller says otherwise. An invalid NullDecimal means "unknown"; a valid
// zero means "measured as none".
type NutrientProfile struct {
	Energy       decimal.NullDecimal `json:"energy"`
	Protein      decimal.NullDecimal `json:"protein"`
	Carbohydrate decimal.NullDecimal `json:"carbohydrate"`
	Sugars       decimal.NullDecimal `json:"sugars"`
	Fat          decimal.NullDecimal `json:"fat"`
	SaturatedFat decimal.NullDecimal `json:"saturatedFat"`
	Fiber        decimal.NullDecimal `json:"fiber"`
	Sodium       decimal.NullDecimal `json:"sodium"`
	Salt         decimal.NullDecimal `json:"salt"`
}

// Get returns the quantity stored for a nutrient
func (p NutrientProfile) Get(n Nutrient) decimal.NullDecimal {
	if f := p.field(n); f != nil {
		return *f
	}
	return decimal.NullDecimal{}
}

// With returns a copy of the profile with the nutrient set to value
func (p NutrientProfile) With(n Nutrient, value decimal.Decimal) NutrientProfile {
	if f := p.field(n); f != nil {
		*f = decimal.NewNullDecimal(value)
	}
	return p
}

// Without returns a copy of the profile with the nutrient marked unknown
func (p NutrientProfile) Without(n Nutrient) NutrientProfile {
	if f := p.field(n); f != nil {
		*f = decimal.NullDecimal{}
	}
	return p
}

// IsEmpty reports whether no nutrient is known
func (p NutrientProfile) IsEmpty() bool {
	for _, n := range AllNutrients {
		if p.Get(n).Valid {
			return false
		}
	}
	return true
}

// Validate rejects negative quantities
func (p NutrientProfile) Validate() error {
	for _, n := range AllNutrients {
		v := p.Get(n)
		if v.Valid && v.Decimal.IsNegative() {
			return fmt.Errorf("%w: %s must not be negative, got %s", ErrInvalidIngredient, n, v.Decimal.String())
		}
	}
	return nil
}

// field is addressed on the receiver copy, so With/Without never touch the caller's value
func (p *NutrientProfile) field(n Nutrient) *decimal.NullDecimal {
	switch n {
	case NutrientEnergy:
		return &p.Energy
	case NutrientProtein:
		return &p.Protein
	case NutrientCarbohydrate:
		return &p.Carbohydrate
	case NutrientSugars:
		return &p.Sugars
	case NutrientFat:
		return &p.Fat
	case NutrientSaturatedFat:
		return &p.SaturatedFat
	case NutrientFiber:
		return &p.Fiber
	case NutrientSodium:
		return &p.Sodium
	case NutrientSalt:
		return &p.Salt
	}
	return nil
}

// ParseNutrient resolves a nutrient code
func ParseNutrient(code string) (Nutrient, bool) {
	for _, n := range AllNutrients {
		if string(n) == code {
			return n, true
		}
	}
	return "", false
}
