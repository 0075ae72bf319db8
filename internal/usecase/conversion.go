package usecase

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/trazia/backend/internal/domain"
	"github.com/trazia/backend/internal/units"
)

var (
	milligramsPerGram  = decimal.NewFromInt(1000)
	gramsPerKilogram   = decimal.NewFromInt(1000)
	hundred            = decimal.NewFromInt(100)
	defaultSourceBasis = hundred
)

// profileScale is the number of fractional digits on scaled profiles
const profileScale int32 = 2

// ScaleOptions tunes ScaleToBasis
type ScaleOptions struct {
	// ZeroFill turns absent inputs into measured zeros in the output
	ZeroFill bool
}

// ScaleToBasis re-expresses a profile from sourceBasisGrams to
// targetGrams: every nutrient is multiplied by target/source and rounded
// to 2 places half-up. Absent nutrients stay absent unless opts.ZeroFill.
func ScaleToBasis(profile domain.NutrientProfile, targetGrams, sourceBasisGrams decimal.Decimal, opts ScaleOptions) (domain.NutrientProfile, error) {
	if !targetGrams.IsPositive() {
		return domain.NutrientProfile{}, fmt.Errorf("%w: target basis must be positive, got %s",
			domain.ErrInvalidServingSize, targetGrams.String())
	}
	if !sourceBasisGrams.IsPositive() {
		return domain.NutrientProfile{}, fmt.Errorf("%w: source basis must be positive, got %s",
			domain.ErrInvalidServingSize, sourceBasisGrams.String())
	}

	out := domain.NutrientProfile{}
	for _, n := range domain.AllNutrients {
		v := profile.Get(n)
		switch {
		case v.Valid:
			// multiply before dividing so exact ratios do not pick up division noise
			out = out.With(n, v.Decimal.Mul(targetGrams).DivRound(sourceBasisGrams, profileScale))
		case opts.ZeroFill:
			out = out.With(n, decimal.Zero)
		}
	}
	return out, nil
}

// NormalizeProfile scales a profile from sourceBasisGrams (100 when zero)
// to targetBasisGrams. Negative nutrient values are rejected.
func NormalizeProfile(profile domain.NutrientProfile, targetBasisGrams, sourceBasisGrams decimal.Decimal, opts ScaleOptions) (domain.NutrientProfile, error) {
	if err := profile.Validate(); err != nil {
		return domain.NutrientProfile{}, err
	}
	if sourceBasisGrams.IsZero() {
		sourceBasisGrams = defaultSourceBasis
	}
	return ScaleToBasis(profile, targetBasisGrams, sourceBasisGrams, opts)
}

// YieldBasisProfile turns an ingredient aggregate (a mass-weighted average
// per 100 g of ingredients) into a profile per 100 g of finished product.
// The absolute nutrient total is aggregate × totalMass / 100; dividing it
// by yield and scaling to 100 g gives aggregate × totalMass / yield.
func YieldBasisProfile(aggregate domain.NutrientProfile, totalMassGrams, declaredYieldGrams decimal.Decimal) (domain.NutrientProfile, error) {
	if err := domain.ValidateYield(decimal.NewNullDecimal(declaredYieldGrams)); err != nil {
		return domain.NutrientProfile{}, err
	}
	if !totalMassGrams.IsPositive() {
		return domain.NutrientProfile{}, fmt.Errorf("%w: total ingredient mass is %s",
			domain.ErrEmptyRecipe, totalMassGrams.String())
	}
	return ScaleToBasis(aggregate, totalMassGrams, declaredYieldGrams, ScaleOptions{})
}

// WithDerivedSalt fills salt from sodium when salt is unknown. Sodium is
// stored in grams, so it is converted to mg before SaltFromSodium.
func WithDerivedSalt(profile domain.NutrientProfile) domain.NutrientProfile {
	if profile.Salt.Valid || !profile.Sodium.Valid {
		return profile
	}
	return profile.With(domain.NutrientSalt, units.SaltFromSodium(profile.Sodium.Decimal.Mul(milligramsPerGram)))
}

// WithDerivedSodium fills sodium (g) from salt when sodium is unknown
func WithDerivedSodium(profile domain.NutrientProfile) domain.NutrientProfile {
	if profile.Sodium.Valid || !profile.Salt.Valid {
		return profile
	}
	return profile.With(domain.NutrientSodium, units.MilligramsToGrams(units.SodiumFromSalt(profile.Salt.Decimal)))
}

// RoundProfile rounds every known nutrient to places, half-up
func RoundProfile(profile domain.NutrientProfile, places int32) domain.NutrientProfile {
	out := profile
	for _, n := range domain.AllNutrients {
		if v := profile.Get(n); v.Valid {
			out = out.With(n, v.Decimal.Round(places))
		}
	}
	return out
}
