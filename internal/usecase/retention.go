package usecase

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/trazia/backend/internal/domain"
)

// retentionScale is the number of fractional digits on adjusted amounts
const retentionScale int32 = 6

// ApplyRetention adjusts an amount for nutrient loss during processing:
// initialAmount × retentionFactor × finalYieldFraction. The yield fraction
// covers mass change (e.g. water lost while cooking) and is independent of
// the nutrient-specific retention factor.
//
// A missing (nutrient, method) row is an error; full retention is never assumed.
func ApplyRetention(table domain.RetentionTable, nutrient, processingMethod string, initialAmount, finalYieldFraction decimal.Decimal) (decimal.Decimal, error) {
	if table == nil {
		return decimal.Zero, fmt.Errorf("%w: retention table not loaded", domain.ErrStartupConfiguration)
	}
	if finalYieldFraction.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: final yield fraction must not be negative, got %s",
			domain.ErrInvalidYield, finalYieldFraction.String())
	}
	factor, err := table.Lookup(nutrient, processingMethod)
	if err != nil {
		return decimal.Zero, err
	}
	return initialAmount.Mul(factor).Mul(finalYieldFraction).Round(retentionScale), nil
}

// ApplyRetentionToProfile runs ApplyRetention over every known nutrient of
// a profile. Unknown nutrients stay unknown and need no table row.
func ApplyRetentionToProfile(table domain.RetentionTable, profile domain.NutrientProfile, processingMethod string, finalYieldFraction decimal.Decimal) (domain.NutrientProfile, error) {
	out := profile
	for _, n := range domain.AllNutrients {
		v := profile.Get(n)
		if !v.Valid {
			continue
		}
		adjusted, err := ApplyRetention(table, string(n), processingMethod, v.Decimal, finalYieldFraction)
		if err != nil {
			return domain.NutrientProfile{}, err
		}
		out = out.With(n, adjusted)
	}
	return out, nil
}
