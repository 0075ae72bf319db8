package usecase

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/trazia/backend/internal/domain"
)

const dailyValueScale int32 = 2

// ComputeDailyValues expresses a profile as percentages of the default
// reference intakes. The profile must already be on the basis the label
// reports (per 100 g or per serving).
//
// Unlike aggregation and scaling, an absent nutrient reports 0% here: a
// %DV column has no "unknown" cell.
func ComputeDailyValues(profile domain.NutrientProfile) domain.NutrientProfile {
	out, err := ComputeDailyValuesWith(profile, domain.DefaultReferenceIntakes())
	if err != nil {
		// the default table is validated at init
		panic(err)
	}
	return out
}

// ComputeDailyValuesWith is ComputeDailyValues against a caller-supplied
// reference table. A missing or non-positive reference is a configuration
// error, never a silent zero.
func ComputeDailyValuesWith(profile domain.NutrientProfile, intakes domain.ReferenceIntakes) (domain.NutrientProfile, error) {
	out := domain.NutrientProfile{}
	for _, n := range domain.AllNutrients {
		ref, ok := intakes.Get(n)
		if !ok || !ref.IsPositive() {
			return domain.NutrientProfile{}, fmt.Errorf("%w: no positive reference intake for %s",
				domain.ErrStartupConfiguration, n)
		}
		v := profile.Get(n)
		if !v.Valid {
			out = out.With(n, decimal.Zero)
			continue
		}
		out = out.With(n, v.Decimal.Mul(hundred).DivRound(ref, dailyValueScale))
	}
	return out, nil
}
