package usecase

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trazia/backend/internal/domain"
)

func TestComputeDailyValues(t *testing.T) {
	dv := ComputeDailyValues(domain.NutrientProfile{
		Energy:  nd("2000"),
		Protein: nd("25"),
		Sodium:  nd("1.15"),
		Salt:    nd("6"),
		Sugars:  nd("1"),
	})

	assertKnown(t, "100", dv.Energy, "energy")
	assertKnown(t, "50", dv.Protein, "protein")
	assertKnown(t, "50", dv.Sodium, "sodium")
	assertKnown(t, "120", dv.Salt, "salt")
	assertKnown(t, "2", dv.Sugars, "sugars")
	// absent nutrients read as 0%
	assertKnown(t, "0", dv.Fat, "fat")
	assertKnown(t, "0", dv.Fiber, "fiber")
}

func TestComputeDailyValues_Rounding(t *testing.T) {
	dv := ComputeDailyValues(domain.NutrientProfile{Energy: nd("287.5"), Sodium: nd("0.12")})
	assertKnown(t, "14.38", dv.Energy, "energy")
	assertKnown(t, "5.22", dv.Sodium, "sodium")
}

func TestComputeDailyValuesWith_BadReference(t *testing.T) {
	missing := domain.DefaultReferenceIntakes()
	delete(missing, domain.NutrientFiber)

	zero := domain.DefaultReferenceIntakes()
	zero[domain.NutrientProtein] = d("0")

	for name, intakes := range map[string]domain.ReferenceIntakes{"missing": missing, "zero": zero} {
		t.Run(name, func(t *testing.T) {
			_, err := ComputeDailyValuesWith(domain.NutrientProfile{Energy: nd("100")}, intakes)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrStartupConfiguration))
		})
	}
}

func TestComputeDailyValuesWith_CustomIntakes(t *testing.T) {
	intakes := domain.DefaultReferenceIntakes()
	intakes[domain.NutrientEnergy] = d("2500")

	dv, err := ComputeDailyValuesWith(domain.NutrientProfile{Energy: nd("500")}, intakes)
	require.NoError(t, err)
	assertKnown(t, "20", dv.Energy, "energy")

	// the shared default is untouched
	assertKnown(t, "25", ComputeDailyValues(domain.NutrientProfile{Energy: nd("500")}).Energy, "energy")
}
