package usecase

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trazia/backend/internal/domain"
)

func TestScaleToBasis(t *testing.T) {
	profile := domain.NutrientProfile{Energy: nd("200"), Protein: nd("3.33")}

	t.Run("scales known nutrients", func(t *testing.T) {
		got, err := ScaleToBasis(profile, d("30"), d("100"), ScaleOptions{})
		require.NoError(t, err)
		assertKnown(t, "60", got.Energy, "energy")
		// 0.999 rounds half-up to 2 places
		assertKnown(t, "1", got.Protein, "protein")
		assert.False(t, got.Fat.Valid)
	})

	t.Run("zero fill", func(t *testing.T) {
		got, err := ScaleToBasis(profile, d("30"), d("100"), ScaleOptions{ZeroFill: true})
		require.NoError(t, err)
		assertKnown(t, "0", got.Fat, "fat")
		assertKnown(t, "0", got.Sodium, "sodium")
	})

	t.Run("identity", func(t *testing.T) {
		got, err := ScaleToBasis(profile, d("100"), d("100"), ScaleOptions{})
		require.NoError(t, err)
		assert.Equal(t, profile.Energy.Decimal.String(), got.Energy.Decimal.String())
	})

	t.Run("does not modify input", func(t *testing.T) {
		_, err := ScaleToBasis(profile, d("50"), d("100"), ScaleOptions{ZeroFill: true})
		require.NoError(t, err)
		assert.False(t, profile.Fat.Valid)
		assertKnown(t, "200", profile.Energy, "energy")
	})
}

func TestScaleToBasis_InvalidBasis(t *testing.T) {
	tests := []struct {
		name   string
		target string
		source string
	}{
		{"zero target", "0", "100"},
		{"negative target", "-5", "100"},
		{"zero source", "30", "0"},
		{"negative source", "30", "-100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ScaleToBasis(domain.NutrientProfile{}, d(tt.target), d(tt.source), ScaleOptions{})
			assert.True(t, errors.Is(err, domain.ErrInvalidServingSize), "error = %v", err)
		})
	}
}

func TestNormalizeProfile(t *testing.T) {
	t.Run("defaults source to 100 g", func(t *testing.T) {
		got, err := NormalizeProfile(domain.NutrientProfile{Energy: nd("100")}, d("50"), d("0"), ScaleOptions{})
		require.NoError(t, err)
		assertKnown(t, "50", got.Energy, "energy")
		assert.False(t, got.Fat.Valid)
	})

	t.Run("zero fill", func(t *testing.T) {
		got, err := NormalizeProfile(domain.NutrientProfile{Energy: nd("100")}, d("50"), d("100"), ScaleOptions{ZeroFill: true})
		require.NoError(t, err)
		assertKnown(t, "0", got.Fat, "fat")
	})

	t.Run("rejects negative values", func(t *testing.T) {
		_, err := NormalizeProfile(domain.NutrientProfile{Fat: nd("-1")}, d("50"), d("100"), ScaleOptions{})
		assert.True(t, errors.Is(err, domain.ErrInvalidIngredient), "error = %v", err)
	})
}

func TestYieldBasisProfile(t *testing.T) {
	aggregate := domain.NutrientProfile{Energy: nd("100"), Sodium: nd("0.24")}

	t.Run("concentrates when product loses mass", func(t *testing.T) {
		got, err := YieldBasisProfile(aggregate, d("1000"), d("800"))
		require.NoError(t, err)
		assertKnown(t, "125", got.Energy, "energy")
		assertKnown(t, "0.3", got.Sodium, "sodium")
	})

	t.Run("dilutes when product gains mass", func(t *testing.T) {
		got, err := YieldBasisProfile(aggregate, d("1000"), d("2000"))
		require.NoError(t, err)
		assertKnown(t, "50", got.Energy, "energy")
	})

	t.Run("invalid yield", func(t *testing.T) {
		_, err := YieldBasisProfile(aggregate, d("1000"), d("0"))
		assert.True(t, errors.Is(err, domain.ErrInvalidYield))
	})

	t.Run("no ingredient mass", func(t *testing.T) {
		_, err := YieldBasisProfile(aggregate, d("0"), d("800"))
		assert.True(t, errors.Is(err, domain.ErrEmptyRecipe))
	})
}

func TestWithDerivedSalt(t *testing.T) {
	t.Run("derives salt from sodium grams", func(t *testing.T) {
		got := WithDerivedSalt(domain.NutrientProfile{Sodium: nd("0.4")})
		assertKnown(t, "1", got.Salt, "salt")
	})

	t.Run("keeps declared salt", func(t *testing.T) {
		got := WithDerivedSalt(domain.NutrientProfile{Sodium: nd("0.4"), Salt: nd("2")})
		assertKnown(t, "2", got.Salt, "salt")
	})

	t.Run("unknown sodium leaves salt unknown", func(t *testing.T) {
		got := WithDerivedSalt(domain.NutrientProfile{Energy: nd("10")})
		assert.False(t, got.Salt.Valid)
	})
}

func TestWithDerivedSodium(t *testing.T) {
	t.Run("derives sodium grams from salt", func(t *testing.T) {
		got := WithDerivedSodium(domain.NutrientProfile{Salt: nd("1")})
		assertKnown(t, "0.4", got.Sodium, "sodium")
	})

	t.Run("keeps declared sodium", func(t *testing.T) {
		got := WithDerivedSodium(domain.NutrientProfile{Sodium: nd("0.1"), Salt: nd("1")})
		assertKnown(t, "0.1", got.Sodium, "sodium")
	})

	t.Run("unknown salt leaves sodium unknown", func(t *testing.T) {
		got := WithDerivedSodium(domain.NutrientProfile{Energy: nd("10")})
		assert.False(t, got.Sodium.Valid)
	})
}

func TestRoundProfile(t *testing.T) {
	got := RoundProfile(domain.NutrientProfile{Fat: nd("1.005"), Protein: nd("2.004")}, 2)
	assertKnown(t, "1.01", got.Fat, "fat")
	assertKnown(t, "2", got.Protein, "protein")
	assert.False(t, got.Energy.Valid)
}
