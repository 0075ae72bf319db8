package usecase

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trazia/backend/internal/domain"
)

func testRetentionTable() fakeRetentionTable {
	return fakeRetentionTable{
		"protein/boiling": d("0.9"),
		"energy/boiling":  d("1"),
		"fat/frying":      d("0.75"),
	}
}

func TestApplyRetention(t *testing.T) {
	tests := []struct {
		name     string
		nutrient string
		method   string
		initial  string
		fraction string
		want     string
	}{
		{"factor only", "protein", "boiling", "10", "1", "9"},
		{"factor and yield fraction", "protein", "boiling", "10", "0.8", "7.2"},
		{"case insensitive key", "FAT", "Frying", "20", "1", "15"},
		{"zero amount", "fat", "frying", "0", "1", "0"},
		{"six places", "protein", "boiling", "1.2345678", "1", "1.111111"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ApplyRetention(testRetentionTable(), tt.nutrient, tt.method, d(tt.initial), d(tt.fraction))
			require.NoError(t, err)
			assertDecimal(t, tt.want, got)
		})
	}
}

func TestApplyRetention_NoFullRetentionFallback(t *testing.T) {
	got, err := ApplyRetention(testRetentionTable(), "protein", "smoking", d("10"), d("1"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrRetentionFactorNotFound))
	assert.True(t, got.IsZero())

	var lookupErr *domain.RetentionLookupError
	require.True(t, errors.As(err, &lookupErr))
	assert.Equal(t, "smoking", lookupErr.ProcessingMethod)
}

func TestApplyRetention_InvalidInputs(t *testing.T) {
	_, err := ApplyRetention(testRetentionTable(), "protein", "boiling", d("10"), d("-0.1"))
	assert.True(t, errors.Is(err, domain.ErrInvalidYield))

	_, err = ApplyRetention(nil, "protein", "boiling", d("10"), d("1"))
	assert.True(t, errors.Is(err, domain.ErrStartupConfiguration))
}

func TestApplyRetentionToProfile(t *testing.T) {
	t.Run("only known nutrients need rows", func(t *testing.T) {
		profile := domain.NutrientProfile{Energy: nd("200"), Protein: nd("10")}
		got, err := ApplyRetentionToProfile(testRetentionTable(), profile, "boiling", d("1"))
		require.NoError(t, err)
		assertKnown(t, "200", got.Energy, "energy")
		assertKnown(t, "9", got.Protein, "protein")
		assert.False(t, got.Fat.Valid)
		// input untouched
		assertKnown(t, "10", profile.Protein, "protein")
	})

	t.Run("missing row for a known nutrient fails", func(t *testing.T) {
		profile := domain.NutrientProfile{Protein: nd("10"), Fat: nd("5")}
		_, err := ApplyRetentionToProfile(testRetentionTable(), profile, "boiling", d("1"))
		assert.True(t, errors.Is(err, domain.ErrRetentionFactorNotFound))
	})
}
