package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLabelingRegion(t *testing.T) {
	tests := []struct {
		input   string
		want    LabelingRegion
		wantErr bool
	}{
		{"EU", RegionEU, false},
		{" us ", RegionUS, false},
		{"Canada", RegionCanada, false},
		{"latam", RegionLATAM, false},
		{"uk", RegionUK, false},
		{"", "", true},
		{"AU", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLabelingRegion(tt.input)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrUnsupportedRegion))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRegionRules(t *testing.T) {
	tests := []struct {
		region          LabelingRegion
		requiresServing bool
		supportsServing bool
		hasPer100g      bool
		kilojoules      bool
		salt            bool
		sodiumUnit      string
	}{
		{RegionEU, false, false, true, true, true, "g"},
		{RegionUK, false, true, true, true, true, "g"},
		{RegionUS, true, true, false, false, false, "mg"},
		{RegionCanada, true, true, false, false, false, "mg"},
		{RegionLATAM, false, false, true, false, true, "mg"},
	}

	for _, tt := range tests {
		t.Run(string(tt.region), func(t *testing.T) {
			rules, err := tt.region.Rules()
			require.NoError(t, err)
			assert.Equal(t, tt.region, rules.Region)
			assert.NotEmpty(t, rules.DisplayName)
			assert.Equal(t, tt.requiresServing, rules.RequiresServing())
			assert.Equal(t, tt.supportsServing, rules.SupportsServing())
			assert.Equal(t, tt.hasPer100g, rules.HasPer100g())
			assert.Equal(t, tt.kilojoules, rules.ShowKilojoules)
			assert.Equal(t, tt.salt, rules.ShowSalt)
			assert.True(t, rules.ShowSodium)
			assert.Equal(t, tt.sodiumUnit, rules.SodiumUnit)
		})
	}
}

func TestAllRegionsHaveRules(t *testing.T) {
	for _, region := range AllRegions {
		_, err := region.Rules()
		assert.NoError(t, err, "%s", region)
	}

	_, err := LabelingRegion("XX").Rules()
	assert.True(t, errors.Is(err, ErrUnsupportedRegion))
}
