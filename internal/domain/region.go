package domain

import (
	"fmt"
	"strings"
)

// LabelingRegion is a jurisdiction with its own nutrition label conventions
type LabelingRegion string

const (
	RegionEU     LabelingRegion = "EU"
	RegionUS     LabelingRegion = "US"
	RegionUK     LabelingRegion = "UK"
	RegionCanada LabelingRegion = "CANADA"
	RegionLATAM  LabelingRegion = "LATAM"
)

// LabelBasis tells which quantity panels a region's label carries
type LabelBasis string

const (
	BasisPer100g           LabelBasis = "per_100g"
	BasisPerServing        LabelBasis = "per_serving"
	BasisPer100gAndServing LabelBasis = "per_100g_and_serving"
)

// RegionRules is the formatting record attached to a LabelingRegion.
// Resolve it once per request and pass it down; callers should not switch
// on the region themselves.
type RegionRules struct {
	Region         LabelingRegion `json:"region"`
	DisplayName    string         `json:"displayName"`
	Basis          LabelBasis     `json:"basis"`
	ShowKilojoules bool           `json:"showKilojoules"`
	ShowSodium     bool           `json:"showSodium"`
	SodiumUnit     string         `json:"sodiumUnit"`
	ShowSalt       bool           `json:"showSalt"`
}

// RequiresServing reports whether the label cannot be built without a serving size
func (r RegionRules) RequiresServing() bool {
	return r.Basis == BasisPerServing
}

// SupportsServing reports whether the label carries a per-serving panel when a serving size is known
func (r RegionRules) SupportsServing() bool {
	return r.Basis == BasisPerServing || r.Basis == BasisPer100gAndServing
}

// HasPer100g reports whether the label carries a per-100 g panel
func (r RegionRules) HasPer100g() bool {
	return r.Basis == BasisPer100g || r.Basis == BasisPer100gAndServing
}

var regionRules = map[LabelingRegion]RegionRules{
	RegionEU: {
		Region:         RegionEU,
		DisplayName:    "European Union",
		Basis:          BasisPer100g,
		ShowKilojoules: true,
		ShowSodium:     true,
		SodiumUnit:     "g",
		ShowSalt:       true,
	},
	RegionUS: {
		Region:      RegionUS,
		DisplayName: "United States",
		Basis:       BasisPerServing,
		ShowSodium:  true,
		SodiumUnit:  "mg",
	},
	RegionUK: {
		Region:         RegionUK,
		DisplayName:    "United Kingdom",
		Basis:          BasisPer100gAndServing,
		ShowKilojoules: true,
		ShowSodium:     true,
		SodiumUnit:     "g",
		ShowSalt:       true,
	},
	RegionCanada: {
		Region:      RegionCanada,
		DisplayName: "Canada",
		Basis:       BasisPerServing,
		ShowSodium:  true,
		SodiumUnit:  "mg",
	},
	RegionLATAM: {
		Region:      RegionLATAM,
		DisplayName: "Latin America",
		Basis:       BasisPer100g,
		ShowSodium:  true,
		SodiumUnit:  "mg",
		ShowSalt:    true,
	},
}

// AllRegions lists the supported regions in a stable order
var AllRegions = []LabelingRegion{RegionEU, RegionUS, RegionUK, RegionCanada, RegionLATAM}

// Rules returns the formatting record for the region
func (r LabelingRegion) Rules() (RegionRules, error) {
	rules, ok := regionRules[r]
	if !ok {
		return RegionRules{}, fmt.Errorf("%w: %q", ErrUnsupportedRegion, string(r))
	}
	return rules, nil
}

// ParseLabelingRegion resolves a region name case-insensitively
func ParseLabelingRegion(name string) (LabelingRegion, error) {
	region := LabelingRegion(strings.ToUpper(strings.TrimSpace(name)))
	if _, ok := regionRules[region]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedRegion, name)
	}
	return region, nil
}

// ResolveRegionRules parses a region name and returns its rules
func ResolveRegionRules(name string) (RegionRules, error) {
	region, err := ParseLabelingRegion(name)
	if err != nil {
		return RegionRules{}, err
	}
	return region.Rules()
}
