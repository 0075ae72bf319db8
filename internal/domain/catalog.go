package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CatalogProduct is a product profile resolved from an external food database
type CatalogProduct struct {
	FdcID       string          `json:"fdcId"`
	Description string          `json:"description"`
	Profile     NutrientProfile `json:"profile"`
	Source      string          `json:"source"` // "USDA" or "Cache"
	CachedAt    time.Time       `json:"cachedAt,omitempty"`
}

// RetentionFactor is one row of the retention factor table
type RetentionFactor struct {
	Nutrient         string          `json:"nutrient"`
	ProcessingMethod string          `json:"processingMethod"`
	Fraction         decimal.Decimal `json:"retentionFactor"`
	Description      string          `json:"description,omitempty"`
}

// USDAFood represents a food item from the USDA FoodData Central API
type USDAFood struct {
	FdcID       int            `json:"fdcId"`
	Description string         `json:"description"`
	DataType    string         `json:"dataType"`
	FoodClass   string         `json:"foodClass,omitempty"`
	Nutrients   []USDANutrient `json:"foodNutrients"`
}

// USDANutrient represents a single nutrient from USDA data.
// The details endpoint nests id/name/unit under "nutrient" and the value
// under "amount"; the search endpoint flattens them.
type USDANutrient struct {
	NutrientID   int     `json:"nutrientId"`
	NutrientName string  `json:"nutrientName"`
	UnitName     string  `json:"unitName"`
	Value        float64 `json:"value"`

	Nutrient *USDANutrientRef `json:"nutrient,omitempty"`
	Amount   *float64         `json:"amount,omitempty"`
}

// USDANutrientRef is the nested nutrient descriptor of the details endpoint
type USDANutrientRef struct {
	ID       int    `json:"id"`
	Number   string `json:"number"`
	Name     string `json:"name"`
	UnitName string `json:"unitName"`
}

// ID returns the nutrient id from whichever shape was decoded
func (n USDANutrient) ID() int {
	if n.NutrientID != 0 {
		return n.NutrientID
	}
	if n.Nutrient != nil {
		return n.Nutrient.ID
	}
	return 0
}

// Quantity returns the nutrient amount from whichever shape was decoded
func (n USDANutrient) Quantity() float64 {
	if n.Amount != nil {
		return *n.Amount
	}
	return n.Value
}

// Unit returns the unit name from whichever shape was decoded
func (n USDANutrient) Unit() string {
	if n.UnitName != "" {
		return n.UnitName
	}
	if n.Nutrient != nil {
		return n.Nutrient.UnitName
	}
	return ""
}
