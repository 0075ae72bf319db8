// Package units holds the scalar conversions used on nutrition labels.
// Every function is pure and rounds half-up (away from zero).
package units

import "github.com/shopspring/decimal"

var (
	saltPerSodium     = decimal.RequireFromString("2.5")
	kilojoulesPerKcal = decimal.RequireFromString("4.184")
	milligramsPerGram = decimal.NewFromInt(1000)
)

// SaltFromSodium converts sodium in mg to salt in g: mg × 2.5 / 1000, 2 places.
func SaltFromSodium(sodiumMg decimal.Decimal) decimal.Decimal {
	return sodiumMg.Mul(saltPerSodium).DivRound(milligramsPerGram, 2)
}

// SodiumFromSalt converts salt in g to sodium in mg, 2 places.
func SodiumFromSalt(saltG decimal.Decimal) decimal.Decimal {
	return saltG.Mul(milligramsPerGram).DivRound(saltPerSodium, 2)
}

// KilojoulesFromKilocalories converts kcal to kJ, whole number.
func KilojoulesFromKilocalories(kcal decimal.Decimal) decimal.Decimal {
	return kcal.Mul(kilojoulesPerKcal).Round(0)
}

// KilocaloriesFromKilojoules converts kJ to kcal, 2 places.
func KilocaloriesFromKilojoules(kj decimal.Decimal) decimal.Decimal {
	return kj.DivRound(kilojoulesPerKcal, 2)
}

// GramsToMilligrams converts g to mg, 2 places.
func GramsToMilligrams(g decimal.Decimal) decimal.Decimal {
	return g.Mul(milligramsPerGram).Round(2)
}

// MilligramsToGrams converts mg to g, 6 places so small sodium values survive.
func MilligramsToGrams(mg decimal.Decimal) decimal.Decimal {
	return mg.DivRound(milligramsPerGram, 6)
}
