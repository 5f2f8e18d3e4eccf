package payoff

import (
	"math"

	"github.com/shopspring/decimal"
)

// roundCents rounds a money total half away from zero to two decimals.
func roundCents(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
