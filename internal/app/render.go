package app

import "github.com/shopspring/decimal"

// Presentation rounding: currency to 2 decimals, unit prices to 4, usage
// to 2. The engine computes in full precision; only output is rounded.

func formatMoney(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

func formatPrice(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(4)
}

func formatKWH(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}
