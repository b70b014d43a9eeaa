package services

import (
	"github.com/shopspring/decimal"
)

const neutralChange = "0.00%"

var hundred = decimal.NewFromInt(100)

// PriceChangePercent calcula la variación de 24h entre el precio de apertura y el último precio.
// Devuelve por ejemplo "+2.15%" o "-0.40%". Si algún valor no es numérico o
// la apertura es cero devuelve "0.00%".
func PriceChangePercent(lastPrice, openPrice string) string {
	last, err := decimal.NewFromString(lastPrice)
	if err != nil {
		return neutralChange
	}
	open, err := decimal.NewFromString(openPrice)
	if err != nil {
		return neutralChange
	}

	if open.IsZero() {
		return neutralChange
	}

	// DivRound redondea half-up (alejándose de cero) a 4 decimales
	percent := last.Sub(open).DivRound(open, 4).Mul(hundred)

	sign := ""
	if !percent.IsNegative() {
		sign = "+"
	}
	return sign + percent.StringFixed(2) + "%"
}
