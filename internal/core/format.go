package core

import (
	"strconv"
	"strings"
)

// Placeholder renders in place of an unknown price, cost, or context.
const Placeholder = "—"

var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
}

// FormatCost renders a cost or per-million price for display: two
// decimals from 10 upward, three below, prefixed with the currency
// symbol. Unknown currencies render with "$"; nil renders as the
// placeholder.
func FormatCost(cost *float64, currency string) string {
	if cost == nil {
		return Placeholder
	}
	symbol, ok := currencySymbols[strings.ToUpper(currency)]
	if !ok {
		symbol = "$"
	}
	decimals := 3
	if *cost >= 10 {
		decimals = 2
	}
	return symbol + strconv.FormatFloat(*cost, 'f', decimals, 64)
}

// FormatContext renders a context length; nil renders as the
// placeholder.
func FormatContext(n *int64) string {
	if n == nil {
		return Placeholder
	}
	return strconv.FormatInt(*n, 10)
}
