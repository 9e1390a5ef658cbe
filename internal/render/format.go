// Package render formats estimates for terminal output: locale-aware
// numbers, CO2e quantities at sensible precision, and a lipgloss score card.
package render

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer is the locale-aware message printer for number formatting.
// English locale keeps thousand separators consistent across environments.
var printer = message.NewPrinter(language.English)

// gramsThreshold is the kg value below which CO2e renders in grams.
const gramsThreshold = 1.0

// FormatNumber formats an integer with thousand separators.
func FormatNumber(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatCO2 renders a kg CO2e quantity at a precision matched to its size:
// grams below 1 kg, one decimal up to a tonne, whole kg beyond.
func FormatCO2(kg float64) string {
	switch {
	case kg < gramsThreshold:
		return fmt.Sprintf("%d g CO2e", int64(math.Round(kg*1000)))
	case kg < 1000:
		return fmt.Sprintf("%.1f kg CO2e", kg)
	default:
		return printer.Sprintf("%d kg CO2e", int64(math.Round(kg)))
	}
}

// FormatDistance renders a km distance with separators and one decimal.
func FormatDistance(km float64) string {
	if km >= 1000 {
		return printer.Sprintf("%d km", int64(math.Round(km)))
	}
	return fmt.Sprintf("%.1f km", km)
}

// FormatPercent renders a [0,1] value as a whole percentage.
func FormatPercent(v float64) string {
	return fmt.Sprintf("%d%%", int(math.Round(v*100)))
}
