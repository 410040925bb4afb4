package report

import (
	"math"

	"github.com/dustin/go-humanize"
)

// FormatPrice formats an amount with thousands separators and two decimals.
func FormatPrice(v float64) string {
	if bad(v) {
		return "n/a"
	}
	return humanize.FormatFloat("#,###.##", v)
}

// FormatMM formats a length in millimetres, dropping trailing zeros.
func FormatMM(v float64) string {
	if bad(v) {
		return "n/a"
	}
	return humanize.CommafWithDigits(v, 1)
}

// FormatMeters formats a length in metres.
func FormatMeters(v float64) string {
	if bad(v) {
		return "n/a"
	}
	return humanize.CommafWithDigits(v, 2) + " m"
}

// FormatVolume formats a volume in cubic metres.
func FormatVolume(v float64) string {
	if bad(v) {
		return "n/a"
	}
	return humanize.CommafWithDigits(v, 4) + " m³"
}

// FormatDeflection formats a deflection with three decimals.
func FormatDeflection(v float64) string {
	if bad(v) {
		return "n/a"
	}
	return humanize.FormatFloat("#,###.###", v)
}

func bad(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}
