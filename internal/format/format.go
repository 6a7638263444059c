package format

import (
	"fmt"
	"math"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Placeholder is shown in place of a value that is not available.
const Placeholder = "—"

var printer = message.NewPrinter(language.English)

// USDPrice formats a token price. Sub-cent prices keep four significant digits.
// Example: USDPrice(1234.5) => "$1,234.50", USDPrice(0.00001234) => "$0.00001234"
func USDPrice(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Placeholder
	}
	neg := v < 0
	if neg {
		v = -v
	}
	var out string
	switch {
	case v == 0:
		out = "$0.00"
	case v >= 1:
		out = "$" + printer.Sprintf("%.2f", v)
	case v >= 0.01:
		out = "$" + printer.Sprintf("%.4f", v)
	default:
		// digits after the point needed for four significant figures
		decimals := int(math.Ceil(-math.Log10(v))) + 3
		if decimals > 12 {
			decimals = 12
		}
		out = "$" + printer.Sprintf(fmt.Sprintf("%%.%df", decimals), v)
	}
	if neg {
		return "-" + out
	}
	return out
}

// CompactUSD formats large amounts such as market caps: "$1.23M", "$45.6K".
func CompactUSD(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Placeholder
	}
	neg := v < 0
	if neg {
		v = -v
	}
	var out string
	switch {
	case v >= 1e12:
		out = "$" + trimZeros(printer.Sprintf("%.2f", v/1e12)) + "T"
	case v >= 1e9:
		out = "$" + trimZeros(printer.Sprintf("%.2f", v/1e9)) + "B"
	case v >= 1e6:
		out = "$" + trimZeros(printer.Sprintf("%.2f", v/1e6)) + "M"
	case v >= 1e3:
		out = "$" + trimZeros(printer.Sprintf("%.1f", v/1e3)) + "K"
	default:
		out = "$" + printer.Sprintf("%.0f", v)
	}
	if neg {
		return "-" + out
	}
	return out
}

// Percent formats a signed percentage change: "+5.20%", "-0.75%".
func Percent(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Placeholder
	}
	if v > 0 {
		return "+" + printer.Sprintf("%.2f", v) + "%"
	}
	return printer.Sprintf("%.2f", v) + "%"
}

// Trend values.
const (
	TrendUp   = "up"
	TrendDown = "down"
	TrendFlat = "flat"
)

// Trend classifies a percentage change for styling.
func Trend(v float64) string {
	switch {
	case v > 0:
		return TrendUp
	case v < 0:
		return TrendDown
	default:
		return TrendFlat
	}
}

// Timestamp formats an update time in UTC, or the placeholder for the zero time.
func Timestamp(t time.Time) string {
	if t.IsZero() {
		return Placeholder
	}
	return t.UTC().Format("Jan 2, 2006 15:04 UTC")
}

func trimZeros(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
