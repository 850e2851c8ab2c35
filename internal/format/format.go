// Package format renders quantities and money the way the dashboard displays them.
package format

import (
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Number formats v with thousands separators and the given number of decimals.
func Number(v float64, decimals int) string {
	return printer.Sprintf("%."+strconv.Itoa(decimals)+"f", v)
}

// Rupees formats an INR amount as "Rs 1,234.56".
func Rupees(v float64) string {
	return "Rs " + Number(v, 2)
}

// RupeesWhole formats an INR amount without decimals, as "Rs 18,000".
func RupeesWhole(v float64) string {
	return "Rs " + Number(v, 0)
}

// Kilograms formats a quantity as "1,234 kg".
func Kilograms(v float64) string {
	return Number(v, 0) + " kg"
}

// Grams formats a weight as "1,000.00 g".
func Grams(v float64) string {
	return Number(v, 2) + " g"
}
