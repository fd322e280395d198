package utils

import "math"

// roundEpsilon nudges values sitting just below a half-cent boundary caused
// by binary float truncation (e.g. 2.674999999) up before rounding.
const roundEpsilon = 1e-9

// Round rounds a number to 2 decimal places for monetary calculations,
// half-up after the epsilon nudge.
func Round(num float64) float64 {
	return math.Round((num+roundEpsilon)*MoneyPrecision) / MoneyPrecision
}

// Min returns the minimum of two float64 values
func Min(a, b float64) float64 {
	return math.Min(a, b)
}

// IsSettled reports whether an amount is within the settled epsilon of zero.
func IsSettled(amount float64) bool {
	return math.Abs(amount) <= SettledEpsilon
}
