package domain

import (
	"fmt"
	"math"
)

// Money is a monetary amount in euro cents. Settlement arithmetic stays exact
// on integers; conversion to and from floats only happens at the edges.
type Money int64

// MoneyFromFloat converts a euro amount into cents, rounded to the nearest cent.
func MoneyFromFloat(euros float64) Money {
	return Money(math.Round(euros * 100))
}

// Float returns the amount in euros.
func (m Money) Float() float64 {
	return float64(m) / 100
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool {
	return m < 0
}

// String formats the amount as a decimal euro value, e.g. "1500.00" or "-0.05".
func (m Money) String() string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}

	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}
