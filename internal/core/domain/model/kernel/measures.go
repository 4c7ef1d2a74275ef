package kernel

import "fmt"

// Money is an amount in cents. Order values, surcharges, base rates and
// freight are all Money so route totals never accumulate float rounding.
type Money int64

// MoneyFromCents is a readability helper for literals in callers and tests.
func MoneyFromCents(cents int64) Money {
	return Money(cents)
}

func (m Money) Cents() int64 {
	return int64(m)
}

func (m Money) IsNegative() bool {
	return m < 0
}

// PercentageOf returns m as a percentage of total. total must be positive.
func (m Money) PercentageOf(total Money) float64 {
	return float64(m) * 100 / float64(total)
}

// String formats the amount with two decimals, e.g. "1234.50".
func (m Money) String() string {
	sign := ""
	cents := int64(m)
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

// Weight is a mass in grams.
type Weight int64

func WeightFromGrams(grams int64) Weight {
	return Weight(grams)
}

func (w Weight) Grams() int64 {
	return int64(w)
}

func (w Weight) IsNegative() bool {
	return w < 0
}

// String formats the weight in kilograms with three decimals, e.g. "12.500kg".
func (w Weight) String() string {
	sign := ""
	grams := int64(w)
	if grams < 0 {
		sign = "-"
		grams = -grams
	}
	return fmt.Sprintf("%s%d.%03dkg", sign, grams/1000, grams%1000)
}
