package utils

import "fmt"

// ValueNA is the sentinel shown when a metric is absent.
const ValueNA = "N/A"

// FormatPercent renders a fractional rate (0.05 -> "5.0%").
func FormatPercent(value float64) string {
	return fmt.Sprintf("%.1f%%", value*100)
}

// FormatBillions renders a currency amount scaled to billions (5e9 -> "5.0B").
func FormatBillions(value float64) string {
	return fmt.Sprintf("%.1fB", value/1e9)
}

// FormatRatio renders a plain ratio to two decimals.
func FormatRatio(value float64) string {
	return fmt.Sprintf("%.2f", value)
}

// FormatDecimal renders a value to one decimal.
func FormatDecimal(value float64) string {
	return fmt.Sprintf("%.1f", value)
}

func ToPointer[T any](value T) *T {
	return &value
}
