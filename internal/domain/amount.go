package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// MaxAmountDigits bounds the whole-unit digits of an amount.
	MaxAmountDigits = 18
	// MaxFractionDigits bounds the fraction digits any decimal input may carry,
	// trailing zeros included.
	MaxFractionDigits = 18

	maxDecimalLength = 48
)

// FitsScale reports whether d has at most MaxAmountDigits whole digits and
// no precision finer than scale. The exponent is checked before any
// rescaling so inputs like 1e20000000 are never expanded.
func FitsScale(d decimal.Decimal, scale int32) bool {
	if d.IsZero() {
		return true
	}
	exp := d.Exponent()
	if exp > MaxAmountDigits || exp < -MaxFractionDigits {
		return false
	}
	if int64(d.NumDigits())+int64(exp) > MaxAmountDigits {
		return false
	}
	return d.Equal(d.Truncate(scale))
}

// ValidateAmount checks that amount is strictly positive, no larger than
// MaxAmountDigits whole digits and expressible in whole minor units at the
// given scale (0 for KRW, 2 for cents).
func ValidateAmount(amount decimal.Decimal, scale int32) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if !FitsScale(amount, scale) {
		return ErrInvalidAmount
	}
	return nil
}

// ParseDecimal parses a plain decimal string such as "1250" or "10.25".
// Exponent notation and overlong input are rejected.
func ParseDecimal(s string) (decimal.Decimal, error) {
	if len(s) > maxDecimalLength || strings.ContainsAny(s, "eE") {
		return decimal.Zero, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("ParseDecimal: %w", ErrInvalidAmount)
	}
	return d, nil
}
