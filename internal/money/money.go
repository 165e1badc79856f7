// Package money converts prices between major currency units and integer
// cents. All persistence and comparison happens in cents to avoid
// floating-point rounding error.
package money

import (
	"strings"

	"github.com/shopspring/decimal"

	apperrors "booksy/internal/errors"
)

// ToCents parses a price given in major currency units ("12.50", "12") and
// returns the rounded amount in cents. Negative and non-numeric inputs are
// rejected with ErrInvalidPrice.
func ToCents(price string) (int64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(price))
	if err != nil {
		return 0, apperrors.ErrInvalidPrice
	}
	cents := d.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	if cents < 0 {
		return 0, apperrors.ErrInvalidPrice
	}
	return cents, nil
}

// ToCentsOptional parses like ToCents but treats empty, non-numeric and
// negative inputs as "not provided". Listing price filters use this so a junk
// min/max query parameter never fails the whole request.
func ToCentsOptional(price string) (int64, bool) {
	if strings.TrimSpace(price) == "" {
		return 0, false
	}
	cents, err := ToCents(price)
	if err != nil {
		return 0, false
	}
	return cents, true
}
