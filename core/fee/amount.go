package fee

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	apperrors "barodeal/internal/errors"
)

var (
	// ManwonUnit converts form input (만원) to won
	ManwonUnit = decimal.NewFromInt(10_000)

	// RentThreshold is the converted amount at which the higher rent multiplier applies
	RentThreshold = decimal.NewFromInt(50_000_000)

	// RentMultiplierHigh and RentMultiplierLow are the statutory monthly rent multipliers
	RentMultiplierHigh = decimal.NewFromInt(100)
	RentMultiplierLow  = decimal.NewFromInt(70)

	percent = decimal.NewFromInt(100)
	digits  = regexp.MustCompile(`^[0-9]+$`)

	// plainDecimal rejects signs and exponents in typed rates
	plainDecimal = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?$`)
)

// cleanNumber drops thousands separators and whitespace the form inserts.
func cleanNumber(text string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ',', ' ', '\t', '\u00a0':
			return -1
		}
		return r
	}, text)
}

// ToBaseUnits converts a 만원 amount as typed on the form ("90,000") to won.
// Empty input is MissingInput; anything that is not a positive integer after
// cleaning is InvalidAmount.
func ToBaseUnits(field, text string) (decimal.Decimal, error) {
	cleaned := cleanNumber(text)
	if cleaned == "" {
		return decimal.Zero, apperrors.MissingInput(field)
	}
	if !digits.MatchString(cleaned) {
		return decimal.Zero, apperrors.InvalidAmount(field, text)
	}
	n, err := decimal.NewFromString(cleaned)
	if err != nil || !n.IsPositive() {
		return decimal.Zero, apperrors.InvalidAmount(field, text)
	}
	return n.Mul(ManwonUnit), nil
}

// RentConversion returns the amount a deposit plus monthly rent deal is
// priced at. The 100x result is kept when it reaches the threshold; otherwise
// the 70x result is returned as is, even if that lands above the threshold.
func RentConversion(deposit, monthlyRent decimal.Decimal) decimal.Decimal {
	base := deposit.Add(monthlyRent.Mul(RentMultiplierHigh))
	if base.GreaterThanOrEqual(RentThreshold) {
		return base
	}
	return deposit.Add(monthlyRent.Mul(RentMultiplierLow))
}

// ParseNegotiatedRate reads a percentage typed by the user ("0.3", "0.3%")
// and returns it as a fraction. Blank or zero means no negotiated rate.
func ParseNegotiatedRate(text string) (*decimal.Decimal, error) {
	cleaned := strings.TrimSuffix(cleanNumber(text), "%")
	if cleaned == "" {
		return nil, nil
	}
	if !plainDecimal.MatchString(cleaned) {
		return nil, apperrors.InvalidAmount("negotiatedRate", text)
	}
	pct, err := decimal.NewFromString(cleaned)
	if err != nil {
		return nil, apperrors.InvalidAmount("negotiatedRate", text)
	}
	if pct.IsZero() {
		return nil, nil
	}
	rate := pct.Div(percent)
	return &rate, nil
}
