package fee

import (
	"github.com/shopspring/decimal"

	"barodeal/core/schedule"
	"barodeal/core/types"
	apperrors "barodeal/internal/errors"
)

// Request is one calculator submission. Amounts are the raw form strings in
// 만원; NegotiatedRate is a percentage string and may be blank.
type Request struct {
	Region   types.Region       `json:"region,omitempty"`
	Deal     types.DealType     `json:"dealType"`
	Property types.PropertyType `json:"propertyType"`

	// Price is used by sale and lease-deposit deals
	Price string `json:"price,omitempty"`

	// Deposit and MonthlyRent are used by lease-with-rent deals
	Deposit     string `json:"deposit,omitempty"`
	MonthlyRent string `json:"monthlyRent,omitempty"`

	NegotiatedRate string `json:"negotiatedRate,omitempty"`
}

// IsBlank reports whether nothing has been entered yet
func (r Request) IsBlank() bool {
	return r.Deal == "" && r.Property == "" && r.Price == "" &&
		r.Deposit == "" && r.MonthlyRent == "" && r.NegotiatedRate == ""
}

// Result is the regulatory fee for a request
type Result struct {
	Region   types.Region           `json:"region"`
	Deal     types.DealType         `json:"dealType"`
	Property types.PropertyType     `json:"propertyType"`
	Category types.PropertyCategory `json:"category"`

	// PropertyDefaulted is set when the property type was unknown and
	// priced as DefaultCategory
	PropertyDefaulted bool `json:"propertyDefaulted,omitempty"`

	// TransactionAmount is the amount the schedule is applied to, in won
	TransactionAmount decimal.Decimal `json:"transactionAmount"`

	// Tier is the matched schedule row
	Tier schedule.RateTier `json:"tier"`

	// TierFallback is set when no tier contained the amount and the last
	// tier was used instead
	TierFallback bool `json:"tierFallback,omitempty"`

	// AppliedRateCap is the statutory maximum rate of the matched tier
	AppliedRateCap decimal.Decimal `json:"appliedRateCap"`

	// NegotiatedRate is the caller's rate as a fraction, if one was given
	NegotiatedRate *decimal.Decimal `json:"negotiatedRate,omitempty"`

	// UsedRate is min(NegotiatedRate, AppliedRateCap), or AppliedRateCap
	UsedRate decimal.Decimal `json:"usedRate"`

	// Capped is set when the tier's absolute cap replaced the rate-based amount
	Capped bool `json:"capped"`

	Commission        decimal.Decimal `json:"commission"`
	VAT               decimal.Decimal `json:"vat"`
	CommissionWithVAT decimal.Decimal `json:"commissionWithVat"`

	Note string `json:"note"`
}

// Comparison is the discounted-fee view shown next to a result. It is
// derived from Result.Commission and never feeds back into it.
type Comparison struct {
	Original   decimal.Decimal `json:"original"`
	Discounted decimal.Decimal `json:"discounted"`
	Savings    decimal.Decimal `json:"savings"`
}

// DiscountRatio is the share of the regulatory fee the service charges
var DiscountRatio = decimal.RequireFromString("0.5")

// Compare prices the discounted fee against commission.
func Compare(commission decimal.Decimal) Comparison {
	discounted := commission.Mul(DiscountRatio).Round(0)
	return Comparison{
		Original:   commission,
		Discounted: discounted,
		Savings:    commission.Sub(discounted),
	}
}

// State is what the presentation layer should show
type State string

const (
	StatePending  State = "pending"
	StateFailed   State = "failed"
	StateComputed State = "computed"
)

// Outcome is a request's display state with its payload
type Outcome struct {
	State      State            `json:"state"`
	Result     *Result          `json:"result,omitempty"`
	Comparison *Comparison      `json:"comparison,omitempty"`
	Err        *apperrors.Error `json:"error,omitempty"`
}
