// Package fee computes the statutory real-estate brokerage fee for a
// calculator submission.
//
// The pipeline is: validate required fields, convert 만원 form amounts to
// won (folding deposit and rent for lease-with-rent deals), normalise the
// property type, match a schedule tier, clamp any negotiated rate to the
// tier rate, apply the tier cap, then add VAT. Every step is deterministic
// and the Engine holds no mutable state, so one Engine may serve any number
// of goroutines.
package fee

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"barodeal/core/schedule"
	"barodeal/core/types"
	apperrors "barodeal/internal/errors"
	"barodeal/internal/logging"
)

// VATRate is the value added tax charged on top of the commission
var VATRate = decimal.RequireFromString("0.1")

// Engine prices requests against one schedule table
type Engine struct {
	table  *schedule.Table
	region types.Region
	logger *zap.Logger
}

// Option configures an Engine
type Option func(*Engine)

// WithLogger sets the logger used for fallback and default warnings
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithDefaultRegion sets the region used when a request names none
func WithDefaultRegion(region types.Region) Option {
	return func(e *Engine) {
		e.region = region
	}
}

// NewEngine creates an engine over table
func NewEngine(table *schedule.Table, opts ...Option) *Engine {
	e := &Engine{
		table:  table,
		region: types.RegionSeoul,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = logging.Named("fee")
	}
	return e
}

// Table returns the schedule table the engine prices against
func (e *Engine) Table() *schedule.Table {
	return e.table
}

// Evaluate runs Calculate and folds the outcome into a display state. A blank
// request is pending rather than failed.
func (e *Engine) Evaluate(req Request) Outcome {
	if req.IsBlank() {
		return Outcome{State: StatePending}
	}
	result, err := e.Calculate(req)
	if err != nil {
		appErr, ok := apperrors.As(err)
		if !ok {
			appErr = apperrors.Computation("calculation failed", err)
		}
		return Outcome{State: StateFailed, Err: appErr}
	}
	cmp := Compare(result.Commission)
	return Outcome{State: StateComputed, Result: result, Comparison: &cmp}
}

// Calculate prices req. Any failure aborts the whole calculation and is
// returned as a single *errors.Error of type MISSING_INPUT, INVALID_AMOUNT or
// COMPUTATION_ERROR.
func (e *Engine) Calculate(req Request) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = apperrors.Computation("calculation failed", fmt.Errorf("%v", r))
		}
	}()

	if err := validateRequest(req); err != nil {
		return nil, err
	}

	amount, err := transactionAmount(req)
	if err != nil {
		return nil, err
	}

	negotiated, err := ParseNegotiatedRate(req.NegotiatedRate)
	if err != nil {
		return nil, err
	}

	region := req.Region
	if region == "" {
		region = e.region
	}

	category, defaulted := NormalizeProperty(req.Property)
	if defaulted {
		e.logger.Warn("unknown property type priced with default category",
			zap.String("property_type", string(req.Property)),
			zap.String("category", string(category)))
	}

	sched, err := e.table.Lookup(region, category, req.Deal)
	if err != nil {
		return nil, err
	}

	tier, matched := sched.Match(amount)
	if !matched {
		e.logger.Warn("no tier contains amount, using last tier",
			zap.String("schedule", sched.Key.String()),
			zap.String("amount", amount.String()))
	}

	usedRate := tier.Rate
	if negotiated != nil && negotiated.LessThan(tier.Rate) {
		usedRate = *negotiated
	}

	commission := amount.Mul(usedRate).Round(0)
	capped := false
	if tier.Cap != nil && commission.GreaterThan(*tier.Cap) {
		commission = *tier.Cap
		capped = true
	}

	vat := commission.Mul(VATRate).Round(0)

	return &Result{
		Region:            region,
		Deal:              req.Deal,
		Property:          req.Property,
		Category:          category,
		PropertyDefaulted: defaulted,
		TransactionAmount: amount,
		Tier:              tier,
		TierFallback:      !matched,
		AppliedRateCap:    tier.Rate,
		NegotiatedRate:    negotiated,
		UsedRate:          usedRate,
		Capped:            capped,
		Commission:        commission,
		VAT:               vat,
		CommissionWithVAT: commission.Add(vat),
		Note:              describe(sched, tier),
	}, nil
}

func validateRequest(req Request) error {
	if req.Deal == "" {
		return apperrors.MissingInput("dealType")
	}
	if !req.Deal.IsValid() {
		return apperrors.Computation(fmt.Sprintf("unsupported deal type %q", req.Deal), nil)
	}
	if req.Property == "" {
		return apperrors.MissingInput("propertyType")
	}
	if req.Deal.IsRent() {
		if cleanNumber(req.Deposit) == "" {
			return apperrors.MissingInput("deposit")
		}
		if cleanNumber(req.MonthlyRent) == "" {
			return apperrors.MissingInput("monthlyRent")
		}
		return nil
	}
	if cleanNumber(req.Price) == "" {
		return apperrors.MissingInput("price")
	}
	return nil
}

func transactionAmount(req Request) (decimal.Decimal, error) {
	if !req.Deal.IsRent() {
		return ToBaseUnits("price", req.Price)
	}
	deposit, err := ToBaseUnits("deposit", req.Deposit)
	if err != nil {
		return decimal.Zero, err
	}
	rent, err := ToBaseUnits("monthlyRent", req.MonthlyRent)
	if err != nil {
		return decimal.Zero, err
	}
	return RentConversion(deposit, rent), nil
}

// Window renders a tier's amount range in display units: "20,000만원 이상
// 90,000만원 미만", or "all amounts" for a flat schedule.
func Window(s schedule.Schedule, tier schedule.RateTier) string {
	switch {
	case s.Flat():
		return "all amounts"
	case tier.Max == nil:
		return fmt.Sprintf("%s 이상", FormatManwon(tier.Min))
	case tier.Min.IsZero():
		return fmt.Sprintf("%s 미만", FormatManwon(*tier.Max))
	default:
		return fmt.Sprintf("%s 이상 %s 미만", FormatManwon(tier.Min), FormatManwon(*tier.Max))
	}
}

// describe names the matched tier, its rate, its cap and where the table
// came from.
func describe(s schedule.Schedule, tier schedule.RateTier) string {
	capText := "no cap"
	if tier.Cap != nil {
		capText = "cap " + FormatWon(*tier.Cap)
	}

	return fmt.Sprintf("%s %s %s: %s, max rate %s, %s (%s, effective %s)",
		s.Key.Region, s.Key.Category, s.Key.Deal, Window(s, tier), FormatRate(tier.Rate), capText,
		s.Provenance.Source, s.Provenance.EffectiveFrom)
}
