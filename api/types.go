// Package api - HTTP types for the fee calculator.
// Amounts travel as the same 만원 strings the calculator form collects.
package api

import (
	"strings"

	"barodeal/core/fee"
	"barodeal/core/schedule"
	"barodeal/core/types"
	apperrors "barodeal/internal/errors"
)

// CalculateRequest is the input to POST /v1/calculate
type CalculateRequest struct {
	Region       string `json:"region" binding:"omitempty,oneof=seoul 서울 서울특별시"`
	DealType     string `json:"dealType" binding:"omitempty,max=32"`
	PropertyType string `json:"propertyType" binding:"omitempty,max=64"`

	// Price is used by sale and lease-deposit deals
	Price string `json:"price" binding:"omitempty,max=32"`

	// Deposit and MonthlyRent are used by lease-with-rent deals
	Deposit     string `json:"deposit" binding:"omitempty,max=32"`
	MonthlyRent string `json:"monthlyRent" binding:"omitempty,max=32"`

	// NegotiatedRate is a percentage such as "0.3"
	NegotiatedRate string `json:"negotiatedRate" binding:"omitempty,max=16"`
}

// toFeeRequest maps labels and canonical names onto the engine's enums.
// Values the parsers do not know are passed through so the engine can
// report them.
func (r CalculateRequest) toFeeRequest() fee.Request {
	req := fee.Request{
		Price:          r.Price,
		Deposit:        r.Deposit,
		MonthlyRent:    r.MonthlyRent,
		NegotiatedRate: r.NegotiatedRate,
	}
	if region, ok := types.ParseRegion(r.Region); ok {
		req.Region = region
	}
	if deal, ok := types.ParseDealType(r.DealType); ok {
		req.Deal = deal
	} else {
		req.Deal = types.DealType(strings.TrimSpace(r.DealType))
	}
	if p := strings.TrimSpace(r.PropertyType); p != "" {
		req.Property = types.ParsePropertyType(p)
	}
	return req
}

// CalculateResponse is the output of POST /v1/calculate
type CalculateResponse struct {
	State      fee.State       `json:"state"`
	Result     *fee.Result     `json:"result,omitempty"`
	Comparison *fee.Comparison `json:"comparison,omitempty"`
	Display    *Display        `json:"display,omitempty"`
	Error      *ErrorBody      `json:"error,omitempty"`
}

// Display carries the formatted strings the calculator shows
type Display struct {
	TransactionAmount string `json:"transactionAmount"`
	UsedRate          string `json:"usedRate"`
	Commission        string `json:"commission"`
	VAT               string `json:"vat"`
	CommissionWithVAT string `json:"commissionWithVat"`
	Discounted        string `json:"discounted"`
	Savings           string `json:"savings"`
}

func newDisplay(r *fee.Result, c *fee.Comparison) *Display {
	return &Display{
		TransactionAmount: fee.FormatManwon(r.TransactionAmount),
		UsedRate:          fee.FormatRate(r.UsedRate),
		Commission:        fee.FormatWon(r.Commission),
		VAT:               fee.FormatWon(r.VAT),
		CommissionWithVAT: fee.FormatWon(r.CommissionWithVAT),
		Discounted:        fee.FormatWon(c.Discounted),
		Savings:           fee.FormatWon(c.Savings),
	}
}

// ErrorBody is the error half of every failed response
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func errorBody(err *apperrors.Error) *ErrorBody {
	return &ErrorBody{
		Code:    string(err.Type),
		Message: err.Message,
		Field:   err.Field,
	}
}

// SchedulesResponse is the output of GET /v1/schedules
type SchedulesResponse struct {
	Regions     []types.Region      `json:"regions"`
	Fingerprint string              `json:"fingerprint"`
	Schedules   []schedule.Schedule `json:"schedules"`
}
