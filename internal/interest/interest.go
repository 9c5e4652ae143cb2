// Package interest projects simple-interest returns on deposit products.
package interest

import (
	"github.com/shopspring/decimal"

	"github.com/withgossing/bank-app/internal/domain"
)

// TaxRate is the interest withholding rate (15.4%).
var TaxRate = decimal.RequireFromString("0.154")

const (
	// rateScale is the finest rate precision accepted, e.g. 3.125%.
	rateScale = 4
	maxMonths = 1200
)

var hundredTwelve = decimal.NewFromInt(100 * 12)

// Projection is the rounded outcome of holding principal for a term.
type Projection struct {
	Principal     decimal.Decimal
	GrossInterest decimal.Decimal
	Tax           decimal.Decimal
	NetInterest   decimal.Decimal
	TotalAmount   decimal.Decimal
}

// Project computes simple interest on principal at annualRatePercent for
// months. principal must be a whole number of minor units at scale. Every
// figure is derived from the exact inputs and rounded once to scale decimal
// places using round-half-to-even.
func Project(principal, annualRatePercent decimal.Decimal, months int, scale int32) (*Projection, error) {
	if principal.IsNegative() || annualRatePercent.IsNegative() || months < 0 {
		return nil, domain.ErrInvalidProjection
	}
	if !domain.FitsScale(principal, scale) || !domain.FitsScale(annualRatePercent, rateScale) || months > maxMonths {
		return nil, domain.ErrInvalidProjection
	}

	// principal * rate * months is exact; the /1200 is the only inexact step.
	numerator := principal.Mul(annualRatePercent).Mul(decimal.NewFromInt(int64(months)))

	gross := numerator.Div(hundredTwelve)
	tax := numerator.Mul(TaxRate).Div(hundredTwelve)
	net := numerator.Mul(decimal.NewFromInt(1).Sub(TaxRate)).Div(hundredTwelve)

	return &Projection{
		Principal:     principal,
		GrossInterest: gross.RoundBank(scale),
		Tax:           tax.RoundBank(scale),
		NetInterest:   net.RoundBank(scale),
		TotalAmount:   principal.Add(net).RoundBank(scale),
	}, nil
}
