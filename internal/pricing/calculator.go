package pricing

import (
	"errors"
	"math"
)

var (
	// ErrInvalidInput is returned when the base price or markup percentage
	// cannot produce a meaningful quote (non-finite values, base price <= 0).
	ErrInvalidInput = errors.New("invalid base price or markup percentage")
)

// Factors are the financing surcharge multipliers applied to the cash price
// before splitting it into installments. They encode the retailer's financing
// costs and are expected to change over time, so they are injected from
// configuration instead of being inlined at call sites.
type Factors struct {
	ThreeInstallments float64
	SixInstallments   float64
}

// DefaultFactors returns the surcharge multipliers derived from the
// retailer's financing cost analysis.
func DefaultFactors() Factors {
	return Factors{
		ThreeInstallments: 1.1298,
		SixInstallments:   1.2138,
	}
}

// Quote holds the three price points of a quotation. Values are unrounded;
// rounding to currency precision happens at display time only, so repeated
// formatting of the same quote is always consistent.
type Quote struct {
	Cash                 float64
	ThreeInstallmentUnit float64
	SixInstallmentUnit   float64
}

// Calculator computes quotes from a base price and a markup percentage.
// It holds no mutable state and is safe for concurrent use.
type Calculator struct {
	factors Factors
}

// NewCalculator creates a Calculator with the given financing factors.
func NewCalculator(factors Factors) *Calculator {
	return &Calculator{factors: factors}
}

// Compute derives the cash price and the per-installment prices:
//
//	cash     = basePrice * (1 + markupPercent/100)
//	threeper = cash * factor3 / 3
//	sixper   = cash * factor6 / 6
//
// It returns ErrInvalidInput instead of a NaN-poisoned result when either
// input is non-finite or the base price is not strictly positive.
func (c *Calculator) Compute(basePrice, markupPercent float64) (Quote, error) {
	if !isFinite(basePrice) || !isFinite(markupPercent) || basePrice <= 0 {
		return Quote{}, ErrInvalidInput
	}

	cash := basePrice * (1 + markupPercent/100)

	return Quote{
		Cash:                 cash,
		ThreeInstallmentUnit: cash * c.factors.ThreeInstallments / 3,
		SixInstallmentUnit:   cash * c.factors.SixInstallments / 6,
	}, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
