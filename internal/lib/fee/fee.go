// Package fee splits a tip into the platform fee and the amount the receiver gets.
package fee

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

const centPlaces = 2

// DefaultRate is the platform fee, 1%.
var DefaultRate = decimal.RequireFromString("0.01")

var (
	ErrInvalidAmount = errors.New("amount must be greater than zero")
	ErrInvalidRate   = errors.New("fee rate must be between 0 and 1")
)

type Policy struct {
	rate decimal.Decimal
}

func NewPolicy(rate decimal.Decimal) (*Policy, error) {
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("%w: got %s", ErrInvalidRate, rate.String())
	}

	return &Policy{rate: rate}, nil
}

func (p *Policy) Rate() decimal.Decimal {
	return p.rate
}

// ComputeSplit returns fee = round2(amount * rate) rounded half-up and net = amount - fee.
func (p *Policy) ComputeSplit(amount decimal.Decimal) (fee, net decimal.Decimal, err error) {
	if !amount.IsPositive() {
		return decimal.Zero, decimal.Zero, ErrInvalidAmount
	}

	fee = amount.Mul(p.rate).Round(centPlaces)
	net = amount.Sub(fee)

	return fee, net, nil
}
