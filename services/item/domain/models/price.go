package models

import (
	"errors"
	"math"
)

// Price is a non-negative, finite amount.
type Price float64

// NewPrice constructs a valid Price. Zero is allowed.
func NewPrice(v float64) (Price, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.New("price must be a finite number")
	}
	if v < 0 {
		return 0, errors.New("price must be greater than or equal to 0")
	}
	return Price(v), nil
}

// Float64 returns the underlying value.
func (p Price) Float64() float64 {
	return float64(p)
}
