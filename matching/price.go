package matching

import (
	"math"
	"strconv"

	"gopkg.in/typ.v4"
)

// Price is a limit price with a total order defined over all float64 values.
// NaN is equal to NaN and less than every other value, so it never breaks
// sorted containers. Use Compare or Equal instead of the == operator.
type Price float64

// NewPrice creates price from the float value.
func NewPrice(v float64) Price {
	return Price(v)
}

// Float64 returns the float value of the price.
func (p Price) Float64() float64 {
	return float64(p)
}

// IsNaN returns true if the price is not a number.
func (p Price) IsNaN() bool {
	return math.IsNaN(float64(p))
}

// Compare returns 0 if p == other, -1 if p < other, and +1 if p > other.
func (p Price) Compare(other Price) int {
	pNaN, oNaN := p.IsNaN(), other.IsNaN()
	switch {
	case pNaN && oNaN:
		return 0
	case pNaN:
		return -1
	case oNaN:
		return 1
	default:
		return typ.Compare(float64(p), float64(other))
	}
}

// Equal returns true if both prices are equal in the price order.
func (p Price) Equal(other Price) bool {
	return p.Compare(other) == 0
}

// Less returns true if p is ordered before other.
func (p Price) Less(other Price) bool {
	return p.Compare(other) < 0
}

func (p Price) String() string {
	return strconv.FormatFloat(float64(p), 'f', -1, 64)
}

// comparePrices orders asks from the lowest price.
func comparePrices(a, b Price) int {
	return a.Compare(b)
}

// compareBidPrices orders bids from the highest price.
func compareBidPrices(a, b Price) int {
	return b.Compare(a)
}
