package matching

import "fmt"

// Trade is an immutable record of one completed match.
type Trade struct {
	BidOrderID   uint64
	AskOrderID   uint64
	MakerOrderID uint64 // earlier order in a sweep, resting order for market orders
	TakerOrderID uint64
	Price        Price
	Quantity     float64
	Timestamp    uint64
}

// Notional returns traded quote volume (price multiplied by quantity).
func (t Trade) Notional() float64 {
	return t.Price.Float64() * t.Quantity
}

func (t Trade) String() string {
	return fmt.Sprintf("Trade(maker=%d, taker=%d, price=%s, quantity=%g, timestamp=%d)",
		t.MakerOrderID, t.TakerOrderID, t.Price, t.Quantity, t.Timestamp)
}
