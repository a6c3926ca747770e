package matching

import "fmt"

// Order is a unit of interest resting in the order book or matched in flight.
// Orders are values: the book hands out copies and keeps the originals
// inside the price level they rest in.
type Order struct {
	id        uint64
	side      OrderSide
	price     Price
	quantity  float64 // remaining quantity, strictly positive while resting
	timestamp uint64  // arrival order used for time priority
}

// NewOrder creates an order value.
func NewOrder(id uint64, side OrderSide, price Price, quantity float64, timestamp uint64) Order {
	return Order{
		id:        id,
		side:      side,
		price:     price,
		quantity:  quantity,
		timestamp: timestamp,
	}
}

////////////////////////////////////////////////////////////////
// Getters
////////////////////////////////////////////////////////////////

// ID returns the order id.
func (o Order) ID() uint64 {
	return o.id
}

// Side returns the order side.
func (o Order) Side() OrderSide {
	return o.side
}

// IsBuy returns true if the order rests on the bid side.
func (o Order) IsBuy() bool {
	return o.side == OrderSideBuy
}

// IsSell returns true if the order rests on the ask side.
func (o Order) IsSell() bool {
	return o.side == OrderSideSell
}

// Price returns the order limit price.
func (o Order) Price() Price {
	return o.price
}

// Quantity returns the remaining order quantity.
func (o Order) Quantity() float64 {
	return o.quantity
}

// Timestamp returns the order arrival timestamp.
func (o Order) Timestamp() uint64 {
	return o.timestamp
}

func (o Order) String() string {
	return fmt.Sprintf("Order(id=%d, side=%s, price=%s, quantity=%g, timestamp=%d)",
		o.id, o.side, o.price, o.quantity, o.timestamp)
}
