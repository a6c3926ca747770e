package matching

// OrderSide is an enumeration of possible trading sides (buy/sell).
type OrderSide uint8

const (
	// OrderSideBuy represents market side which includes only buy orders (bids).
	OrderSideBuy OrderSide = iota + 1
	// OrderSideSell represents market side which includes only sell orders (asks).
	OrderSideSell
)

// Valid returns true if the side is one of the known sides.
func (s OrderSide) Valid() bool {
	return s == OrderSideBuy || s == OrderSideSell
}

// Opposite returns the side orders of the given side are matched against.
func (s OrderSide) Opposite() OrderSide {
	if s == OrderSideBuy {
		return OrderSideSell
	}
	return OrderSideBuy
}

func (s OrderSide) String() string {
	switch s {
	case OrderSideBuy:
		return "bid"
	case OrderSideSell:
		return "ask"
	default:
		return "unknown"
	}
}
