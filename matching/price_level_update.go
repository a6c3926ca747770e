package matching

// PriceLevelUpdateKind is an enumeration of possible price level update kinds (add, update, delete).
type PriceLevelUpdateKind uint8

const (
	// PriceLevelUpdateKindAdd represents add price level update kind.
	PriceLevelUpdateKindAdd PriceLevelUpdateKind = iota + 1
	// PriceLevelUpdateKindUpdate represents update price level update kind.
	PriceLevelUpdateKindUpdate
	// PriceLevelUpdateKindDelete represents delete price level update kind.
	PriceLevelUpdateKindDelete
)

func (uk PriceLevelUpdateKind) String() string {
	switch uk {
	case PriceLevelUpdateKindAdd:
		return "add"
	case PriceLevelUpdateKindUpdate:
		return "update"
	case PriceLevelUpdateKindDelete:
		return "delete"
	default:
		return "unknown"
	}
}

////////////////////////////////////////////////////////////////

// PriceLevelUpdate contains complete info about a price level update.
type PriceLevelUpdate struct {
	Kind   PriceLevelUpdateKind
	Side   OrderSide
	Price  Price   // price of the price level
	Volume float64 // total volume of the price level
	Orders int     // amount of orders queued in the price level
	Top    bool    // top of the order book flag
}
