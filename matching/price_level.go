package matching

// PriceLevelL2 contains price and aggregate volume of a price level.
type PriceLevelL2 struct {
	Price  Price
	Volume float64
}

// PriceLevel contains a price tag and the queue of orders resting at the price.
// Levels are pruned from the order book as soon as they become empty.
type PriceLevel struct {
	side  OrderSide
	price Price
	queue *OrderQueue
}

// NewPriceLevel creates and returns new empty PriceLevel instance.
func NewPriceLevel(side OrderSide, price Price) *PriceLevel {
	return &PriceLevel{
		side:  side,
		price: price,
		queue: NewOrderQueue(),
	}
}

////////////////////////////////////////////////////////////////
// Getters
////////////////////////////////////////////////////////////////

// Side returns side of the price level.
func (pl *PriceLevel) Side() OrderSide {
	return pl.side
}

// Price returns price of the price level.
func (pl *PriceLevel) Price() Price {
	return pl.price
}

// Volume returns total orders volume.
func (pl *PriceLevel) Volume() float64 {
	return pl.queue.TotalQuantity()
}

// Len returns amount of orders in the queue.
func (pl *PriceLevel) Len() int {
	return pl.queue.Len()
}

// IsEmpty returns true if no orders rest at the price level.
func (pl *PriceLevel) IsEmpty() bool {
	return pl.queue.IsEmpty()
}

// Queue returns the order queue.
func (pl *PriceLevel) Queue() *OrderQueue {
	return pl.queue
}

// Orders returns orders resting at the price level in arrival order.
func (pl *PriceLevel) Orders() []Order {
	return pl.queue.Orders()
}

// L2 returns the aggregated view of the price level.
func (pl *PriceLevel) L2() PriceLevelL2 {
	return PriceLevelL2{Price: pl.price, Volume: pl.Volume()}
}

////////////////////////////////////////////////////////////////
// Delegated queue operations
////////////////////////////////////////////////////////////////

// Add inserts the order at the back of the price level queue.
func (pl *PriceLevel) Add(order Order) {
	pl.queue.Add(order)
}

// Remove removes the order with given id from the price level.
func (pl *PriceLevel) Remove(id uint64) (Order, bool) {
	return pl.queue.Remove(id)
}

// Update replaces quantity of the order with given id.
func (pl *PriceLevel) Update(id uint64, quantity float64) bool {
	return pl.queue.Update(id, quantity)
}

// PeekFirst returns the earliest order of the price level.
func (pl *PriceLevel) PeekFirst() (Order, bool) {
	return pl.queue.PeekFirst()
}

// TakeFirst removes and returns the earliest order of the price level.
func (pl *PriceLevel) TakeFirst() (Order, bool) {
	return pl.queue.TakeFirst()
}

// Clean cleans the price level by removing all queued orders.
func (pl *PriceLevel) Clean() {
	pl.side = 0
	pl.price = 0
	pl.queue.Clean()
}

func (pl *PriceLevel) update(kind PriceLevelUpdateKind, top bool) PriceLevelUpdate {
	return PriceLevelUpdate{
		Kind:   kind,
		Side:   pl.side,
		Price:  pl.price,
		Volume: pl.Volume(),
		Orders: pl.Len(),
		Top:    top,
	}
}
