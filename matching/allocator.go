package matching

import (
	"sync"

	"github.com/cryptonstudio/crypton-order-book/types/avl"
	"github.com/cryptonstudio/crypton-order-book/types/list"
)

// Allocator is an object encapsulating all used objects allocation using sync.Pool internally.
// One allocator may be shared by several order books.
type Allocator struct {

	// Price levels
	priceLevels sync.Pool

	// Pools used by containers
	priceLevelNodes sync.Pool // used by avl.Tree[Price, *PriceLevel]
	hintElements    sync.Pool // used by list.List[uint64]
}

// NewAllocator creates and returns new Allocator instance.
func NewAllocator() *Allocator {
	a := new(Allocator)
	// Price levels
	a.priceLevels = sync.Pool{New: func() any {
		return &PriceLevel{queue: newOrderQueue(a)}
	}}
	// Pools used by containers
	a.priceLevelNodes = sync.Pool{New: func() any {
		return new(avl.Node[Price, *PriceLevel])
	}}
	a.hintElements = sync.Pool{New: func() any {
		return new(list.Element[uint64])
	}}
	return a
}

////////////////////////////////////////////////////////////////
// Price levels
////////////////////////////////////////////////////////////////

// GetPriceLevel allocates PriceLevel instance.
func (a *Allocator) GetPriceLevel(side OrderSide, price Price) *PriceLevel {
	// Get from the pool
	pl := a.priceLevels.Get().(*PriceLevel)
	pl.side = side
	pl.price = price
	return pl
}

// PutPriceLevel releases PriceLevel instance.
func (a *Allocator) PutPriceLevel(priceLevel *PriceLevel) {
	// Clean up the instance before releasing
	priceLevel.Clean()
	// Put back to the pool
	a.priceLevels.Put(priceLevel)
}
