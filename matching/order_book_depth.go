package matching

import (
	"fmt"
	"strings"
)

////////////////////////////////////////////////////////////////
// Top of book
////////////////////////////////////////////////////////////////

// BestBid returns the highest bid price.
func (ob *OrderBook) BestBid() (Price, bool) {
	return ob.best(OrderSideBuy)
}

// BestAsk returns the lowest ask price.
func (ob *OrderBook) BestAsk() (Price, bool) {
	return ob.best(OrderSideSell)
}

func (ob *OrderBook) best(side OrderSide) (Price, bool) {
	mutex, tree := ob.side(side)
	mutex.RLock()
	defer mutex.RUnlock()
	if top := tree.MostLeft(); top != nil {
		return top.Key(), true
	}
	return 0, false
}

// Spread returns difference between the best ask and the best bid prices
// as of the last mutating call.
func (ob *OrderBook) Spread() (float64, bool) {
	return ob.Stats().GetSpread()
}

// MidPrice returns the middle between the best ask and the best bid prices
// as of the last mutating call.
func (ob *OrderBook) MidPrice() (float64, bool) {
	return ob.Stats().GetMidPrice()
}

// Stats returns snapshot of the order book statistics.
func (ob *OrderBook) Stats() OrderBookStats {
	ob.statsMutex.RLock()
	defer ob.statsMutex.RUnlock()
	return ob.stats
}

////////////////////////////////////////////////////////////////
// Depth
////////////////////////////////////////////////////////////////

// MarketDepth returns up to given amount of price levels per side,
// bids from the highest price and asks from the lowest price.
func (ob *OrderBook) MarketDepth(levels int) (bids, asks []PriceLevelL2) {
	return ob.depth(OrderSideBuy, levels), ob.depth(OrderSideSell, levels)
}

func (ob *OrderBook) depth(side OrderSide, levels int) []PriceLevelL2 {
	if levels <= 0 {
		return []PriceLevelL2{}
	}
	mutex, tree := ob.side(side)
	mutex.RLock()
	defer mutex.RUnlock()

	result := make([]PriceLevelL2, 0, min(levels, tree.Size()))
	tree.IterateInOrder(func(_ Price, level *PriceLevel) bool {
		result = append(result, level.L2())
		return len(result) == levels
	})
	return result
}

// PriceLevels visits price levels of given side from the best price until fn returns true.
// Returned levels must not be modified and fn must not call mutating operations of the book.
func (ob *OrderBook) PriceLevels(side OrderSide, fn func(level *PriceLevel) bool) {
	mutex, tree := ob.side(side)
	mutex.RLock()
	defer mutex.RUnlock()
	tree.IterateInOrder(func(_ Price, level *PriceLevel) bool {
		return fn(level)
	})
}

////////////////////////////////////////////////////////////////
// Totals
////////////////////////////////////////////////////////////////

// TotalOrders returns amount of orders resting in the order book.
func (ob *OrderBook) TotalOrders() int {
	return ob.totalOrders(OrderSideBuy) + ob.totalOrders(OrderSideSell)
}

func (ob *OrderBook) totalOrders(side OrderSide) int {
	total := 0
	ob.PriceLevels(side, func(level *PriceLevel) bool {
		total += level.Len()
		return false
	})
	return total
}

// TotalPriceLevels returns amount of bid and ask price levels.
func (ob *OrderBook) TotalPriceLevels() (bids, asks int) {
	ob.bidsMutex.RLock()
	bids = ob.bids.Size()
	ob.bidsMutex.RUnlock()
	ob.asksMutex.RLock()
	asks = ob.asks.Size()
	ob.asksMutex.RUnlock()
	return
}

// IsEmpty returns true if no orders rest in the order book.
func (ob *OrderBook) IsEmpty() bool {
	bids, asks := ob.TotalPriceLevels()
	return bids == 0 && asks == 0
}

////////////////////////////////////////////////////////////////
// Diagnostics
////////////////////////////////////////////////////////////////

// ValidateConsistency checks that price levels are non-empty and strictly
// ordered on both sides and that the order book is not crossed.
func (ob *OrderBook) ValidateConsistency() bool {
	ob.bidsMutex.RLock()
	defer ob.bidsMutex.RUnlock()
	ob.asksMutex.RLock()
	defer ob.asksMutex.RUnlock()

	// Bids go from the highest price, asks from the lowest one
	if !validSide(&ob.bids, 1) || !validSide(&ob.asks, -1) {
		return false
	}
	bid, ask := ob.bids.MostLeft(), ob.asks.MostLeft()
	if bid != nil && ask != nil && !bid.Key().Less(ask.Key()) {
		return false
	}
	return true
}

// validSide checks that prev.Compare(next) == order for every pair of adjacent levels.
func validSide(tree *priceLevelTree, order int) bool {
	var prev *PriceLevel
	valid := true
	tree.IterateInOrder(func(price Price, level *PriceLevel) bool {
		if level.IsEmpty() || !level.price.Equal(price) {
			valid = false
		} else if prev != nil && prev.price.Compare(level.price) != order {
			valid = false
		}
		prev = level
		return !valid
	})
	return valid
}

func (ob *OrderBook) String() string {
	stats := ob.Stats()
	bids, asks := ob.MarketDepth(defaultDumpDepth)
	bidLevels, askLevels := ob.TotalPriceLevels()

	var sb strings.Builder
	fmt.Fprintf(&sb, "=== ORDER BOOK %s ===\n", ob.symbol.Name())
	if spread, ok := stats.GetSpread(); ok {
		fmt.Fprintf(&sb, "Spread: %.4f\n", spread)
	}
	if mid, ok := stats.GetMidPrice(); ok {
		fmt.Fprintf(&sb, "Mid Price: %.4f\n", mid)
	}
	fmt.Fprintf(&sb, "Total Orders: %d\n", ob.TotalOrders())
	fmt.Fprintf(&sb, "Price Levels - Bids: %d, Asks: %d\n", bidLevels, askLevels)
	if last, ok := stats.GetLastMatchTime(); ok {
		fmt.Fprintf(&sb, "Last Match: %d\n", last)
	}
	sb.WriteString("----------------\n")
	// Asks are printed from the highest shown price down to the best one
	for i := len(asks) - 1; i >= 0; i-- {
		fmt.Fprintf(&sb, "ASK: %.4f | %.4f\n", asks[i].Price.Float64(), asks[i].Volume)
	}
	sb.WriteString("----------------\n")
	for _, level := range bids {
		fmt.Fprintf(&sb, "BID: %.4f | %.4f\n", level.Price.Float64(), level.Volume)
	}
	sb.WriteString("----------------\n")
	fmt.Fprintf(&sb, "Stats: Created: %d, Matched: %d, Cancelled: %d\n",
		stats.TotalOrdersCreated, stats.TotalOrdersMatched, stats.TotalOrdersCancelled)
	fmt.Fprintf(&sb, "Consistency: %t\n", ob.ValidateConsistency())
	return sb.String()
}
