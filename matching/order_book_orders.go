package matching

import (
	"math"

	"go.uber.org/zap"
)

// AddOrder places a limit order into the order book and returns its ID.
// No matching is performed, call MatchOrders to execute crossing orders.
// Returns zero ID if the side is unknown or the quantity is not a positive finite number.
func (ob *OrderBook) AddOrder(side OrderSide, price Price, quantity float64, timestamp uint64) uint64 {
	if !side.Valid() {
		ob.reportError(ErrInvalidOrderSide)
		return 0
	}
	if !validQuantity(quantity) {
		ob.reportError(ErrInvalidOrderQuantity)
		return 0
	}

	ob.matchingMutex.RLock()
	order := NewOrder(ob.nextOrderID(), side, price, quantity, timestamp)
	update := ob.addOrder(order)
	ob.matchingMutex.RUnlock()

	ob.updateStats(func(stats *OrderBookStats) {
		stats.TotalOrdersCreated++
	})

	ob.logger.Debug("order added",
		zap.Uint64("id", order.id),
		zap.Stringer("side", side),
		zap.Stringer("price", price),
		zap.Float64("quantity", quantity),
	)

	var e events
	e.addOrder(order)
	e.priceLevel(update)
	e.updateOrderBook()
	ob.dispatch(&e)

	return order.id
}

// addOrder inserts the order into its price level creating the level if absent.
func (ob *OrderBook) addOrder(order Order) PriceLevelUpdate {
	mutex, tree := ob.side(order.side)

	// Fast path: the price level exists, only its queue is changed
	mutex.RLock()
	if node := tree.Find(order.price); node != nil {
		level := node.Value()
		level.Add(order)
		update := level.update(PriceLevelUpdateKindUpdate, isTop(tree, level))
		mutex.RUnlock()
		return update
	}
	mutex.RUnlock()

	// Slow path: the price level should be created
	mutex.Lock()
	defer mutex.Unlock()
	kind := PriceLevelUpdateKindUpdate
	node := tree.Find(order.price)
	if node == nil {
		// Nobody could add the price level while the write lock is held
		kind = PriceLevelUpdateKindAdd
		node, _ = tree.Add(order.price, ob.allocator.GetPriceLevel(order.side, order.price))
	}
	level := node.Value()
	level.Add(order)
	return level.update(kind, isTop(tree, level))
}

// validQuantity returns true for positive finite quantities.
func validQuantity(quantity float64) bool {
	return quantity > 0 && !math.IsInf(quantity, 1)
}

// RemoveOrder cancels the order with given ID and returns it.
// Returns false if no such order rests in the order book.
func (ob *OrderBook) RemoveOrder(id uint64) (Order, bool) {
	ob.matchingMutex.RLock()
	order, update, ok := ob.removeOrder(OrderSideBuy, id)
	if !ok {
		order, update, ok = ob.removeOrder(OrderSideSell, id)
	}
	ob.matchingMutex.RUnlock()

	if !ok {
		ob.reportError(ErrOrderNotFound)
		return Order{}, false
	}

	ob.updateStats(func(stats *OrderBookStats) {
		stats.TotalOrdersCancelled++
	})

	ob.logger.Debug("order removed",
		zap.Uint64("id", order.id),
		zap.Stringer("side", order.side),
		zap.Stringer("price", order.price),
	)

	var e events
	e.deleteOrder(order)
	e.priceLevel(update)
	e.updateOrderBook()
	ob.dispatch(&e)

	return order, true
}

// removeOrder scans price levels of one side and removes the order,
// the price level is pruned if it becomes empty.
func (ob *OrderBook) removeOrder(side OrderSide, id uint64) (order Order, update PriceLevelUpdate, ok bool) {
	mutex, tree := ob.side(side)
	mutex.Lock()
	defer mutex.Unlock()

	var found *PriceLevel
	tree.IterateInOrder(func(_ Price, level *PriceLevel) bool {
		order, ok = level.Remove(id)
		if ok {
			found = level
		}
		return ok
	})
	if !ok {
		return
	}

	top := isTop(tree, found)
	if found.IsEmpty() {
		update = found.update(PriceLevelUpdateKindDelete, top)
		ob.deletePriceLevel(tree, found)
	} else {
		update = found.update(PriceLevelUpdateKindUpdate, top)
	}
	return
}

// deletePriceLevel removes the level from the tree and releases it.
// Caller must hold the side write lock.
func (ob *OrderBook) deletePriceLevel(tree *priceLevelTree, level *PriceLevel) {
	if _, err := tree.Remove(level.price); err == nil {
		ob.allocator.PutPriceLevel(level)
	}
}

// UpdateOrder replaces remaining quantity of the order with given ID.
// A quantity which is not positive (or NaN) cancels the order.
// Returns false if no such order rests in the order book.
func (ob *OrderBook) UpdateOrder(id uint64, quantity float64) bool {
	if !(quantity > 0) {
		_, ok := ob.RemoveOrder(id)
		return ok
	}
	if !validQuantity(quantity) {
		ob.reportError(ErrInvalidOrderQuantity)
		return false
	}

	ob.matchingMutex.RLock()
	order, update, ok := ob.updateOrder(OrderSideBuy, id, quantity)
	if !ok {
		order, update, ok = ob.updateOrder(OrderSideSell, id, quantity)
	}
	ob.matchingMutex.RUnlock()

	if !ok {
		ob.reportError(ErrOrderNotFound)
		return false
	}

	ob.updateStats(nil)

	ob.logger.Debug("order updated",
		zap.Uint64("id", id),
		zap.Float64("quantity", quantity),
	)

	var e events
	e.updateOrder(order)
	e.priceLevel(update)
	e.updateOrderBook()
	ob.dispatch(&e)

	return true
}

// updateOrder changes only the queue of a price level so the side read lock is enough.
func (ob *OrderBook) updateOrder(side OrderSide, id uint64, quantity float64) (order Order, update PriceLevelUpdate, ok bool) {
	mutex, tree := ob.side(side)
	mutex.RLock()
	defer mutex.RUnlock()

	tree.IterateInOrder(func(_ Price, level *PriceLevel) bool {
		order, ok = level.queue.update(id, quantity)
		if ok {
			update = level.update(PriceLevelUpdateKindUpdate, isTop(tree, level))
		}
		return ok
	})
	return
}

// GetOrder returns the order with given ID.
func (ob *OrderBook) GetOrder(id uint64) (Order, bool) {
	if order, ok := ob.getOrder(OrderSideBuy, id); ok {
		return order, true
	}
	return ob.getOrder(OrderSideSell, id)
}

func (ob *OrderBook) getOrder(side OrderSide, id uint64) (order Order, ok bool) {
	mutex, tree := ob.side(side)
	mutex.RLock()
	defer mutex.RUnlock()

	tree.IterateInOrder(func(_ Price, level *PriceLevel) bool {
		order, ok = level.queue.Get(id)
		return ok
	})
	return
}

// Clear removes all orders from the order book and resets statistics.
// Order IDs keep growing after clear.
func (ob *OrderBook) Clear() {
	ob.matchingMutex.Lock()
	ob.statsMutex.Lock()
	ob.bidsMutex.Lock()
	ob.asksMutex.Lock()
	orders := 0
	for _, tree := range []*priceLevelTree{&ob.bids, &ob.asks} {
		tree.IterateInOrder(func(_ Price, level *PriceLevel) bool {
			orders += level.Len()
			ob.allocator.PutPriceLevel(level)
			return false
		})
		tree.Clear()
	}
	ob.stats = OrderBookStats{}
	ob.asksMutex.Unlock()
	ob.bidsMutex.Unlock()
	ob.statsMutex.Unlock()
	ob.matchingMutex.Unlock()

	ob.logger.Info("order book cleared", zap.Int("orders", orders))

	var e events
	e.updateOrderBook()
	ob.dispatch(&e)
}
