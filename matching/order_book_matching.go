package matching

import (
	"go.uber.org/zap"
)

// MatchOrders executes crossing orders while the best bid price is not less
// than the best ask price and returns produced trades.
// A trade is executed at the price of the order which arrived earlier,
// the bid wins on equal timestamps. A single call produces at most
// maxMatchingIterations trades.
func (ob *OrderBook) MatchOrders() []Trade {
	ob.matchingMutex.Lock()

	var (
		e      events
		trades []Trade
		issue  error
	)
	for {
		trade, matched, err := ob.matchTop(&e, len(trades))
		if err != nil {
			issue = err
		}
		if !matched {
			break
		}
		trades = append(trades, trade)
	}

	if len(trades) > 0 {
		volume := tradedVolume(trades)
		now := ob.clock()
		ob.updateStats(func(stats *OrderBookStats) {
			stats.TotalOrdersMatched += uint64(len(trades))
			stats.TotalVolumeTraded += volume
			stats.LastMatchTime = now
			stats.HasLastMatch = true
		})
		ob.logger.Debug("orders matched",
			zap.Int("trades", len(trades)),
			zap.Float64("volume", volume),
		)
		e.updateOrderBook()
	}
	ob.matchingMutex.Unlock()

	switch issue {
	case ErrMatchingIterationsExceeded:
		ob.logger.Warn("matching iterations limit reached",
			zap.Int("iterations", maxMatchingIterations),
			zap.Int("trades", len(trades)),
		)
		e.failure(issue)
	case ErrPriceLevelVanished:
		ob.logger.Warn("price level vanished during matching", zap.Int("trades", len(trades)))
		e.failure(issue)
	}

	ob.dispatch(&e)
	return trades
}

// matchTop executes single trade between the best bid and the best ask orders.
// Both sides are write locked for the duration of one trade.
func (ob *OrderBook) matchTop(e *events, iteration int) (trade Trade, matched bool, err error) {
	ob.bidsMutex.Lock()
	defer ob.bidsMutex.Unlock()
	ob.asksMutex.Lock()
	defer ob.asksMutex.Unlock()

	bidNode, askNode := ob.bids.MostLeft(), ob.asks.MostLeft()
	if bidNode == nil || askNode == nil || bidNode.Key().Less(askNode.Key()) {
		return
	}
	if iteration >= maxMatchingIterations {
		err = ErrMatchingIterationsExceeded
		return
	}

	bidLevel, askLevel := bidNode.Value(), askNode.Value()
	bid, okBid := bidLevel.PeekFirst()
	ask, okAsk := askLevel.PeekFirst()
	if !okBid || !okAsk {
		err = ErrPriceLevelVanished
		return
	}

	trade = Trade{
		BidOrderID: bid.id,
		AskOrderID: ask.id,
		Quantity:   min(bid.quantity, ask.quantity),
		Timestamp:  min(bid.timestamp, ask.timestamp),
	}
	if bid.timestamp <= ask.timestamp {
		trade.Price = bid.price
		trade.MakerOrderID, trade.TakerOrderID = bid.id, ask.id
	} else {
		trade.Price = ask.price
		trade.MakerOrderID, trade.TakerOrderID = ask.id, bid.id
	}
	e.executeTrade(trade)

	ob.fillOrder(e, &ob.bids, bidLevel, bid, trade.Quantity)
	ob.fillOrder(e, &ob.asks, askLevel, ask, trade.Quantity)
	matched = true
	return
}

// AddMarketOrder executes an order against the opposite side starting from
// its best price and returns produced trades. Trades are executed at prices of
// resting orders. The order never rests: any unfilled quantity is dropped.
func (ob *OrderBook) AddMarketOrder(side OrderSide, quantity float64, timestamp uint64) []Trade {
	if !side.Valid() {
		ob.reportError(ErrInvalidOrderSide)
		return nil
	}
	if !validQuantity(quantity) {
		ob.reportError(ErrInvalidOrderQuantity)
		return nil
	}

	ob.matchingMutex.Lock()
	id := ob.nextOrderID()
	var e events
	trades, remaining := ob.executeMarketOrder(&e, id, side, quantity, timestamp)

	if len(trades) > 0 {
		volume := tradedVolume(trades)
		ob.updateStats(func(stats *OrderBookStats) {
			stats.TotalOrdersCreated++
			stats.TotalOrdersMatched += uint64(len(trades))
			stats.TotalVolumeTraded += volume
			stats.LastMatchTime = timestamp
			stats.HasLastMatch = true
		})
		e.updateOrderBook()
	}
	ob.matchingMutex.Unlock()

	ob.logger.Debug("market order executed",
		zap.Uint64("id", id),
		zap.Stringer("side", side),
		zap.Float64("quantity", quantity),
		zap.Float64("dropped", remaining),
		zap.Int("trades", len(trades)),
	)

	ob.dispatch(&e)
	return trades
}

func (ob *OrderBook) executeMarketOrder(e *events, id uint64, side OrderSide, quantity float64, timestamp uint64) ([]Trade, float64) {
	mutex, tree := ob.side(side.Opposite())
	mutex.Lock()
	defer mutex.Unlock()

	var trades []Trade
	remaining := quantity
	for remaining > 0 {
		node := tree.MostLeft()
		if node == nil {
			break
		}
		level := node.Value()
		resting, ok := level.PeekFirst()
		if !ok {
			ob.logger.Warn("price level vanished during matching", zap.Stringer("price", level.price))
			e.failure(ErrPriceLevelVanished)
			break
		}

		trade := Trade{
			MakerOrderID: resting.id,
			TakerOrderID: id,
			Price:        resting.price,
			Quantity:     min(remaining, resting.quantity),
			Timestamp:    min(timestamp, resting.timestamp),
		}
		if side == OrderSideBuy {
			trade.BidOrderID, trade.AskOrderID = id, resting.id
		} else {
			trade.BidOrderID, trade.AskOrderID = resting.id, id
		}
		e.executeTrade(trade)
		trades = append(trades, trade)

		ob.fillOrder(e, tree, level, resting, trade.Quantity)
		remaining -= trade.Quantity
	}
	return trades, max(remaining, 0)
}

// fillOrder decreases quantity of the head order of the top price level,
// fully filled orders are removed and emptied price levels are pruned.
// Caller must hold the side write lock.
func (ob *OrderBook) fillOrder(e *events, tree *priceLevelTree, level *PriceLevel, order Order, quantity float64) {
	if order.quantity <= quantity {
		level.TakeFirst()
		order.quantity = 0
		e.deleteOrder(order)
	} else {
		order, _ = level.queue.update(order.id, order.quantity-quantity)
		e.updateOrder(order)
	}

	if level.IsEmpty() {
		e.priceLevel(level.update(PriceLevelUpdateKindDelete, true))
		ob.deletePriceLevel(tree, level)
	} else {
		e.priceLevel(level.update(PriceLevelUpdateKindUpdate, true))
	}
}

// tradedVolume returns sum of notionals of the trades.
func tradedVolume(trades []Trade) float64 {
	volume := 0.0
	for _, trade := range trades {
		volume += trade.Notional()
	}
	return volume
}
