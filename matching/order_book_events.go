package matching

// events collects handler calls while the order book is locked,
// they are dispatched in the same order once all locks are released.
type events struct {
	calls []func(h Handler, ob *OrderBook)
}

func (e *events) addOrder(order Order) {
	e.calls = append(e.calls, func(h Handler, ob *OrderBook) { h.OnAddOrder(ob, order) })
}

func (e *events) updateOrder(order Order) {
	e.calls = append(e.calls, func(h Handler, ob *OrderBook) { h.OnUpdateOrder(ob, order) })
}

func (e *events) deleteOrder(order Order) {
	e.calls = append(e.calls, func(h Handler, ob *OrderBook) { h.OnDeleteOrder(ob, order) })
}

func (e *events) executeTrade(trade Trade) {
	e.calls = append(e.calls, func(h Handler, ob *OrderBook) { h.OnExecuteTrade(ob, trade) })
}

func (e *events) priceLevel(update PriceLevelUpdate) {
	switch update.Kind {
	case PriceLevelUpdateKindAdd:
		e.calls = append(e.calls, func(h Handler, ob *OrderBook) { h.OnAddPriceLevel(ob, update) })
	case PriceLevelUpdateKindUpdate:
		e.calls = append(e.calls, func(h Handler, ob *OrderBook) { h.OnUpdatePriceLevel(ob, update) })
	case PriceLevelUpdateKindDelete:
		e.calls = append(e.calls, func(h Handler, ob *OrderBook) { h.OnDeletePriceLevel(ob, update) })
	}
}

func (e *events) updateOrderBook() {
	e.calls = append(e.calls, func(h Handler, ob *OrderBook) { h.OnUpdateOrderBook(ob) })
}

func (e *events) failure(err error) {
	e.calls = append(e.calls, func(h Handler, ob *OrderBook) { h.OnError(ob, err) })
}

func (e *events) empty() bool {
	return len(e.calls) == 0
}

// dispatch delivers collected events to the order book handler.
func (ob *OrderBook) dispatch(e *events) {
	for _, call := range e.calls {
		call(ob.handler, ob)
	}
	e.calls = e.calls[:0]
}
