package main

import (
	"fmt"
	"sync/atomic"

	"github.com/cryptonstudio/crypton-order-book/matching"
)

var _ matching.Handler = (*Matcher)(nil)

// Matcher counts order book events.
type Matcher struct {
	orderBookUpdates  atomic.Uint64
	priceLevelUpdates [3]atomic.Uint64
	orderUpdates      [3]atomic.Uint64
	trades            atomic.Uint64
	errors            atomic.Uint64
	totalUpdates      atomic.Uint64
}

func (m *Matcher) OnUpdateOrderBook(*matching.OrderBook) {
	m.orderBookUpdates.Add(1)
	m.totalUpdates.Add(1)
}

func (m *Matcher) OnAddPriceLevel(*matching.OrderBook, matching.PriceLevelUpdate) {
	m.priceLevelUpdates[0].Add(1)
	m.totalUpdates.Add(1)
}

func (m *Matcher) OnUpdatePriceLevel(*matching.OrderBook, matching.PriceLevelUpdate) {
	m.priceLevelUpdates[1].Add(1)
	m.totalUpdates.Add(1)
}

func (m *Matcher) OnDeletePriceLevel(*matching.OrderBook, matching.PriceLevelUpdate) {
	m.priceLevelUpdates[2].Add(1)
	m.totalUpdates.Add(1)
}

func (m *Matcher) OnAddOrder(*matching.OrderBook, matching.Order) {
	m.orderUpdates[0].Add(1)
	m.totalUpdates.Add(1)
}

func (m *Matcher) OnUpdateOrder(*matching.OrderBook, matching.Order) {
	m.orderUpdates[1].Add(1)
	m.totalUpdates.Add(1)
}

func (m *Matcher) OnDeleteOrder(*matching.OrderBook, matching.Order) {
	m.orderUpdates[2].Add(1)
	m.totalUpdates.Add(1)
}

func (m *Matcher) OnExecuteTrade(*matching.OrderBook, matching.Trade) {
	m.trades.Add(1)
	m.totalUpdates.Add(1)
}

func (m *Matcher) OnError(*matching.OrderBook, error) {
	m.errors.Add(1)
}

func (m *Matcher) PrintStatistics() {
	fmt.Printf("ORDER BOOK HANDLER:\n")
	fmt.Printf("Order book updates %10d\n", m.orderBookUpdates.Load())
	fmt.Printf("Price level adds %12d\n", m.priceLevelUpdates[0].Load())
	fmt.Printf("Price level updates %9d\n", m.priceLevelUpdates[1].Load())
	fmt.Printf("Price level deletes %9d\n", m.priceLevelUpdates[2].Load())
	fmt.Printf("Order adds %18d\n", m.orderUpdates[0].Load())
	fmt.Printf("Order updates %15d\n", m.orderUpdates[1].Load())
	fmt.Printf("Order deletes %15d\n", m.orderUpdates[2].Load())
	fmt.Printf("Executed trades %13d\n", m.trades.Load())
	fmt.Printf("Errors %22d\n", m.errors.Load())
	fmt.Printf("Total calls %17d\n", m.totalUpdates.Load())
}

// handlers passes every event to each of the handlers in order.
type handlers []matching.Handler

func (hs handlers) OnUpdateOrderBook(ob *matching.OrderBook) {
	for _, h := range hs {
		h.OnUpdateOrderBook(ob)
	}
}

func (hs handlers) OnAddPriceLevel(ob *matching.OrderBook, update matching.PriceLevelUpdate) {
	for _, h := range hs {
		h.OnAddPriceLevel(ob, update)
	}
}

func (hs handlers) OnUpdatePriceLevel(ob *matching.OrderBook, update matching.PriceLevelUpdate) {
	for _, h := range hs {
		h.OnUpdatePriceLevel(ob, update)
	}
}

func (hs handlers) OnDeletePriceLevel(ob *matching.OrderBook, update matching.PriceLevelUpdate) {
	for _, h := range hs {
		h.OnDeletePriceLevel(ob, update)
	}
}

func (hs handlers) OnAddOrder(ob *matching.OrderBook, order matching.Order) {
	for _, h := range hs {
		h.OnAddOrder(ob, order)
	}
}

func (hs handlers) OnUpdateOrder(ob *matching.OrderBook, order matching.Order) {
	for _, h := range hs {
		h.OnUpdateOrder(ob, order)
	}
}

func (hs handlers) OnDeleteOrder(ob *matching.OrderBook, order matching.Order) {
	for _, h := range hs {
		h.OnDeleteOrder(ob, order)
	}
}

func (hs handlers) OnExecuteTrade(ob *matching.OrderBook, trade matching.Trade) {
	for _, h := range hs {
		h.OnExecuteTrade(ob, trade)
	}
}

func (hs handlers) OnError(ob *matching.OrderBook, err error) {
	for _, h := range hs {
		h.OnError(ob, err)
	}
}
