package main

import (
	"fmt"
	"sync/atomic"

	"github.com/cryptonstudio/crypton-order-book/matching"
)

// Counter counts the events the load test reports on, other events are ignored.
type Counter struct {
	matching.NoopHandler
	added   atomic.Uint64
	deleted atomic.Uint64
	trades  atomic.Uint64
	errors  atomic.Uint64
}

var _ matching.Handler = (*Counter)(nil)

func (c *Counter) OnAddOrder(*matching.OrderBook, matching.Order)     { c.added.Add(1) }
func (c *Counter) OnDeleteOrder(*matching.OrderBook, matching.Order)  { c.deleted.Add(1) }
func (c *Counter) OnExecuteTrade(*matching.OrderBook, matching.Trade) { c.trades.Add(1) }
func (c *Counter) OnError(*matching.OrderBook, error)                 { c.errors.Add(1) }

func (c *Counter) PrintStatistics() {
	fmt.Printf("ORDER BOOK HANDLER:\n")
	fmt.Printf("Order adds %18d\n", c.added.Load())
	fmt.Printf("Order deletes %15d\n", c.deleted.Load())
	fmt.Printf("Executed trades %13d\n", c.trades.Load())
	fmt.Printf("Errors %22d\n", c.errors.Load())
}
