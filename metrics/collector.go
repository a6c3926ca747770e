// Package metrics exports order book activity as Prometheus metrics.
package metrics

import (
	"errors"
	"math"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/cryptonstudio/crypton-order-book/matching"
)

const namespace = "orderbook"

var _ matching.Handler = (*Collector)(nil)

// Collector is matching.Handler updating Prometheus metrics labeled with symbol name.
// Single collector may be shared by several order books.
type Collector struct {
	ordersAdded    *prometheus.CounterVec
	ordersUpdated  *prometheus.CounterVec
	ordersDeleted  *prometheus.CounterVec
	trades         *prometheus.CounterVec
	tradedQuantity *prometheus.CounterVec
	errors         *prometheus.CounterVec
	bestBid        *prometheus.GaugeVec
	bestAsk        *prometheus.GaugeVec
	restingOrders  *prometheus.GaugeVec
	priceLevels    *prometheus.GaugeVec
}

// NewCollector creates collector and registers its metrics on given registerer.
func NewCollector(registerer prometheus.Registerer) *Collector {
	factory := promauto.With(registerer)
	counter := func(name, help string, labels ...string) *prometheus.CounterVec {
		return factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		}, append([]string{"symbol"}, labels...))
	}
	gauge := func(name, help string, labels ...string) *prometheus.GaugeVec {
		return factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		}, append([]string{"symbol"}, labels...))
	}
	return &Collector{
		ordersAdded:    counter("orders_added_total", "Total number of orders added to the book"),
		ordersUpdated:  counter("orders_updated_total", "Total number of resting order updates"),
		ordersDeleted:  counter("orders_deleted_total", "Total number of orders removed from the book"),
		trades:         counter("trades_total", "Total number of executed trades"),
		tradedQuantity: counter("traded_quantity_total", "Total quantity of executed trades"),
		errors:         counter("errors_total", "Total number of reported errors", "kind"),
		bestBid:        gauge("best_bid", "Best bid price, NaN when there are no bids"),
		bestAsk:        gauge("best_ask", "Best ask price, NaN when there are no asks"),
		restingOrders:  gauge("resting_orders", "Number of orders resting in the book"),
		priceLevels:    gauge("price_levels", "Number of price levels", "side"),
	}
}

func (c *Collector) OnUpdateOrderBook(ob *matching.OrderBook) {
	symbol := ob.Symbol().Name()
	c.bestBid.WithLabelValues(symbol).Set(priceValue(ob.BestBid()))
	c.bestAsk.WithLabelValues(symbol).Set(priceValue(ob.BestAsk()))

	bids, asks := ob.TotalPriceLevels()
	c.priceLevels.WithLabelValues(symbol, matching.OrderSideBuy.String()).Set(float64(bids))
	c.priceLevels.WithLabelValues(symbol, matching.OrderSideSell.String()).Set(float64(asks))
	if bids == 0 && asks == 0 {
		// Clear drops orders without per order events
		c.restingOrders.WithLabelValues(symbol).Set(0)
	}
}

func (c *Collector) OnAddPriceLevel(*matching.OrderBook, matching.PriceLevelUpdate)    {}
func (c *Collector) OnUpdatePriceLevel(*matching.OrderBook, matching.PriceLevelUpdate) {}
func (c *Collector) OnDeletePriceLevel(*matching.OrderBook, matching.PriceLevelUpdate) {}

func (c *Collector) OnAddOrder(ob *matching.OrderBook, _ matching.Order) {
	symbol := ob.Symbol().Name()
	c.ordersAdded.WithLabelValues(symbol).Inc()
	c.restingOrders.WithLabelValues(symbol).Inc()
}

func (c *Collector) OnUpdateOrder(ob *matching.OrderBook, _ matching.Order) {
	c.ordersUpdated.WithLabelValues(ob.Symbol().Name()).Inc()
}

func (c *Collector) OnDeleteOrder(ob *matching.OrderBook, _ matching.Order) {
	symbol := ob.Symbol().Name()
	c.ordersDeleted.WithLabelValues(symbol).Inc()
	c.restingOrders.WithLabelValues(symbol).Dec()
}

func (c *Collector) OnExecuteTrade(ob *matching.OrderBook, trade matching.Trade) {
	symbol := ob.Symbol().Name()
	c.trades.WithLabelValues(symbol).Inc()
	c.tradedQuantity.WithLabelValues(symbol).Add(trade.Quantity)
}

func (c *Collector) OnError(ob *matching.OrderBook, err error) {
	c.errors.WithLabelValues(ob.Symbol().Name(), errorKind(err)).Inc()
}

func priceValue(price matching.Price, ok bool) float64 {
	if !ok {
		return math.NaN()
	}
	return price.Float64()
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, matching.ErrOrderNotFound):
		return "order_not_found"
	case errors.Is(err, matching.ErrInvalidOrderSide):
		return "invalid_order_side"
	case errors.Is(err, matching.ErrInvalidOrderQuantity):
		return "invalid_order_quantity"
	case errors.Is(err, matching.ErrMatchingIterationsExceeded):
		return "matching_iterations_exceeded"
	case errors.Is(err, matching.ErrPriceLevelVanished):
		return "price_level_vanished"
	default:
		return "other"
	}
}
