package matching

import (
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/cryptonstudio/crypton-order-book/types/avl"
)

// priceLevelTree is a sorted collection of price levels of one side.
type priceLevelTree = avl.Tree[Price, *PriceLevel]

// OrderBook stores resting bids and asks of a single symbol in price-time order
// and matches crossing interest.
//
// Locking: each side has its own reader/writer lock guarding its set of price
// levels, while every price level queue is synchronized internally. Matching
// sweeps and market orders hold the matching lock exclusively, single order
// mutations hold it shared. Read operations never take the matching lock.
// Locks are always acquired in order: matching, stats, bids, asks.
// NOTE: Thread-safe.
type OrderBook struct {
	// Allocator used by the order book
	allocator *Allocator

	// Order book symbol
	symbol Symbol

	// Events handler, logger and time source
	handler Handler
	logger  *zap.Logger
	clock   func() uint64

	// Bid/Ask price levels
	bidsMutex sync.RWMutex
	bids      priceLevelTree
	asksMutex sync.RWMutex
	asks      priceLevelTree

	// Last used order ID
	lastOrderID atomic.Uint64

	// Cached statistics
	statsMutex sync.RWMutex
	stats      OrderBookStats

	// Serializes matching sweeps against each other and single order mutations
	matchingMutex sync.RWMutex
}

////////////////////////////////////////////////////////////////
// Options
////////////////////////////////////////////////////////////////

// Option configures an order book.
type Option func(ob *OrderBook)

// WithHandler sets handler receiving order book events.
func WithHandler(handler Handler) Option {
	return func(ob *OrderBook) {
		if handler != nil {
			ob.handler = handler
		}
	}
}

// WithLogger sets logger used for order book diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(ob *OrderBook) {
		if logger != nil {
			ob.logger = logger
		}
	}
}

// WithClock sets time source used as last match time of matching sweeps.
func WithClock(clock func() uint64) Option {
	return func(ob *OrderBook) {
		if clock != nil {
			ob.clock = clock
		}
	}
}

// WithAllocator sets allocator shared with other order books.
func WithAllocator(allocator *Allocator) Option {
	return func(ob *OrderBook) {
		if allocator != nil {
			ob.allocator = allocator
		}
	}
}

// unixMilli is the default clock of an order book.
func unixMilli() uint64 {
	return uint64(time.Now().UnixMilli())
}

////////////////////////////////////////////////////////////////

// NewOrderBook creates and returns new empty OrderBook instance.
func NewOrderBook(symbol Symbol, options ...Option) (*OrderBook, error) {
	if !symbol.Valid() {
		return nil, ErrInvalidSymbol
	}

	ob := &OrderBook{
		symbol:  symbol,
		handler: NoopHandler{},
		logger:  zap.NewNop(),
		clock:   unixMilli,
	}
	for _, option := range options {
		option(ob)
	}
	if ob.allocator == nil {
		ob.allocator = NewAllocator()
	}
	ob.logger = ob.logger.With(zap.String("symbol", symbol.Name()))

	// Bids tree uses reversed comparator so the most left level is always the best one
	ob.bids = avl.NewTreePooled[Price, *PriceLevel](compareBidPrices, &ob.allocator.priceLevelNodes)
	ob.asks = avl.NewTreePooled[Price, *PriceLevel](comparePrices, &ob.allocator.priceLevelNodes)

	return ob, nil
}

////////////////////////////////////////////////////////////////
// Order book symbol
////////////////////////////////////////////////////////////////

// Symbol returns order book symbol.
func (ob *OrderBook) Symbol() Symbol {
	return ob.symbol
}

////////////////////////////////////////////////////////////////
// Internals
////////////////////////////////////////////////////////////////

// side returns the lock and the price levels of given side.
func (ob *OrderBook) side(side OrderSide) (*sync.RWMutex, *priceLevelTree) {
	if side == OrderSideBuy {
		return &ob.bidsMutex, &ob.bids
	}
	return &ob.asksMutex, &ob.asks
}

// isTop returns true if the level is the best level of its side.
// Caller must hold the side lock.
func isTop(tree *priceLevelTree, level *PriceLevel) bool {
	top := tree.MostLeft()
	return top != nil && top.Value() == level
}

// nextOrderID allocates new order ID, IDs are never reused.
func (ob *OrderBook) nextOrderID() uint64 {
	return ob.lastOrderID.Add(1)
}

// updateStats applies the change to cumulative counters and recomputes
// top of book values. Caller must not hold any side lock.
func (ob *OrderBook) updateStats(change func(stats *OrderBookStats)) {
	ob.statsMutex.Lock()
	defer ob.statsMutex.Unlock()

	if change != nil {
		change(&ob.stats)
	}
	bid, hasBid := ob.BestBid()
	ask, hasAsk := ob.BestAsk()
	ob.stats.setTop(bid, hasBid, ask, hasAsk)
}

// reportError delivers the error to the handler outside of any lock.
func (ob *OrderBook) reportError(err error) {
	ob.handler.OnError(ob, err)
}
