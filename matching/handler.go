package matching

// Handler receives order book events.
// Events are delivered after the order book releases its locks, in the order
// they happened, so a handler is free to call read operations of the book.
//
//go:generate mockgen -destination=mocks/interfaces.go -package=mockmatching . Handler
type Handler interface {

	// Order book handlers
	OnUpdateOrderBook(orderBook *OrderBook)

	// Price level handlers
	OnAddPriceLevel(orderBook *OrderBook, update PriceLevelUpdate)
	OnUpdatePriceLevel(orderBook *OrderBook, update PriceLevelUpdate)
	OnDeletePriceLevel(orderBook *OrderBook, update PriceLevelUpdate)

	// Orders handlers
	OnAddOrder(orderBook *OrderBook, order Order)
	OnUpdateOrder(orderBook *OrderBook, order Order)
	OnDeleteOrder(orderBook *OrderBook, order Order)

	// Matching handlers
	// NOTE: Trades are reported before the orders they changed.
	OnExecuteTrade(orderBook *OrderBook, trade Trade)

	// Errors handler
	OnError(orderBook *OrderBook, err error)
}

// NoopHandler ignores all events.
type NoopHandler struct{}

var _ Handler = NoopHandler{}

func (NoopHandler) OnUpdateOrderBook(*OrderBook)                    {}
func (NoopHandler) OnAddPriceLevel(*OrderBook, PriceLevelUpdate)    {}
func (NoopHandler) OnUpdatePriceLevel(*OrderBook, PriceLevelUpdate) {}
func (NoopHandler) OnDeletePriceLevel(*OrderBook, PriceLevelUpdate) {}
func (NoopHandler) OnAddOrder(*OrderBook, Order)                    {}
func (NoopHandler) OnUpdateOrder(*OrderBook, Order)                 {}
func (NoopHandler) OnDeleteOrder(*OrderBook, Order)                 {}
func (NoopHandler) OnExecuteTrade(*OrderBook, Trade)                {}
func (NoopHandler) OnError(*OrderBook, error)                       {}
