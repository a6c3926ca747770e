package itch

// Handler receives decoded messages in stream order.
// Returned error stops processing of the stream.
type Handler interface {
	OnSystemEventMessage(msg SystemEventMessage) error
	OnStockDirectoryMessage(msg StockDirectoryMessage) error
	OnAddOrderMessage(msg AddOrderMessage) error
	OnAddOrderMPIDMessage(msg AddOrderMPIDMessage) error
	OnOrderExecutedMessage(msg OrderExecutedMessage) error
	OnOrderExecutedWithPriceMessage(msg OrderExecutedWithPriceMessage) error
	OnOrderCancelMessage(msg OrderCancelMessage) error
	OnOrderDeleteMessage(msg OrderDeleteMessage) error
	OnOrderReplaceMessage(msg OrderReplaceMessage) error
	OnUnknownMessage(msg UnknownMessage) error
}
