package main

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/cryptonstudio/crypton-order-book/matching"
	"github.com/cryptonstudio/crypton-order-book/providers/nasdaq/itch"
)

var errUnknownOrder = errors.New("unknown order reference number")

var _ itch.Handler = (*ITCH)(nil)

// ITCH applies order messages of a single stock to the order book.
// Order reference numbers of the feed are mapped to the book order ids.
type ITCH struct {
	stock    string
	locate   uint16
	tracking bool
	book     *matching.OrderBook
	orders   map[uint64]uint64
	logger   *zap.Logger
	messages [256]int
	handled  int
	errors   int
}

func NewITCH(stock string, book *matching.OrderBook, logger *zap.Logger) *ITCH {
	return &ITCH{
		stock:  stock,
		book:   book,
		orders: make(map[uint64]uint64),
		logger: logger,
	}
}

func (h *ITCH) OnSystemEventMessage(msg itch.SystemEventMessage) error {
	h.messages[msg.Type]++
	return nil
}

func (h *ITCH) OnStockDirectoryMessage(msg itch.StockDirectoryMessage) error {
	h.messages[msg.Type]++
	if msg.StockName() != h.stock {
		return nil
	}
	h.handled++
	h.locate, h.tracking = msg.StockLocate, true
	h.logger.Info("stock found",
		zap.String("stock", h.stock),
		zap.Uint16("locate", msg.StockLocate),
		zap.Uint32("round_lot_size", msg.RoundLotSize),
	)
	return nil
}

func (h *ITCH) OnAddOrderMessage(msg itch.AddOrderMessage) error {
	h.messages[msg.Type]++
	if !h.accepts(msg.MessageHeader) {
		return nil
	}
	h.handled++
	h.addOrder(msg)
	return nil
}

func (h *ITCH) OnAddOrderMPIDMessage(msg itch.AddOrderMPIDMessage) error {
	h.messages[msg.Type]++
	if !h.accepts(msg.MessageHeader) {
		return nil
	}
	h.handled++
	h.addOrder(msg.AddOrderMessage)
	return nil
}

func (h *ITCH) OnOrderExecutedMessage(msg itch.OrderExecutedMessage) error {
	h.messages[msg.Type]++
	if !h.accepts(msg.MessageHeader) {
		return nil
	}
	h.handled++
	h.reduceOrder(msg.OrderReferenceNumber, msg.ExecutedShares)
	return nil
}

func (h *ITCH) OnOrderExecutedWithPriceMessage(msg itch.OrderExecutedWithPriceMessage) error {
	h.messages[msg.Type]++
	if !h.accepts(msg.MessageHeader) {
		return nil
	}
	h.handled++
	h.reduceOrder(msg.OrderReferenceNumber, msg.ExecutedShares)
	return nil
}

func (h *ITCH) OnOrderCancelMessage(msg itch.OrderCancelMessage) error {
	h.messages[msg.Type]++
	if !h.accepts(msg.MessageHeader) {
		return nil
	}
	h.handled++
	h.reduceOrder(msg.OrderReferenceNumber, msg.CanceledShares)
	return nil
}

func (h *ITCH) OnOrderDeleteMessage(msg itch.OrderDeleteMessage) error {
	h.messages[msg.Type]++
	if !h.accepts(msg.MessageHeader) {
		return nil
	}
	h.handled++
	h.deleteOrder(msg.OrderReferenceNumber)
	return nil
}

func (h *ITCH) OnOrderReplaceMessage(msg itch.OrderReplaceMessage) error {
	h.messages[msg.Type]++
	if !h.accepts(msg.MessageHeader) {
		return nil
	}
	h.handled++
	id, ok := h.orders[msg.OriginalOrderReferenceNumber]
	if !ok {
		h.failure(errUnknownOrder, msg.OriginalOrderReferenceNumber)
		return nil
	}
	delete(h.orders, msg.OriginalOrderReferenceNumber)
	order, ok := h.book.RemoveOrder(id)
	if !ok {
		h.failure(matching.ErrOrderNotFound, msg.OriginalOrderReferenceNumber)
		return nil
	}
	// Replaced order keeps its side but loses time priority
	newID := h.book.AddOrder(order.Side(), price(msg.Price), float64(msg.Shares), msg.Timestamp)
	if newID != 0 {
		h.orders[msg.NewOrderReferenceNumber] = newID
	}
	return nil
}

func (h *ITCH) OnUnknownMessage(msg itch.UnknownMessage) error {
	h.messages[msg.Type]++
	return nil
}

func (h *ITCH) accepts(header itch.MessageHeader) bool {
	return h.tracking && header.StockLocate == h.locate
}

func (h *ITCH) addOrder(msg itch.AddOrderMessage) {
	side := matching.OrderSideSell
	if msg.IsBuy() {
		side = matching.OrderSideBuy
	}
	id := h.book.AddOrder(side, price(msg.Price), float64(msg.Shares), msg.Timestamp)
	if id == 0 {
		h.failure(matching.ErrInvalidOrderQuantity, msg.OrderReferenceNumber)
		return
	}
	h.orders[msg.OrderReferenceNumber] = id
}

// reduceOrder decreases resting quantity of the order removing it once nothing is left.
func (h *ITCH) reduceOrder(ref uint64, shares uint32) {
	id, ok := h.orders[ref]
	if !ok {
		h.failure(errUnknownOrder, ref)
		return
	}
	order, ok := h.book.GetOrder(id)
	if !ok {
		h.failure(matching.ErrOrderNotFound, ref)
		return
	}
	remaining := order.Quantity() - float64(shares)
	if remaining > 0 {
		h.book.UpdateOrder(id, remaining)
		return
	}
	delete(h.orders, ref)
	h.book.RemoveOrder(id)
}

func (h *ITCH) deleteOrder(ref uint64) {
	id, ok := h.orders[ref]
	if !ok {
		h.failure(errUnknownOrder, ref)
		return
	}
	delete(h.orders, ref)
	if _, ok := h.book.RemoveOrder(id); !ok {
		h.failure(matching.ErrOrderNotFound, ref)
	}
}

func (h *ITCH) failure(err error, ref uint64) {
	h.errors++
	h.logger.Debug("unable to apply ITCH message", zap.Uint64("ref", ref), zap.Error(err))
}

// price converts ITCH price with implied decimal places.
func price(value uint32) matching.Price {
	return matching.NewPrice(decimal.New(int64(value), -itch.PriceScale).InexactFloat64())
}

func (h *ITCH) PrintStatistics() {
	fmt.Printf("ITCH PROCESSOR HANDLER:\n")
	msgCountTotal := 0
	for i := 0; i < 256; i++ {
		msgCountTotal += h.messages[i]
	}
	fmt.Printf("Errors %22d\n", h.errors)
	fmt.Printf("Handled messages %12d\n", h.handled)
	fmt.Printf("Total messages %14d\n", msgCountTotal)
	fmt.Printf("Tracked orders %14d\n", len(h.orders))
}
