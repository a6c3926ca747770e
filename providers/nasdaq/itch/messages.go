package itch

// Message types decoded by the processor.
const (
	MessageTypeSystemEvent            byte = 'S'
	MessageTypeStockDirectory         byte = 'R'
	MessageTypeAddOrder               byte = 'A'
	MessageTypeAddOrderMPID           byte = 'F'
	MessageTypeOrderExecuted          byte = 'E'
	MessageTypeOrderExecutedWithPrice byte = 'C'
	MessageTypeOrderCancel            byte = 'X'
	MessageTypeOrderDelete            byte = 'D'
	MessageTypeOrderReplace           byte = 'U'
)

// Buy/sell indicator values of add order messages.
const (
	BuySellIndicatorBuy  byte = 'B'
	BuySellIndicatorSell byte = 'S'
)

// PriceScale is the amount of implied decimal places of ITCH prices.
const PriceScale = 4

// MessageHeader contains fields common for all messages.
// Timestamp is amount of nanoseconds since midnight.
type MessageHeader struct {
	Type           byte
	StockLocate    uint16
	TrackingNumber uint16
	Timestamp      uint64
}

type SystemEventMessage struct {
	MessageHeader
	EventCode byte
}

type StockDirectoryMessage struct {
	MessageHeader
	Stock                       [8]byte
	MarketCategory              byte
	FinancialStatusIndicator    byte
	RoundLotSize                uint32
	RoundLotsOnly               byte
	IssueClassification         byte
	IssueSubType                [2]byte
	Authenticity                byte
	ShortSaleThresholdIndicator byte
	IPOFlag                     byte
	LULDReferencePriceTier      byte
	ETPFlag                     byte
	ETPLeverageFactor           uint32
	InverseIndicator            byte
}

// StockName returns the stock symbol without right padding.
func (msg StockDirectoryMessage) StockName() string {
	return stockName(msg.Stock)
}

type AddOrderMessage struct {
	MessageHeader
	OrderReferenceNumber uint64
	BuySellIndicator     byte
	Shares               uint32
	Stock                [8]byte
	Price                uint32
}

// IsBuy returns true for bid orders.
func (msg AddOrderMessage) IsBuy() bool {
	return msg.BuySellIndicator == BuySellIndicatorBuy
}

type AddOrderMPIDMessage struct {
	AddOrderMessage
	Attribution [4]byte
}

type OrderExecutedMessage struct {
	MessageHeader
	OrderReferenceNumber uint64
	ExecutedShares       uint32
	MatchNumber          uint64
}

type OrderExecutedWithPriceMessage struct {
	OrderExecutedMessage
	Printable      byte
	ExecutionPrice uint32
}

type OrderCancelMessage struct {
	MessageHeader
	OrderReferenceNumber uint64
	CanceledShares       uint32
}

type OrderDeleteMessage struct {
	MessageHeader
	OrderReferenceNumber uint64
}

type OrderReplaceMessage struct {
	MessageHeader
	OriginalOrderReferenceNumber uint64
	NewOrderReferenceNumber      uint64
	Shares                       uint32
	Price                        uint32
}

// UnknownMessage is any message of a type the processor does not decode.
type UnknownMessage struct {
	Type   byte
	Length int
}
