package itch

import (
	"fmt"
)

func checkSize(data []byte, msgType byte, size int, name string) error {
	if len(data) != size {
		return fmt.Errorf("%w: type '%c' (%s) must be %d bytes, got %d",
			ErrInvalidMessageSize, msgType, name, size, len(data))
	}
	return nil
}

func unmarshalSystemEventMessage(data []byte) (msg SystemEventMessage, err error) {
	if err = checkSize(data, MessageTypeSystemEvent, 12, "SystemEventMessage"); err != nil {
		return
	}
	msg.MessageHeader, data = readHeader(data)
	msg.EventCode, _ = readByte(data)
	return
}

func unmarshalStockDirectoryMessage(data []byte) (msg StockDirectoryMessage, err error) {
	if err = checkSize(data, MessageTypeStockDirectory, 39, "StockDirectoryMessage"); err != nil {
		return
	}
	msg.MessageHeader, data = readHeader(data)
	msg.Stock, data = readBytes8(data)
	msg.MarketCategory, data = readByte(data)
	msg.FinancialStatusIndicator, data = readByte(data)
	msg.RoundLotSize, data = readUint32(data)
	msg.RoundLotsOnly, data = readByte(data)
	msg.IssueClassification, data = readByte(data)
	msg.IssueSubType, data = readBytes2(data)
	msg.Authenticity, data = readByte(data)
	msg.ShortSaleThresholdIndicator, data = readByte(data)
	msg.IPOFlag, data = readByte(data)
	msg.LULDReferencePriceTier, data = readByte(data)
	msg.ETPFlag, data = readByte(data)
	msg.ETPLeverageFactor, data = readUint32(data)
	msg.InverseIndicator, _ = readByte(data)
	return
}

func unmarshalAddOrderMessage(data []byte) (msg AddOrderMessage, err error) {
	if err = checkSize(data, MessageTypeAddOrder, 36, "AddOrderMessage"); err != nil {
		return
	}
	msg, _ = readAddOrder(data)
	return
}

func unmarshalAddOrderMPIDMessage(data []byte) (msg AddOrderMPIDMessage, err error) {
	if err = checkSize(data, MessageTypeAddOrderMPID, 40, "AddOrderMPIDMessage"); err != nil {
		return
	}
	msg.AddOrderMessage, data = readAddOrder(data)
	msg.Attribution, _ = readBytes4(data)
	return
}

func readAddOrder(data []byte) (msg AddOrderMessage, rest []byte) {
	msg.MessageHeader, rest = readHeader(data)
	msg.OrderReferenceNumber, rest = readUint64(rest)
	msg.BuySellIndicator, rest = readByte(rest)
	msg.Shares, rest = readUint32(rest)
	msg.Stock, rest = readBytes8(rest)
	msg.Price, rest = readUint32(rest)
	return
}

func unmarshalOrderExecutedMessage(data []byte) (msg OrderExecutedMessage, err error) {
	if err = checkSize(data, MessageTypeOrderExecuted, 31, "OrderExecutedMessage"); err != nil {
		return
	}
	msg, _ = readOrderExecuted(data)
	return
}

func unmarshalOrderExecutedWithPriceMessage(data []byte) (msg OrderExecutedWithPriceMessage, err error) {
	if err = checkSize(data, MessageTypeOrderExecutedWithPrice, 36, "OrderExecutedWithPriceMessage"); err != nil {
		return
	}
	msg.OrderExecutedMessage, data = readOrderExecuted(data)
	msg.Printable, data = readByte(data)
	msg.ExecutionPrice, _ = readUint32(data)
	return
}

func readOrderExecuted(data []byte) (msg OrderExecutedMessage, rest []byte) {
	msg.MessageHeader, rest = readHeader(data)
	msg.OrderReferenceNumber, rest = readUint64(rest)
	msg.ExecutedShares, rest = readUint32(rest)
	msg.MatchNumber, rest = readUint64(rest)
	return
}

func unmarshalOrderCancelMessage(data []byte) (msg OrderCancelMessage, err error) {
	if err = checkSize(data, MessageTypeOrderCancel, 23, "OrderCancelMessage"); err != nil {
		return
	}
	msg.MessageHeader, data = readHeader(data)
	msg.OrderReferenceNumber, data = readUint64(data)
	msg.CanceledShares, _ = readUint32(data)
	return
}

func unmarshalOrderDeleteMessage(data []byte) (msg OrderDeleteMessage, err error) {
	if err = checkSize(data, MessageTypeOrderDelete, 19, "OrderDeleteMessage"); err != nil {
		return
	}
	msg.MessageHeader, data = readHeader(data)
	msg.OrderReferenceNumber, _ = readUint64(data)
	return
}

func unmarshalOrderReplaceMessage(data []byte) (msg OrderReplaceMessage, err error) {
	if err = checkSize(data, MessageTypeOrderReplace, 35, "OrderReplaceMessage"); err != nil {
		return
	}
	msg.MessageHeader, data = readHeader(data)
	msg.OriginalOrderReferenceNumber, data = readUint64(data)
	msg.NewOrderReferenceNumber, data = readUint64(data)
	msg.Shares, data = readUint32(data)
	msg.Price, _ = readUint32(data)
	return
}

func unmarshalUnknownMessage(data []byte) (msg UnknownMessage, err error) {
	if len(data) < 1 {
		err = fmt.Errorf("%w: empty message", ErrInvalidMessageSize)
		return
	}
	msg.Type = data[0]
	msg.Length = len(data)
	return
}
