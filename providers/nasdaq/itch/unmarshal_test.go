package itch

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func appendHeader(data []byte, msgType byte, locate uint16, timestamp uint64) []byte {
	data = append(data, msgType)
	data = binary.BigEndian.AppendUint16(data, locate)
	data = binary.BigEndian.AppendUint16(data, 0)
	for shift := 40; shift >= 0; shift -= 8 {
		data = append(data, byte(timestamp>>shift))
	}
	return data
}

func stock(name string) []byte {
	s := []byte("        ")
	copy(s, name)
	return s
}

func encodeStockDirectory(locate uint16, name string) []byte {
	data := appendHeader(nil, MessageTypeStockDirectory, locate, 1)
	data = append(data, stock(name)...)
	data = append(data, 'Q', 'N')
	data = binary.BigEndian.AppendUint32(data, 100)
	data = append(data, 'N', 'C', 'Z', ' ', 'P', 'N', ' ', '1', 'N')
	data = binary.BigEndian.AppendUint32(data, 0)
	return append(data, 'N')
}

func encodeAddOrder(locate uint16, timestamp, ref uint64, side byte, shares, price uint32) []byte {
	data := appendHeader(nil, MessageTypeAddOrder, locate, timestamp)
	data = binary.BigEndian.AppendUint64(data, ref)
	data = append(data, side)
	data = binary.BigEndian.AppendUint32(data, shares)
	data = append(data, stock("AAPL")...)
	return binary.BigEndian.AppendUint32(data, price)
}

func encodeOrderExecuted(locate uint16, ref uint64, shares uint32) []byte {
	data := appendHeader(nil, MessageTypeOrderExecuted, locate, 2)
	data = binary.BigEndian.AppendUint64(data, ref)
	data = binary.BigEndian.AppendUint32(data, shares)
	return binary.BigEndian.AppendUint64(data, 77)
}

func encodeOrderCancel(locate uint16, ref uint64, shares uint32) []byte {
	data := appendHeader(nil, MessageTypeOrderCancel, locate, 3)
	data = binary.BigEndian.AppendUint64(data, ref)
	return binary.BigEndian.AppendUint32(data, shares)
}

func encodeOrderDelete(locate uint16, ref uint64) []byte {
	data := appendHeader(nil, MessageTypeOrderDelete, locate, 4)
	return binary.BigEndian.AppendUint64(data, ref)
}

func encodeOrderReplace(locate uint16, ref, newRef uint64, shares, price uint32) []byte {
	data := appendHeader(nil, MessageTypeOrderReplace, locate, 5)
	data = binary.BigEndian.AppendUint64(data, ref)
	data = binary.BigEndian.AppendUint64(data, newRef)
	data = binary.BigEndian.AppendUint32(data, shares)
	return binary.BigEndian.AppendUint32(data, price)
}

func frame(messages ...[]byte) []byte {
	var stream []byte
	for _, msg := range messages {
		stream = binary.BigEndian.AppendUint16(stream, uint16(len(msg)))
		stream = append(stream, msg...)
	}
	return stream
}

func TestUnmarshalMessages(t *testing.T) {
	t.Run("stock directory", func(t *testing.T) {
		msg, err := unmarshalStockDirectoryMessage(encodeStockDirectory(7, "AAPL"))
		require.NoError(t, err)
		require.Equal(t, uint16(7), msg.StockLocate)
		require.Equal(t, "AAPL", msg.StockName())
		require.Equal(t, uint32(100), msg.RoundLotSize)
		require.Equal(t, byte('N'), msg.InverseIndicator)
	})

	t.Run("add order", func(t *testing.T) {
		msg, err := unmarshalAddOrderMessage(encodeAddOrder(7, 0x123456789a, 42, BuySellIndicatorBuy, 300, 1234500))
		require.NoError(t, err)
		require.Equal(t, MessageTypeAddOrder, msg.Type)
		require.Equal(t, uint64(0x123456789a), msg.Timestamp)
		require.Equal(t, uint64(42), msg.OrderReferenceNumber)
		require.True(t, msg.IsBuy())
		require.Equal(t, uint32(300), msg.Shares)
		require.Equal(t, uint32(1234500), msg.Price)
	})

	t.Run("add order with attribution", func(t *testing.T) {
		data := encodeAddOrder(7, 1, 43, BuySellIndicatorSell, 10, 100)
		data[0] = MessageTypeAddOrderMPID
		data = append(data, 'G', 'S', 'C', 'O')
		msg, err := unmarshalAddOrderMPIDMessage(data)
		require.NoError(t, err)
		require.False(t, msg.IsBuy())
		require.Equal(t, [4]byte{'G', 'S', 'C', 'O'}, msg.Attribution)
	})

	t.Run("replace", func(t *testing.T) {
		msg, err := unmarshalOrderReplaceMessage(encodeOrderReplace(7, 42, 44, 50, 99))
		require.NoError(t, err)
		require.Equal(t, uint64(42), msg.OriginalOrderReferenceNumber)
		require.Equal(t, uint64(44), msg.NewOrderReferenceNumber)
		require.Equal(t, uint32(50), msg.Shares)
		require.Equal(t, uint32(99), msg.Price)
	})

	t.Run("invalid size", func(t *testing.T) {
		_, err := unmarshalOrderDeleteMessage(encodeOrderDelete(7, 1)[:18])
		require.ErrorIs(t, err, ErrInvalidMessageSize)
		require.ErrorContains(t, err, "'D'")
	})
}

func BenchmarkUnmarshalMessages(b *testing.B) {
	data := [64]byte{}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		unmarshalSystemEventMessage(data[:12])
		unmarshalStockDirectoryMessage(data[:39])
		unmarshalAddOrderMessage(data[:36])
		unmarshalAddOrderMPIDMessage(data[:40])
		unmarshalOrderExecutedMessage(data[:31])
		unmarshalOrderExecutedWithPriceMessage(data[:36])
		unmarshalOrderCancelMessage(data[:23])
		unmarshalOrderDeleteMessage(data[:19])
		unmarshalOrderReplaceMessage(data[:35])
		unmarshalUnknownMessage(data[:1])
		unmarshalUnknownMessage(data[:64])
	}
}
