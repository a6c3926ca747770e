package itch

import (
	"bytes"
	"encoding/binary"
)

func readByte(data []byte) (byte, []byte) {
	return data[0], data[1:]
}

func readBytes2(data []byte) ([2]byte, []byte) {
	return [2]byte{data[0], data[1]}, data[2:]
}

func readBytes4(data []byte) ([4]byte, []byte) {
	return [4]byte{data[0], data[1], data[2], data[3]}, data[4:]
}

func readBytes8(data []byte) ([8]byte, []byte) {
	return [8]byte{data[0], data[1], data[2], data[3], data[4], data[5], data[6], data[7]}, data[8:]
}

func readUint16(data []byte) (uint16, []byte) {
	return binary.BigEndian.Uint16(data), data[2:]
}

func readUint32(data []byte) (uint32, []byte) {
	return binary.BigEndian.Uint32(data), data[4:]
}

func readUint64(data []byte) (uint64, []byte) {
	return binary.BigEndian.Uint64(data), data[8:]
}

// readTimestamp reads 6 bytes long amount of nanoseconds since midnight.
func readTimestamp(data []byte) (uint64, []byte) {
	ns := uint64(data[0])<<40 | uint64(data[1])<<32 | uint64(data[2])<<24 |
		uint64(data[3])<<16 | uint64(data[4])<<8 | uint64(data[5])
	return ns, data[6:]
}

func readHeader(data []byte) (header MessageHeader, rest []byte) {
	header.Type, rest = readByte(data)
	header.StockLocate, rest = readUint16(rest)
	header.TrackingNumber, rest = readUint16(rest)
	header.Timestamp, rest = readTimestamp(rest)
	return
}

func stockName(stock [8]byte) string {
	return string(bytes.TrimRight(stock[:], " "))
}
