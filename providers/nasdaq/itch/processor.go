package itch

import (
	"errors"
	"fmt"
	"io"
)

const (
	chunkSize = 1024 * 1024
	// Message length is 2 bytes long so 64 KiB plus the length prefix bounds the cache.
	maxCacheSize = 256*256 + 2
)

// Processor splits a stream of length prefixed ITCH messages and passes
// decoded messages to the handler. Messages may be split between chunks
// at any byte.
type Processor struct {
	handler        Handler
	unmarshalFuncs [256]func([]byte) error
	msgLength      int
	cache          []byte
	messages       uint64
}

func NewProcessor(handler Handler) *Processor {
	processor := &Processor{
		handler: handler,
		cache:   make([]byte, 0, maxCacheSize),
	}
	processor.initialize()
	return processor
}

// Messages returns amount of messages processed so far.
func (p *Processor) Messages() uint64 {
	return p.messages
}

// Process reads the whole stream. A message cut by the end of the stream
// is reported as ErrTruncatedStream.
func (p *Processor) Process(reader io.Reader) error {
	chunk := make([]byte, chunkSize)
	for {
		readBytes, err := reader.Read(chunk)
		if readBytes > 0 {
			if err := p.ProcessChunk(chunk[:readBytes]); err != nil {
				return err
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read ITCH stream: %w", err)
		}
	}
	if p.msgLength > 0 || len(p.cache) > 0 {
		return ErrTruncatedStream
	}
	return nil
}

// ProcessChunk processes next part of the stream.
func (p *Processor) ProcessChunk(chunk []byte) error {
	for offset, size := 0, len(chunk); offset < size; {

		if p.msgLength == 0 {
			remaining := size - offset

			// Collect message size into the cache
			if (len(p.cache) == 0 && remaining < 2) || len(p.cache) == 1 {
				p.cache = append(p.cache, chunk[offset])
				offset++
				if len(p.cache) < 2 {
					continue
				}
			}

			// Read a new message size
			var msgLength uint16
			if len(p.cache) == 0 {
				msgLength, _ = readUint16(chunk[offset : offset+2])
				offset += 2
			} else {
				msgLength, _ = readUint16(p.cache[:2])
				p.cache = p.cache[:0]
			}
			p.msgLength = int(msgLength)
			continue
		}

		remaining := size - offset

		// Complete or place the message into the cache
		if len(p.cache) > 0 {
			tail := min(p.msgLength-len(p.cache), remaining)
			p.cache = append(p.cache, chunk[offset:offset+tail]...)
			offset += tail
			if p.msgLength > len(p.cache) {
				continue
			}
		} else if p.msgLength > remaining {
			p.cache = append(p.cache, chunk[offset:]...)
			offset = size
			continue
		}

		// Process the current message either from the cache or directly from the input
		var msg []byte
		if len(p.cache) > 0 {
			msg = p.cache[:p.msgLength]
		} else {
			msg = chunk[offset : offset+p.msgLength]
			offset += p.msgLength
		}
		if err := p.unmarshalFuncs[msg[0]](msg); err != nil {
			return err
		}
		p.cache = p.cache[:0]
		p.msgLength = 0
		p.messages++
	}

	return nil
}

func bind[M any](unmarshal func([]byte) (M, error), handle func(M) error) func([]byte) error {
	return func(data []byte) error {
		msg, err := unmarshal(data)
		if err != nil {
			return err
		}
		if err := handle(msg); err != nil {
			return fmt.Errorf("failed to handle ITCH message type '%c': %w", data[0], err)
		}
		return nil
	}
}

func (p *Processor) initialize() {
	p.unmarshalFuncs[MessageTypeSystemEvent] = bind(unmarshalSystemEventMessage, p.handler.OnSystemEventMessage)
	p.unmarshalFuncs[MessageTypeStockDirectory] = bind(unmarshalStockDirectoryMessage, p.handler.OnStockDirectoryMessage)
	p.unmarshalFuncs[MessageTypeAddOrder] = bind(unmarshalAddOrderMessage, p.handler.OnAddOrderMessage)
	p.unmarshalFuncs[MessageTypeAddOrderMPID] = bind(unmarshalAddOrderMPIDMessage, p.handler.OnAddOrderMPIDMessage)
	p.unmarshalFuncs[MessageTypeOrderExecuted] = bind(unmarshalOrderExecutedMessage, p.handler.OnOrderExecutedMessage)
	p.unmarshalFuncs[MessageTypeOrderExecutedWithPrice] = bind(unmarshalOrderExecutedWithPriceMessage, p.handler.OnOrderExecutedWithPriceMessage)
	p.unmarshalFuncs[MessageTypeOrderCancel] = bind(unmarshalOrderCancelMessage, p.handler.OnOrderCancelMessage)
	p.unmarshalFuncs[MessageTypeOrderDelete] = bind(unmarshalOrderDeleteMessage, p.handler.OnOrderDeleteMessage)
	p.unmarshalFuncs[MessageTypeOrderReplace] = bind(unmarshalOrderReplaceMessage, p.handler.OnOrderReplaceMessage)
	// All other message types are unknown
	unknown := bind(unmarshalUnknownMessage, p.handler.OnUnknownMessage)
	for i := range p.unmarshalFuncs {
		if p.unmarshalFuncs[i] == nil {
			p.unmarshalFuncs[i] = unknown
		}
	}
}
