package itch

import "errors"

var (
	ErrInvalidMessageSize = errors.New("invalid size of the ITCH message")
	ErrTruncatedStream    = errors.New("ITCH stream ends in the middle of a message")
)
