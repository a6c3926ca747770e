package matching

import (
	"errors"
)

// Errors used by the package.
// Order book operations report absence with explicit results, these errors
// are delivered to Handler.OnError as the observability signal.
var (
	ErrOrderNotFound              = errors.New("order is not found")
	ErrInvalidSymbol              = errors.New("invalid symbol")
	ErrInvalidOrderSide           = errors.New("invalid order side")
	ErrInvalidOrderQuantity       = errors.New("invalid order quantity")
	ErrPriceLevelVanished         = errors.New("price level vanished during matching")
	ErrMatchingIterationsExceeded = errors.New("matching iterations limit exceeded")
)
