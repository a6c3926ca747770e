package matching

// OrderBookStats is a point-in-time read model of the order book.
// Cumulative counters are monotonic until the book is cleared, top of book
// values are recomputed after every mutating call.
type OrderBookStats struct {
	TotalOrdersCreated   uint64
	TotalOrdersMatched   uint64
	TotalOrdersCancelled uint64
	TotalVolumeTraded    float64 // sum of price multiplied by quantity of all trades

	BestBid    Price
	HasBestBid bool
	BestAsk    Price
	HasBestAsk bool

	Spread        float64
	MidPrice      float64
	HasSpread     bool // spread and mid price exist only when both sides are present
	LastMatchTime uint64
	HasLastMatch  bool
}

// GetBestBid returns the highest bid price if any.
func (s OrderBookStats) GetBestBid() (Price, bool) {
	return s.BestBid, s.HasBestBid
}

// GetBestAsk returns the lowest ask price if any.
func (s OrderBookStats) GetBestAsk() (Price, bool) {
	return s.BestAsk, s.HasBestAsk
}

// GetSpread returns difference between the best ask and the best bid.
func (s OrderBookStats) GetSpread() (float64, bool) {
	return s.Spread, s.HasSpread
}

// GetMidPrice returns the middle between the best ask and the best bid.
func (s OrderBookStats) GetMidPrice() (float64, bool) {
	return s.MidPrice, s.HasSpread
}

// GetLastMatchTime returns time of the last trade.
func (s OrderBookStats) GetLastMatchTime() (uint64, bool) {
	return s.LastMatchTime, s.HasLastMatch
}

// setTop recomputes top of book values from the given best prices.
func (s *OrderBookStats) setTop(bid Price, hasBid bool, ask Price, hasAsk bool) {
	s.BestBid, s.HasBestBid = bid, hasBid
	s.BestAsk, s.HasBestAsk = ask, hasAsk
	s.HasSpread = hasBid && hasAsk
	if s.HasSpread {
		s.Spread = ask.Float64() - bid.Float64()
		s.MidPrice = (ask.Float64() + bid.Float64()) / 2
	} else {
		s.Spread, s.MidPrice = 0, 0
	}
	if !hasBid {
		s.BestBid = 0
	}
	if !hasAsk {
		s.BestAsk = 0
	}
}
