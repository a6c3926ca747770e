package matching

const (
	// maxMatchingIterations bounds the amount of trades produced by a single matching sweep.
	maxMatchingIterations = 1000

	// hintCompactionSlack specifies how many stale ids the order queue FIFO hint may hold
	// above the amount of live orders before it is compacted.
	hintCompactionSlack = 64

	// defaultReservedOrderSlots specifies initial size of hashmap array storing orders by order id separately for each price level.
	defaultReservedOrderSlots = 8

	// defaultDumpDepth specifies amount of price levels per side rendered by OrderBook.String().
	defaultDumpDepth = 10
)
