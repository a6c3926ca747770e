package matching_test

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	matching "github.com/cryptonstudio/crypton-order-book/matching"
)

func newTestOrderBook(t testing.TB, options ...matching.Option) *matching.OrderBook {
	t.Helper()
	options = append([]matching.Option{matching.WithLogger(zaptest.NewLogger(t))}, options...)
	ob, err := matching.NewOrderBook(matching.NewSymbol(1, "BTC-USDT"), options...)
	require.NoError(t, err)
	return ob
}

func TestNewOrderBook(t *testing.T) {
	_, err := matching.NewOrderBook(matching.NewSymbol(1, ""))
	require.ErrorIs(t, err, matching.ErrInvalidSymbol)

	ob := newTestOrderBook(t)
	require.Equal(t, "BTC-USDT", ob.Symbol().Name())
	require.True(t, ob.IsEmpty())
	require.True(t, ob.ValidateConsistency())
	_, ok := ob.BestBid()
	require.False(t, ok)
	_, ok = ob.Spread()
	require.False(t, ok)
}

func TestOrderBookScenarios(t *testing.T) {
	t.Run("sweep prints at the earlier order price", func(t *testing.T) {
		ob := newTestOrderBook(t, matching.WithClock(func() uint64 { return 777 }))
		bidID := ob.AddOrder(matching.OrderSideBuy, 100.0, 10.0, 1)
		askID := ob.AddOrder(matching.OrderSideSell, 99.0, 15.0, 2)

		trades := ob.MatchOrders()
		require.Len(t, trades, 1)
		require.Equal(t, matching.Trade{
			BidOrderID:   bidID,
			AskOrderID:   askID,
			MakerOrderID: bidID,
			TakerOrderID: askID,
			Price:        100.0,
			Quantity:     10.0,
			Timestamp:    1,
		}, trades[0])

		bids, asks := ob.MarketDepth(5)
		require.Empty(t, bids)
		require.Equal(t, []matching.PriceLevelL2{{Price: 99.0, Volume: 5.0}}, asks)
		_, ok := ob.GetOrder(bidID)
		require.False(t, ok)

		stats := ob.Stats()
		require.Equal(t, uint64(2), stats.TotalOrdersCreated)
		require.Equal(t, uint64(1), stats.TotalOrdersMatched)
		require.Equal(t, 1000.0, stats.TotalVolumeTraded)
		last, ok := stats.GetLastMatchTime()
		require.True(t, ok)
		require.Equal(t, uint64(777), last)
		require.True(t, ob.ValidateConsistency())
	})

	t.Run("sweep prints at the ask price when the ask arrived first", func(t *testing.T) {
		ob := newTestOrderBook(t)
		askID := ob.AddOrder(matching.OrderSideSell, 99.0, 5.0, 1)
		bidID := ob.AddOrder(matching.OrderSideBuy, 100.0, 5.0, 2)

		trades := ob.MatchOrders()
		require.Len(t, trades, 1)
		require.True(t, trades[0].Price.Equal(99.0))
		require.Equal(t, askID, trades[0].MakerOrderID)
		require.Equal(t, bidID, trades[0].TakerOrderID)
		require.True(t, ob.IsEmpty())
	})

	t.Run("market depth", func(t *testing.T) {
		ob := newTestOrderBook(t)
		ob.AddOrder(matching.OrderSideBuy, 100, 10, 1)
		ob.AddOrder(matching.OrderSideBuy, 99, 15, 2)
		ob.AddOrder(matching.OrderSideSell, 101, 20, 3)

		bids, asks := ob.MarketDepth(2)
		require.Equal(t, []matching.PriceLevelL2{{Price: 100.0, Volume: 10.0}, {Price: 99.0, Volume: 15.0}}, bids)
		require.Equal(t, []matching.PriceLevelL2{{Price: 101.0, Volume: 20.0}}, asks)

		bids, _ = ob.MarketDepth(1)
		require.Len(t, bids, 1)
		bids, asks = ob.MarketDepth(0)
		require.Empty(t, bids)
		require.Empty(t, asks)

		spread, ok := ob.Spread()
		require.True(t, ok)
		require.Equal(t, 1.0, spread)
		mid, ok := ob.MidPrice()
		require.True(t, ok)
		require.Equal(t, 100.5, mid)
	})

	t.Run("market order takes the resting price", func(t *testing.T) {
		ob := newTestOrderBook(t)
		bidID := ob.AddOrder(matching.OrderSideBuy, 100.0, 10.0, 1)

		trades := ob.AddMarketOrder(matching.OrderSideSell, 5.0, 9)
		require.Len(t, trades, 1)
		require.True(t, trades[0].Price.Equal(100.0))
		require.Equal(t, 5.0, trades[0].Quantity)
		require.Equal(t, bidID, trades[0].MakerOrderID)
		require.Equal(t, bidID, trades[0].BidOrderID)
		require.Equal(t, trades[0].TakerOrderID, trades[0].AskOrderID)
		require.Greater(t, trades[0].TakerOrderID, bidID)

		bid, ok := ob.GetOrder(bidID)
		require.True(t, ok)
		require.Equal(t, 5.0, bid.Quantity())

		stats := ob.Stats()
		require.Equal(t, uint64(2), stats.TotalOrdersCreated)
		require.Equal(t, uint64(1), stats.TotalOrdersMatched)
		last, ok := stats.GetLastMatchTime()
		require.True(t, ok)
		require.Equal(t, uint64(9), last)
	})

	t.Run("remove from empty book", func(t *testing.T) {
		ob := newTestOrderBook(t)
		_, ok := ob.RemoveOrder(9999)
		require.False(t, ok)
		require.Equal(t, uint64(0), ob.Stats().TotalOrdersCancelled)
	})

	t.Run("concurrent adds", func(t *testing.T) {
		const n = 64

		ob := newTestOrderBook(t)
		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				// Bids below asks so the book never crosses
				if i%2 == 0 {
					ob.AddOrder(matching.OrderSideBuy, matching.NewPrice(float64(90+i%5)), 1, uint64(i))
				} else {
					ob.AddOrder(matching.OrderSideSell, matching.NewPrice(float64(110+i%5)), 1, uint64(i))
				}
			}(i)
		}
		wg.Wait()

		require.Equal(t, n, ob.TotalOrders())
		require.True(t, ob.ValidateConsistency())
		bids, asks := ob.TotalPriceLevels()
		require.Equal(t, 5, bids)
		require.Equal(t, 5, asks)
		require.Equal(t, uint64(n), ob.Stats().TotalOrdersCreated)
	})
}

func TestOrderBookPriceTimePriority(t *testing.T) {
	t.Run("higher bid first", func(t *testing.T) {
		ob := newTestOrderBook(t)
		ob.AddOrder(matching.OrderSideBuy, 99, 1, 1)
		best := ob.AddOrder(matching.OrderSideBuy, 100, 1, 2)
		ob.AddOrder(matching.OrderSideSell, 98, 1, 3)

		trades := ob.MatchOrders()
		require.Len(t, trades, 1)
		require.Equal(t, best, trades[0].BidOrderID)
	})

	t.Run("earlier bid first at the same price", func(t *testing.T) {
		ob := newTestOrderBook(t)
		first := ob.AddOrder(matching.OrderSideBuy, 100, 1, 1)
		second := ob.AddOrder(matching.OrderSideBuy, 100, 1, 2)
		ob.AddOrder(matching.OrderSideSell, 100, 1.5, 3)

		trades := ob.MatchOrders()
		require.Len(t, trades, 2)
		require.Equal(t, first, trades[0].BidOrderID)
		require.Equal(t, 1.0, trades[0].Quantity)
		require.Equal(t, second, trades[1].BidOrderID)
		require.Equal(t, 0.5, trades[1].Quantity)

		rest, ok := ob.GetOrder(second)
		require.True(t, ok)
		require.Equal(t, 0.5, rest.Quantity())
		require.True(t, ob.ValidateConsistency())
	})

	t.Run("sweep across levels", func(t *testing.T) {
		ob := newTestOrderBook(t)
		ob.AddOrder(matching.OrderSideSell, 101, 2, 1)
		ob.AddOrder(matching.OrderSideSell, 102, 2, 2)
		ob.AddOrder(matching.OrderSideSell, 104, 2, 3)
		ob.AddOrder(matching.OrderSideBuy, 103, 5, 4)

		trades := ob.MatchOrders()
		require.Len(t, trades, 2)
		require.True(t, trades[0].Price.Equal(101))
		require.True(t, trades[1].Price.Equal(102))

		bids, asks := ob.MarketDepth(10)
		require.Equal(t, []matching.PriceLevelL2{{Price: 103, Volume: 1}}, bids)
		require.Equal(t, []matching.PriceLevelL2{{Price: 104, Volume: 2}}, asks)
		require.True(t, ob.ValidateConsistency())
		require.Empty(t, ob.MatchOrders())
	})
}

func TestOrderBookMutations(t *testing.T) {
	t.Run("add never matches", func(t *testing.T) {
		ob := newTestOrderBook(t)
		ob.AddOrder(matching.OrderSideBuy, 100, 1, 1)
		ob.AddOrder(matching.OrderSideSell, 99, 1, 2)
		require.Equal(t, 2, ob.TotalOrders())
		require.False(t, ob.ValidateConsistency())
		require.Len(t, ob.MatchOrders(), 1)
		require.True(t, ob.ValidateConsistency())
	})

	t.Run("invalid orders are rejected", func(t *testing.T) {
		ob := newTestOrderBook(t)
		require.Zero(t, ob.AddOrder(matching.OrderSide(0), 100, 1, 1))
		require.Zero(t, ob.AddOrder(matching.OrderSideBuy, 100, 0, 1))
		require.Zero(t, ob.AddOrder(matching.OrderSideBuy, 100, -1, 1))
		require.Zero(t, ob.AddOrder(matching.OrderSideBuy, 100, math.NaN(), 1))
		require.Zero(t, ob.AddOrder(matching.OrderSideBuy, 100, math.Inf(1), 1))
		require.Nil(t, ob.AddMarketOrder(matching.OrderSideBuy, 0, 1))
		require.True(t, ob.IsEmpty())
		require.Equal(t, uint64(0), ob.Stats().TotalOrdersCreated)
	})

	t.Run("ids are unique and never reused", func(t *testing.T) {
		ob := newTestOrderBook(t)
		first := ob.AddOrder(matching.OrderSideBuy, 100, 1, 1)
		second := ob.AddOrder(matching.OrderSideBuy, 100, 1, 2)
		require.NotEqual(t, first, second)
		ob.Clear()
		third := ob.AddOrder(matching.OrderSideBuy, 100, 1, 3)
		require.Greater(t, third, second)
	})

	t.Run("remove is idempotent", func(t *testing.T) {
		ob := newTestOrderBook(t)
		id := ob.AddOrder(matching.OrderSideSell, 100, 3, 1)
		ob.AddOrder(matching.OrderSideSell, 101, 3, 2)

		order, ok := ob.RemoveOrder(id)
		require.True(t, ok)
		require.Equal(t, id, order.ID())
		require.Equal(t, 3.0, order.Quantity())
		require.Equal(t, uint64(1), ob.Stats().TotalOrdersCancelled)

		_, ok = ob.RemoveOrder(id)
		require.False(t, ok)
		require.Equal(t, uint64(1), ob.Stats().TotalOrdersCancelled)

		// Emptied level is pruned
		_, asks := ob.TotalPriceLevels()
		require.Equal(t, 1, asks)
		best, ok := ob.BestAsk()
		require.True(t, ok)
		require.True(t, best.Equal(101))
	})

	t.Run("update", func(t *testing.T) {
		ob := newTestOrderBook(t)
		id := ob.AddOrder(matching.OrderSideBuy, 100, 3, 1)
		require.True(t, ob.UpdateOrder(id, 8))
		order, ok := ob.GetOrder(id)
		require.True(t, ok)
		require.Equal(t, 8.0, order.Quantity())
		bids, _ := ob.MarketDepth(1)
		require.Equal(t, 8.0, bids[0].Volume)

		require.False(t, ob.UpdateOrder(id+100, 1))
		require.False(t, ob.UpdateOrder(id, math.Inf(1)))

		// Zero quantity cancels the order
		require.True(t, ob.UpdateOrder(id, 0))
		_, ok = ob.GetOrder(id)
		require.False(t, ok)
		require.True(t, ob.IsEmpty())
		require.Equal(t, uint64(1), ob.Stats().TotalOrdersCancelled)
		require.False(t, ob.UpdateOrder(id, 0))
	})

	t.Run("clear", func(t *testing.T) {
		ob := newTestOrderBook(t)
		ob.AddOrder(matching.OrderSideBuy, 100, 1, 1)
		ob.AddOrder(matching.OrderSideSell, 100, 1, 2)
		ob.AddOrder(matching.OrderSideSell, 101, 1, 3)
		ob.MatchOrders()

		ob.Clear()
		require.True(t, ob.IsEmpty())
		require.Equal(t, 0, ob.TotalOrders())
		require.Equal(t, matching.OrderBookStats{}, ob.Stats())

		ob.AddOrder(matching.OrderSideSell, 105, 1, 4)
		best, ok := ob.BestAsk()
		require.True(t, ok)
		require.True(t, best.Equal(105))
	})

	t.Run("stats follow the top of book", func(t *testing.T) {
		ob := newTestOrderBook(t)
		bid := ob.AddOrder(matching.OrderSideBuy, 99, 1, 1)
		ob.AddOrder(matching.OrderSideSell, 101, 1, 2)

		stats := ob.Stats()
		bestBid, ok := stats.GetBestBid()
		require.True(t, ok)
		require.True(t, bestBid.Equal(99))
		bestAsk, ok := stats.GetBestAsk()
		require.True(t, ok)
		require.True(t, bestAsk.Equal(101))

		ob.RemoveOrder(bid)
		stats = ob.Stats()
		require.False(t, stats.HasBestBid)
		_, ok = stats.GetSpread()
		require.False(t, ok)
		_, ok = stats.GetMidPrice()
		require.False(t, ok)
	})
}

func TestOrderBookMarketOrders(t *testing.T) {
	t.Run("short fill drops the remainder", func(t *testing.T) {
		ob := newTestOrderBook(t)
		ob.AddOrder(matching.OrderSideSell, 101, 2, 1)
		ob.AddOrder(matching.OrderSideSell, 102, 3, 2)

		trades := ob.AddMarketOrder(matching.OrderSideBuy, 10, 3)
		require.Len(t, trades, 2)
		total := 0.0
		for _, trade := range trades {
			total += trade.Quantity
		}
		require.Equal(t, 5.0, total)
		require.True(t, trades[0].Price.Equal(101))
		require.True(t, trades[1].Price.Equal(102))
		require.Equal(t, trades[0].TakerOrderID, trades[0].BidOrderID)

		// Nothing rests afterwards
		require.True(t, ob.IsEmpty())
		_, ok := ob.GetOrder(trades[0].TakerOrderID)
		require.False(t, ok)
		require.Equal(t, 101*2.0+102*3.0, ob.Stats().TotalVolumeTraded)
	})

	t.Run("exact fill", func(t *testing.T) {
		ob := newTestOrderBook(t)
		ob.AddOrder(matching.OrderSideBuy, 100, 2, 1)
		ob.AddOrder(matching.OrderSideBuy, 99, 2, 2)

		trades := ob.AddMarketOrder(matching.OrderSideSell, 3, 3)
		require.Len(t, trades, 2)
		require.Equal(t, 2.0, trades[0].Quantity)
		require.Equal(t, 1.0, trades[1].Quantity)
		bids, _ := ob.MarketDepth(5)
		require.Equal(t, []matching.PriceLevelL2{{Price: 99, Volume: 1}}, bids)
	})

	t.Run("empty opposite side", func(t *testing.T) {
		ob := newTestOrderBook(t)
		ob.AddOrder(matching.OrderSideBuy, 100, 2, 1)
		require.Empty(t, ob.AddMarketOrder(matching.OrderSideBuy, 3, 2))
		// Not counted as created without trades
		require.Equal(t, uint64(1), ob.Stats().TotalOrdersCreated)
		_, ok := ob.Stats().GetLastMatchTime()
		require.False(t, ok)
	})
}

func TestOrderBookNaNPrices(t *testing.T) {
	ob := newTestOrderBook(t)
	ob.AddOrder(matching.OrderSideBuy, matching.NewPrice(math.NaN()), 1, 1)
	ob.AddOrder(matching.OrderSideBuy, 100, 1, 2)

	// NaN is the least price so it never becomes the best bid while other bids exist
	best, ok := ob.BestBid()
	require.True(t, ok)
	require.True(t, best.Equal(100))
	require.True(t, ob.ValidateConsistency())

	// NaN ask is below every bid and crosses the book
	ob.AddOrder(matching.OrderSideSell, matching.NewPrice(math.NaN()), 1, 3)
	trades := ob.MatchOrders()
	require.NotEmpty(t, trades)
	require.True(t, trades[0].Price.Equal(100))
}

func TestOrderBookString(t *testing.T) {
	ob := newTestOrderBook(t)
	ob.AddOrder(matching.OrderSideBuy, 100, 10, 1)
	ob.AddOrder(matching.OrderSideSell, 101, 20, 2)

	dump := ob.String()
	require.Contains(t, dump, "=== ORDER BOOK BTC-USDT ===")
	require.Contains(t, dump, "Spread: 1.0000")
	require.Contains(t, dump, "Mid Price: 100.5000")
	require.Contains(t, dump, "ASK: 101.0000 | 20.0000")
	require.Contains(t, dump, "BID: 100.0000 | 10.0000")
	require.Contains(t, dump, "Price Levels - Bids: 1, Asks: 1")
	require.Contains(t, dump, "Consistency: true")
}

func TestOrderBookConcurrentMixed(t *testing.T) {
	const workers, operations = 8, 300

	ob := newTestOrderBook(t, matching.WithLogger(zap.NewNop()))
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < operations; i++ {
				ts := uint64(w*operations + i)
				switch i % 6 {
				case 0, 1:
					ob.AddOrder(matching.OrderSideBuy, matching.NewPrice(float64(95+i%7)), 1, ts)
				case 2, 3:
					ob.AddOrder(matching.OrderSideSell, matching.NewPrice(float64(98+i%7)), 1, ts)
				case 4:
					ob.MatchOrders()
				default:
					ob.AddMarketOrder(matching.OrderSideBuy, 0.5, ts)
				}
				ob.MarketDepth(3)
			}
		}(w)
	}
	wg.Wait()

	for len(ob.MatchOrders()) > 0 {
	}
	require.True(t, ob.ValidateConsistency())
	bids, asks := ob.MarketDepth(100)
	total := 0.0
	for _, level := range append(bids, asks...) {
		require.Greater(t, level.Volume, 0.0)
		total += level.Volume
	}
	require.GreaterOrEqual(t, total, 0.0)
}

func BenchmarkOrderBookAddMatch(b *testing.B) {
	ob, err := matching.NewOrderBook(matching.NewSymbol(1, "BENCH"))
	require.NoError(b, err)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ts := uint64(i)
		ob.AddOrder(matching.OrderSideBuy, matching.NewPrice(float64(100+i%10)), 1, ts)
		ob.AddOrder(matching.OrderSideSell, matching.NewPrice(float64(105-i%10)), 1, ts)
		if i%16 == 0 {
			ob.MatchOrders()
		}
	}
}
