package main

import (
	"flag"
	"fmt"
	"math"
	"math/rand/v2"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cryptonstudio/crypton-order-book/matching"
)

type operation int

const (
	operationAdd operation = iota
	operationMarket
	operationRemove
	operationUpdate
	operationMatch
)

// nolint
func main() {
	var workers, opsCount int
	var norm, heavy bool
	flag.IntVar(&workers, "w", 8, "Workers count")
	flag.IntVar(&opsCount, "i", 1_000_000, "Operations count per worker")
	flag.BoolVar(&norm, "n", false, "Use normal distribution for price and quantity")
	flag.BoolVar(&heavy, "heavy", false, "Generate heavy sides for orderbook")
	flag.Parse()

	handler := &Counter{}
	book, err := matching.NewOrderBook(matching.NewSymbol(1, "LOAD"), matching.WithHandler(handler))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Println("start execution")

	var clock, lastID atomic.Uint64
	var wg sync.WaitGroup
	s := time.Now()
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range opsCount {
				run(book, randomOperation(), norm, heavy, clock.Add(1), &lastID)
			}
		}()
	}
	wg.Wait()
	for len(book.MatchOrders()) > 0 {
	}
	e := time.Now()

	handler.PrintStatistics()
	fmt.Println()
	fmt.Print(book.String())

	rps := float64(workers*opsCount) * float64(time.Second) / float64(e.Sub(s))
	fmt.Printf("RPS: %.5f\n", rps)
	if !book.ValidateConsistency() {
		fmt.Fprintln(os.Stderr, "order book is inconsistent")
		os.Exit(1)
	}
}

func randomOperation() operation {
	switch n := rand.IntN(100); {
	case n < 50:
		return operationAdd
	case n < 60:
		return operationMarket
	case n < 75:
		return operationRemove
	case n < 90:
		return operationUpdate
	default:
		return operationMatch
	}
}

func run(book *matching.OrderBook, op operation, norm, heavy bool, timestamp uint64, lastID *atomic.Uint64) {
	side := randomChoice([]matching.OrderSide{matching.OrderSideBuy, matching.OrderSideSell})
	quantity := randomFloat(1, 100, 2, norm)
	switch op {
	case operationAdd:
		price := randomFloat(1, 100, 2, norm)
		if heavy {
			// Keep bids below asks so the book grows instead of crossing
			if side == matching.OrderSideBuy {
				price = randomFloat(1, 50, 2, norm)
			} else {
				price = randomFloat(51, 100, 2, norm)
			}
		}
		if id := book.AddOrder(side, matching.NewPrice(price), quantity, timestamp); id != 0 {
			lastID.Store(id)
		}
	case operationMarket:
		book.AddMarketOrder(side, quantity, timestamp)
	case operationRemove:
		book.RemoveOrder(randomID(lastID))
	case operationUpdate:
		book.UpdateOrder(randomID(lastID), quantity)
	case operationMatch:
		book.MatchOrders()
	}
}

func randomID(lastID *atomic.Uint64) uint64 {
	last := lastID.Load()
	if last == 0 {
		return 0
	}
	return rand.Uint64N(last) + 1
}

func randomFloat(down, up float64, prec int, norm bool) float64 {
	var raw float64
	switch norm {
	case false:
		raw = rand.Float64()*(up-down) + down
	case true:
		std := (up - down) / (2.0 * 5) // range = [-5*std; +5*std]
		mean := (up + down) / 2.0
		raw = rand.NormFloat64()*std + mean
		// cut edges
		raw = min(max(raw, down), up)
	}
	pow := math.Pow10(prec)
	return math.Round(raw*pow) / pow
}

func randomChoice[T any](list []T) T {
	var empty T
	if len(list) == 0 {
		return empty
	}

	return list[rand.IntN(len(list))]
}
