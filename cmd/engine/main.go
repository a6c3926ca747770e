package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/cryptonstudio/crypton-order-book/matching"
	"github.com/cryptonstudio/crypton-order-book/metrics"
	"github.com/cryptonstudio/crypton-order-book/providers/nasdaq/itch"
)

func main() {
	cfg, err := loadConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("replay failed", zap.Error(err))
	}
}

func newLogger(level string) (*zap.Logger, error) {
	atomicLevel, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	zapConfig := zap.NewProductionConfig()
	zapConfig.Level = atomicLevel
	return zapConfig.Build()
}

func run(cfg config, logger *zap.Logger) error {
	matcher := &Matcher{}
	bookHandlers := handlers{matcher}

	if cfg.MetricsAddr != "" {
		registry := prometheus.NewRegistry()
		registry.MustRegister(collectors.NewGoCollector())
		bookHandlers = append(bookHandlers, metrics.NewCollector(registry))

		server := &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server failed", zap.Error(err))
			}
		}()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(ctx)
		}()
		logger.Info("serving metrics", zap.String("addr", cfg.MetricsAddr))
	}

	book, err := matching.NewOrderBook(matching.NewSymbol(0, cfg.Stock),
		matching.WithHandler(bookHandlers),
		matching.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	file, err := os.Open(cfg.File)
	if err != nil {
		return fmt.Errorf("failed to open ITCH file: %w", err)
	}
	defer file.Close()

	itchHandler := NewITCH(cfg.Stock, book, logger)
	processor := itch.NewProcessor(itchHandler)

	timeStart := time.Now()
	if err := processor.Process(file); err != nil {
		return err
	}
	var trades []matching.Trade
	if cfg.Match {
		for batch := book.MatchOrders(); len(batch) > 0; batch = book.MatchOrders() {
			trades = append(trades, batch...)
		}
	}
	timeElapsed := time.Since(timeStart)

	logger.Info("replay completed",
		zap.String("stock", cfg.Stock),
		zap.Uint64("messages", processor.Messages()),
		zap.Int("trades", len(trades)),
		zap.Duration("elapsed", timeElapsed),
	)

	fmt.Println()
	itchHandler.PrintStatistics()
	fmt.Println()
	matcher.PrintStatistics()
	fmt.Println()
	printDepth(book, cfg.Depth)
	fmt.Println()
	fmt.Print(book.String())
	fmt.Println()
	fmt.Printf("Time elapsed: %f seconds\n", timeElapsed.Seconds())
	fmt.Printf("Messages per second: %.0f\n", float64(processor.Messages())/timeElapsed.Seconds())
	return nil
}

func printDepth(book *matching.OrderBook, depth int) {
	bids, asks := book.MarketDepth(depth)
	fmt.Printf("MARKET DEPTH %s:\n", book.Symbol().Name())
	for i := 0; i < max(len(bids), len(asks)); i++ {
		var bid, ask string
		if i < len(bids) {
			bid = fmt.Sprintf("%10.0f @ %-10s", bids[i].Volume, bids[i].Price)
		}
		if i < len(asks) {
			ask = fmt.Sprintf("%10.0f @ %-10s", asks[i].Volume, asks[i].Price)
		}
		fmt.Printf("%-24s | %-24s\n", bid, ask)
	}
}
