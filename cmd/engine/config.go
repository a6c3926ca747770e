package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type config struct {
	File        string `mapstructure:"file"`
	Stock       string `mapstructure:"stock"`
	Depth       int    `mapstructure:"depth"`
	LogLevel    string `mapstructure:"log_level"`
	MetricsAddr string `mapstructure:"metrics_addr"`
	Match       bool   `mapstructure:"match"`
}

// loadConfig reads engine.yaml if present, then LOB_* environment variables
// and finally command line flags, each overriding the previous one.
func loadConfig(args []string) (config, error) {
	v := viper.New()
	v.SetDefault("file", "./.stash/itch/01302019.NASDAQ_ITCH50")
	v.SetDefault("stock", "AAPL")
	v.SetDefault("depth", 10)
	v.SetDefault("log_level", "info")
	v.SetDefault("metrics_addr", "")
	v.SetDefault("match", false)

	v.SetConfigName("engine")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix("LOB")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	flags := pflag.NewFlagSet("engine", pflag.ContinueOnError)
	flags.String("file", v.GetString("file"), "path to NASDAQ ITCH 5.0 file")
	flags.String("stock", v.GetString("stock"), "stock symbol to replay")
	flags.Int("depth", v.GetInt("depth"), "amount of price levels to print per side")
	flags.String("log-level", v.GetString("log_level"), "log level")
	flags.String("metrics-addr", v.GetString("metrics_addr"), "address to serve Prometheus metrics on, disabled if empty")
	flags.Bool("match", v.GetBool("match"), "match crossed orders after the replay")
	if err := flags.Parse(args); err != nil {
		return config{}, err
	}
	for key, name := range map[string]string{
		"file":         "file",
		"stock":        "stock",
		"depth":        "depth",
		"log_level":    "log-level",
		"metrics_addr": "metrics-addr",
		"match":        "match",
	} {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			return config{}, err
		}
	}

	var cfg config
	if err := v.Unmarshal(&cfg); err != nil {
		return config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if cfg.Stock == "" {
		return config{}, errors.New("stock must not be empty")
	}
	if cfg.Depth < 0 {
		return config{}, fmt.Errorf("invalid depth %d", cfg.Depth)
	}
	return cfg, nil
}
