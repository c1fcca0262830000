package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress            string
	DatabaseURI           string
	ProductServiceAddress string
	PaymentServiceAddress string
	RemoteCallTimeout     time.Duration
	SweepInterval         time.Duration
	StaleOrderAge         time.Duration
	SweepBatchSize        int
	ShutdownTimeout       time.Duration
}

const (
	defaultRunAddress        = ":8080"
	defaultRemoteCallTimeout = 10 * time.Second
	defaultSweepInterval     = time.Minute
	defaultStaleOrderAge     = 15 * time.Minute
	defaultSweepBatchSize    = 32
	defaultShutdownTimeout   = 10 * time.Second
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:            getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:           getString(lookup, "DATABASE_URI", ""),
		ProductServiceAddress: getString(lookup, "PRODUCT_SERVICE_ADDRESS", ""),
		PaymentServiceAddress: getString(lookup, "PAYMENT_SERVICE_ADDRESS", ""),
		RemoteCallTimeout:     getDuration(lookup, "REMOTE_CALL_TIMEOUT", defaultRemoteCallTimeout),
		SweepInterval:         getDuration(lookup, "SWEEP_INTERVAL", defaultSweepInterval),
		StaleOrderAge:         getDuration(lookup, "STALE_ORDER_AGE", defaultStaleOrderAge),
		SweepBatchSize:        getInt(lookup, "SWEEP_BATCH_SIZE", defaultSweepBatchSize),
		ShutdownTimeout:       getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	fs := flag.NewFlagSet("eshop-orders", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		callTimeoutStr     = cfg.RemoteCallTimeout.String()
		sweepIntervalStr   = cfg.SweepInterval.String()
		staleAgeStr        = cfg.StaleOrderAge.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.ProductServiceAddress, "p", cfg.ProductServiceAddress, "Product service base URL")
	fs.StringVar(&cfg.PaymentServiceAddress, "y", cfg.PaymentServiceAddress, "Payment service base URL")
	fs.StringVar(&callTimeoutStr, "call-timeout", callTimeoutStr, "Timeout per outbound remote call")
	fs.StringVar(&sweepIntervalStr, "sweep-interval", sweepIntervalStr, "Interval between stale order sweeps")
	fs.StringVar(&staleAgeStr, "stale-age", staleAgeStr, "Age after which a CREATED order counts as abandoned")
	fs.IntVar(&cfg.SweepBatchSize, "sweep-batch", cfg.SweepBatchSize, "Maximum orders per sweep batch")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.RemoteCallTimeout, err = time.ParseDuration(callTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid call timeout: %w", err)
	}

	if cfg.SweepInterval, err = time.ParseDuration(sweepIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid sweep interval: %w", err)
	}

	if cfg.StaleOrderAge, err = time.ParseDuration(staleAgeStr); err != nil {
		return nil, fmt.Errorf("invalid stale order age: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if cfg.RemoteCallTimeout <= 0 {
		cfg.RemoteCallTimeout = defaultRemoteCallTimeout
	}

	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = defaultSweepInterval
	}

	if cfg.StaleOrderAge <= 0 {
		cfg.StaleOrderAge = defaultStaleOrderAge
	}

	if cfg.SweepBatchSize <= 0 {
		cfg.SweepBatchSize = defaultSweepBatchSize
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.ProductServiceAddress == "" {
		return nil, fmt.Errorf("product service address must be provided")
	}

	if cfg.PaymentServiceAddress == "" {
		return nil, fmt.Errorf("payment service address must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
