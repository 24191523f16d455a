// Package main is the entry point for the shoe-card-service HTTP server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/fleveque/shoe-card-service/internal/card"
	"github.com/fleveque/shoe-card-service/internal/config"
	"github.com/fleveque/shoe-card-service/internal/metrics"
	"github.com/fleveque/shoe-card-service/internal/server"
	"github.com/fleveque/shoe-card-service/internal/service"
	"github.com/fleveque/shoe-card-service/internal/validation"
	"github.com/fleveque/shoe-card-service/internal/variant"
)

func main() {
	// run() owns the deferred cleanup; os.Exit would skip it.
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(os.Getenv("SHOECARD_CONFIG_PATH"))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger, err := newLogger(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	// Sync commonly fails on stdout/stderr; nothing useful to do about it.
	defer func() { _ = logger.Sync() }()

	m := metrics.New()
	cardService, err := newCardService(cfg, m, logger)
	if err != nil {
		return err
	}

	deps := server.Deps{
		CardService: cardService,
		Validator:   validation.New(),
		Metrics:     m,
	}
	srv := server.New(cfg, deps, logger)

	logger.Info("variant resolver ready",
		zap.String("recency", cardService.RecencyRule().String()),
		zap.String("locale", cfg.Pricing.Locale),
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case sig := <-quit:
		logger.Info("received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errChan:
		if err != nil {
			return err
		}
	}

	// Give in-flight requests 10 seconds to complete
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(ctx)
}

func newLogger(level string) (*zap.Logger, error) {
	if level == "debug" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func newCardService(cfg *config.Config, m *metrics.Metrics, logger *zap.Logger) (*service.CardService, error) {
	rule, err := cfg.Recency.RecencyRule()
	if err != nil {
		return nil, fmt.Errorf("building recency rule: %w", err)
	}

	prices, err := card.NewPriceFormatter(cfg.Pricing.Locale, cfg.Pricing.CurrencySymbol)
	if err != nil {
		return nil, fmt.Errorf("creating price formatter: %w", err)
	}

	builder := card.NewBuilder(variant.NewResolver(rule), prices)
	return service.NewCardService(builder, m, time.Now, logger), nil
}
