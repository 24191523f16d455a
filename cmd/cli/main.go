// Package main provides the shoecard CLI. It resolves card variants for a
// catalog file without running the HTTP server.
//
// Run with: go run ./cmd/cli resolve --file shoes.yaml
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fleveque/shoe-card-service/internal/card"
	"github.com/fleveque/shoe-card-service/internal/catalog"
	"github.com/fleveque/shoe-card-service/internal/config"
	"github.com/fleveque/shoe-card-service/internal/model"
	"github.com/fleveque/shoe-card-service/internal/service"
	"github.com/fleveque/shoe-card-service/internal/validation"
	"github.com/fleveque/shoe-card-service/internal/variant"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// options are the flags shared by every subcommand.
type options struct {
	configPath string
	file       string
	at         string
}

// rootCmd builds the command tree:
//
//	shoecard resolve  --file shoes.json [--at 2024-05-01T00:00:00Z]
//	shoecard card     --file shoes.yaml
//	shoecard validate --file shoes.yaml
func rootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:          "shoecard",
		Short:        "Shoe card variant tools",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", os.Getenv("SHOECARD_CONFIG_PATH"), "Path to a YAML config file")
	root.PersistentFlags().StringVarP(&opts.file, "file", "f", "", "Catalog file (.json, .yaml or .yml)")
	root.PersistentFlags().StringVar(&opts.at, "at", "", "Reference time as RFC 3339 (default: now)")

	root.AddCommand(resolveCmd(opts), cardCmd(opts), validateCmd(opts))
	return root
}

// slugResult pairs a resolution with the shoe it belongs to.
type slugResult struct {
	Slug string `json:"slug"`
	model.VariantResult
}

func resolveCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve",
		Short: "Print the card variant of every shoe in a catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(opts)
			if err != nil {
				return err
			}
			defer env.close()

			results := make([]slugResult, 0, len(env.shoes))
			for _, shoe := range env.shoes {
				results = append(results, slugResult{
					Slug:          shoe.Slug,
					VariantResult: env.svc.ResolveAt(shoe, env.now),
				})
			}
			return writeJSON(cmd.OutOrStdout(), results)
		},
	}
}

func cardCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "card",
		Short: "Print the full product card of every shoe in a catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(opts)
			if err != nil {
				return err
			}
			defer env.close()

			return writeJSON(cmd.OutOrStdout(), env.svc.Cards(env.shoes, env.now))
		},
	}
}

func validateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check a catalog file without resolving it",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(opts)
			if err != nil {
				return err
			}
			defer env.close()

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d shoes OK\n", opts.file, len(env.shoes))
			return nil
		},
	}
}

// cliEnv is everything a subcommand needs once flags are parsed.
type cliEnv struct {
	svc    *service.CardService
	shoes  []model.ShoeRecord
	now    time.Time
	logger *zap.Logger
}

func (e *cliEnv) close() {
	_ = e.logger.Sync()
}

func setup(opts *options) (*cliEnv, error) {
	if opts.file == "" {
		return nil, fmt.Errorf("--file is required")
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	// The CLI always logs in development mode.
	logger, err := zap.NewDevelopment()
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	now, err := parseAt(opts.at)
	if err != nil {
		return nil, err
	}

	rule, err := cfg.Recency.RecencyRule()
	if err != nil {
		return nil, fmt.Errorf("building recency rule: %w", err)
	}
	prices, err := card.NewPriceFormatter(cfg.Pricing.Locale, cfg.Pricing.CurrencySymbol)
	if err != nil {
		return nil, fmt.Errorf("creating price formatter: %w", err)
	}

	shoes, err := catalog.Load(opts.file, validation.New())
	if err != nil {
		return nil, err
	}
	logger.Debug("catalog loaded",
		zap.String("file", opts.file),
		zap.Int("shoes", len(shoes)),
		zap.String("recency", rule.String()),
	)

	builder := card.NewBuilder(variant.NewResolver(rule), prices)
	return &cliEnv{
		svc:    service.NewCardService(builder, nil, nil, logger),
		shoes:  shoes,
		now:    now,
		logger: logger,
	}, nil
}

func parseAt(at string) (time.Time, error) {
	if at == "" {
		return time.Now(), nil
	}
	t, err := time.Parse(time.RFC3339, at)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing --at: %w", err)
	}
	return t, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
