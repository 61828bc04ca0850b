package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"example.com/gomarketplace/internal/config"
	"example.com/gomarketplace/internal/infra/persistence"
	"example.com/gomarketplace/internal/logging"
	cartuc "example.com/gomarketplace/internal/usecase/cart"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "gomarketplace",
	Short:         "Cart store with key-value persistence",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to YAML config file")
	rootCmd.AddCommand(serveCmd, cartCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// app bundles what every subcommand needs.
type app struct {
	cfg    config.Config
	logger *zap.Logger
	cart   *cartuc.Service
	close  func() error
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Env)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	policy, err := cfg.Policy()
	if err != nil {
		return nil, err
	}

	storage, closeStorage, err := persistence.Open(ctx, cfg.Storage.Driver, cfg.Storage.DSN)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	svc, err := cartuc.NewService(storage, cartuc.Options{
		Namespace:       cfg.Namespace,
		DecrementPolicy: policy,
		Logger:          logger.Named("cart"),
	})
	if err != nil {
		_ = closeStorage()
		return nil, err
	}

	return &app{
		cfg:    cfg,
		logger: logger,
		cart:   svc,
		close: func() error {
			_ = logger.Sync()
			return closeStorage()
		},
	}, nil
}
