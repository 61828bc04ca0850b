package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	domcart "example.com/gomarketplace/internal/domain/cart"
	httpapi "example.com/gomarketplace/internal/interface/http"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the cart over HTTP",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.cart.Initialize(ctx); err != nil {
		return err
	}

	updates, unsubscribe := a.cart.Subscribe()
	defer unsubscribe()
	go func() {
		for items := range updates {
			c := domcart.Cart(items)
			a.logger.Debug("cart changed",
				zap.Int("items", len(c)),
				zap.Int("total_quantity", c.TotalQuantity()),
				zap.Float64("total_price", c.TotalPrice()),
			)
		}
	}()

	api := httpapi.NewAPI(httpapi.Dependencies{
		CartService: a.cart,
		Logger:      a.logger.Named("http"),
	})

	srv := &http.Server{
		Addr:         ":" + a.cfg.AppPort,
		Handler:      api.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("listening",
			zap.String("addr", srv.Addr),
			zap.String("storage", a.cfg.Storage.Driver),
			zap.String("key", a.cart.Key()),
			zap.String("decrement_policy", string(a.cart.Policy())),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
