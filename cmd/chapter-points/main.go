package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chapter-points-go/internal/app"
	"chapter-points-go/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	log := logger.NewFromEnv()

	if err := run(log); err != nil {
		log.Critical("chapter-points: exiting", "err", err)
		os.Exit(1)
	}
	log.Info("chapter-points: stopped")
}

func run(log logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(log)
	if err != nil {
		return fmt.Errorf("init: %w", err)
	}
	defer func() {
		if err := application.Close(); err != nil {
			log.Error("chapter-points: close failed", "err", err)
		}
	}()

	srv := application.HTTPServer()

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()
	log.Info("chapter-points: serving", "addr", srv.Addr)

	select {
	case <-ctx.Done():
		log.Info("chapter-points: shutdown signal received")
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
