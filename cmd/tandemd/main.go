// Command tandemd runs the tandem chess server: the websocket game
// endpoint, the clock-tick broadcaster, and the static asset server.
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

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"tandemchess/internal/assets"
	"tandemchess/internal/config"
	"tandemchess/internal/hub"
	"tandemchess/internal/server"
	"tandemchess/internal/tandem"
)

// shutdownGrace bounds how long in-flight connections get to drain once
// a shutdown signal arrives.
const shutdownGrace = 5 * time.Second

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Parse(args)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	game := tandem.New()
	h := hub.New(sugar)
	wsServer := server.New(h, game, sugar)
	assetServer := assets.New(cfg.AssetsDir)

	go h.Run(ctx, game)

	wsHTTP := &http.Server{Addr: cfg.WSAddr, Handler: wsServer}
	assetHTTP := &http.Server{Addr: cfg.HTTPAddr, Handler: assetServer}

	errs := make(chan error, 2)
	go func() { errs <- serve(wsHTTP) }()
	go func() { errs <- serve(assetHTTP) }()

	sugar.Infow("tandemd started", "ws_addr", cfg.WSAddr, "http_addr", cfg.HTTPAddr)

	select {
	case <-ctx.Done():
		sugar.Infow("shutting down")
	case err := <-errs:
		if err != nil {
			sugar.Errorw("server exited", "error", err)
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer shutdownCancel()
	wsHTTP.Shutdown(shutdownCtx)
	assetHTTP.Shutdown(shutdownCtx)
	return nil
}

func serve(s *http.Server) error {
	err := s.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func newLogger(level string) (*zap.Logger, error) {
	var lvl zapcore.Level
	if err := lvl.Set(level); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}
