package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/danmuck/vtcab/internal/cabinet"
	"github.com/danmuck/vtcab/internal/config"
	"github.com/danmuck/vtcab/internal/hils"
	"github.com/danmuck/vtcab/internal/logging"
	"github.com/danmuck/vtcab/internal/mmu"
	"github.com/danmuck/vtcab/internal/observability"
	"github.com/danmuck/vtcab/internal/sdlc"
)

func main() {
	configPath := flag.String("config", "vtcabd.toml", "daemon config path")
	flag.Parse()

	logging.ConfigureRuntime()

	cfg, err := config.LoadDaemonConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("daemon config unusable")
	}
	logger := observability.InitLogger("vtcabd", cfg.Node)

	store := cabinet.NewStore()
	dispatcher, err := sdlc.NewDispatcher(store)
	if err != nil {
		logger.Fatal().Err(err).Msg("frame catalog rejected")
	}
	card := mmu.NewCard(store)
	controller := hils.New(store, dispatcher, card, hils.Options{
		Node:   cfg.Node,
		Logger: &logger,
	})

	if err := controller.LoadConfig(cfg.Wiring, hils.Callbacks{}); err != nil {
		logger.Fatal().Err(err).Msg("wiring config rejected")
	}
	if cfg.CompatFile != "" {
		ov, err := config.LoadCompatOverride(cfg.CompatFile)
		if err != nil {
			logger.Fatal().Err(err).Msg("compat override rejected")
		}
		card.Apply(ov.Pattern)
		logger.Info().Str("path", cfg.CompatFile).Str("hex", card.Hex()).
			Msg("compatibility override applied")
	}
	if cfg.LogFrames {
		controller.SetFrameLogging(true)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := controller.EnableSDLC(ctx); err != nil {
		logger.Fatal().Err(err).Msg("sdlc enable failed")
	}

	srv := newAdminServer(cfg, card, controller)
	go func() {
		logger.Info().Str("addr", cfg.AdminAddr).Msg("admin server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("admin server failed")
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn().Err(err).Msg("admin shutdown incomplete")
	}
	if controller.Enabled() {
		_ = controller.DisableSDLC()
	}
	if err := controller.Close(); err != nil {
		logger.Warn().Err(err).Msg("device close failed")
	}
}
