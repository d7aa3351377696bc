package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Anish-Chanda/substring-search/internal/api"
	"github.com/Anish-Chanda/substring-search/internal/config"
	"github.com/Anish-Chanda/substring-search/internal/logger"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("config load", zap.Error(err))
	}

	// console-friendly logger
	log := logger.New(cfg.LogLevel)
	defer log.Sync()
	zap.ReplaceGlobals(log)

	srv := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      api.NewRouter(cfg.Params(), log),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		zap.L().Info("starting server",
			zap.String("addr", cfg.ServerAddr),
			zap.Int64("base", cfg.RabinBase),
			zap.Int64("modulus", cfg.RabinModulus),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.L().Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	zap.L().Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Fatal("server forced to shutdown", zap.Error(err))
	}
	zap.L().Info("server exited gracefully")
}
