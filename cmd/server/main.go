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

	"github.com/agenthands/chapi/internal/config"
	"github.com/agenthands/chapi/internal/logger"
)

func main() {
	envErr := godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = config.DefaultPath
	}
	cfg, err := config.LoadOrDefault(cfgPath)
	if err != nil {
		boot := logger.New("info", true)
		boot.Fatal().Err(err).Str("path", cfgPath).Msg("Failed to load configuration")
	}
	cfg.ApplyEnv(os.Getenv)

	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)
	if envErr != nil {
		log.Debug().Msg("No .env file found, using environment")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	ctx := context.Background()
	a, err := newApp(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("provider", cfg.LLM.Provider).Str("driver", cfg.Storage.Driver).Msg("Failed to initialize")
	}
	defer a.Close()

	httpServer := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           a.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      2 * time.Minute,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Str("provider", cfg.LLM.Provider).Msg("Starting server")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}
	log.Info().Msg("Server stopped")
}
