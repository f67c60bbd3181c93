package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/rahilansari261/ai-slides-sub000/config"
	"github.com/rahilansari261/ai-slides-sub000/generate"
	"github.com/rahilansari261/ai-slides-sub000/layoutstore"
	"github.com/rahilansari261/ai-slides-sub000/service"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("could not load config", "err", err)
		return
	}

	if err := setupLogging(cfg.LogLevel); err != nil {
		slog.Error("could not init logging", "err", err)
		return
	}

	store, err := layoutstore.Open(cfg.DBPath)
	if err != nil {
		slog.Error("could not open layout store", "err", err)
		return
	}
	defer store.Close()

	var gen service.Generator
	if cfg.Generation.APIKey == "" {
		slog.Warn("SLIDES_GEN_APIKEY not set, generation endpoints disabled")
	} else {
		client, err := generate.NewClient(cfg.Generation.APIKey, cfg.Generation.Server, cfg.Generation.Model)
		if err != nil {
			slog.Error("could not init generation client", "err", err)
			return
		}
		gen = client
	}

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: service.NewServer(store, gen),
	}

	term := make(chan os.Signal, 1)
	signal.Notify(term, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("listening", "addr", cfg.Addr, "db", cfg.DBPath)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server stopped", "err", err)
			term <- syscall.SIGTERM
		}
	}()

	<-term

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Warn("shutdown did not finish cleanly", "err", err)
	}
}

func setupLogging(level string) error {
	var logLevel slog.Level
	err := logLevel.UnmarshalText([]byte(level))
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	slog.SetDefault(slog.New(h))
	return err
}
