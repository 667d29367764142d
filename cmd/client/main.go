package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gravitas-games/boardpredict/internal/client"
	"github.com/gravitas-games/boardpredict/internal/config"
)

func main() {
	// Load configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./configs/client.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Log)
	logger.Info("configuration loaded", "path", configPath)

	token := cfg.Server.Token
	if env := os.Getenv("TOKEN"); env != "" {
		token = env
	}

	player, err := client.PlayerFromToken(token)
	if err != nil {
		logger.Error("invalid access token", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, err := client.Dial(ctx, cfg.Server.URL, token, cfg.Server.HandshakeTimeout, logger)
	if err != nil {
		logger.Error("failed to connect", "error", err)
		os.Exit(1)
	}
	defer conn.Close()

	logger.Info("connected", "url", cfg.Server.URL, "player", player.Username)

	session := client.NewSession(player, conn,
		client.WithSessionLogger(logger),
		client.WithAutoPlay(cfg.Game.AutoPlay),
		client.WithPingInterval(cfg.Server.PingInterval),
	)

	errChan := make(chan error, 2)
	go func() { errChan <- conn.Run(ctx) }()
	go func() { errChan <- session.Run(ctx) }()

	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, client.ErrClosed) {
			logger.Error("client error", "error", err)
		}
	case <-ctx.Done():
		logger.Info("received signal, shutting down")
	}

	stop()
	logger.Info("client stopped")
}

func newLogger(cfg config.LogConfig) *slog.Logger {
	var lvl slog.Level
	switch cfg.Level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: lvl}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
