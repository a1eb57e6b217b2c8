package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/sftpsync/watcher/internal/config"
	"github.com/sftpsync/watcher/internal/logging"
	"github.com/sftpsync/watcher/internal/model"
	"github.com/sftpsync/watcher/internal/watcher"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.NewLogger(cfg.Environment)

	cleanup := make(chan struct{})

	w := watcher.New(cfg, watcher.Callbacks{
		OnFileEvent: func(item model.FileItem, kind watcher.EventKind, status bool) {
			logger.Info("file event",
				slog.String("path", item.Name),
				slog.String("kind", kind.String()),
				slog.Bool("status", status),
			)
		},
		OnError: func(path string, err error) {
			logger.Error("sync error", slog.String("path", path), slog.String("err", err.Error()))
		},
		OnCleanup: func() {
			close(cleanup)
		},
	}, logging.For(logger, "watcher"))

	logger.Info("connecting", slog.String("host", cfg.Host), slog.Int("port", cfg.Port))

	if err := w.Connect(); err != nil {
		return fmt.Errorf("connecting: %w", err)
	}

	logger.Info("starting sync loop", slog.String("remote", cfg.RemotePath), slog.String("local", cfg.LocalPath))

	if err := w.Start(); err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	logger.Info("stopping")
	w.Stop()
	<-cleanup

	return nil
}

// loadConfig prefers SFTPSYNC_CONFIG_FILE (a YAML file) when set,
// otherwise reads environment variables via config.Load.
func loadConfig() (*config.Config, error) {
	if path := os.Getenv("SFTPSYNC_CONFIG_FILE"); path != "" {
		return config.LoadFile(path)
	}

	return config.Load()
}
