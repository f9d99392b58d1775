package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5"

	"github.com/odyssey-erp/supplydesk/internal/app"
	"github.com/odyssey-erp/supplydesk/internal/platform/db"
)

func main() {
	file := flag.String("file", "migrations/0001_init.sql", "SQL script to apply")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadDatabaseConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}
	logger := app.NewLogger(cfg.LogFormat, cfg.LogLevel)

	script, err := os.ReadFile(*file)
	if err != nil {
		logger.Error("read migration", slog.String("file", *file), slog.Any("error", err))
		os.Exit(1)
	}

	pool, err := db.New(ctx, cfg.PGDSN, db.Options{MaxConns: 1})
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	err = db.WithTx(ctx, pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, string(script))
		return err
	})
	if err != nil {
		logger.Error("apply migration", slog.String("file", *file), slog.Any("error", err))
		pool.Close()
		os.Exit(1)
	}
	logger.Info("migration applied", slog.String("file", *file))
}
