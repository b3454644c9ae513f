package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"sportmarket/internal/config"
	"sportmarket/internal/db"
	"sportmarket/internal/logging"
	accountrepo "sportmarket/internal/repository/account"
	tokenrepo "sportmarket/internal/repository/token"
	accountsvc "sportmarket/internal/service/account"
	"sportmarket/internal/seed"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger, err := logging.New("seed", cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString, db.Options{MaxConns: cfg.DBMaxConns}, logger.Named("db"))
	if err != nil {
		logger.Fatal("connect db", zap.Error(err))
	}
	defer pool.Close()

	svc := accountsvc.New(accountrepo.NewPostgres(pool, logger), tokenrepo.NewPostgres(pool, logger), logger)
	n, err := seed.Apply(ctx, svc, logger)
	if err != nil {
		logger.Fatal("seed apply", zap.Error(err))
	}
	logger.Info("seed applied", zap.Int("created", n))
}
