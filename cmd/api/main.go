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
	"golang.org/x/sync/errgroup"

	"sportmarket/internal/catalog"
	"sportmarket/internal/checkout"
	"sportmarket/internal/config"
	"sportmarket/internal/db"
	"sportmarket/internal/httpserver"
	"sportmarket/internal/identity/firebase"
	"sportmarket/internal/importer"
	"sportmarket/internal/logging"
	accountrepo "sportmarket/internal/repository/account"
	tokenrepo "sportmarket/internal/repository/token"
	accountsvc "sportmarket/internal/service/account"
	anonymoussvc "sportmarket/internal/service/anonymous"
	"sportmarket/internal/session"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger, err := logging.New("api", cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("api stopped", zap.Error(err))
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbpool, err := db.Connect(ctx, cfg.DBConnString, db.Options{MaxConns: cfg.DBMaxConns}, logger.Named("db"))
	if err != nil {
		return fmt.Errorf("connect to db: %w", err)
	}
	defer dbpool.Close()

	cat := catalog.New()
	if cfg.CatalogCSV != "" {
		if err := importCatalog(ctx, cfg.CatalogCSV, cat, logger); err != nil {
			return err
		}
	}

	accountService := accountsvc.New(
		accountrepo.NewPostgres(dbpool, logger),
		tokenrepo.NewPostgres(dbpool, logger),
		logger,
	)
	anonymousService := anonymoussvc.New(cfg.SessionIdleTTL)
	sessions := session.NewRegistry(cfg.SessionIdleTTL, logger.Named("sessions"))

	deps := httpserver.Deps{
		Accounts:  accountService,
		Anonymous: anonymousService,
		Catalog:   cat,
		Sessions:  sessions,
		Checkout:  checkout.NewFlow(logger.Named("checkout")),
	}
	if cfg.IdentityProvider == "firebase" {
		verifier, err := firebase.New(ctx, cfg.FirebaseCredentials, logger.Named("firebase"))
		if err != nil {
			return fmt.Errorf("firebase init: %w", err)
		}
		deps.Identity = verifier
	}

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, deps, cfg.CORSOrigins)
	if err != nil {
		return fmt.Errorf("init server: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting http server", zap.String("addr", srv.Addr()), zap.String("identity", cfg.IdentityProvider))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return sessions.Run(gctx, sweepInterval(cfg.SessionIdleTTL))
	})
	g.Go(func() error {
		return expireTokens(gctx, tokenPurgeInterval, accountService, anonymousService, logger.Named("tokens"))
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", zap.Error(err))
			return err
		}
		logger.Info("server stopped")
		return nil
	})
	return g.Wait()
}

func importCatalog(ctx context.Context, path string, cat *catalog.Catalog, logger *zap.Logger) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open catalog csv: %w", err)
	}
	defer f.Close()

	n, err := importer.NewCSVImporter(f, cat, logger).Run(ctx)
	if err != nil {
		return fmt.Errorf("import catalog csv: %w", err)
	}
	logger.Info("catalog extended", zap.String("file", path), zap.Int("products", n))
	return nil
}

const tokenPurgeInterval = 15 * time.Minute

// expireTokens drops expired account and anonymous tokens until ctx is done.
// A failed purge is logged and retried on the next tick.
func expireTokens(ctx context.Context, every time.Duration, accounts *accountsvc.Service, anon *anonymoussvc.Service, logger *zap.Logger) error {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := accounts.PurgeExpiredTokens(ctx); err != nil && ctx.Err() == nil {
				logger.Warn("purge account tokens", zap.Error(err))
			}
			if n := anon.Sweep(); n > 0 {
				logger.Debug("anonymous tokens expired", zap.Int("count", n), zap.Int("outstanding", anon.Outstanding()))
			}
		}
	}
}

// sweepInterval checks a few times per TTL, at most once a minute.
func sweepInterval(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return 0
	}
	if iv := ttl / 4; iv < time.Minute {
		return iv
	}
	return time.Minute
}
