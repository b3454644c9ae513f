package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"sportmarket/internal/session"
)

// Server owns the shop API listener.
type Server struct {
	srv    *http.Server
	logger *zap.Logger
}

// New builds a Server with every API route mounted.
func New(addr string, logger *zap.Logger, db *pgxpool.Pool, deps Deps, corsOrigins []string) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	router, err := buildRouter(logger, db, deps, corsOrigins)
	if err != nil {
		return nil, err
	}

	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       2 * time.Minute,
			ErrorLog:          zap.NewStdLog(logger.Named("http")),
		},
		logger: logger,
	}, nil
}

// Addr is the configured listen address.
func (s *Server) Addr() string { return s.srv.Addr }

func (s *Server) ListenAndServe() error {
	s.logger.Info("listening", zap.String("addr", s.srv.Addr))
	return s.srv.ListenAndServe()
}

// Shutdown stops accepting requests and waits for in-flight ones until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// readyHandler reports ready once the account database answers a ping.
// Shop routes work without it, but sign-in does not.
func readyHandler(db *pgxpool.Pool, sessions *session.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		shoppers := 0
		if sessions != nil {
			shoppers = sessions.Len()
		}
		if db == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "db not configured", "shoppers": shoppers})
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "db not reachable", "shoppers": shoppers})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "shoppers": shoppers})
	}
}
