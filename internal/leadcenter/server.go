// Package leadcenter assembles the lead center service.
package leadcenter

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/kart-io/logger"

	"github.com/kart-io/lead-center/internal/leadcenter/biz"
	"github.com/kart-io/lead-center/internal/leadcenter/handler"
	"github.com/kart-io/lead-center/internal/leadcenter/router"
	"github.com/kart-io/lead-center/internal/leadcenter/store"
	"github.com/kart-io/lead-center/pkg/auth/jwt"
	"github.com/kart-io/lead-center/pkg/authz"
	dbcomponent "github.com/kart-io/lead-center/pkg/component/db"
	rediscomponent "github.com/kart-io/lead-center/pkg/component/redis"
	"github.com/kart-io/lead-center/pkg/middleware"
	dbopts "github.com/kart-io/lead-center/pkg/options/db"
	httpopts "github.com/kart-io/lead-center/pkg/options/http"
	jwtopts "github.com/kart-io/lead-center/pkg/options/jwt"
	redisopts "github.com/kart-io/lead-center/pkg/options/redis"
	"github.com/kart-io/lead-center/pkg/utils/validator"
)

// Name is the name of the application.
const Name = "lead-center"

// Config contains everything needed to assemble the service.
type Config struct {
	HTTPOptions  *httpopts.Options
	DBOptions    *dbopts.Options
	RedisOptions *redisopts.Options
	JWTOptions   *jwtopts.Options

	// LegacyBareShow keeps the historical wide-open behavior of a bare
	// "show" grant. Defaults to true for compatibility.
	LegacyBareShow bool
}

// Server is the assembled lead center service.
type Server struct {
	httpServer *http.Server
	shutdown   []func() error
	cfg        *Config
}

// NewServer wires the storage, policy, business and HTTP layers.
func (cfg *Config) NewServer(ctx context.Context) (*Server, error) {
	db, err := dbcomponent.NewWithContext(ctx, cfg.DBOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	if err := store.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	logger.Infow("database ready", "driver", cfg.DBOptions.Driver)

	factory, err := store.NewFactory(db)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store: %w", err)
	}

	srv := &Server{cfg: cfg}
	srv.shutdown = append(srv.shutdown, factory.Close)

	// Token revocation store: Redis when enabled so logout is shared
	// across instances, otherwise in-memory.
	var revocation jwt.Store
	if cfg.RedisOptions != nil && cfg.RedisOptions.Enabled {
		client, err := rediscomponent.NewWithContext(ctx, cfg.RedisOptions)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize redis: %w", err)
		}
		srv.shutdown = append(srv.shutdown, client.Close)
		revocation = jwt.NewRedisStore(client, "")
		logger.Infow("redis revocation store ready", "addr", cfg.RedisOptions.Addr())
	} else {
		mem := jwt.NewMemoryStore()
		srv.shutdown = append(srv.shutdown, mem.Close)
		revocation = mem
	}

	jwtAuth, err := jwt.New(cfg.JWTOptions, revocation)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize jwt: %w", err)
	}

	roleStore, principalStore := factory.Policy()
	policy := authz.NewPolicy(roleStore, principalStore,
		authz.WithLegacyBareShow(cfg.LegacyBareShow))

	authSvc := biz.NewAuthService(jwtAuth, factory)
	userSvc := biz.NewUserService(factory, policy)
	roleSvc := biz.NewRoleService(factory, policy)
	leadSvc := biz.NewLeadService(factory, policy)
	attSvc := biz.NewAttendanceService(factory, policy)
	warnSvc := biz.NewWarningService(factory, policy)
	ticketSvc := biz.NewTicketService(factory, policy)

	handlers := &router.Handlers{
		Auth:       handler.NewAuthHandler(authSvc),
		User:       handler.NewUserHandler(userSvc),
		Role:       handler.NewRoleHandler(roleSvc),
		Lead:       handler.NewLeadHandler(leadSvc),
		Attendance: handler.NewAttendanceHandler(attSvc),
		Warning:    handler.NewWarningHandler(warnSvc),
		Ticket:     handler.NewTicketHandler(ticketSvc),
	}

	validator.Init()
	gin.SetMode(cfg.HTTPOptions.Mode)

	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		middleware.AccessLog(),
		middleware.CORS(),
	)
	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.Register(engine, jwtAuth, handlers)

	srv.httpServer = &http.Server{
		Addr:         cfg.HTTPOptions.Addr,
		Handler:      engine,
		ReadTimeout:  cfg.HTTPOptions.ReadTimeout,
		WriteTimeout: cfg.HTTPOptions.WriteTimeout,
		IdleTimeout:  cfg.HTTPOptions.IdleTimeout,
	}
	return srv, nil
}

// Run starts the HTTP server and blocks until a termination signal
// arrives or the server fails.
func (s *Server) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Infow("http server listening", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.HTTPOptions.ShutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Errorw("graceful shutdown failed", "error", err)
	}
	for i := len(s.shutdown) - 1; i >= 0; i-- {
		if err := s.shutdown[i](); err != nil {
			logger.Warnw("shutdown hook failed", "error", err)
		}
	}
	return nil
}
