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

	"totem-quiz-backend/internal/config"
	"totem-quiz-backend/internal/database"
	"totem-quiz-backend/internal/events"
	"totem-quiz-backend/internal/logger"
	"totem-quiz-backend/internal/router"
	"totem-quiz-backend/internal/services"
	"totem-quiz-backend/internal/storage"
	"totem-quiz-backend/internal/ws"

	_ "totem-quiz-backend/docs"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

// @title           Totem Quiz API
// @version         1.0
// @description     Participant registration from the totem, game lifecycle and admin dashboard
// @host            localhost:8080
// @BasePath        /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter "Bearer {token}"

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		slog.Error("config load failed", "error", err)
		os.Exit(1)
	}

	log := logger.Init(logger.Config{
		Service:   cfg.Logging.Service,
		Version:   cfg.Logging.Version,
		Level:     logger.ParseLevel(cfg.Logging.Level),
		Env:       logger.ParseEnv(cfg.Logging.Env),
		Backend:   logger.Backend(cfg.Logging.Backend),
		AddSource: cfg.Logging.AddSource,
	})
	if logger.ParseEnv(cfg.Logging.Env) != logger.EnvDev {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg.DB)
	if err != nil {
		log.Error("database connection failed", "driver", cfg.DB.Driver, "error", err)
		os.Exit(1)
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Error("schema migration failed", "error", err)
		os.Exit(1)
	}
	log.Info("database ready", "driver", cfg.DB.Driver)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	hub := ws.NewHub()
	bus := events.NewBus(hub)
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Error("redis ping failed", "addr", cfg.Redis.Addr, "error", err)
			os.Exit(1)
		}

		// Every replica publishes to redis and relays the channel back into its own hub.
		bus = events.NewBus(events.NewRedisSink(rdb, cfg.Redis.Channel))
		g.Go(func() error {
			return events.Relay(gctx, rdb, cfg.Redis.Channel, hub, nil)
		})
	}

	auth, err := services.NewAuthService(cfg.Admin.Password, cfg.Admin.PasswordHash, cfg.Admin.JWTSecret)
	if err != nil {
		log.Error("admin auth setup failed", "error", err)
		os.Exit(1)
	}
	selfies := storage.NewSelfieStore(cfg.Uploads.Dir, cfg.Uploads.URLPrefix, cfg.Uploads.MaxBytes)
	games := services.NewGameService(db)

	r := router.New(cfg, router.Services{
		Registration: services.NewRegistrationService(db, selfies),
		Games:        games,
		Dashboard:    services.NewDashboardService(db, games),
		Auth:         auth,
	}, hub, bus)

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g.Go(func() error {
		log.Info("server starting", "port", cfg.ServerPort, "uploads", cfg.Uploads.Dir)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
	log.Info("server closed")
}
