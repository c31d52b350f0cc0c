package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/d60-Lab/minipost/internal/api/handler"
	"github.com/d60-Lab/minipost/internal/api/router"
	"github.com/d60-Lab/minipost/internal/cache"
	"github.com/d60-Lab/minipost/internal/config"
	"github.com/d60-Lab/minipost/internal/model"
	"github.com/d60-Lab/minipost/internal/repository"
	"github.com/d60-Lab/minipost/internal/service"
	"github.com/d60-Lab/minipost/pkg/jwtauth"
	"github.com/d60-Lab/minipost/pkg/logger"
	"github.com/d60-Lab/minipost/pkg/tracing"
)

// @title minipost API
// @version 1.0
// @description Token-authenticated personal posting service with a read-through post-list cache.
// @BasePath /
func main() {
	cfgPath := flag.String("config", "", "path to config.yaml (optional)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		panic(err)
	}
	if err := logger.Init(cfg.Log.Level); err != nil {
		panic(err)
	}
	defer logger.Sync()

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.Sentry.DSN}); err != nil {
			logger.Warn("sentry init failed", zap.Error(err))
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	ctx := context.Background()
	if cfg.Tracing.Enabled {
		shutdown, err := tracing.Init(ctx, "minipost", cfg.Tracing.Endpoint)
		if err != nil {
			logger.Fatal("tracing init failed", zap.Error(err))
		}
		defer func() {
			c, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdown(c)
		}()
	}

	db, err := openDB(cfg.Database)
	if err != nil {
		logger.Fatal("open database", zap.Error(err))
	}
	if err := db.AutoMigrate(&model.User{}, &model.Post{}); err != nil {
		logger.Fatal("migrate schema", zap.Error(err))
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Fatal("connect redis", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
	}

	tokens := jwtauth.NewService(cfg.Auth.Secret, cfg.Auth.TokenTTL)
	postCache := cache.NewPostCache(rdb, cfg.Cache.TTL)
	authSvc := service.NewAuthService(repository.NewUserRepository(db), tokens)
	postSvc := service.NewPostService(
		repository.NewPostRepository(db),
		postCache,
		cfg.Cache.WritePolicy == config.WritePolicyInvalidate,
	)

	h := handler.New(authSvc, postSvc)
	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router.New(cfg, h, tokens),
	}

	go func() {
		logger.Info("server listening",
			zap.String("addr", cfg.Server.Addr),
			zap.String("cache_write_policy", cfg.Cache.WritePolicy))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}

func openDB(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormCfg := &gorm.Config{TranslateError: true}
	switch cfg.Driver {
	case "postgres":
		return gorm.Open(postgres.Open(cfg.DSN), gormCfg)
	default:
		return gorm.Open(sqlite.Open(cfg.DSN), gormCfg)
	}
}
