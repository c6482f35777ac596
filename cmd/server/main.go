package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/d60-Lab/hostelbuzz/config"
	"github.com/d60-Lab/hostelbuzz/internal/api/handler"
	"github.com/d60-Lab/hostelbuzz/internal/api/router"
	"github.com/d60-Lab/hostelbuzz/internal/moderation"
	"github.com/d60-Lab/hostelbuzz/internal/repository"
	"github.com/d60-Lab/hostelbuzz/internal/service"
	"github.com/d60-Lab/hostelbuzz/internal/session"
	"github.com/d60-Lab/hostelbuzz/pkg/database"
	"github.com/d60-Lab/hostelbuzz/pkg/logger"
	"github.com/d60-Lab/hostelbuzz/pkg/middleware"
	"github.com/d60-Lab/hostelbuzz/pkg/tracing"
)

// @title HostelBuzz API
// @version 1.0
// @description HostelBuzz 宿舍动态：发帖、投票、评论、分类筛选
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	if err := logger.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg); err != nil {
		logger.Error("server exited", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gin.SetMode(cfg.Server.Mode)

	shutdownTracing, err := tracing.Init(ctx, cfg.Tracing)
	if err != nil {
		return err
	}
	defer func() { _ = shutdownTracing(context.Background()) }()

	flushSentry, err := middleware.InitSentry(cfg.Sentry)
	if err != nil {
		return err
	}
	defer flushSentry()

	db, err := database.InitDB(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = database.Close(db) }()

	dests := []service.ReportDestination{service.RepositoryDestination(repository.NewReportRepository(db))}
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		defer func() { _ = rdb.Close() }()
		if err := rdb.Ping(ctx).Err(); err != nil {
			return err
		}
		dests = append(dests, service.QueueDestination(moderation.NewQueue(rdb, cfg.Redis.QueueKey)))
	}

	forwarder := service.NewReportForwarder(cfg.Report.QueueSize, dests...)
	stopForwarder := forwarder.Start(cfg.Report.Workers)

	sessions := session.NewManager(cfg.Auth.JWTSecret, cfg.Auth.SessionTTL, session.WithSinkFactory(forwarder.Bind))
	stopJanitor := sessions.StartJanitor(cfg.Auth.JanitorInterval)

	h := handler.NewHandler(sessions, service.NewFeedService(), cfg.Auth.CookieName, cfg.Auth.SessionTTL)
	r, err := router.Setup(cfg, h, cfg.Sentry.DSN != "")
	if err != nil {
		return err
	}

	srv := &http.Server{Addr: cfg.Addr(), Handler: r}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", srv.Addr), zap.Int("destinations", len(dests)))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		logger.Info("shutting down")
	}

	sctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}
	stopJanitor()
	sessions.Close()
	if err := stopForwarder(sctx); err != nil {
		logger.Warn("report queue not drained", zap.Int("left", forwarder.QueueLen()), zap.Error(err))
	}
	return nil
}
