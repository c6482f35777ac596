package middleware

import (
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/hostelbuzz/config"
)

// InitSentry 配置了 DSN 时初始化 sentry；返回 flush 函数
func InitSentry(cfg config.SentryConfig) (func(), error) {
	if cfg.DSN == "" {
		return func() {}, nil
	}
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: cfg.Environment,
	}); err != nil {
		return nil, fmt.Errorf("sentry init: %w", err)
	}
	return func() { sentry.Flush(2 * time.Second) }, nil
}

// Sentry captures panics and handler errors when sentry is configured.
func Sentry(enabled bool) gin.HandlerFunc {
	if !enabled {
		return func(c *gin.Context) { c.Next() }
	}
	capture := sentrygin.New(sentrygin.Options{Repanic: true})
	return func(c *gin.Context) {
		capture(c)
		if len(c.Errors) == 0 {
			return
		}
		if hub := sentrygin.GetHubFromContext(c); hub != nil {
			for _, e := range c.Errors {
				hub.CaptureException(e.Err)
			}
		}
	}
}
