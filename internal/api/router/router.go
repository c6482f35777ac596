package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/d60-Lab/hostelbuzz/config"
	_ "github.com/d60-Lab/hostelbuzz/docs"
	"github.com/d60-Lab/hostelbuzz/internal/api/handler"
	"github.com/d60-Lab/hostelbuzz/pkg/middleware"
)

// Setup 组装路由与中间件
func Setup(cfg *config.Config, h *handler.Handler, sentryEnabled bool) (*gin.Engine, error) {
	if err := handler.RegisterValidators(); err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(
		middleware.Sentry(sentryEnabled),
		gin.Recovery(),
		middleware.Logger(),
		otelgin.Middleware(cfg.Tracing.ServiceName),
	)
	if len(cfg.Server.AllowOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.Server.AllowOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Content-Type", "Authorization"},
			AllowCredentials: true,
		}))
	}
	r.Use(
		gzip.Gzip(gzip.DefaultCompression),
		middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst).Middleware(),
	)

	r.GET("/healthz", h.Health)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	{
		v1.POST("/auth/login", h.Login)
		v1.GET("/categories", h.ListCategories)

		authed := v1.Group("", h.RequireSession())
		authed.POST("/auth/logout", h.Logout)
		authed.GET("/auth/me", h.Me)

		authed.GET("/posts", h.ListPosts)
		authed.POST("/posts", h.CreatePost)
		authed.GET("/posts/:id", h.GetPost)
		authed.POST("/posts/:id/vote", h.Vote)
		authed.POST("/posts/:id/comments", h.Comment)
		authed.POST("/posts/:id/report", h.Report)
	}
	return r, nil
}
