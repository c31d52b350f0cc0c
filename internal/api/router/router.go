package router

import (
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	_ "github.com/d60-Lab/minipost/docs"
	"github.com/d60-Lab/minipost/internal/api/handler"
	"github.com/d60-Lab/minipost/internal/api/middleware"
	"github.com/d60-Lab/minipost/internal/config"
	"github.com/d60-Lab/minipost/pkg/jwtauth"
)

// New 组装 gin engine：中间件链 + 业务路由
func New(cfg *config.Config, h *handler.Handler, tokens *jwtauth.Service) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.AccessLog())
	r.Use(middleware.RateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	if cfg.Sentry.DSN != "" {
		r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	if cfg.Tracing.Enabled {
		r.Use(otelgin.Middleware("minipost"))
	}

	r.GET("/healthz", h.Health)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.POST("/signup", h.Signup)
	r.POST("/login", h.Login)

	auth := r.Group("/", middleware.Auth(tokens))
	auth.POST("/add_post", h.AddPost)
	auth.GET("/get_posts", h.GetPosts)
	auth.DELETE("/delete_post/:id", h.DeletePost)

	return r
}
