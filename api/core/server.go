package core

import (
	"net/http"
	"time"

	handlerAlbums "github.com/anoixa/photo-frame/api/handler/albums"
	handlerAuth "github.com/anoixa/photo-frame/api/handler/auth"
	handlerPhotos "github.com/anoixa/photo-frame/api/handler/photos"
	"github.com/anoixa/photo-frame/api/middleware"
	"github.com/anoixa/photo-frame/cache"
	"github.com/anoixa/photo-frame/config"
	"github.com/anoixa/photo-frame/database/repo/accounts"
	"github.com/anoixa/photo-frame/internal/auth"
	"github.com/anoixa/photo-frame/internal/frame"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var startTime = time.Now()

// ServerDependencies 服务器依赖项
type ServerDependencies struct {
	DB            *gorm.DB
	CacheProvider cache.Provider
	FrameService  *frame.Service
	OAuthService  *auth.OAuthService
	SessionStore  *auth.SessionStore
	JWTService    *auth.JWTService
	AccountsRepo  *accounts.Repository
}

// 启动gin
func setupRouter(deps *ServerDependencies) (*gin.Engine, func()) {
	cfg := config.Get()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// 全局中间件
	// 仅在开发版本时启用 gin 日志
	if config.IsDevelopment() {
		router.Use(gin.Logger())
	}
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.BaseURL()},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.SetTrustedProxies(nil)

	// 速率限制
	authRateLimiter := middleware.NewIPRateLimiter(cfg.RateLimitAuthRPS, cfg.RateLimitAuthBurst, cfg.RateLimitExpireTime)
	apiRateLimiter := middleware.NewIPRateLimiter(cfg.RateLimitApiRPS, cfg.RateLimitApiBurst, cfg.RateLimitExpireTime)
	cleanup := func() {
		authRateLimiter.StopCleanup()
		apiRateLimiter.StopCleanup()
	}

	registerRoutes(router, deps, authRateLimiter, apiRateLimiter)

	return router, cleanup
}

// StartServer 创建 HTTP 服务器
func StartServer(deps *ServerDependencies) (*http.Server, func()) {
	cfg := config.Get()
	router, clean := setupRouter(deps)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  cfg.ServerIdleTimeout,
	}

	return srv, clean
}

// registerRoutes 注册所有路由
func registerRoutes(router *gin.Engine, deps *ServerDependencies, authRL, apiRL *middleware.IPRateLimiter) {
	registerBasicRoutes(router, deps)

	authHandler := handlerAuth.NewHandler(deps.OAuthService, deps.SessionStore, deps.JWTService, deps.AccountsRepo, deps.CacheProvider)
	photosHandler := handlerPhotos.NewHandler(deps.FrameService)
	albumsHandler := handlerAlbums.NewHandler(deps.FrameService)

	apiGroup := router.Group("/api")
	apiGroup.Use(func(context *gin.Context) { // 所有API禁止缓存
		context.Header("Cache-Control", "no-store")
		context.Next()
	})
	{
		authGroup := apiGroup.Group("/auth")
		authGroup.Use(authRL.Middleware())
		{
			authGroup.GET("/google", authHandler.Login)             // GET /api/auth/google
			authGroup.GET("/google/callback", authHandler.Callback) // GET /api/auth/google/callback
		}

		v1 := apiGroup.Group("/v1")
		v1.Use(apiRL.Middleware())
		v1.Use(middleware.BearerAuth(deps.JWTService, deps.SessionStore))
		{
			v1.POST("/auth/logout", authHandler.Logout) // POST /api/v1/auth/logout

			frameGroup := v1.Group("/frame")
			{
				frameGroup.POST("/search", photosHandler.LoadFromSearch) // POST /api/v1/frame/search
				frameGroup.POST("/album", photosHandler.LoadFromAlbum)   // POST /api/v1/frame/album
				frameGroup.GET("/queue", photosHandler.GetQueue)         // GET /api/v1/frame/queue
				frameGroup.GET("/selected", photosHandler.GetSelected)   // GET /api/v1/frame/selected
			}

			v1.GET("/albums", albumsHandler.ListAlbumsHandler) // GET /api/v1/albums
		}
	}
}
