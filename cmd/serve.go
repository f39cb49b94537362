package cmd

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anoixa/photo-frame/api/core"
	"github.com/anoixa/photo-frame/cache"
	"github.com/anoixa/photo-frame/config"
	"github.com/anoixa/photo-frame/database"
	"github.com/anoixa/photo-frame/database/repo/accounts"
	"github.com/anoixa/photo-frame/internal/auth"
	"github.com/anoixa/photo-frame/internal/frame"
	"github.com/anoixa/photo-frame/internal/photoslib"
	"github.com/spf13/cobra"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start API server",
	Run: func(cmd *cobra.Command, args []string) {
		RunServer()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func RunServer() {
	config.InitConfig()
	cfg := config.Get()

	if err := os.MkdirAll("./data", os.ModePerm); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	// 初始化缓存层
	if err := cache.Init(cache.Config{
		Type:     cfg.CacheType,
		Address:  cfg.CacheRedisAddr,
		Password: cfg.CacheRedisPassword,
		DB:       cfg.CacheRedisDB,
	}); err != nil {
		log.Fatalf("Failed to initialize cache: %v", err)
	}
	cacheProvider := cache.GetDefault()

	// 初始化数据库
	db, err := database.NewDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// 初始化 JWT
	jwtService, err := auth.NewJWTService(cfg.JWTSecret, cfg.JWTExpiresIn)
	if err != nil {
		log.Fatalf("Failed to initialize JWT: %v", err)
	}

	// 初始化 OAuth 与会话
	oauthService := auth.NewOAuthService(auth.OAuthConfig{
		ClientID:         cfg.OAuthClientID,
		ClientSecret:     cfg.OAuthClientSecret,
		CallbackURL:      cfg.OAuthCallbackURL,
		UserInfoEndpoint: cfg.UserInfoEndpoint,
	})
	sessionStore := auth.NewSessionStore(cacheProvider)

	// 初始化 Photos Library 客户端与编排服务
	photosClient := photoslib.NewClient(photoslib.Config{
		Endpoint:       cfg.PhotosAPIEndpoint,
		Timeout:        cfg.PhotosAPITimeout,
		SearchPageSize: cfg.SearchPageSize,
		AlbumPageSize:  cfg.AlbumPageSize,
	})
	frameService := frame.NewService(photosClient, cacheProvider, frame.Config{
		PhotosToLoad: cfg.PhotosToLoad,
		QueueTTL:     cfg.CacheQueueTTL,
		AlbumTTL:     cfg.CacheAlbumTTL,
	})

	deps := &core.ServerDependencies{
		DB:            db,
		CacheProvider: cacheProvider,
		FrameService:  frameService,
		OAuthService:  oauthService,
		SessionStore:  sessionStore,
		JWTService:    jwtService,
		AccountsRepo:  accounts.NewRepository(db),
	}

	// 启动gin
	server, cleanup := core.StartServer(deps)
	go func() {
		log.Printf("Server started on %s", cfg.Addr())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// 处理退出signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if cleanup != nil {
		cleanup()
		log.Println("Cleanup tasks finished.")
	}

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	if err := cacheProvider.Close(); err != nil {
		log.Printf("Failed to close cache provider: %v", err)
	}

	log.Println("Server exiting")
}
