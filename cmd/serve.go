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

	"github.com/albumix/albumix/api/core"
	"github.com/albumix/albumix/cache"
	"github.com/albumix/albumix/config"
	"github.com/albumix/albumix/database"
	repoAccounts "github.com/albumix/albumix/database/repo/accounts"
	repoAlbums "github.com/albumix/albumix/database/repo/albums"
	repoPhotos "github.com/albumix/albumix/database/repo/photos"
	"github.com/albumix/albumix/internal/access"
	svcAccounts "github.com/albumix/albumix/internal/accounts"
	svcAlbums "github.com/albumix/albumix/internal/albums"
	"github.com/albumix/albumix/internal/auth"
	"github.com/albumix/albumix/internal/materializer"
	"github.com/albumix/albumix/internal/materializer/fsstore"
	"github.com/albumix/albumix/internal/materializer/remotehost"
	svcPhotos "github.com/albumix/albumix/internal/photos"
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

	// 数据库
	db, err := database.NewDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to auto migrate database: %v", err)
	}

	// 本地产物存储
	store, err := fsstore.NewStore(cfg.UploadRoot)
	if err != nil {
		log.Fatalf("Failed to initialize artifact store: %v", err)
	}

	// 远程图床（仅 remote/hybrid 模式需要）
	var host remotehost.Host
	if cfg.MaterializerMode == materializer.ModeRemote || cfg.MaterializerMode == materializer.ModeHybrid {
		host, err = remotehost.New(cfg.RemoteOptions())
		if err != nil {
			log.Fatalf("Failed to initialize remote host: %v", err)
		}
		log.Printf("Remote host initialized: %s", host.Name())
	}

	mat, err := materializer.New(materializer.Config{
		Mode:           cfg.MaterializerMode,
		Store:          store,
		Host:           host,
		ThumbnailWidth: cfg.ThumbnailWidth,
		MaxConcurrent:  cfg.WorkerCount,
	})
	if err != nil {
		log.Fatalf("Failed to initialize materializer: %v", err)
	}

	// 缓存
	cacheProvider, err := cache.NewFromConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize cache: %v", err)
	}
	log.Printf("Cache provider initialized: %s", cacheProvider.Name())

	// JWT
	jwtService, err := auth.NewJWTService(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize JWT service: %v", err)
	}

	// 仓库与服务
	accountsRepo := repoAccounts.NewRepository(db)
	devicesRepo := repoAccounts.NewDeviceRepository(db)
	albumsRepo := repoAlbums.NewRepository(db)
	photosRepo := repoPhotos.NewRepository(db)

	guard := access.NewGuard(albumsRepo, photosRepo)
	loginService := auth.NewLoginService(accountsRepo, devicesRepo, jwtService)

	photosService := svcPhotos.NewService(
		photosRepo,
		guard,
		mat,
		store,
		cacheProvider,
		time.Duration(cfg.CacheThumbnailTTL)*time.Second,
		cfg.StrictImageChecks,
		int64(cfg.UploadMaxSizeMB)<<20,
	)
	albumsService := svcAlbums.NewService(
		albumsRepo,
		photosRepo,
		guard,
		mat,
		store,
		cacheProvider,
		time.Duration(cfg.CacheAlbumTTL)*time.Second,
	)
	accountsService := svcAccounts.NewService(accountsRepo, devicesRepo, albumsService)

	deps := &core.RouterDependencies{
		Config:          cfg,
		DB:              db,
		CacheProvider:   cacheProvider,
		Materializer:    mat,
		JWTService:      jwtService,
		LoginService:    loginService,
		AccountsService: accountsService,
		AlbumsService:   albumsService,
		PhotosService:   photosService,
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
	}

	if err := cacheProvider.Close(); err != nil {
		log.Printf("Error closing cache provider: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited successfully")
}
