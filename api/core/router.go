package core

import (
	"net/http"
	"time"

	"github.com/albumix/albumix/api"
	"github.com/albumix/albumix/api/common"
	handlerAccounts "github.com/albumix/albumix/api/handler/accounts"
	handlerAlbums "github.com/albumix/albumix/api/handler/albums"
	handlerPhotos "github.com/albumix/albumix/api/handler/photos"
	"github.com/albumix/albumix/api/middleware"
	"github.com/albumix/albumix/cache"
	"github.com/albumix/albumix/config"
	"github.com/albumix/albumix/database/models"
	svcAccounts "github.com/albumix/albumix/internal/accounts"
	svcAlbums "github.com/albumix/albumix/internal/albums"
	"github.com/albumix/albumix/internal/auth"
	"github.com/albumix/albumix/internal/materializer"
	svcPhotos "github.com/albumix/albumix/internal/photos"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RouterDependencies 路由注册依赖
type RouterDependencies struct {
	Config          *config.Config
	DB              *gorm.DB
	CacheProvider   cache.Provider
	Materializer    materializer.Materializer
	JWTService      *auth.JWTService
	LoginService    *auth.LoginService
	AccountsService *svcAccounts.Service
	AlbumsService   *svcAlbums.Service
	PhotosService   *svcPhotos.Service

	authRateLimiter  *middleware.IPRateLimiter
	apiRateLimiter   *middleware.IPRateLimiter
	thumbRateLimiter *middleware.IPRateLimiter
}

// RegisterRoutes 注册所有路由
func RegisterRoutes(router *gin.Engine, deps *RouterDependencies) {
	registerBasicRoutes(router, deps)
	registerPublicRoutes(router, deps)
	registerAPIRoutes(router, deps)
}

// registerBasicRoutes 注册健康检查与版本路由
func registerBasicRoutes(router *gin.Engine, deps *RouterDependencies) {
	router.GET("/health", func(context *gin.Context) {
		health := gin.H{
			"status":  "ok",
			"uptime":  time.Since(startTime).Round(time.Second).String(),
			"version": config.Version,
			"checks": gin.H{
				"database":     checkDatabaseHealth(deps.DB),
				"cache":        checkCacheHealth(deps.CacheProvider),
				"materializer": checkMaterializerHealth(deps.Materializer),
			},
		}
		httpStatus := http.StatusOK
		for _, checkResult := range health["checks"].(gin.H) {
			if result, ok := checkResult.(string); ok && result != "ok" {
				httpStatus = http.StatusServiceUnavailable
				break
			}
		}
		context.JSON(httpStatus, health)
	})

	router.GET("/version", func(context *gin.Context) {
		common.RespondSuccess(context, gin.H{
			"version": config.Version,
			"commit":  config.CommitHash,
		})
	})
}

// registerPublicRoutes 注册无需认证的公开路由
func registerPublicRoutes(router *gin.Engine, deps *RouterDependencies) {
	photoHandler := handlerPhotos.NewHandler(deps.PhotosService)

	publicGroup := router.Group("/api/v2/public")
	publicGroup.Use(deps.thumbRateLimiter.Middleware())
	{
		publicGroup.GET("/thumbnails/:album_id/:photo_id", photoHandler.PublicThumbnailHandler)
	}
}

// registerAPIRoutes 注册需要认证的 API 路由
func registerAPIRoutes(router *gin.Engine, deps *RouterDependencies) {
	accountHandler := handlerAccounts.NewHandler(deps.AccountsService)
	photoHandler := handlerPhotos.NewHandler(deps.PhotosService)
	albumHandler := handlerAlbums.NewHandler(deps.AlbumsService, deps.PhotosService)
	loginHandler := api.NewLoginHandler(deps.LoginService)

	apiGroup := router.Group("/api")
	apiGroup.Use(func(context *gin.Context) { // API 响应禁止缓存
		context.Header("Cache-Control", "no-store")
		context.Next()
	})

	v2 := apiGroup.Group("/v2")
	{
		authGroup := v2.Group("/auth")
		authGroup.Use(deps.authRateLimiter.Middleware())
		{
			authGroup.POST("/token", loginHandler.LoginHandlerFunc)          // POST /api/v2/auth/token
			authGroup.POST("/refresh", loginHandler.RefreshTokenHandlerFunc) // POST /api/v2/auth/refresh
			authGroup.POST("/logout", loginHandler.LogoutHandlerFunc)        // POST /api/v2/auth/logout
			authGroup.POST("/users/add", accountHandler.RegisterHandler)     // POST /api/v2/auth/users/add

			protected := authGroup.Group("")
			protected.Use(middleware.CombinedAuth(deps.JWTService))
			{
				protected.GET("/profile", accountHandler.ProfileHandler)                       // GET /api/v2/auth/profile
				protected.PUT("/profile/update-password", accountHandler.UpdatePasswordHandler) // PUT /api/v2/auth/profile/update-password
				protected.DELETE("/profile/delete", accountHandler.DeleteProfileHandler)       // DELETE /api/v2/auth/profile/delete

				adminGroup := protected.Group("/users")
				adminGroup.Use(middleware.RequireAuthority(models.AuthorityAdmin))
				{
					adminGroup.GET("", accountHandler.ListAccountsHandler)                               // GET /api/v2/auth/users
					adminGroup.PUT("/:user_id/update-authorities", accountHandler.UpdateAuthoritiesHandler) // PUT /api/v2/auth/users/{user_id}/update-authorities
				}
			}
		}

		albumsGroup := v2.Group("/albums")
		albumsGroup.Use(deps.apiRateLimiter.Middleware())
		albumsGroup.Use(middleware.CombinedAuth(deps.JWTService))
		{
			albumsGroup.POST("/add", albumHandler.CreateAlbumHandler)                 // POST /api/v2/albums/add
			albumsGroup.GET("", albumHandler.ListAlbumsHandler)                       // GET /api/v2/albums
			albumsGroup.GET("/:album_id", albumHandler.GetAlbumDetailHandler)         // GET /api/v2/albums/{album_id}
			albumsGroup.PUT("/:album_id/update", albumHandler.UpdateAlbumHandler)     // PUT /api/v2/albums/{album_id}/update
			albumsGroup.DELETE("/:album_id/delete", albumHandler.DeleteAlbumHandler)  // DELETE /api/v2/albums/{album_id}/delete
			albumsGroup.POST("/:album_id/upload-photos", albumHandler.UploadPhotosHandler) // POST /api/v2/albums/{album_id}/upload-photos

			// 照片操作双重所有权校验：相册归属 + 照片归属
			albumsGroup.PUT("/:album_id/photo/:photo_id/update", photoHandler.UpdatePhotoHandler)    // PUT /api/v2/albums/{album_id}/photo/{photo_id}/update
			albumsGroup.DELETE("/:album_id/photo/:photo_id/delete", photoHandler.DeletePhotoHandler) // DELETE /api/v2/albums/{album_id}/photo/{photo_id}/delete
			albumsGroup.GET("/:album_id/photos/:photo_id/download-photo", photoHandler.DownloadPhotoHandler) // GET /api/v2/albums/{album_id}/photos/{photo_id}/download-photo
		}
	}
}
