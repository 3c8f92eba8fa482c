package router

import (
	"shortlink-service/config"
	"shortlink-service/internal/handler"
	"shortlink-service/internal/middleware"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

func Router(log *zap.Logger, rdb *redis.Client, linkHandler *handler.LinkHandler, cfg *config.Config) *gin.Engine {
	r := gin.Default()

	r.Use(cors.Default())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimit(rdb, log, cfg.RateLimit, time.Minute))
	{
		api.POST("/links", linkHandler.Create)
		api.GET("/links/:code", linkHandler.Get)
		api.GET("/links/:code/stats", linkHandler.Stats)
		api.POST("/links/:code/track", linkHandler.Track)
		api.PATCH("/links/:code", linkHandler.Update)
		api.DELETE("/links/:code", linkHandler.Delete)
	}

	// редирект без rate limit: это горячий путь
	r.GET("/:code", linkHandler.Redirect)

	return r
}
