package main

import (
	"net/http"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/sjperalta/kost-listrik-api/internal/config"
	"github.com/sjperalta/kost-listrik-api/internal/handlers"
	"github.com/sjperalta/kost-listrik-api/internal/metrics"
	"github.com/sjperalta/kost-listrik-api/internal/middleware"
)

func setupRouter(h *handlers.Handlers, cfg *config.Config, m *metrics.Metrics) *gin.Engine {
	router := gin.New()

	if cfg.SentryDSN != "" {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Metrics(m))
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", h.Health.Index)
		v1.POST("/auth/login", h.Auth.Login)

		protected := v1.Group("")
		if cfg.AuthEnabled() {
			protected.Use(middleware.Auth(cfg.JWTSecret))
		}
		{
			rooms := protected.Group("/rooms")
			{
				rooms.GET("", h.Room.Index)
				rooms.POST("", h.Room.Create)
				rooms.GET("/:room_id", h.Room.Show)
				rooms.PUT("/:room_id", h.Room.Update)
				rooms.DELETE("/:room_id", h.Room.Delete)
				rooms.GET("/:room_id/history", h.Room.History)
				rooms.GET("/:room_id/unpaid", h.Room.Unpaid)
				rooms.GET("/:room_id/next_reading", h.Room.NextReading)
				rooms.POST("/:room_id/readings", h.Reading.Create)
				rooms.POST("/:room_id/payments", h.Payment.PayLatest)
			}

			// Static route first so "preview" is not matched as :reading_id
			readings := protected.Group("/readings")
			{
				readings.POST("/preview", h.Reading.Preview)
				readings.GET("/:reading_id", h.Reading.Show)
				readings.POST("/:reading_id/payments", h.Payment.Create)
			}

			protected.GET("/tariff", h.Tariff.Show)
			protected.PUT("/tariff", h.Tariff.Update)

			reports := protected.Group("/reports")
			{
				reports.GET("/dashboard", h.Report.Dashboard)
				reports.GET("/monthly", h.Report.Monthly)
				reports.GET("/monthly/export", h.Report.Export)
				reports.GET("/years", h.Report.Years)
			}

			protected.POST("/backups", h.Backup.Create)
			protected.POST("/import", h.Backup.Import)
		}
	}

	return router
}
