package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/sidesa-dev/sidesa-api/api/swagger"
	"github.com/sidesa-dev/sidesa-api/internal/handler"
	"github.com/sidesa-dev/sidesa-api/internal/middleware"
	"github.com/sidesa-dev/sidesa-api/internal/models"
	"github.com/sidesa-dev/sidesa-api/internal/repository"
	"github.com/sidesa-dev/sidesa-api/internal/service"
	"github.com/sidesa-dev/sidesa-api/pkg/cache"
	"github.com/sidesa-dev/sidesa-api/pkg/config"
	"github.com/sidesa-dev/sidesa-api/pkg/database"
	"github.com/sidesa-dev/sidesa-api/pkg/logger"
	corsmiddleware "github.com/sidesa-dev/sidesa-api/pkg/middleware/cors"
	reqidmiddleware "github.com/sidesa-dev/sidesa-api/pkg/middleware/requestid"
)

// @title SIDesa API
// @version 1.0.0
// @description Village civil administration portal
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close() //nolint:errcheck

	metricsSvc := service.NewMetricsService()

	// Redis is optional: without it the portal runs uncached.
	var cacheSvc *service.CacheService
	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
	} else {
		cacheRepo := repository.NewCacheRepository(redisClient, logr)
		cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Dashboard.CacheTTL, logr, true)
		defer cacheRepo.Close() //nolint:errcheck
	}

	validate := validator.New()

	sequenceRepo := repository.NewSequenceRepository(db)
	letterRepo := repository.NewLetterRepository(db)
	residentRepo := repository.NewResidentRepository(db)
	userRepo := repository.NewUserRepository(db)

	numberingSvc := service.NewNumberingService(sequenceRepo, logr, cfg.Numbering.QueryTimeout)
	residentSvc := service.NewResidentService(residentRepo, validate, logr)
	letterSvc := service.NewLetterService(letterRepo, residentRepo, logr)
	bundleSvc := service.NewBundleService(letterRepo, cacheSvc, logr, cfg.Bundles.CacheTTL)
	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		Secret:     cfg.Auth.Secret,
		Expiration: cfg.Auth.Expiration,
		Issuer:     cfg.Auth.Issuer,
	})
	dashboardSvc := service.NewDashboardService(residentRepo, letterRepo, sequenceRepo, bundleSvc, cacheSvc, logr,
		service.DashboardServiceConfig{CacheTTL: cfg.Dashboard.CacheTTL})

	var exportSvc *service.ExportService
	if cfg.Export.Enabled {
		exportSvc = service.NewExportService(letterRepo, logr, cfg.Export.MaxRows)
	}

	numberingHandler := handler.NewNumberingHandler(numberingSvc)
	letterHandler := handler.NewLetterHandler(letterSvc, bundleSvc, nil)
	if exportSvc != nil {
		letterHandler = handler.NewLetterHandler(letterSvc, bundleSvc, exportSvc)
	}
	bundleHandler := handler.NewBundleHandler(bundleSvc)
	residentHandler := handler.NewResidentHandler(residentSvc)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)
	authHandler := handler.NewAuthHandler(authSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("")
	protected.Use(middleware.JWT(authSvc))

	protected.GET("/auth/me", authHandler.Me)

	protected.POST("/letter-numbers/reserve", numberingHandler.Reserve)
	protected.POST("/letter-numbers/:id/confirm", numberingHandler.Confirm)
	protected.DELETE("/letter-numbers/:id", numberingHandler.Cancel)
	protected.GET("/letter-numbers", numberingHandler.List)

	protected.POST("/letter-entries", letterHandler.Create)
	protected.GET("/letter-entries", letterHandler.List)
	protected.GET("/letter-entries/export", letterHandler.Export)
	protected.GET("/letter-entries/:id", letterHandler.Get)
	protected.PUT("/letter-entries/:id", letterHandler.Update)
	protected.DELETE("/letter-entries/:id", middleware.RequireRoles(models.RoleAdmin), letterHandler.Delete)

	protected.GET("/bundles", bundleHandler.List)
	protected.GET("/bundles/:key", bundleHandler.Get)

	protected.GET("/residents", residentHandler.List)
	protected.POST("/residents", residentHandler.Create)
	protected.GET("/residents/:id", residentHandler.Get)
	protected.PUT("/residents/:id", residentHandler.Update)
	protected.DELETE("/residents/:id", middleware.RequireRoles(models.RoleAdmin), residentHandler.Delete)

	if cfg.Dashboard.Enabled {
		protected.GET("/dashboard/summary", dashboardHandler.Summary)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
