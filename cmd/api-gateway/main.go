package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/workforce-api/api/swagger"
	"github.com/noah-isme/workforce-api/internal/handler"
	"github.com/noah-isme/workforce-api/internal/middleware"
	"github.com/noah-isme/workforce-api/internal/models"
	"github.com/noah-isme/workforce-api/internal/repository"
	"github.com/noah-isme/workforce-api/internal/service"
	"github.com/noah-isme/workforce-api/pkg/cache"
	"github.com/noah-isme/workforce-api/pkg/clock"
	"github.com/noah-isme/workforce-api/pkg/config"
	"github.com/noah-isme/workforce-api/pkg/database"
	"github.com/noah-isme/workforce-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/workforce-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/workforce-api/pkg/middleware/requestid"
)

// @title Workforce API
// @version 0.1.0
// @description Staffing calendar, cost-period and occupancy service
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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to redis", "error", err)
	}
	defer redisClient.Close()

	validate := validator.New()
	metricsService := service.NewMetricsService()

	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	cacheService := service.NewCacheService(cacheRepo, metricsService, cfg.Staffing.CacheTTL, logr, cfg.Staffing.CacheEnabled)

	employeeRepo := repository.NewEmployeeRepository(db)
	calendarRepo := repository.NewCalendarRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	costPeriodRepo := repository.NewCostPeriodRepository(db)

	calendarService := service.NewCalendarService(cfg.Calendar.HoursPerWorkingDay, clock.System{}, logr)
	loadCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := calendarService.Load(loadCtx, calendarRepo); err != nil {
		cancel()
		logr.Sugar().Fatalw("failed to load business calendar", "error", err)
	}
	cancel()

	employeeService := service.NewEmployeeService(employeeRepo, validate, logr)
	costPeriodService := service.NewCostPeriodService(costPeriodRepo, employeeRepo, cacheService, logr)
	occupancyService := service.NewOccupancyService(assignmentRepo, calendarService, cacheService, logr)
	authService := service.NewAuthService(service.AuthConfig{
		Secret:   cfg.JWT.Secret,
		Issuer:   cfg.JWT.Issuer,
		Audience: cfg.JWT.Audience,
	})

	employeeHandler := handler.NewEmployeeHandler(employeeService)
	calendarHandler := handler.NewCalendarHandler(calendarService)
	costPeriodHandler := handler.NewCostPeriodHandler(costPeriodService)
	staffingHandler := handler.NewStaffingHandler(occupancyService)
	metricsHandler := handler.NewMetricsHandler(metricsService)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsService))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
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
	api.Use(middleware.JWT(authService))

	api.GET("/metrics/snapshot", middleware.RequireRoles(models.RoleAdmin), metricsHandler.Snapshot)

	calendar := api.Group("/calendar")
	{
		calendar.GET("/days/:date", calendarHandler.Day)
		calendar.GET("/working-days", calendarHandler.WorkingDays)
		calendar.GET("/working-days/offset", calendarHandler.AddWorkingDays)
		calendar.GET("/weeks", calendarHandler.Week)
	}

	employees := api.Group("/employees")
	{
		employees.GET("", middleware.RequireRoles(models.RoleAdmin, models.RoleManager), employeeHandler.List)
		employees.POST("", middleware.RequireRoles(models.RoleAdmin), employeeHandler.Create)
		employees.GET("/:id", middleware.RBAC(string(models.RoleAdmin), string(models.RoleManager), "SELF"), employeeHandler.Get)
		employees.PUT("/:id", middleware.RequireRoles(models.RoleAdmin), employeeHandler.Update)
		employees.DELETE("/:id", middleware.RequireRoles(models.RoleAdmin), employeeHandler.Deactivate)

		employees.GET("/:id/cost-periods/:series", middleware.RequireRoles(models.RoleAdmin, models.RoleManager), costPeriodHandler.List)
		employees.PUT("/:id/cost-periods/:series", middleware.RequireRoles(models.RoleAdmin, models.RoleManager), costPeriodHandler.Replace)

		staffing := employees.Group("/:id/staffing")
		staffing.Use(middleware.RBAC(string(models.RoleAdmin), string(models.RoleManager), "SELF"))
		{
			staffing.GET("/bars", staffingHandler.Bars)
			staffing.GET("/occupancy", staffingHandler.Occupancy)
			staffing.GET("/availability", staffingHandler.Availability)
			staffing.GET("/export", staffingHandler.Export)
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	first, last, _ := calendarService.Horizon()
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env,
		"calendar_from", first.String(), "calendar_to", last.String())
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
