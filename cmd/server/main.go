package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/classhub/backend/internal/auth"
	"github.com/classhub/backend/internal/cache"
	"github.com/classhub/backend/internal/config"
	"github.com/classhub/backend/internal/database"
	"github.com/classhub/backend/internal/handlers"
	"github.com/classhub/backend/internal/logger"
	"github.com/classhub/backend/internal/middleware"
	"github.com/classhub/backend/internal/notify"
	"github.com/classhub/backend/internal/telemetry"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Initialize(cfg.LogLevel, cfg.LogFile); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Close()

	logger.Log.Info("Classhub server starting",
		zap.String("environment", cfg.Environment),
		zap.String("port", cfg.Port),
	)

	tracerProvider, err := telemetry.InitTracer(telemetry.Config{
		ServiceName:  "classhub-backend",
		Environment:  cfg.Environment,
		OTLPEndpoint: cfg.OTLPEndpoint,
		SamplingRate: 1.0,
	})
	if err != nil {
		logger.Log.Warn("Failed to initialize tracing", zap.Error(err))
	}
	if tracerProvider != nil {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = tracerProvider.Shutdown(ctx)
		}()
	}

	if err := database.Initialize(); err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer database.Close()

	if err := database.Migrate(); err != nil {
		logger.Log.Fatal("Failed to run migrations", zap.Error(err))
	}

	// The response cache degrades to a no-op when redis is unreachable.
	redisClient, err := cache.NewRedisClient(cfg.RedisHost, cfg.RedisPort, cfg.RedisPassword)
	if err != nil {
		logger.Log.Warn("Redis unavailable, response caching disabled", zap.Error(err))
	} else {
		defer redisClient.Close()
	}

	authService := auth.NewService(
		cfg.JWTSecret,
		cfg.GoogleClientID,
		cfg.GoogleClientSecret,
		cfg.OAuthRedirectURL,
	)

	hub := notify.NewHub()
	defer hub.Shutdown()

	h := handlers.NewHandlers(authService)
	h.SetNotifyHub(hub)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.GinLoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())
	r.Use(otelgin.Middleware("classhub-backend"))
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"} // Configure properly for production
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	r.GET("/health", func(c *gin.Context) {
		status := "ok"
		code := http.StatusOK
		if err := database.Health(); err != nil {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{
			"status":    status,
			"timestamp": time.Now().UTC(),
			"service":   "classhub-backend",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	registerRoutes(r, h, hub)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		logger.Log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Log.Info("Server exited")
}

func registerRoutes(r *gin.Engine, h *handlers.Handlers, hub *notify.Hub) {
	api := r.Group("/api/v1")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", h.Register)
			authGroup.POST("/login", h.Login)
			authGroup.GET("/google", h.GoogleOAuth)
			authGroup.GET("/google/callback", h.GoogleCallback)
			authGroup.GET("/me", h.AuthMiddleware(), h.Me)
		}

		plans := api.Group("/lesson-plans")
		{
			plans.Use(h.AuthMiddleware())
			plans.POST("", middleware.CacheInvalidationMiddleware("/api/v1/lesson-plans*", "/api/v1/dashboard*"), h.SubmitLessonPlan)
			plans.POST("/validate", h.ValidateLessonPlan)
			plans.GET("", middleware.ResponseCacheMiddleware(middleware.CacheTierMedium), h.GetMyLessonPlans)
			plans.GET("/all", h.RequireReviewer(), middleware.ResponseCacheMiddleware(middleware.CacheTierMedium), h.GetAllLessonPlans)
			plans.GET("/:id", h.GetLessonPlan)
			plans.POST("/:id/review", h.RequireReviewer(), middleware.CacheInvalidationMiddleware("/api/v1/lesson-plans*", "/api/v1/dashboard*"), h.ReviewLessonPlan)
			plans.POST("/placeholders", h.RequireReviewer(), middleware.CacheInvalidationMiddleware("/api/v1/lesson-plans*"), h.CreatePlaceholders)
		}

		schemes := api.Group("/schemes")
		{
			schemes.Use(h.AuthMiddleware())
			schemes.POST("", h.RequireAdmin(), middleware.CacheInvalidationMiddleware("/api/v1/schemes*"), h.CreateScheme)
			schemes.GET("", middleware.ResponseCacheMiddleware(middleware.CacheTierLong), h.GetSchemes)
			schemes.GET("/:id", middleware.ResponseCacheMiddleware(middleware.CacheTierLong), h.GetScheme)
		}

		reports := api.Group("/reports")
		{
			reports.Use(h.AuthMiddleware())
			reports.POST("", middleware.CacheInvalidationMiddleware("/api/v1/reports*", "/api/v1/dashboard*"), h.CreateDailyReport)
			reports.GET("", middleware.ResponseCacheMiddleware(middleware.CacheTierShort), h.GetDailyReports)
		}

		exams := api.Group("/exams")
		{
			exams.Use(h.AuthMiddleware())
			exams.POST("", h.RequireAdmin(), middleware.CacheInvalidationMiddleware("/api/v1/exams*"), h.CreateExam)
			exams.GET("", middleware.ResponseCacheMiddleware(middleware.CacheTierMedium), h.GetExams)
			exams.POST("/:id/marks", middleware.CacheInvalidationMiddleware("/api/v1/exams*"), h.EnterMarks)
			exams.GET("/:id/marks", middleware.ResponseCacheMiddleware(middleware.CacheTierMedium), h.GetMarks)
			exams.GET("/:id/stats", middleware.ResponseCacheMiddleware(middleware.CacheTierMedium), h.GetExamStats)
			exams.GET("/:id/marks/export", h.ExportMarks)
		}

		subs := api.Group("/substitutions")
		{
			subs.Use(h.AuthMiddleware())
			subs.POST("", h.RequireAdmin(), middleware.CacheInvalidationMiddleware("/api/v1/substitutions*", "/api/v1/dashboard*"), h.CreateSubstitution)
			subs.POST("/:id/assign", h.RequireAdmin(), middleware.CacheInvalidationMiddleware("/api/v1/substitutions*", "/api/v1/dashboard*"), h.AssignSubstitution)
			subs.GET("", middleware.ResponseCacheMiddleware(middleware.CacheTierRealtime), h.GetSubstitutions)
			subs.GET("/mine", middleware.ResponseCacheMiddleware(middleware.CacheTierRealtime), h.GetMySubstitutions)
		}

		attendance := api.Group("/attendance")
		{
			attendance.Use(h.AuthMiddleware())
			attendance.POST("", middleware.CacheInvalidationMiddleware("/api/v1/attendance*"), h.MarkAttendance)
			attendance.GET("", middleware.ResponseCacheMiddleware(middleware.CacheTierShort), h.GetAttendance)
			attendance.GET("/export", h.ExportAttendance)
		}

		calendar := api.Group("/calendar")
		{
			calendar.Use(h.AuthMiddleware())
			calendar.POST("", h.RequireAdmin(), middleware.CacheInvalidationMiddleware("/api/v1/calendar*", "/api/v1/dashboard*"), h.CreateCalendarEvent)
			calendar.GET("", middleware.ResponseCacheMiddleware(middleware.CacheTierLong), h.GetCalendarEvents)
			calendar.GET("/export", h.ExportCalendar)
			calendar.DELETE("/:id", h.RequireAdmin(), middleware.CacheInvalidationMiddleware("/api/v1/calendar*"), h.DeleteCalendarEvent)
		}

		api.GET("/dashboard", h.AuthMiddleware(), middleware.ResponseCacheMiddleware(middleware.CacheTierShort), h.GetDashboard)

		// WebSocket notifications (substitution assignments, calendar changes)
		api.GET("/ws", h.AuthMiddleware(), hub.ServeWS)
	}

	// Legacy single-endpoint dispatch for clients still sending action=.
	exec := r.Group("/api/exec")
	exec.Use(h.AuthMiddleware())
	exec.GET("", h.Dispatch)
	exec.POST("", h.Dispatch)
}
