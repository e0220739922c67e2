package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	clinicapp "github.com/Vitorafonso317/lunysse-backend/internal/application/clinic"
	identityapp "github.com/Vitorafonso317/lunysse-backend/internal/application/identity"
	intakeapp "github.com/Vitorafonso317/lunysse-backend/internal/application/intake"
	messagingapp "github.com/Vitorafonso317/lunysse-backend/internal/application/messaging"
	reportapp "github.com/Vitorafonso317/lunysse-backend/internal/application/report"
	schedulingapp "github.com/Vitorafonso317/lunysse-backend/internal/application/scheduling"
	"github.com/Vitorafonso317/lunysse-backend/internal/domain/scheduling"
	"github.com/Vitorafonso317/lunysse-backend/internal/infrastructure/auth"
	"github.com/Vitorafonso317/lunysse-backend/internal/infrastructure/config"
	"github.com/Vitorafonso317/lunysse-backend/internal/infrastructure/logger"
	"github.com/Vitorafonso317/lunysse-backend/internal/infrastructure/notification"
	"github.com/Vitorafonso317/lunysse-backend/internal/infrastructure/persistence"
	"github.com/Vitorafonso317/lunysse-backend/internal/interfaces/http/handler"
	"github.com/Vitorafonso317/lunysse-backend/internal/interfaces/http/middleware"
	"github.com/Vitorafonso317/lunysse-backend/internal/interfaces/http/router"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting Lunysse backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Token blacklist: Redis when reachable, otherwise tokens stay
	// valid until expiry and logout is best-effort.
	var blacklist auth.TokenBlacklist
	redisBlacklist, err := auth.NewRedisTokenBlacklist(auth.RedisTokenBlacklistConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Warn("Redis unavailable, using in-memory token blacklist", zap.Error(err))
		blacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		blacklist = redisBlacklist
		log.Info("Redis token blacklist connected")
	}

	jwtService := auth.NewJWTService(cfg.JWT)

	var notifier notification.Notifier = notification.NopNotifier{}
	if cfg.Notification.Enabled {
		webhook := notification.NewWebhookNotifier(cfg.Notification.WebhookURL, cfg.Notification.Timeout, log)
		notifier = notification.NewAsyncNotifier(webhook, cfg.Notification.Timeout, log)
		log.Info("Webhook notifications enabled", zap.String("url", cfg.Notification.WebhookURL))
	}

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	patientRepo := persistence.NewGormPatientRepository(db.DB)
	requestRepo := persistence.NewGormRequestRepository(db.DB)
	appointmentRepo := persistence.NewGormAppointmentRepository(db.DB)
	messageRepo := persistence.NewGormMessageRepository(db.DB)

	// Application services
	grid := scheduling.SlotGrid{
		StartHour:   cfg.Schedule.StartHour,
		EndHour:     cfg.Schedule.EndHour,
		SlotMinutes: cfg.Schedule.SlotMinutes,
	}
	authService := identityapp.NewAuthService(userRepo, patientRepo, jwtService, blacklist)
	patientService := clinicapp.NewPatientService(patientRepo, appointmentRepo, userRepo)
	requestService := intakeapp.NewRequestService(requestRepo, patientRepo, userRepo, notifier)
	appointmentService := schedulingapp.NewAppointmentService(appointmentRepo, patientRepo, userRepo, grid, notifier)
	messageService := messagingapp.NewMessageService(messageRepo, userRepo, patientRepo, appointmentRepo)
	reportService := reportapp.NewReportService(patientRepo, appointmentRepo)

	// HTTP handlers
	authHandler := handler.NewAuthHandler(authService)
	patientHandler := handler.NewPatientHandler(patientService)
	requestHandler := handler.NewRequestHandler(requestService)
	appointmentHandler := handler.NewAppointmentHandler(appointmentService)
	messageHandler := handler.NewMessageHandler(messageService)
	reportHandler := handler.NewReportHandler(reportService)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := middleware.SetupValidator(); err != nil {
		log.Fatal("Failed to register validators", zap.Error(err))
	}

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := cors.Config{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(cors.New(corsConfig))

	engine.GET("/health", healthHandler(db))

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	jwtConfig := middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		SkipPaths: []string{
			"/api/v1/auth/register",
			"/api/v1/auth/login",
			"/api/v1/requests",
		},
		SkipPathPrefixes: []string{
			"/api/v1/appointments/email/",
		},
		Logger: log,
	}
	r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	authRoutes := router.NewDomainGroup("auth", "/auth")
	authRoutes.POST("/register", authHandler.Register)
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.POST("/logout", authHandler.Logout)
	authRoutes.GET("/me", authHandler.Me)

	patientRoutes := router.NewDomainGroup("patients", "/patients")
	patientRoutes.POST("", patientHandler.Create)
	patientRoutes.GET("", patientHandler.List)
	patientRoutes.GET("/my-patients", patientHandler.List)
	patientRoutes.GET("/:id", patientHandler.Get)
	patientRoutes.PUT("/:id", patientHandler.Update)
	patientRoutes.GET("/:id/sessions", patientHandler.Sessions)
	patientRoutes.GET("/:id/profile", patientHandler.Profile)

	appointmentRoutes := router.NewDomainGroup("appointments", "/appointments")
	appointmentRoutes.POST("", appointmentHandler.Create)
	appointmentRoutes.GET("", appointmentHandler.List)
	appointmentRoutes.GET("/available-slots", appointmentHandler.AvailableSlots)
	appointmentRoutes.GET("/email/:email", appointmentHandler.ListByEmail)
	appointmentRoutes.GET("/:id", appointmentHandler.Get)
	appointmentRoutes.PUT("/:id", appointmentHandler.Update)
	appointmentRoutes.PATCH("/:id", appointmentHandler.Update)
	appointmentRoutes.DELETE("/:id", appointmentHandler.Cancel)

	requestRoutes := router.NewDomainGroup("requests", "/requests")
	requestRoutes.POST("", requestHandler.Submit)
	requestRoutes.GET("", requestHandler.List)
	requestRoutes.GET("/:id", requestHandler.Get)
	requestRoutes.PUT("/:id", requestHandler.Decide)
	requestRoutes.PATCH("/:id/accept", requestHandler.Accept)

	messageRoutes := router.NewDomainGroup("messages", "/messages")
	messageRoutes.POST("", messageHandler.Send)
	messageRoutes.GET("/conversations", messageHandler.Conversations)
	messageRoutes.GET("/conversation/:id", messageHandler.Conversation)
	messageRoutes.PATCH("/:id/read", messageHandler.MarkRead)
	messageRoutes.GET("/unread-count", messageHandler.UnreadCount)
	messageRoutes.GET("/contacts", messageHandler.Contacts)

	reportRoutes := router.NewDomainGroup("reports", "/reports")
	reportRoutes.GET("/:psychologist_id", reportHandler.Stats)
	reportRoutes.GET("/:psychologist_id/risk-analysis", reportHandler.RiskAnalysis)

	r.Register(authRoutes).
		Register(patientRoutes).
		Register(appointmentRoutes).
		Register(requestRoutes).
		Register(messageRoutes).
		Register(reportRoutes)

	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}

func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"error":  "database unreachable",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	}
}
