package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	_ "gaming-community-api/docs"
	"gaming-community-api/internal/cache"
	"gaming-community-api/internal/client"
	"gaming-community-api/internal/config"
	"gaming-community-api/internal/database"
	"gaming-community-api/internal/handler"
	"gaming-community-api/internal/job"
	"gaming-community-api/internal/metrics"
	"gaming-community-api/internal/repository"
	"gaming-community-api/internal/router"
	"gaming-community-api/internal/service"
)

// @title           Gaming Community API
// @version         1.0
// @description     Backend API for the gaming community mobile app: game catalog, comments, votes, reactions and user libraries.
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
func main() {
	cfg, err := config.Load("config.yaml")
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger := initLogger(cfg.Logger.Level)
	defer logger.Sync()

	logger.Info("starting gaming community api",
		zap.String("port", cfg.Server.Port),
		zap.String("mode", cfg.Server.Mode))

	// Database
	db, err := database.New(database.Config{
		DSN:             cfg.Database.GetDSN(),
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	// Redis
	redisClient, err := database.NewRedis(cfg.Redis)
	if err != nil {
		logger.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer redisClient.Close()

	// Metrics
	m := metrics.New()
	database.RegisterMetricsCallbacks(db, m)

	// Repositories
	userRepo := repository.NewUserRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	voteRepo := repository.NewCommentVoteRepository(db)
	reactionRepo := repository.NewCommentReactionRepository(db)
	userGameRepo := repository.NewUserGameRepository(db)
	linkRepo := repository.NewAffiliateLinkRepository(db)

	// External clients
	tokenProvider := client.NewTwitchTokenProvider(cfg.IGDB, redisClient, logger)
	igdbClient := client.NewIGDBClient(cfg.IGDB, tokenProvider, logger, m)
	verifier := client.NewTokenInfoVerifier(cfg.Identity, logger, m)
	store := cache.NewRedisStore(redisClient, logger)

	// Services
	authService := service.NewAuthService(verifier, userRepo, cfg.JWT, logger, m)
	gameService := service.NewGameService(igdbClient, store, userGameRepo, cfg.Cache, logger, m)
	commentService := service.NewCommentService(commentRepo, voteRepo, reactionRepo, logger, m)
	libraryService := service.NewLibraryService(userGameRepo, gameService, logger, m)
	affiliateService := service.NewAffiliateService(linkRepo, logger)

	// Keep the IGDB token warm; prefetch failures are not fatal
	refreshJob := job.NewTokenRefreshJob(tokenProvider, "@every 24h", logger)
	if err := refreshJob.Start(); err != nil {
		logger.Warn("failed to start token refresh job", zap.Error(err))
	}
	defer refreshJob.Stop()

	engine := router.Setup(&router.Dependencies{
		Config:           cfg,
		Logger:           logger,
		Metrics:          m,
		Redis:            redisClient,
		AuthService:      authService,
		AuthHandler:      handler.NewAuthHandler(authService, logger),
		GameHandler:      handler.NewGameHandler(gameService, logger),
		CommentHandler:   handler.NewCommentHandler(commentService, logger),
		LibraryHandler:   handler.NewLibraryHandler(libraryService, logger),
		AffiliateHandler: handler.NewAffiliateHandler(affiliateService, logger),
	})

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

func initLogger(level string) *zap.Logger {
	zapLevel, err := zapcore.ParseLevel(level)
	if err != nil {
		zapLevel = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := cfg.Build()
	if err != nil {
		panic("failed to build logger: " + err.Error())
	}
	return logger
}
