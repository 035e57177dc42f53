package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/quizdeck/quizdeck-backend/internal/ai"
	"github.com/quizdeck/quizdeck-backend/internal/config"
	"github.com/quizdeck/quizdeck-backend/internal/database"
	"github.com/quizdeck/quizdeck-backend/internal/handler"
	"github.com/quizdeck/quizdeck-backend/internal/logger"
	"github.com/quizdeck/quizdeck-backend/internal/middleware"
	"github.com/quizdeck/quizdeck-backend/internal/quiz"
	"github.com/quizdeck/quizdeck-backend/internal/quota"
	"github.com/quizdeck/quizdeck-backend/internal/repository"
	"github.com/quizdeck/quizdeck-backend/internal/router"
	"github.com/quizdeck/quizdeck-backend/internal/service"
	"github.com/quizdeck/quizdeck-backend/internal/validator"
)

// anonymousWindow is the shared anonymous AI quota: 10 calls per
// rolling minute per IP.
const (
	anonymousWindowMax  = 10
	anonymousWindowSpan = time.Minute
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting QuizDeck Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	adminRepo := repository.NewAdminRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	sessionRepo := repository.NewSessionRepository(pool)
	dailyCallRepo := repository.NewDailyCallRepository(pool)
	questionRepo := repository.NewQuestionRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg, sessionRepo, adminRepo, userRepo)
	adminService := service.NewAdminService(adminRepo)
	userService := service.NewUserService(userRepo, authService)
	quotaService := service.NewQuotaService(dailyCallRepo, rdb, log)
	questionService := service.NewQuestionService(questionRepo, rdb, log)

	// ─── Quiz Engine + AI Client ──────────────────────────────────────
	engine := quiz.NewEngine()
	snapshots := quiz.NewSnapshotStore(rdb)
	aiClient := ai.NewClient(cfg.AIAPIKey, cfg.AIBaseURL, cfg.AIModel)
	if !aiClient.Configured() {
		log.Warn().Msg("OPENAI_API_KEY not set; AI explanations disabled")
	}

	anonLimiter := quota.NewLimiter(anonymousWindowMax, anonymousWindowSpan)

	// Credential endpoints get a per-IP brute-force throttle.
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// Periodically drop empty anonymous rate windows and stale
	// credential-throttle buckets.
	limiterCtx, limiterCancel := context.WithCancel(context.Background())
	go authLimiter.Run(limiterCtx)
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-limiterCtx.Done():
				return
			case now := <-ticker.C:
				anonLimiter.Cleanup(now)
			}
		}
	}()

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Admin:    handler.NewAdminHandler(adminService),
		User:     handler.NewUserHandler(authService, userService, quotaService),
		UserMgmt: handler.NewUserManagementHandler(userService),
		Question: handler.NewQuestionHandler(questionService),
		Quiz:     handler.NewQuizHandler(engine, snapshots, questionService, log),
		AI:       handler.NewAIHandler(aiClient, anonLimiter, quotaService),
		System:   handler.NewSystemHandler(cfg, pool, log),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, authLimiter, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	limiterCancel()

	log.Info().Msg("Shutdown complete")
}
