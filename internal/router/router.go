package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/quizdeck/quizdeck-backend/internal/config"
	"github.com/quizdeck/quizdeck-backend/internal/handler"
	"github.com/quizdeck/quizdeck-backend/internal/middleware"
	"github.com/quizdeck/quizdeck-backend/internal/response"
	"github.com/quizdeck/quizdeck-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth     *handler.AuthHandler
	Admin    *handler.AdminHandler
	User     *handler.UserHandler
	UserMgmt *handler.UserManagementHandler
	Question *handler.QuestionHandler
	Quiz     *handler.QuizHandler
	AI       *handler.AIHandler
	System   *handler.SystemHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	authLimiter *middleware.RateLimiter,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{
		"Origin", "Content-Type", "Authorization",
		"X-Request-ID", "X-Admin-Token", "X-Quiz-Session", "X-Init-Secret",
	}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Unknown methods on known paths get an explicit 405.
	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		response.Fail(c, http.StatusMethodNotAllowed, response.ErrMethodNotAllowed)
	})
	router.NoRoute(func(c *gin.Context) {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	})

	// Health check.
	router.GET("/health", handlers.System.Health)

	// Schema bootstrap, optionally gated by X-Init-Secret.
	router.POST("/api/init-db", handlers.System.InitDB)

	// ─── Admin auth + admin CRUD ───────────────────────────────────────
	admin := router.Group("/api/admin")
	{
		admin.POST("/login", authLimiter.Middleware(), handlers.Auth.AdminLogin)
		admin.GET("/verify", middleware.RequireAdminSession(authService), handlers.Auth.AdminVerify)
		admin.POST("/logout", middleware.RequireAdminSession(authService), handlers.Auth.AdminLogout)

		admins := admin.Group("/admins")
		admins.Use(middleware.RequireAdminSession(authService))
		{
			admins.GET("", handlers.Admin.List)
			admins.POST("", handlers.Admin.Create)
			admins.PUT("/:id", handlers.Admin.Update)
			admins.DELETE("/:id", handlers.Admin.Delete)
		}
	}

	// ─── User self-service + admin-managed user CRUD ───────────────────
	users := router.Group("/api/users")
	{
		users.POST("/register", authLimiter.Middleware(), handlers.User.Register)
		users.POST("/login", authLimiter.Middleware(), handlers.User.Login)
		users.GET("/verify", middleware.RequireUserSession(authService), handlers.User.Verify)
		users.POST("/logout", middleware.RequireUserSession(authService), handlers.User.Logout)
		users.GET("/daily-calls", middleware.RequireUserSession(authService), handlers.User.DailyCalls)
		users.POST("/record-call", middleware.RequireUserSession(authService), handlers.User.RecordCall)

		// Management routes carry the admin token in X-Admin-Token.
		users.GET("", middleware.RequireAdminHeaderToken(authService), handlers.UserMgmt.List)
		users.POST("", middleware.RequireAdminHeaderToken(authService), handlers.UserMgmt.Create)
		users.PUT("/:id", middleware.RequireAdminHeaderToken(authService), handlers.UserMgmt.Update)
		users.DELETE("/:id", middleware.RequireAdminHeaderToken(authService), handlers.UserMgmt.Delete)
	}

	// ─── Question bank ─────────────────────────────────────────────────
	questions := router.Group("/api/questions")
	{
		questions.GET("", handlers.Question.List)
		questions.POST("", middleware.RequireAdminSession(authService), handlers.Question.Create)
		questions.PUT("/:id", middleware.RequireAdminSession(authService), handlers.Question.Update)
		questions.DELETE("/:id", middleware.RequireAdminSession(authService), handlers.Question.Delete)
	}

	// ─── Quiz ──────────────────────────────────────────────────────────
	// Open to anonymous callers; a user bearer token binds the quiz to
	// the account instead of the X-Quiz-Session header.
	quizGroup := router.Group("/api/quiz")
	quizGroup.Use(middleware.OptionalUserSession(authService))
	{
		quizGroup.POST("/start", handlers.Quiz.Start)
		quizGroup.GET("", handlers.Quiz.Get)
		quizGroup.POST("/answer", handlers.Quiz.Answer)
		quizGroup.POST("/next", handlers.Quiz.Next)
		quizGroup.POST("/prev", handlers.Quiz.Prev)
		quizGroup.POST("/submit", handlers.Quiz.Submit)
		quizGroup.POST("/exit", handlers.Quiz.Exit)
		quizGroup.GET("/result", handlers.Quiz.Result)
	}

	// ─── AI explanations ───────────────────────────────────────────────
	ai := router.Group("/api/ai")
	ai.Use(middleware.OptionalUserSession(authService))
	{
		ai.POST("/explain", handlers.AI.Explain)
	}

	return router
}
