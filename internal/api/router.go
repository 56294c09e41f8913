package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/slidearcade/puzzle-api/internal/api/handler"
	"github.com/slidearcade/puzzle-api/internal/api/middleware"
	"github.com/slidearcade/puzzle-api/internal/core/service"
	"github.com/slidearcade/puzzle-api/internal/infrastructure/config"
	mongodb "github.com/slidearcade/puzzle-api/internal/infrastructure/db/mongo"
	redisdb "github.com/slidearcade/puzzle-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The dispatcher receives score events for asynchronous audit persistence;
// it must already be started.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger, audit service.AuditSink) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("puzzle"))

	// --- Dependencies ---
	playerRepo := mongodb.NewPlayerRepository(db)
	scoreRepo := mongodb.NewScoreRepository(db)
	sessionStore := redisdb.NewSessionStore(rdb)
	boardCache := redisdb.NewLeaderboardCache(rdb)

	authService := service.NewAuthService(playerRepo, cfg.JWTSecret, cfg.TokenTTL, cfg.EmailDomain)
	scoreService := service.NewScoreService(playerRepo, scoreRepo, audit, log)
	leaderboardService := service.NewLeaderboardService(scoreRepo, boardCache, log)
	statsService := service.NewStatsService(playerRepo, scoreRepo)
	gameService := service.NewGameService(sessionStore, log)

	authHandler := handler.NewAuthHandler(authService)
	scoreHandler := handler.NewScoreHandler(scoreService, leaderboardService)
	leaderboardHandler := handler.NewLeaderboardHandler(leaderboardService, statsService)
	gameHandler := handler.NewGameHandler(gameService)
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	requireAuth := middleware.Auth(cfg.JWTSecret)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Score routes (bearer token required) ---
	e.POST("/scores", scoreHandler.Submit, requireAuth)
	e.GET("/user/score", scoreHandler.UserScore, requireAuth)

	// --- Public leaderboard and stats ---
	e.GET("/leaderboard", leaderboardHandler.Leaderboard)
	e.GET("/stats", leaderboardHandler.Stats)

	// --- Game sessions (anonymous play) ---
	e.POST("/game/sessions", gameHandler.Create)
	e.GET("/game/sessions/:id", gameHandler.Get)
	e.POST("/game/sessions/:id/click", gameHandler.Click)
	e.POST("/game/sessions/:id/reset", gameHandler.Reset)

	// --- Health probes ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
