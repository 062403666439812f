package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"gaming-community-api/internal/config"
	"gaming-community-api/internal/handler"
	"gaming-community-api/internal/metrics"
	"gaming-community-api/internal/middleware"
	"gaming-community-api/internal/service"
)

// Dependencies carries everything the router needs wired in
type Dependencies struct {
	Config      *config.Config
	Logger      *zap.Logger
	Metrics     *metrics.Metrics
	Redis       *redis.Client
	AuthService service.AuthService

	AuthHandler      *handler.AuthHandler
	GameHandler      *handler.GameHandler
	CommentHandler   *handler.CommentHandler
	LibraryHandler   *handler.LibraryHandler
	AffiliateHandler *handler.AffiliateHandler
}

// Setup builds the gin engine with all middleware and routes
func Setup(deps *Dependencies) *gin.Engine {
	gin.SetMode(deps.Config.Server.Mode)
	// Request bodies carrying fields outside the DTO are rejected with 400
	gin.EnableJsonDecoderDisallowUnknownFields()

	engine := gin.New()
	engine.Use(middleware.Recovery(deps.Logger))
	engine.Use(middleware.CORS(deps.Config.CORS.AllowedOrigins))
	engine.Use(middleware.Metrics(deps.Metrics))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := engine.Group(deps.Config.Server.BasePath)
	api.Use(middleware.RateLimit(deps.Redis, deps.Config.Throttle, deps.Logger, deps.Metrics))

	requireAuth := middleware.Auth(deps.AuthService)
	optionalAuth := middleware.OptionalAuth(deps.AuthService)

	auth := api.Group("/auth")
	{
		auth.POST("/login", deps.AuthHandler.Login)
		auth.GET("/me", requireAuth, deps.AuthHandler.Me)
	}

	games := api.Group("/games")
	{
		games.GET("/search", deps.GameHandler.SearchGames)
		games.GET("/trending", deps.GameHandler.GetTrendingGames)
		games.GET("/popular", deps.GameHandler.GetPopularGames)
		games.GET("/categories/:category", deps.GameHandler.GetGamesByCategory)
		games.GET("/:gameId", optionalAuth, deps.GameHandler.GetGameByID)
		games.GET("/:gameId/comments", deps.CommentHandler.GetCommentsByGame)
		games.POST("/:gameId/comments", requireAuth, deps.CommentHandler.CreateComment)
		games.GET("/:gameId/comments/count", deps.CommentHandler.GetCommentsCount)
		games.GET("/:gameId/affiliate-links", deps.AffiliateHandler.GetLinksForGame)
	}

	comments := api.Group("/comments/:commentId")
	{
		comments.PUT("", requireAuth, deps.CommentHandler.UpdateComment)
		comments.DELETE("", requireAuth, deps.CommentHandler.DeleteComment)
		comments.POST("/vote", requireAuth, deps.CommentHandler.VoteComment)
		comments.DELETE("/vote", requireAuth, deps.CommentHandler.RemoveVote)
		comments.POST("/reactions", requireAuth, deps.CommentHandler.AddReaction)
		comments.GET("/reactions", optionalAuth, deps.CommentHandler.GetCommentReactions)
		comments.GET("/replies", deps.CommentHandler.GetReplies)
	}

	api.GET("/user/comments", requireAuth, deps.CommentHandler.GetUserComments)

	library := api.Group("/user/games", requireAuth)
	{
		library.GET("", deps.LibraryHandler.GetLibrary)
		library.GET("/stats", deps.LibraryHandler.GetStats)
		library.POST("/:gameId/save", deps.LibraryHandler.ToggleSave)
		library.POST("/:gameId/played", deps.LibraryHandler.TogglePlayed)
		library.PATCH("/:gameId", deps.LibraryHandler.UpdateGameStatus)
		library.DELETE("/:gameId", deps.LibraryHandler.RemoveGame)
		library.GET("/:gameId", deps.LibraryHandler.GetGameStatus)
	}

	api.POST("/affiliate-links", requireAuth, deps.AffiliateHandler.CreateLink)

	return engine
}
