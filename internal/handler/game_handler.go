package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"gaming-community-api/internal/middleware"
	"gaming-community-api/internal/response"
	"gaming-community-api/internal/service"
)

// GameHandler serves the cached game catalog
type GameHandler struct {
	gameService service.GameService
	logger      *zap.Logger
}

// NewGameHandler creates a new instance of GameHandler
func NewGameHandler(gameService service.GameService, logger *zap.Logger) *GameHandler {
	return &GameHandler{gameService: gameService, logger: logger}
}

// SearchGames godoc
// @Summary      Search the game catalog
// @Tags         games
// @Produce      json
// @Param        q query string true "Search query"
// @Param        limit query int false "Result limit" default(10)
// @Success      200 {object} response.Envelope{data=dto.GameListResponse}
// @Failure      400 {object} response.Envelope
// @Router       /games/search [get]
func (h *GameHandler) SearchGames(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Query parameter 'q' is required")
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	result, err := h.gameService.SearchGames(c.Request.Context(), query, limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, result)
}

// GetGameByID godoc
// @Summary      Get full game details
// @Description  Returns one game; authenticated callers also get their library flags
// @Tags         games
// @Produce      json
// @Param        gameId path int true "IGDB game ID"
// @Success      200 {object} response.Envelope{data=dto.GameDetailResponse}
// @Failure      404 {object} response.Envelope
// @Router       /games/{gameId} [get]
func (h *GameHandler) GetGameByID(c *gin.Context) {
	gameID, err := strconv.Atoi(c.Param("gameId"))
	if err != nil || gameID < 1 {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid game ID")
		return
	}

	var userID *uuid.UUID
	if id, ok := middleware.CurrentUserID(c); ok {
		userID = &id
	}

	result, err := h.gameService.GetGameByID(c.Request.Context(), gameID, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, result)
}

// GetGamesByCategory godoc
// @Summary      List games for a category
// @Tags         games
// @Produce      json
// @Param        category path string true "Category slug" Enums(action, adventure, rpg, strategy, sports, popular, trending)
// @Param        limit query int false "Result limit" default(20)
// @Param        offset query int false "Result offset" default(0)
// @Success      200 {object} response.Envelope{data=dto.GameListResponse}
// @Router       /games/categories/{category} [get]
func (h *GameHandler) GetGamesByCategory(c *gin.Context) {
	category := c.Param("category")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	result, err := h.gameService.GetGamesByCategory(c.Request.Context(), category, limit, offset)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, result)
}

// GetTrendingGames godoc
// @Summary      List trending games
// @Description  Well-rated games released in the last 90 days
// @Tags         games
// @Produce      json
// @Param        limit query int false "Result limit" default(20)
// @Success      200 {object} response.Envelope{data=dto.GameListResponse}
// @Router       /games/trending [get]
func (h *GameHandler) GetTrendingGames(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	result, err := h.gameService.GetTrendingGames(c.Request.Context(), limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, result)
}

// GetPopularGames godoc
// @Summary      List popular games
// @Tags         games
// @Produce      json
// @Param        limit query int false "Result limit" default(20)
// @Success      200 {object} response.Envelope{data=dto.GameListResponse}
// @Router       /games/popular [get]
func (h *GameHandler) GetPopularGames(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	result, err := h.gameService.GetPopularGames(c.Request.Context(), limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, result)
}
