package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"gaming-community-api/internal/dto"
	"gaming-community-api/internal/middleware"
	"gaming-community-api/internal/response"
	"gaming-community-api/internal/service"
)

// LibraryHandler serves the per-user game library endpoints
type LibraryHandler struct {
	libraryService service.LibraryService
	logger         *zap.Logger
}

// NewLibraryHandler creates a new instance of LibraryHandler
func NewLibraryHandler(libraryService service.LibraryService, logger *zap.Logger) *LibraryHandler {
	return &LibraryHandler{libraryService: libraryService, logger: logger}
}

// GetLibrary godoc
// @Summary      List the caller's saved games
// @Tags         library
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Envelope{data=dto.LibraryResponse}
// @Router       /user/games [get]
func (h *LibraryHandler) GetLibrary(c *gin.Context) {
	userID, ok := h.authedUser(c)
	if !ok {
		return
	}

	result, err := h.libraryService.GetLibrary(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, result)
}

// ToggleSave godoc
// @Summary      Toggle a game's saved state
// @Tags         library
// @Produce      json
// @Security     BearerAuth
// @Param        gameId path int true "IGDB game ID"
// @Success      200 {object} response.Envelope{data=dto.ToggleResponse}
// @Router       /user/games/{gameId}/save [post]
func (h *LibraryHandler) ToggleSave(c *gin.Context) {
	userID, gameID, ok := h.authedGameID(c)
	if !ok {
		return
	}

	result, err := h.libraryService.ToggleSave(c.Request.Context(), userID, gameID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, result)
}

// TogglePlayed godoc
// @Summary      Toggle a game's played state
// @Tags         library
// @Produce      json
// @Security     BearerAuth
// @Param        gameId path int true "IGDB game ID"
// @Success      200 {object} response.Envelope{data=dto.ToggleResponse}
// @Failure      404 {object} response.Envelope
// @Router       /user/games/{gameId}/played [post]
func (h *LibraryHandler) TogglePlayed(c *gin.Context) {
	userID, gameID, ok := h.authedGameID(c)
	if !ok {
		return
	}

	result, err := h.libraryService.TogglePlayed(c.Request.Context(), userID, gameID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, result)
}

// UpdateGameStatus godoc
// @Summary      Update a library entry
// @Tags         library
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        gameId path int true "IGDB game ID"
// @Param        request body dto.UpdateLibraryEntryRequest true "Fields to update"
// @Success      200 {object} response.Envelope{data=dto.LibraryEntryResponse}
// @Failure      404 {object} response.Envelope
// @Router       /user/games/{gameId} [patch]
func (h *LibraryHandler) UpdateGameStatus(c *gin.Context) {
	userID, gameID, ok := h.authedGameID(c)
	if !ok {
		return
	}

	var req dto.UpdateLibraryEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
		return
	}

	result, err := h.libraryService.UpdateGameStatus(c.Request.Context(), userID, gameID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, result)
}

// RemoveGame godoc
// @Summary      Remove a game from the library
// @Tags         library
// @Produce      json
// @Security     BearerAuth
// @Param        gameId path int true "IGDB game ID"
// @Success      204 "No Content"
// @Failure      404 {object} response.Envelope
// @Router       /user/games/{gameId} [delete]
func (h *LibraryHandler) RemoveGame(c *gin.Context) {
	userID, gameID, ok := h.authedGameID(c)
	if !ok {
		return
	}

	if err := h.libraryService.RemoveGame(c.Request.Context(), userID, gameID); err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendNoContent(c)
}

// GetGameStatus godoc
// @Summary      Get a game's library state for the caller
// @Tags         library
// @Produce      json
// @Security     BearerAuth
// @Param        gameId path int true "IGDB game ID"
// @Success      200 {object} response.Envelope{data=dto.GameStatusResponse}
// @Router       /user/games/{gameId} [get]
func (h *LibraryHandler) GetGameStatus(c *gin.Context) {
	userID, gameID, ok := h.authedGameID(c)
	if !ok {
		return
	}

	result, err := h.libraryService.GetGameStatus(c.Request.Context(), userID, gameID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, result)
}

// GetStats godoc
// @Summary      Summarize the caller's library
// @Tags         library
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Envelope{data=dto.LibraryStatsResponse}
// @Router       /user/games/stats [get]
func (h *LibraryHandler) GetStats(c *gin.Context) {
	userID, ok := h.authedUser(c)
	if !ok {
		return
	}

	result, err := h.libraryService.GetStats(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, result)
}

func (h *LibraryHandler) authedUser(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Authentication required")
		return uuid.Nil, false
	}
	return userID, true
}

func (h *LibraryHandler) authedGameID(c *gin.Context) (uuid.UUID, int, bool) {
	userID, ok := h.authedUser(c)
	if !ok {
		return uuid.Nil, 0, false
	}
	gameID, err := strconv.Atoi(c.Param("gameId"))
	if err != nil || gameID < 1 {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid game ID")
		return uuid.Nil, 0, false
	}
	return userID, gameID, true
}
