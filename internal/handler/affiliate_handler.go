package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gaming-community-api/internal/dto"
	"gaming-community-api/internal/response"
	"gaming-community-api/internal/service"
)

// AffiliateHandler serves per-game store link endpoints
type AffiliateHandler struct {
	affiliateService service.AffiliateService
	logger           *zap.Logger
}

// NewAffiliateHandler creates a new instance of AffiliateHandler
func NewAffiliateHandler(affiliateService service.AffiliateService, logger *zap.Logger) *AffiliateHandler {
	return &AffiliateHandler{affiliateService: affiliateService, logger: logger}
}

// GetLinksForGame godoc
// @Summary      List a game's active store links
// @Tags         affiliate
// @Produce      json
// @Param        gameId path int true "IGDB game ID"
// @Success      200 {object} response.Envelope{data=[]dto.AffiliateLinkResponse}
// @Router       /games/{gameId}/affiliate-links [get]
func (h *AffiliateHandler) GetLinksForGame(c *gin.Context) {
	gameID, err := strconv.Atoi(c.Param("gameId"))
	if err != nil || gameID < 1 {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid game ID")
		return
	}

	result, err := h.affiliateService.GetLinksForGame(c.Request.Context(), gameID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, result)
}

// CreateLink godoc
// @Summary      Register a store link for a game
// @Tags         affiliate
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateAffiliateLinkRequest true "Link payload"
// @Success      201 {object} response.Envelope{data=dto.AffiliateLinkResponse}
// @Failure      409 {object} response.Envelope
// @Router       /affiliate-links [post]
func (h *AffiliateHandler) CreateLink(c *gin.Context) {
	var req dto.CreateAffiliateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
		return
	}

	result, err := h.affiliateService.CreateLink(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusCreated, result)
}
