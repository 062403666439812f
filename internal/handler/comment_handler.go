package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"gaming-community-api/internal/domain"
	"gaming-community-api/internal/dto"
	"gaming-community-api/internal/middleware"
	"gaming-community-api/internal/response"
	"gaming-community-api/internal/service"
)

// CommentHandler serves the threaded comment endpoints
type CommentHandler struct {
	commentService service.CommentService
	logger         *zap.Logger
}

// NewCommentHandler creates a new instance of CommentHandler
func NewCommentHandler(commentService service.CommentService, logger *zap.Logger) *CommentHandler {
	return &CommentHandler{commentService: commentService, logger: logger}
}

// CreateComment godoc
// @Summary      Create a comment or reply on a game
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        gameId path int true "IGDB game ID"
// @Param        request body dto.CreateCommentRequest true "Comment payload"
// @Success      201 {object} response.Envelope{data=dto.CommentResponse}
// @Failure      400 {object} response.Envelope
// @Failure      404 {object} response.Envelope
// @Router       /games/{gameId}/comments [post]
func (h *CommentHandler) CreateComment(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Authentication required")
		return
	}
	gameID, err := strconv.Atoi(c.Param("gameId"))
	if err != nil || gameID < 1 {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid game ID")
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
		return
	}
	// Path wins over any body value
	req.IgdbGameID = gameID

	result, err := h.commentService.CreateComment(c.Request.Context(), userID, gameID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusCreated, result)
}

// GetCommentsByGame godoc
// @Summary      List a game's comments
// @Tags         comments
// @Produce      json
// @Param        gameId path int true "IGDB game ID"
// @Param        page query int false "Page" default(1)
// @Param        limit query int false "Page size" default(20)
// @Success      200 {object} response.Envelope{data=dto.CommentListResponse}
// @Router       /games/{gameId}/comments [get]
func (h *CommentHandler) GetCommentsByGame(c *gin.Context) {
	gameID, err := strconv.Atoi(c.Param("gameId"))
	if err != nil || gameID < 1 {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid game ID")
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	result, err := h.commentService.GetCommentsByGame(c.Request.Context(), gameID, page, limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, result)
}

// GetCommentsCount godoc
// @Summary      Count a game's comments
// @Tags         comments
// @Produce      json
// @Param        gameId path int true "IGDB game ID"
// @Success      200 {object} response.Envelope
// @Router       /games/{gameId}/comments/count [get]
func (h *CommentHandler) GetCommentsCount(c *gin.Context) {
	gameID, err := strconv.Atoi(c.Param("gameId"))
	if err != nil || gameID < 1 {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid game ID")
		return
	}

	count, err := h.commentService.GetCommentsCount(c.Request.Context(), gameID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, gin.H{"count": count})
}

// GetUserComments godoc
// @Summary      List the caller's comments
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "Page" default(1)
// @Param        limit query int false "Page size" default(20)
// @Success      200 {object} response.Envelope{data=dto.CommentListResponse}
// @Router       /user/comments [get]
func (h *CommentHandler) GetUserComments(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Authentication required")
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	result, err := h.commentService.GetUserComments(c.Request.Context(), userID, page, limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, result)
}

// UpdateComment godoc
// @Summary      Edit a comment
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        commentId path string true "Comment ID"
// @Param        request body dto.UpdateCommentRequest true "New content"
// @Success      200 {object} response.Envelope{data=dto.CommentResponse}
// @Failure      403 {object} response.Envelope
// @Failure      404 {object} response.Envelope
// @Router       /comments/{commentId} [put]
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	userID, commentID, ok := h.authedCommentID(c)
	if !ok {
		return
	}

	var req dto.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
		return
	}

	result, err := h.commentService.UpdateComment(c.Request.Context(), commentID, userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, result)
}

// DeleteComment godoc
// @Summary      Delete a comment
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        commentId path string true "Comment ID"
// @Success      204 "No Content"
// @Failure      403 {object} response.Envelope
// @Failure      404 {object} response.Envelope
// @Router       /comments/{commentId} [delete]
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	userID, commentID, ok := h.authedCommentID(c)
	if !ok {
		return
	}

	if err := h.commentService.DeleteComment(c.Request.Context(), commentID, userID); err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendNoContent(c)
}

// VoteComment godoc
// @Summary      Vote on a comment
// @Description  Three-way toggle: a repeated vote removes it, the opposite vote flips it
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        commentId path string true "Comment ID"
// @Param        request body dto.VoteRequest true "Vote"
// @Success      200 {object} response.Envelope{data=dto.VoteResponse}
// @Failure      404 {object} response.Envelope
// @Router       /comments/{commentId}/vote [post]
func (h *CommentHandler) VoteComment(c *gin.Context) {
	userID, commentID, ok := h.authedCommentID(c)
	if !ok {
		return
	}

	var req dto.VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
		return
	}

	result, err := h.commentService.VoteComment(c.Request.Context(), commentID, userID, domain.VoteType(req.VoteType))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, result)
}

// RemoveVote godoc
// @Summary      Remove the caller's vote from a comment
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        commentId path string true "Comment ID"
// @Success      200 {object} response.Envelope{data=dto.VoteResponse}
// @Failure      404 {object} response.Envelope
// @Router       /comments/{commentId}/vote [delete]
func (h *CommentHandler) RemoveVote(c *gin.Context) {
	userID, commentID, ok := h.authedCommentID(c)
	if !ok {
		return
	}

	result, err := h.commentService.RemoveVote(c.Request.Context(), commentID, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, result)
}

// AddReaction godoc
// @Summary      Toggle a reaction on a comment
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        commentId path string true "Comment ID"
// @Param        request body dto.ReactionRequest true "Reaction"
// @Success      200 {object} response.Envelope{data=dto.ReactionResponse}
// @Failure      404 {object} response.Envelope
// @Router       /comments/{commentId}/reactions [post]
func (h *CommentHandler) AddReaction(c *gin.Context) {
	userID, commentID, ok := h.authedCommentID(c)
	if !ok {
		return
	}

	var req dto.ReactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
		return
	}

	result, err := h.commentService.AddReaction(c.Request.Context(), commentID, userID, domain.ReactionType(req.ReactionType))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, result)
}

// GetCommentReactions godoc
// @Summary      List a comment's reaction totals
// @Description  Authenticated callers also see which reactions are their own
// @Tags         comments
// @Produce      json
// @Param        commentId path string true "Comment ID"
// @Success      200 {object} response.Envelope{data=[]dto.ReactionCountResponse}
// @Failure      404 {object} response.Envelope
// @Router       /comments/{commentId}/reactions [get]
func (h *CommentHandler) GetCommentReactions(c *gin.Context) {
	commentID, err := uuid.Parse(c.Param("commentId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid comment ID")
		return
	}

	var userID *uuid.UUID
	if id, ok := middleware.CurrentUserID(c); ok {
		userID = &id
	}

	result, err := h.commentService.GetCommentReactions(c.Request.Context(), commentID, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, result)
}

// GetReplies godoc
// @Summary      List a comment's replies
// @Tags         comments
// @Produce      json
// @Param        commentId path string true "Comment ID"
// @Success      200 {object} response.Envelope{data=[]dto.CommentResponse}
// @Failure      404 {object} response.Envelope
// @Router       /comments/{commentId}/replies [get]
func (h *CommentHandler) GetReplies(c *gin.Context) {
	commentID, err := uuid.Parse(c.Param("commentId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid comment ID")
		return
	}

	result, err := h.commentService.GetReplies(c.Request.Context(), commentID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, result)
}

// authedCommentID extracts the authenticated user and the commentId path param
func (h *CommentHandler) authedCommentID(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Authentication required")
		return uuid.Nil, uuid.Nil, false
	}
	commentID, err := uuid.Parse(c.Param("commentId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid comment ID")
		return uuid.Nil, uuid.Nil, false
	}
	return userID, commentID, true
}
