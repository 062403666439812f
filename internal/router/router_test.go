package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gaming-community-api/internal/config"
	"gaming-community-api/internal/domain"
	"gaming-community-api/internal/dto"
	"gaming-community-api/internal/handler"
	"gaming-community-api/internal/metrics"
	"gaming-community-api/internal/response"
	"gaming-community-api/internal/service"
)

type stubAuthService struct {
	userID uuid.UUID
}

func (s *stubAuthService) Login(ctx context.Context, idToken string) (*dto.AuthResponse, error) {
	panic("not used")
}

func (s *stubAuthService) Me(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	panic("not used")
}

func (s *stubAuthService) ValidateToken(tokenString string) (uuid.UUID, error) {
	return s.userID, nil
}

// stubCommentService overrides only the methods a test exercises
type stubCommentService struct {
	service.CommentService
}

func (s *stubCommentService) VoteComment(ctx context.Context, commentID, userID uuid.UUID, voteType domain.VoteType) (*dto.VoteResponse, error) {
	return &dto.VoteResponse{Action: "liked"}, nil
}

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()

	logger := zap.NewNop()
	cfg := &config.Config{
		Server:   config.ServerConfig{Mode: gin.TestMode, BasePath: "/api/v1"},
		Throttle: config.ThrottleConfig{Window: time.Minute, Limit: 1000},
		CORS:     config.CORSConfig{AllowedOrigins: []string{"*"}},
	}

	return Setup(&Dependencies{
		Config:  cfg,
		Logger:  logger,
		Metrics: metrics.NewWithRegistry(prometheus.NewRegistry()),
		// Unreachable backend; the rate limiter fails open
		Redis:            redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"}),
		AuthService:      &stubAuthService{userID: uuid.New()},
		AuthHandler:      handler.NewAuthHandler(nil, logger),
		GameHandler:      handler.NewGameHandler(nil, logger),
		CommentHandler:   handler.NewCommentHandler(&stubCommentService{}, logger),
		LibraryHandler:   handler.NewLibraryHandler(nil, logger),
		AffiliateHandler: handler.NewAffiliateHandler(nil, logger),
	})
}

func postVote(engine *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/comments/"+uuid.NewString()+"/vote", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer some-token")
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestSetup_RejectsUnknownJSONFields(t *testing.T) {
	engine := newTestEngine(t)

	w := postVote(engine, `{"vote_type":"like","mystery_field":123}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), response.ErrCodeValidation)
}

func TestSetup_AcceptsWellFormedBody(t *testing.T) {
	engine := newTestEngine(t)

	w := postVote(engine, `{"vote_type":"like"}`)
	assert.Equal(t, http.StatusOK, w.Code)
}
