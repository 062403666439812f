package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gaming-community-api/internal/dto"
	"gaming-community-api/internal/response"
)

type stubAuthService struct {
	userID uuid.UUID
	err    error
}

func (s *stubAuthService) Login(ctx context.Context, idToken string) (*dto.AuthResponse, error) {
	panic("not used")
}

func (s *stubAuthService) Me(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	panic("not used")
}

func (s *stubAuthService) ValidateToken(tokenString string) (uuid.UUID, error) {
	if s.err != nil {
		return uuid.Nil, s.err
	}
	return s.userID, nil
}

func setupAuthRouter(auth gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", auth, func(c *gin.Context) {
		userID, ok := CurrentUserID(c)
		if !ok {
			c.String(http.StatusOK, "anonymous")
			return
		}
		c.String(http.StatusOK, userID.String())
	})
	return r
}

func TestAuth_ValidBearerToken(t *testing.T) {
	userID := uuid.New()
	r := setupAuthRouter(Auth(&stubAuthService{userID: userID}))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, userID.String(), w.Body.String())
}

func TestAuth_MissingHeader(t *testing.T) {
	r := setupAuthRouter(Auth(&stubAuthService{userID: uuid.New()}))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), response.ErrCodeUnauthorized)
}

func TestAuth_MalformedHeader(t *testing.T) {
	r := setupAuthRouter(Auth(&stubAuthService{userID: uuid.New()}))

	for _, header := range []string{"Bearer", "Basic abc", "Bearer "} {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", header)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
	}
}

func TestAuth_RejectedToken(t *testing.T) {
	r := setupAuthRouter(Auth(&stubAuthService{
		err: response.NewAppError(response.ErrCodeUnauthorized, "Invalid or expired token", nil),
	}))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer expired")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOptionalAuth_AnonymousPassesThrough(t *testing.T) {
	r := setupAuthRouter(OptionalAuth(&stubAuthService{userID: uuid.New()}))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "anonymous", w.Body.String())
}

func TestOptionalAuth_ValidTokenIdentifiesUser(t *testing.T) {
	userID := uuid.New()
	r := setupAuthRouter(OptionalAuth(&stubAuthService{userID: userID}))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, userID.String(), w.Body.String())
}
