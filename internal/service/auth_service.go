package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"gaming-community-api/internal/client"
	"gaming-community-api/internal/config"
	"gaming-community-api/internal/domain"
	"gaming-community-api/internal/dto"
	"gaming-community-api/internal/metrics"
	"gaming-community-api/internal/repository"
	"gaming-community-api/internal/response"
)

// AccessClaims are the claims carried in first-party access tokens
type AccessClaims struct {
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
	ProviderUID string `json:"provider_uid"`
	jwt.RegisteredClaims
}

// AuthService bridges provider identities into local accounts and issues tokens
type AuthService interface {
	// Login verifies a provider ID token, upserts the local user and returns
	// a first-party access token
	Login(ctx context.Context, idToken string) (*dto.AuthResponse, error)
	// Me returns the current user's profile
	Me(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
	// ValidateToken parses and validates an access token, returning the user ID
	ValidateToken(tokenString string) (uuid.UUID, error)
}

// authServiceImpl is the default implementation of AuthService
type authServiceImpl struct {
	verifier client.TokenVerifier
	userRepo repository.UserRepository
	jwtCfg   config.JWTConfig
	logger   *zap.Logger
	metrics  *metrics.Metrics
}

// NewAuthService creates a new instance of AuthService
func NewAuthService(
	verifier client.TokenVerifier,
	userRepo repository.UserRepository,
	jwtCfg config.JWTConfig,
	logger *zap.Logger,
	m *metrics.Metrics,
) AuthService {
	return &authServiceImpl{
		verifier: verifier,
		userRepo: userRepo,
		jwtCfg:   jwtCfg,
		logger:   logger,
		metrics:  m,
	}
}

// Login verifies the provider token, upserts the user and issues a JWT
func (s *authServiceImpl) Login(ctx context.Context, idToken string) (*dto.AuthResponse, error) {
	claims, err := s.verifier.Verify(ctx, idToken)
	if err != nil {
		if errors.Is(err, client.ErrInvalidToken) {
			return nil, response.NewAppError(response.ErrCodeUnauthorized, "Invalid identity token", nil)
		}
		s.logger.Error("identity verification failed", zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to verify identity token", nil)
	}

	user, err := s.findOrCreateUser(ctx, claims)
	if err != nil {
		s.logger.Error("failed to upsert user", zap.String("provider_uid", claims.Subject), zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to resolve user account", nil)
	}

	token, err := s.issueToken(user)
	if err != nil {
		s.logger.Error("failed to sign access token", zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to issue access token", nil)
	}

	if s.metrics != nil {
		s.metrics.LoginsTotal.Inc()
	}
	s.logger.Info("user logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("provider_uid", user.ProviderUID))

	return &dto.AuthResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.jwtCfg.ExpiresIn.Seconds()),
		User:        dto.ToUserResponse(user),
	}, nil
}

// Me returns the profile of the authenticated user
func (s *authServiceImpl) Me(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "User not found", nil)
		}
		return nil, err
	}
	resp := dto.ToUserResponse(user)
	return &resp, nil
}

// findOrCreateUser resolves the local account for verified provider claims.
// Lookup order: provider UID, then email (accounts re-linked to a new provider
// identity), then create.
func (s *authServiceImpl) findOrCreateUser(ctx context.Context, claims *client.IdentityClaims) (*domain.User, error) {
	user, err := s.userRepo.FindByProviderUID(ctx, claims.Subject)
	if err == nil {
		return s.refreshProfile(ctx, user, claims)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if claims.Email != "" {
		user, err = s.userRepo.FindByEmail(ctx, claims.Email)
		if err == nil {
			user.ProviderUID = claims.Subject
			return s.refreshProfile(ctx, user, claims)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	user = &domain.User{
		ProviderUID: claims.Subject,
		Email:       claims.Email,
		DisplayName: claims.Name,
		PhotoURL:    claims.Picture,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info("created user", zap.String("user_id", user.ID.String()))
	return user, nil
}

// refreshProfile syncs mutable profile fields from the provider on login
func (s *authServiceImpl) refreshProfile(ctx context.Context, user *domain.User, claims *client.IdentityClaims) (*domain.User, error) {
	changed := user.ProviderUID != claims.Subject
	if claims.Name != "" && user.DisplayName != claims.Name {
		user.DisplayName = claims.Name
		changed = true
	}
	if claims.Picture != "" && user.PhotoURL != claims.Picture {
		user.PhotoURL = claims.Picture
		changed = true
	}
	if changed {
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, err
		}
	}
	return user, nil
}

// issueToken signs an HS256 access token for the user
func (s *authServiceImpl) issueToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := AccessClaims{
		UserID:      user.ID.String(),
		Email:       user.Email,
		ProviderUID: user.ProviderUID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtCfg.ExpiresIn)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtCfg.Secret))
}

// ValidateToken parses an access token and returns the authenticated user ID
func (s *authServiceImpl) ValidateToken(tokenString string) (uuid.UUID, error) {
	claims := &AccessClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.jwtCfg.Secret), nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, response.NewAppError(response.ErrCodeUnauthorized, "Invalid or expired token", nil)
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, response.NewAppError(response.ErrCodeUnauthorized, "Invalid token subject", nil)
	}
	return userID, nil
}
