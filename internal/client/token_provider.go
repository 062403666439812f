package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"gaming-community-api/internal/config"
)

const tokenCacheKey = "igdb_access_token"

// ErrCredentialsMissing indicates the Twitch client credentials are not configured
var ErrCredentialsMissing = errors.New("igdb credentials not configured, set TWITCH_CLIENT_ID and TWITCH_CLIENT_SECRET")

// TokenProvider supplies OAuth access tokens for the IGDB API
type TokenProvider interface {
	// AccessToken returns the cached token or fetches a fresh one
	AccessToken(ctx context.Context) (string, error)
	// Refresh discards any cached token and fetches a fresh one
	Refresh(ctx context.Context) (string, error)
}

type twitchAuthResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
	TokenType   string `json:"token_type"`
}

// twitchTokenProvider fetches client-credentials tokens from Twitch and
// caches them in redis until the configured TTL expires
type twitchTokenProvider struct {
	authURL      string
	clientID     string
	clientSecret string
	cacheTTL     time.Duration
	redis        *redis.Client
	httpClient   *http.Client
	logger       *zap.Logger
}

// NewTwitchTokenProvider creates a redis-backed Twitch token provider
func NewTwitchTokenProvider(cfg config.IGDBConfig, redisClient *redis.Client, logger *zap.Logger) TokenProvider {
	return &twitchTokenProvider{
		authURL:      cfg.AuthURL,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		cacheTTL:     cfg.TokenCacheTTL,
		redis:        redisClient,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

// AccessToken returns the cached token, fetching a new one on cache miss
func (p *twitchTokenProvider) AccessToken(ctx context.Context) (string, error) {
	token, err := p.redis.Get(ctx, tokenCacheKey).Result()
	if err == nil && token != "" {
		return token, nil
	}
	if err != nil && !errors.Is(err, redis.Nil) {
		p.logger.Warn("failed to read cached IGDB token", zap.Error(err))
	}

	return p.fetchAndCache(ctx)
}

// Refresh drops the cached token and fetches a new one
func (p *twitchTokenProvider) Refresh(ctx context.Context) (string, error) {
	if err := p.redis.Del(ctx, tokenCacheKey).Err(); err != nil {
		p.logger.Warn("failed to drop cached IGDB token", zap.Error(err))
	}
	return p.fetchAndCache(ctx)
}

func (p *twitchTokenProvider) fetchAndCache(ctx context.Context) (string, error) {
	if p.clientID == "" || p.clientSecret == "" {
		return "", ErrCredentialsMissing
	}

	p.logger.Info("fetching new IGDB access token from Twitch")

	params := url.Values{}
	params.Set("client_id", p.clientID)
	params.Set("client_secret", p.clientSecret)
	params.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.authURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create token request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		p.logger.Error("failed to obtain IGDB access token",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body))
		return "", fmt.Errorf("twitch auth returned status %d", resp.StatusCode)
	}

	var auth twitchAuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&auth); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}
	if auth.AccessToken == "" {
		return "", errors.New("twitch auth returned empty access token")
	}

	// Cache for the configured TTL, but never past the token's own expiry
	ttl := p.cacheTTL
	if auth.ExpiresIn > 0 {
		if expiry := time.Duration(auth.ExpiresIn) * time.Second; expiry < ttl {
			ttl = expiry
		}
	}
	if err := p.redis.Set(ctx, tokenCacheKey, auth.AccessToken, ttl).Err(); err != nil {
		p.logger.Warn("failed to cache IGDB token", zap.Error(err))
	}

	p.logger.Info("obtained IGDB access token",
		zap.Int64("expires_in_seconds", auth.ExpiresIn))

	return auth.AccessToken, nil
}
