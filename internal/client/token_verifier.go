package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"gaming-community-api/internal/config"
	"gaming-community-api/internal/metrics"
)

// IdentityClaims are the verified claims extracted from a provider ID token
type IdentityClaims struct {
	Subject string `json:"sub"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// TokenVerifier validates identity provider ID tokens
type TokenVerifier interface {
	// Verify checks the token with the provider and returns its claims.
	// A rejected token yields ErrInvalidToken.
	Verify(ctx context.Context, idToken string) (*IdentityClaims, error)
}

// tokenInfoVerifier verifies ID tokens against the provider's tokeninfo endpoint
type tokenInfoVerifier struct {
	endpoint   string
	httpClient *http.Client
	logger     *zap.Logger
	metrics    *metrics.Metrics
}

// NewTokenInfoVerifier creates a verifier backed by an OAuth tokeninfo endpoint
func NewTokenInfoVerifier(cfg config.IdentityConfig, logger *zap.Logger, m *metrics.Metrics) TokenVerifier {
	return &tokenInfoVerifier{
		endpoint: cfg.TokenInfoURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger:  logger,
		metrics: m,
	}
}

// Verify calls the tokeninfo endpoint and maps the response to claims
func (v *tokenInfoVerifier) Verify(ctx context.Context, idToken string) (*IdentityClaims, error) {
	params := url.Values{}
	params.Set("id_token", idToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create tokeninfo request: %w", err)
	}

	start := time.Now()
	resp, err := v.httpClient.Do(req)
	duration := time.Since(start)

	if err != nil {
		if v.metrics != nil {
			v.metrics.RecordExternalAPIRequest("identity", "tokeninfo", 0, duration, err)
		}
		return nil, fmt.Errorf("tokeninfo request failed: %w", err)
	}
	defer resp.Body.Close()

	if v.metrics != nil {
		v.metrics.RecordExternalAPIRequest("identity", "tokeninfo", resp.StatusCode, duration, nil)
	}

	// The provider answers 4xx for malformed or expired tokens
	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		v.logger.Debug("identity provider rejected token", zap.Int("status", resp.StatusCode))
		return nil, ErrInvalidToken
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tokeninfo returned status %d", resp.StatusCode)
	}

	var claims IdentityClaims
	if err := json.NewDecoder(resp.Body).Decode(&claims); err != nil {
		return nil, fmt.Errorf("failed to decode tokeninfo response: %w", err)
	}
	if claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}
