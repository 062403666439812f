package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"gaming-community-api/internal/domain"
	"gaming-community-api/internal/dto"
	"gaming-community-api/internal/response"
)

type mockAffiliateRepo struct {
	CreateFunc                func(ctx context.Context, link *domain.AffiliateLink) error
	FindActiveByGameIDFunc    func(ctx context.Context, gameID int) ([]*domain.AffiliateLink, error)
	FindByGameAndPlatformFunc func(ctx context.Context, gameID int, platform string) (*domain.AffiliateLink, error)
}

func (m *mockAffiliateRepo) Create(ctx context.Context, link *domain.AffiliateLink) error {
	return m.CreateFunc(ctx, link)
}

func (m *mockAffiliateRepo) FindActiveByGameID(ctx context.Context, gameID int) ([]*domain.AffiliateLink, error) {
	return m.FindActiveByGameIDFunc(ctx, gameID)
}

func (m *mockAffiliateRepo) FindByGameAndPlatform(ctx context.Context, gameID int, platform string) (*domain.AffiliateLink, error) {
	return m.FindByGameAndPlatformFunc(ctx, gameID, platform)
}

func TestCreateLink_DuplicatePlatform(t *testing.T) {
	repo := &mockAffiliateRepo{
		FindByGameAndPlatformFunc: func(ctx context.Context, gameID int, platform string) (*domain.AffiliateLink, error) {
			return &domain.AffiliateLink{IgdbGameID: gameID, Platform: platform}, nil
		},
	}
	svc := NewAffiliateService(repo, zap.NewNop())

	_, err := svc.CreateLink(context.Background(), &dto.CreateAffiliateLinkRequest{
		IgdbGameID: 100, Platform: "steam", URL: "https://example.com/game",
	})
	assertAppErrorCode(t, err, response.ErrCodeAlreadyExists)
}

func TestCreateLink_ConcurrentDuplicateMapsToConflict(t *testing.T) {
	repo := &mockAffiliateRepo{
		FindByGameAndPlatformFunc: func(ctx context.Context, gameID int, platform string) (*domain.AffiliateLink, error) {
			return nil, gorm.ErrRecordNotFound
		},
		CreateFunc: func(ctx context.Context, link *domain.AffiliateLink) error {
			return gorm.ErrDuplicatedKey
		},
	}
	svc := NewAffiliateService(repo, zap.NewNop())

	_, err := svc.CreateLink(context.Background(), &dto.CreateAffiliateLinkRequest{
		IgdbGameID: 100, Platform: "steam", URL: "https://example.com/game",
	})
	assertAppErrorCode(t, err, response.ErrCodeAlreadyExists)
}

func TestCreateLink_NewLinkActivatedByDefault(t *testing.T) {
	var created *domain.AffiliateLink
	repo := &mockAffiliateRepo{
		FindByGameAndPlatformFunc: func(ctx context.Context, gameID int, platform string) (*domain.AffiliateLink, error) {
			return nil, gorm.ErrRecordNotFound
		},
		CreateFunc: func(ctx context.Context, link *domain.AffiliateLink) error {
			created = link
			return nil
		},
	}
	svc := NewAffiliateService(repo, zap.NewNop())

	resp, err := svc.CreateLink(context.Background(), &dto.CreateAffiliateLinkRequest{
		IgdbGameID: 100, Platform: "steam", URL: "https://example.com/game",
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.True(t, created.IsActive)
	assert.Equal(t, "steam", resp.Platform)
}
