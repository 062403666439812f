package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"gaming-community-api/internal/domain"
	"gaming-community-api/internal/dto"
	"gaming-community-api/internal/repository"
	"gaming-community-api/internal/response"
)

// AffiliateService manages per-game store purchase links
type AffiliateService interface {
	GetLinksForGame(ctx context.Context, gameID int) ([]dto.AffiliateLinkResponse, error)
	CreateLink(ctx context.Context, req *dto.CreateAffiliateLinkRequest) (*dto.AffiliateLinkResponse, error)
}

// affiliateServiceImpl is the default implementation of AffiliateService
type affiliateServiceImpl struct {
	linkRepo repository.AffiliateLinkRepository
	logger   *zap.Logger
}

// NewAffiliateService creates a new instance of AffiliateService
func NewAffiliateService(linkRepo repository.AffiliateLinkRepository, logger *zap.Logger) AffiliateService {
	return &affiliateServiceImpl{linkRepo: linkRepo, logger: logger}
}

// GetLinksForGame returns a game's active store links
func (s *affiliateServiceImpl) GetLinksForGame(ctx context.Context, gameID int) ([]dto.AffiliateLinkResponse, error) {
	links, err := s.linkRepo.FindActiveByGameID(ctx, gameID)
	if err != nil {
		return nil, err
	}
	return dto.ToAffiliateLinkResponses(links), nil
}

// CreateLink registers a store link; one link per (game, platform)
func (s *affiliateServiceImpl) CreateLink(ctx context.Context, req *dto.CreateAffiliateLinkRequest) (*dto.AffiliateLinkResponse, error) {
	_, err := s.linkRepo.FindByGameAndPlatform(ctx, req.IgdbGameID, req.Platform)
	if err == nil {
		return nil, response.NewAppError(response.ErrCodeAlreadyExists, "Affiliate link already exists for this platform", nil)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	link := &domain.AffiliateLink{
		IgdbGameID: req.IgdbGameID,
		Platform:   req.Platform,
		URL:        req.URL,
		IsActive:   true,
	}
	if len(req.Metadata) > 0 {
		link.Metadata = datatypes.JSON(req.Metadata)
	}

	if err := s.linkRepo.Create(ctx, link); err != nil {
		// Unique (game, platform) index catches concurrent creates
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, response.NewAppError(response.ErrCodeAlreadyExists, "Affiliate link already exists for this platform", nil)
		}
		return nil, err
	}

	s.logger.Info("affiliate link created",
		zap.Int("game_id", link.IgdbGameID),
		zap.String("platform", link.Platform))

	resp := dto.ToAffiliateLinkResponse(link)
	return &resp, nil
}
