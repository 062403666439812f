package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"gaming-community-api/internal/cache"
	"gaming-community-api/internal/client"
	"gaming-community-api/internal/config"
	"gaming-community-api/internal/dto"
	"gaming-community-api/internal/metrics"
	"gaming-community-api/internal/repository"
	"gaming-community-api/internal/response"
)

// GameService serves the IGDB catalog through a read-through cache
type GameService interface {
	SearchGames(ctx context.Context, query string, limit int) (*dto.GameListResponse, error)
	// GetGameByID returns full details. When userID is set the response carries
	// the caller's library flags.
	GetGameByID(ctx context.Context, gameID int, userID *uuid.UUID) (*dto.GameDetailResponse, error)
	GetGamesByCategory(ctx context.Context, category string, limit, offset int) (*dto.GameListResponse, error)
	GetTrendingGames(ctx context.Context, limit int) (*dto.GameListResponse, error)
	GetPopularGames(ctx context.Context, limit int) (*dto.GameListResponse, error)
}

// gameServiceImpl is the default implementation of GameService
type gameServiceImpl struct {
	igdb         client.IGDBClient
	store        cache.Store
	userGameRepo repository.UserGameRepository
	ttl          config.CacheConfig
	logger       *zap.Logger
	metrics      *metrics.Metrics
}

// NewGameService creates a new instance of GameService
func NewGameService(
	igdb client.IGDBClient,
	store cache.Store,
	userGameRepo repository.UserGameRepository,
	ttl config.CacheConfig,
	logger *zap.Logger,
	m *metrics.Metrics,
) GameService {
	return &gameServiceImpl{
		igdb:         igdb,
		store:        store,
		userGameRepo: userGameRepo,
		ttl:          ttl,
		logger:       logger,
		metrics:      m,
	}
}

// SearchGames searches the catalog, caching results per (query, limit)
func (s *gameServiceImpl) SearchGames(ctx context.Context, query string, limit int) (*dto.GameListResponse, error) {
	if limit < 1 || limit > 50 {
		limit = 10
	}

	key := cache.SearchKey(query, limit)
	var games []client.Game
	if hit, _ := s.store.Get(ctx, key, &games); hit {
		s.recordCache("search", true)
		resp := dto.ToGameListResponse(games)
		return &resp, nil
	}
	s.recordCache("search", false)

	games, err := s.igdb.SearchGames(ctx, query, limit)
	if err != nil {
		return nil, s.catalogError("search games", err)
	}
	_ = s.store.Set(ctx, key, games, s.ttl.SearchResults)

	resp := dto.ToGameListResponse(games)
	return &resp, nil
}

// GetGameByID fetches one game, merging the caller's library state when known
func (s *gameServiceImpl) GetGameByID(ctx context.Context, gameID int, userID *uuid.UUID) (*dto.GameDetailResponse, error) {
	key := cache.GameKey(gameID)
	var game client.Game
	hit, _ := s.store.Get(ctx, key, &game)
	if hit {
		s.recordCache("game_detail", true)
	} else {
		s.recordCache("game_detail", false)

		fetched, err := s.igdb.GetGameByID(ctx, gameID)
		if err != nil {
			if errors.Is(err, client.ErrGameNotFound) {
				return nil, response.NewAppError(response.ErrCodeNotFound, "Game not found", nil)
			}
			return nil, s.catalogError("get game", err)
		}
		game = *fetched
		_ = s.store.Set(ctx, key, game, s.ttl.GameDetails)
	}

	detail := &dto.GameDetailResponse{Game: &game}
	if userID != nil {
		entry, err := s.userGameRepo.FindByUserAndGame(ctx, *userID, gameID)
		if err == nil {
			detail.IsSaved = entry.IsSaved
			detail.IsPlayed = entry.IsPlayed
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	return detail, nil
}

// GetGamesByCategory lists a category page, cached per (category, limit, offset)
func (s *gameServiceImpl) GetGamesByCategory(ctx context.Context, category string, limit, offset int) (*dto.GameListResponse, error) {
	if limit < 1 || limit > 50 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	key := cache.CategoryKey(category, limit, offset)
	var games []client.Game
	if hit, _ := s.store.Get(ctx, key, &games); hit {
		s.recordCache("category", true)
		resp := dto.ToGameListResponse(games)
		return &resp, nil
	}
	s.recordCache("category", false)

	games, err := s.igdb.GetGamesByCategory(ctx, category, limit, offset)
	if err != nil {
		return nil, s.catalogError("get category games", err)
	}
	_ = s.store.Set(ctx, key, games, s.ttl.TrendingGames)

	resp := dto.ToGameListResponse(games)
	return &resp, nil
}

// GetTrendingGames lists recent well-rated releases, cached per limit
func (s *gameServiceImpl) GetTrendingGames(ctx context.Context, limit int) (*dto.GameListResponse, error) {
	if limit < 1 || limit > 50 {
		limit = 20
	}

	key := cache.TrendingKey(limit)
	var games []client.Game
	if hit, _ := s.store.Get(ctx, key, &games); hit {
		s.recordCache("trending", true)
		resp := dto.ToGameListResponse(games)
		return &resp, nil
	}
	s.recordCache("trending", false)

	games, err := s.igdb.GetTrendingGames(ctx, limit)
	if err != nil {
		return nil, s.catalogError("get trending games", err)
	}
	_ = s.store.Set(ctx, key, games, s.ttl.TrendingGames)

	resp := dto.ToGameListResponse(games)
	return &resp, nil
}

// GetPopularGames lists all-time popular games, cached per limit
func (s *gameServiceImpl) GetPopularGames(ctx context.Context, limit int) (*dto.GameListResponse, error) {
	if limit < 1 || limit > 50 {
		limit = 20
	}

	key := cache.PopularKey(limit)
	var games []client.Game
	if hit, _ := s.store.Get(ctx, key, &games); hit {
		s.recordCache("popular", true)
		resp := dto.ToGameListResponse(games)
		return &resp, nil
	}
	s.recordCache("popular", false)

	games, err := s.igdb.GetPopularGames(ctx, limit)
	if err != nil {
		return nil, s.catalogError("get popular games", err)
	}
	_ = s.store.Set(ctx, key, games, s.ttl.TrendingGames)

	resp := dto.ToGameListResponse(games)
	return &resp, nil
}

func (s *gameServiceImpl) recordCache(endpoint string, hit bool) {
	if s.metrics == nil {
		return
	}
	if hit {
		s.metrics.RecordCacheHit(endpoint)
	} else {
		s.metrics.RecordCacheMiss(endpoint)
	}
}

func (s *gameServiceImpl) catalogError(op string, err error) error {
	s.logger.Error("catalog request failed", zap.String("operation", op), zap.Error(err))
	return response.NewAppError(response.ErrCodeInternal, "Game catalog is temporarily unavailable", nil)
}
