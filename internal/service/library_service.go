package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"gaming-community-api/internal/client"
	"gaming-community-api/internal/domain"
	"gaming-community-api/internal/dto"
	"gaming-community-api/internal/metrics"
	"gaming-community-api/internal/repository"
	"gaming-community-api/internal/response"
)

// LibraryService tracks each user's saved and played games
type LibraryService interface {
	// ToggleSave flips the saved state, creating the library row on first save
	ToggleSave(ctx context.Context, userID uuid.UUID, gameID int) (*dto.ToggleResponse, error)
	// TogglePlayed flips the played state of a game already in the library
	TogglePlayed(ctx context.Context, userID uuid.UUID, gameID int) (*dto.ToggleResponse, error)
	UpdateGameStatus(ctx context.Context, userID uuid.UUID, gameID int, req *dto.UpdateLibraryEntryRequest) (*dto.LibraryEntryResponse, error)
	RemoveGame(ctx context.Context, userID uuid.UUID, gameID int) error
	// GetLibrary returns saved games newest first, enriched with catalog data
	GetLibrary(ctx context.Context, userID uuid.UUID) (*dto.LibraryResponse, error)
	GetGameStatus(ctx context.Context, userID uuid.UUID, gameID int) (*dto.GameStatusResponse, error)
	GetStats(ctx context.Context, userID uuid.UUID) (*dto.LibraryStatsResponse, error)
}

// libraryServiceImpl is the default implementation of LibraryService
type libraryServiceImpl struct {
	userGameRepo repository.UserGameRepository
	games        GameService
	logger       *zap.Logger
	metrics      *metrics.Metrics
}

// NewLibraryService creates a new instance of LibraryService
func NewLibraryService(
	userGameRepo repository.UserGameRepository,
	games GameService,
	logger *zap.Logger,
	m *metrics.Metrics,
) LibraryService {
	return &libraryServiceImpl{
		userGameRepo: userGameRepo,
		games:        games,
		logger:       logger,
		metrics:      m,
	}
}

// ToggleSave saves the game if absent or unsaved, unsaves it otherwise
func (s *libraryServiceImpl) ToggleSave(ctx context.Context, userID uuid.UUID, gameID int) (*dto.ToggleResponse, error) {
	entry, err := s.userGameRepo.FindByUserAndGame(ctx, userID, gameID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		now := time.Now()
		entry = &domain.UserGame{
			UserID:     userID,
			IgdbGameID: gameID,
			IsSaved:    true,
			SavedAt:    &now,
		}
		if err := s.userGameRepo.Create(ctx, entry); err != nil {
			return nil, err
		}
		s.recordToggle("saved")
		s.logger.Info("game saved to library",
			zap.String("user_id", userID.String()), zap.Int("game_id", gameID))
		return &dto.ToggleResponse{IgdbGameID: gameID, Active: true}, nil
	}

	if entry.IsSaved {
		entry.IsSaved = false
		entry.SavedAt = nil
		if err := s.userGameRepo.Update(ctx, entry); err != nil {
			return nil, err
		}
		s.recordToggle("unsaved")
		s.logger.Info("game unsaved from library",
			zap.String("user_id", userID.String()), zap.Int("game_id", gameID))
		return &dto.ToggleResponse{IgdbGameID: gameID, Active: false}, nil
	}

	now := time.Now()
	entry.IsSaved = true
	entry.SavedAt = &now
	if err := s.userGameRepo.Update(ctx, entry); err != nil {
		return nil, err
	}
	s.recordToggle("saved")
	s.logger.Info("game restored to library",
		zap.String("user_id", userID.String()), zap.Int("game_id", gameID))
	return &dto.ToggleResponse{IgdbGameID: gameID, Active: true}, nil
}

// TogglePlayed flips the played flag; the game must already be in the library
func (s *libraryServiceImpl) TogglePlayed(ctx context.Context, userID uuid.UUID, gameID int) (*dto.ToggleResponse, error) {
	entry, err := s.userGameRepo.FindByUserAndGame(ctx, userID, gameID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Game not found in library", nil)
		}
		return nil, err
	}

	entry.IsPlayed = !entry.IsPlayed
	if entry.IsPlayed {
		now := time.Now()
		entry.PlayedAt = &now
		s.recordToggle("played")
	} else {
		entry.PlayedAt = nil
		s.recordToggle("unplayed")
	}
	if err := s.userGameRepo.Update(ctx, entry); err != nil {
		return nil, err
	}

	s.logger.Info("played state toggled",
		zap.String("user_id", userID.String()),
		zap.Int("game_id", gameID),
		zap.Bool("is_played", entry.IsPlayed))

	return &dto.ToggleResponse{IgdbGameID: gameID, Active: entry.IsPlayed}, nil
}

// UpdateGameStatus applies a partial update to an existing library entry
func (s *libraryServiceImpl) UpdateGameStatus(ctx context.Context, userID uuid.UUID, gameID int, req *dto.UpdateLibraryEntryRequest) (*dto.LibraryEntryResponse, error) {
	entry, err := s.userGameRepo.FindByUserAndGame(ctx, userID, gameID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Game not found in library", nil)
		}
		return nil, err
	}

	if req.IsSaved != nil {
		entry.IsSaved = *req.IsSaved
		if *req.IsSaved {
			if entry.SavedAt == nil {
				now := time.Now()
				entry.SavedAt = &now
			}
		} else {
			entry.SavedAt = nil
		}
	}
	if req.IsPlayed != nil {
		entry.IsPlayed = *req.IsPlayed
		if *req.IsPlayed && entry.PlayedAt == nil {
			now := time.Now()
			entry.PlayedAt = &now
		}
	}
	if req.PlayTimeHours != nil {
		entry.PlayTimeHours = req.PlayTimeHours
	}

	if err := s.userGameRepo.Update(ctx, entry); err != nil {
		return nil, err
	}
	resp := dto.ToLibraryEntryResponse(entry, nil)
	return &resp, nil
}

// RemoveGame hard-deletes a library entry
func (s *libraryServiceImpl) RemoveGame(ctx context.Context, userID uuid.UUID, gameID int) error {
	affected, err := s.userGameRepo.Delete(ctx, userID, gameID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return response.NewAppError(response.ErrCodeNotFound, "Game not found in library", nil)
	}
	s.logger.Info("game removed from library",
		zap.String("user_id", userID.String()), zap.Int("game_id", gameID))
	return nil
}

// GetLibrary lists saved games newest first, fetching catalog details for each
// entry concurrently through the cached game service
func (s *libraryServiceImpl) GetLibrary(ctx context.Context, userID uuid.UUID) (*dto.LibraryResponse, error) {
	entries, err := s.userGameRepo.FindSavedByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	details := make([]*client.Game, len(entries))
	var wg sync.WaitGroup
	for i, entry := range entries {
		wg.Add(1)
		go func(i, gameID int) {
			defer wg.Done()
			detail, err := s.games.GetGameByID(ctx, gameID, nil)
			if err != nil {
				// Entries stay listed without catalog data when IGDB is down
				s.logger.Warn("failed to enrich library entry",
					zap.Int("game_id", gameID), zap.Error(err))
				return
			}
			details[i] = detail.Game
		}(i, entry.IgdbGameID)
	}
	wg.Wait()

	games := make([]dto.LibraryEntryResponse, 0, len(entries))
	playedCount := 0
	for i, entry := range entries {
		if entry.IsPlayed {
			playedCount++
		}
		games = append(games, dto.ToLibraryEntryResponse(entry, details[i]))
	}
	// Only saved entries are listed, so the saved count is the total
	return &dto.LibraryResponse{
		Games:       games,
		Total:       len(games),
		SavedCount:  len(games),
		PlayedCount: playedCount,
	}, nil
}

// GetGameStatus reports whether a game is in the library and its entry fields
func (s *libraryServiceImpl) GetGameStatus(ctx context.Context, userID uuid.UUID, gameID int) (*dto.GameStatusResponse, error) {
	entry, err := s.userGameRepo.FindByUserAndGame(ctx, userID, gameID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dto.GameStatusResponse{IgdbGameID: gameID, InLibrary: false}, nil
		}
		return nil, err
	}

	resp := dto.ToLibraryEntryResponse(entry, nil)
	return &dto.GameStatusResponse{IgdbGameID: gameID, InLibrary: true, Entry: &resp}, nil
}

// GetStats summarizes the user's library
func (s *libraryServiceImpl) GetStats(ctx context.Context, userID uuid.UUID) (*dto.LibraryStatsResponse, error) {
	entries, err := s.userGameRepo.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := &dto.LibraryStatsResponse{}
	for _, entry := range entries {
		if entry.IsSaved {
			stats.TotalSaved++
		}
		if entry.IsPlayed {
			stats.TotalPlayed++
		}
		if entry.PlayTimeHours != nil {
			stats.TotalPlayTimeHours += *entry.PlayTimeHours
		}
	}
	return stats, nil
}

func (s *libraryServiceImpl) recordToggle(action string) {
	if s.metrics != nil {
		s.metrics.LibraryTogglesTotal.WithLabelValues(action).Inc()
	}
}
