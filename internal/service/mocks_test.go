package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"

	"gaming-community-api/internal/client"
	"gaming-community-api/internal/domain"
	"gaming-community-api/internal/repository"
)

type mockUserRepo struct {
	CreateFunc            func(ctx context.Context, user *domain.User) error
	FindByIDFunc          func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	FindByProviderUIDFunc func(ctx context.Context, providerUID string) (*domain.User, error)
	FindByEmailFunc       func(ctx context.Context, email string) (*domain.User, error)
	UpdateFunc            func(ctx context.Context, user *domain.User) error
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.CreateFunc(ctx, user)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockUserRepo) FindByProviderUID(ctx context.Context, providerUID string) (*domain.User, error) {
	return m.FindByProviderUIDFunc(ctx, providerUID)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.FindByEmailFunc(ctx, email)
}

func (m *mockUserRepo) Update(ctx context.Context, user *domain.User) error {
	return m.UpdateFunc(ctx, user)
}

type mockCommentRepo struct {
	CreateFunc                func(ctx context.Context, comment *domain.Comment) error
	FindByIDFunc              func(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	FindByGameIDFunc          func(ctx context.Context, gameID, page, limit int) ([]*domain.Comment, int64, error)
	FindByUserIDFunc          func(ctx context.Context, userID uuid.UUID, page, limit int) ([]*domain.Comment, int64, error)
	FindRepliesFunc           func(ctx context.Context, parentID uuid.UUID) ([]*domain.Comment, error)
	CountByGameIDFunc         func(ctx context.Context, gameID int) (int64, error)
	UpdateFunc                func(ctx context.Context, comment *domain.Comment) error
	SoftDeleteFunc            func(ctx context.Context, id uuid.UUID) error
	IncrementRepliesCountFunc func(ctx context.Context, id uuid.UUID) error
}

func (m *mockCommentRepo) Create(ctx context.Context, comment *domain.Comment) error {
	return m.CreateFunc(ctx, comment)
}

func (m *mockCommentRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockCommentRepo) FindByGameID(ctx context.Context, gameID, page, limit int) ([]*domain.Comment, int64, error) {
	return m.FindByGameIDFunc(ctx, gameID, page, limit)
}

func (m *mockCommentRepo) FindByUserID(ctx context.Context, userID uuid.UUID, page, limit int) ([]*domain.Comment, int64, error) {
	return m.FindByUserIDFunc(ctx, userID, page, limit)
}

func (m *mockCommentRepo) FindReplies(ctx context.Context, parentID uuid.UUID) ([]*domain.Comment, error) {
	return m.FindRepliesFunc(ctx, parentID)
}

func (m *mockCommentRepo) CountByGameID(ctx context.Context, gameID int) (int64, error) {
	return m.CountByGameIDFunc(ctx, gameID)
}

func (m *mockCommentRepo) Update(ctx context.Context, comment *domain.Comment) error {
	return m.UpdateFunc(ctx, comment)
}

func (m *mockCommentRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return m.SoftDeleteFunc(ctx, id)
}

func (m *mockCommentRepo) IncrementRepliesCount(ctx context.Context, id uuid.UUID) error {
	return m.IncrementRepliesCountFunc(ctx, id)
}

type mockVoteRepo struct {
	ApplyVoteFunc func(ctx context.Context, commentID, userID uuid.UUID, voteType domain.VoteType) (*repository.VoteResult, error)
	FindVoteFunc  func(ctx context.Context, commentID, userID uuid.UUID) (*domain.CommentVote, error)
}

func (m *mockVoteRepo) ApplyVote(ctx context.Context, commentID, userID uuid.UUID, voteType domain.VoteType) (*repository.VoteResult, error) {
	return m.ApplyVoteFunc(ctx, commentID, userID, voteType)
}

func (m *mockVoteRepo) FindVote(ctx context.Context, commentID, userID uuid.UUID) (*domain.CommentVote, error) {
	return m.FindVoteFunc(ctx, commentID, userID)
}

type mockReactionRepo struct {
	ToggleFunc            func(ctx context.Context, commentID, userID uuid.UUID, reactionType domain.ReactionType) (bool, error)
	CountByTypeFunc       func(ctx context.Context, commentID uuid.UUID, reactionType domain.ReactionType) (int64, error)
	GroupCountsFunc       func(ctx context.Context, commentID uuid.UUID) ([]repository.ReactionCount, error)
	FindUserReactionsFunc func(ctx context.Context, commentID, userID uuid.UUID) ([]domain.ReactionType, error)
}

func (m *mockReactionRepo) Toggle(ctx context.Context, commentID, userID uuid.UUID, reactionType domain.ReactionType) (bool, error) {
	return m.ToggleFunc(ctx, commentID, userID, reactionType)
}

func (m *mockReactionRepo) CountByType(ctx context.Context, commentID uuid.UUID, reactionType domain.ReactionType) (int64, error) {
	return m.CountByTypeFunc(ctx, commentID, reactionType)
}

func (m *mockReactionRepo) GroupCounts(ctx context.Context, commentID uuid.UUID) ([]repository.ReactionCount, error) {
	return m.GroupCountsFunc(ctx, commentID)
}

func (m *mockReactionRepo) FindUserReactions(ctx context.Context, commentID, userID uuid.UUID) ([]domain.ReactionType, error) {
	return m.FindUserReactionsFunc(ctx, commentID, userID)
}

type mockUserGameRepo struct {
	CreateFunc            func(ctx context.Context, userGame *domain.UserGame) error
	FindByUserAndGameFunc func(ctx context.Context, userID uuid.UUID, gameID int) (*domain.UserGame, error)
	FindSavedByUserFunc   func(ctx context.Context, userID uuid.UUID) ([]*domain.UserGame, error)
	FindAllByUserFunc     func(ctx context.Context, userID uuid.UUID) ([]*domain.UserGame, error)
	UpdateFunc            func(ctx context.Context, userGame *domain.UserGame) error
	DeleteFunc            func(ctx context.Context, userID uuid.UUID, gameID int) (int64, error)
}

func (m *mockUserGameRepo) Create(ctx context.Context, userGame *domain.UserGame) error {
	return m.CreateFunc(ctx, userGame)
}

func (m *mockUserGameRepo) FindByUserAndGame(ctx context.Context, userID uuid.UUID, gameID int) (*domain.UserGame, error) {
	return m.FindByUserAndGameFunc(ctx, userID, gameID)
}

func (m *mockUserGameRepo) FindSavedByUser(ctx context.Context, userID uuid.UUID) ([]*domain.UserGame, error) {
	return m.FindSavedByUserFunc(ctx, userID)
}

func (m *mockUserGameRepo) FindAllByUser(ctx context.Context, userID uuid.UUID) ([]*domain.UserGame, error) {
	return m.FindAllByUserFunc(ctx, userID)
}

func (m *mockUserGameRepo) Update(ctx context.Context, userGame *domain.UserGame) error {
	return m.UpdateFunc(ctx, userGame)
}

func (m *mockUserGameRepo) Delete(ctx context.Context, userID uuid.UUID, gameID int) (int64, error) {
	return m.DeleteFunc(ctx, userID, gameID)
}

type mockIGDBClient struct {
	SearchGamesFunc        func(ctx context.Context, query string, limit int) ([]client.Game, error)
	GetGameByIDFunc        func(ctx context.Context, gameID int) (*client.Game, error)
	GetGamesByCategoryFunc func(ctx context.Context, category string, limit, offset int) ([]client.Game, error)
	GetTrendingGamesFunc   func(ctx context.Context, limit int) ([]client.Game, error)
	GetPopularGamesFunc    func(ctx context.Context, limit int) ([]client.Game, error)
}

func (m *mockIGDBClient) SearchGames(ctx context.Context, query string, limit int) ([]client.Game, error) {
	return m.SearchGamesFunc(ctx, query, limit)
}

func (m *mockIGDBClient) GetGameByID(ctx context.Context, gameID int) (*client.Game, error) {
	return m.GetGameByIDFunc(ctx, gameID)
}

func (m *mockIGDBClient) GetGamesByCategory(ctx context.Context, category string, limit, offset int) ([]client.Game, error) {
	return m.GetGamesByCategoryFunc(ctx, category, limit, offset)
}

func (m *mockIGDBClient) GetTrendingGames(ctx context.Context, limit int) ([]client.Game, error) {
	return m.GetTrendingGamesFunc(ctx, limit)
}

func (m *mockIGDBClient) GetPopularGames(ctx context.Context, limit int) ([]client.Game, error) {
	return m.GetPopularGamesFunc(ctx, limit)
}

type mockVerifier struct {
	VerifyFunc func(ctx context.Context, idToken string) (*client.IdentityClaims, error)
}

func (m *mockVerifier) Verify(ctx context.Context, idToken string) (*client.IdentityClaims, error) {
	return m.VerifyFunc(ctx, idToken)
}

// memoryStore is an in-memory cache.Store for tests
type memoryStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemoryStore() *memoryStore {
	return &memoryStore{data: map[string][]byte{}}
}

func (s *memoryStore) Get(ctx context.Context, key string, out interface{}) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, out)
}

func (s *memoryStore) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.data[key] = data
	return nil
}

func (s *memoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}
