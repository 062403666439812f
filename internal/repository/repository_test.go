package repository

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"gaming-community-api/internal/domain"
)

// newTestDB opens an isolated in-memory sqlite database per test
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&domain.User{},
		&domain.Comment{},
		&domain.CommentVote{},
		&domain.CommentReaction{},
		&domain.UserGame{},
		&domain.AffiliateLink{},
	)
	require.NoError(t, err)

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, name string) *domain.User {
	t.Helper()

	user := &domain.User{
		ProviderUID: "uid-" + name + "-" + uuid.NewString(),
		Email:       name + "-" + uuid.NewString() + "@example.com",
		DisplayName: name,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestComment(t *testing.T, db *gorm.DB, userID uuid.UUID, gameID int) *domain.Comment {
	t.Helper()

	comment := &domain.Comment{
		UserID:      userID,
		IgdbGameID:  gameID,
		Content:     "test comment",
		CommentType: domain.CommentTypeDiscussion,
	}
	require.NoError(t, db.Create(comment).Error)
	return comment
}

func reloadComment(t *testing.T, db *gorm.DB, id uuid.UUID) *domain.Comment {
	t.Helper()

	var comment domain.Comment
	require.NoError(t, db.Unscoped().First(&comment, "id = ?", id).Error)
	return &comment
}
