package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"gaming-community-api/internal/domain"
)

func TestCommentFindByGameID_NewestFirstPaginated(t *testing.T) {
	db := newTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "author")
	for i := 0; i < 5; i++ {
		comment := &domain.Comment{
			UserID:      user.ID,
			IgdbGameID:  100,
			Content:     "comment",
			CommentType: domain.CommentTypeDiscussion,
		}
		comment.CreatedAt = time.Now().Add(time.Duration(i) * time.Minute)
		require.NoError(t, db.Create(comment).Error)
	}
	// A comment on another game must not appear
	createTestComment(t, db, user.ID, 999)

	page1, total, err := repo.FindByGameID(ctx, 100, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, page1, 3)

	page2, _, err := repo.FindByGameID(ctx, 100, 2, 3)
	require.NoError(t, err)
	require.Len(t, page2, 2)

	// Newest first across the pages
	assert.True(t, page1[0].CreatedAt.After(page1[2].CreatedAt))
	assert.True(t, page1[2].CreatedAt.After(page2[0].CreatedAt) || page1[2].CreatedAt.Equal(page2[0].CreatedAt))
}

func TestCommentSoftDelete_ExcludedButRowsSurvive(t *testing.T) {
	db := newTestDB(t)
	repo := NewCommentRepository(db)
	voteRepo := NewCommentVoteRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "author")
	voter := createTestUser(t, db, "voter")
	comment := createTestComment(t, db, user.ID, 100)

	_, err := voteRepo.ApplyVote(ctx, comment.ID, voter.ID, domain.VoteTypeLike)
	require.NoError(t, err)

	require.NoError(t, repo.SoftDelete(ctx, comment.ID))

	// Hidden from every read path
	_, err = repo.FindByID(ctx, comment.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	count, err := repo.CountByGameID(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	// The tombstoned row and its votes remain in place
	var raw domain.Comment
	require.NoError(t, db.Unscoped().First(&raw, "id = ?", comment.ID).Error)
	assert.True(t, raw.DeletedAt.Valid)

	vote, err := voteRepo.FindVote(ctx, comment.ID, voter.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.VoteTypeLike, vote.VoteType)
}

func TestIncrementRepliesCount_TargetsParentOnly(t *testing.T) {
	db := newTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "author")
	parent := createTestComment(t, db, user.ID, 100)
	sibling := createTestComment(t, db, user.ID, 100)

	require.NoError(t, repo.IncrementRepliesCount(ctx, parent.ID))

	assert.Equal(t, 1, reloadComment(t, db, parent.ID).RepliesCount)
	assert.Equal(t, 0, reloadComment(t, db, sibling.ID).RepliesCount)
}

func TestFindReplies_OldestFirstNonDeleted(t *testing.T) {
	db := newTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "author")
	parent := createTestComment(t, db, user.ID, 100)

	var replies []*domain.Comment
	for i := 0; i < 3; i++ {
		reply := &domain.Comment{
			UserID:          user.ID,
			IgdbGameID:      100,
			Content:         "reply",
			CommentType:     domain.CommentTypeDiscussion,
			ParentCommentID: &parent.ID,
		}
		reply.CreatedAt = time.Now().Add(time.Duration(i) * time.Minute)
		require.NoError(t, db.Create(reply).Error)
		replies = append(replies, reply)
	}
	require.NoError(t, repo.SoftDelete(ctx, replies[1].ID))

	found, err := repo.FindReplies(ctx, parent.ID)
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, replies[0].ID, found[0].ID)
	assert.Equal(t, replies[2].ID, found[1].ID)
}

func TestCommentUpdate_PersistsEditedFlag(t *testing.T) {
	db := newTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "author")
	comment := createTestComment(t, db, user.ID, 100)

	comment.Content = "edited"
	comment.IsEdited = true
	require.NoError(t, repo.Update(ctx, comment))

	updated := reloadComment(t, db, comment.ID)
	assert.Equal(t, "edited", updated.Content)
	assert.True(t, updated.IsEdited)
}
