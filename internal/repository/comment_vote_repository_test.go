package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"gaming-community-api/internal/domain"
)

func TestApplyVote_NewVote(t *testing.T) {
	db := newTestDB(t)
	repo := NewCommentVoteRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	voter := createTestUser(t, db, "voter")
	comment := createTestComment(t, db, author.ID, 100)

	result, err := repo.ApplyVote(ctx, comment.ID, voter.ID, domain.VoteTypeLike)
	require.NoError(t, err)
	assert.Equal(t, VoteActionLiked, result.Action)
	assert.Nil(t, result.PreviousVote)

	updated := reloadComment(t, db, comment.ID)
	assert.Equal(t, 1, updated.LikesCount)
	assert.Equal(t, 0, updated.DislikesCount)
}

func TestApplyVote_SameTypeTogglesOff(t *testing.T) {
	db := newTestDB(t)
	repo := NewCommentVoteRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	voter := createTestUser(t, db, "voter")
	comment := createTestComment(t, db, author.ID, 100)

	_, err := repo.ApplyVote(ctx, comment.ID, voter.ID, domain.VoteTypeLike)
	require.NoError(t, err)

	result, err := repo.ApplyVote(ctx, comment.ID, voter.ID, domain.VoteTypeLike)
	require.NoError(t, err)
	assert.Equal(t, VoteActionRemoved, result.Action)
	require.NotNil(t, result.PreviousVote)
	assert.Equal(t, domain.VoteTypeLike, *result.PreviousVote)

	updated := reloadComment(t, db, comment.ID)
	assert.Equal(t, 0, updated.LikesCount)

	_, err = repo.FindVote(ctx, comment.ID, voter.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestApplyVote_DifferentTypeFlips(t *testing.T) {
	db := newTestDB(t)
	repo := NewCommentVoteRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	voter := createTestUser(t, db, "voter")
	comment := createTestComment(t, db, author.ID, 100)

	_, err := repo.ApplyVote(ctx, comment.ID, voter.ID, domain.VoteTypeLike)
	require.NoError(t, err)

	result, err := repo.ApplyVote(ctx, comment.ID, voter.ID, domain.VoteTypeDislike)
	require.NoError(t, err)
	assert.Equal(t, VoteActionDisliked, result.Action)
	require.NotNil(t, result.PreviousVote)
	assert.Equal(t, domain.VoteTypeLike, *result.PreviousVote)

	updated := reloadComment(t, db, comment.ID)
	assert.Equal(t, 0, updated.LikesCount)
	assert.Equal(t, 1, updated.DislikesCount)

	vote, err := repo.FindVote(ctx, comment.ID, voter.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.VoteTypeDislike, vote.VoteType)
}

func TestApplyVote_OneRowPerUser(t *testing.T) {
	db := newTestDB(t)
	repo := NewCommentVoteRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	voter := createTestUser(t, db, "voter")
	comment := createTestComment(t, db, author.ID, 100)

	_, err := repo.ApplyVote(ctx, comment.ID, voter.ID, domain.VoteTypeLike)
	require.NoError(t, err)
	_, err = repo.ApplyVote(ctx, comment.ID, voter.ID, domain.VoteTypeDislike)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&domain.CommentVote{}).
		Where("comment_id = ? AND user_id = ?", comment.ID, voter.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestApplyVote_CounterWalk(t *testing.T) {
	db := newTestDB(t)
	repo := NewCommentVoteRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	comment := createTestComment(t, db, author.ID, 100)

	steps := []struct {
		user     *domain.User
		vote     domain.VoteType
		likes    int
		dislikes int
	}{
		{alice, domain.VoteTypeLike, 1, 0},
		{bob, domain.VoteTypeLike, 2, 0},
		{alice, domain.VoteTypeDislike, 1, 1},
		{bob, domain.VoteTypeLike, 1, 1},
		{alice, domain.VoteTypeDislike, 1, 0},
	}

	for i, step := range steps {
		_, err := repo.ApplyVote(ctx, comment.ID, step.user.ID, step.vote)
		require.NoError(t, err, "step %d", i)

		updated := reloadComment(t, db, comment.ID)
		assert.Equal(t, step.likes, updated.LikesCount, "likes after step %d", i)
		assert.Equal(t, step.dislikes, updated.DislikesCount, "dislikes after step %d", i)
	}
}

func TestFindVote_NotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewCommentVoteRepository(db)

	author := createTestUser(t, db, "author")
	voter := createTestUser(t, db, "voter")
	comment := createTestComment(t, db, author.ID, 100)

	_, err := repo.FindVote(context.Background(), comment.ID, voter.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}
