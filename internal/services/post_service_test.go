package services

import (
	"context"
	"testing"

	"wardaropa-backend/internal/models"
	"wardaropa-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedPost(t *testing.T, repo *repository.Memory) (userID, postID int64) {
	t.Helper()
	ctx := context.Background()
	userID, err := repo.CreateUser(ctx, "ana", "ana@example.com", "h")
	require.NoError(t, err)
	postID, err = repo.CreatePost(ctx, userID, "", "data:image/png;base64,AAAA")
	require.NoError(t, err)
	return userID, postID
}

func TestLike_TwiceThenUnlikeThenAgain(t *testing.T) {
	repo := repository.NewMemory()
	svc := NewPostService(repo)
	ctx := context.Background()
	userID, postID := seedPost(t, repo)

	assert.NoError(t, svc.Like(ctx, postID, userID))
	assert.ErrorIs(t, svc.Like(ctx, postID, userID), ErrAlreadyLiked)
	assert.NoError(t, svc.Unlike(ctx, postID, userID))
	assert.NoError(t, svc.Like(ctx, postID, userID))
}

func TestUnlike_NeverLiked(t *testing.T) {
	repo := repository.NewMemory()
	svc := NewPostService(repo)
	userID, postID := seedPost(t, repo)

	assert.NoError(t, svc.Unlike(context.Background(), postID, userID))
}

func TestCommentsAndCounts(t *testing.T) {
	repo := repository.NewMemory()
	svc := NewPostService(repo)
	ctx := context.Background()
	userID, postID := seedPost(t, repo)

	require.NoError(t, svc.Like(ctx, postID, userID))
	_, err := svc.AddComment(ctx, postID, models.CreateCommentRequest{UsuarioID: models.ID(userID), Texto: "first"})
	require.NoError(t, err)
	_, err = svc.AddComment(ctx, postID, models.CreateCommentRequest{UsuarioID: models.ID(userID), Texto: "second"})
	require.NoError(t, err)

	posts, err := svc.ListPosts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, int64(1), posts[0].LikesCount)
	assert.Equal(t, int64(2), posts[0].CommentsCount)

	comments, err := svc.ListComments(ctx, postID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "first", comments[0].Texto)
	assert.Equal(t, "second", comments[1].Texto)
}
