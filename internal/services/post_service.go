package services

import (
	"context"
	"errors"

	"wardaropa-backend/internal/models"
	"wardaropa-backend/internal/repository"
)

var ErrAlreadyLiked = errors.New("post already liked")

type PostService struct {
	repo repository.Repository
}

func NewPostService(repo repository.Repository) *PostService {
	return &PostService{repo: repo}
}

func (s *PostService) CreatePost(ctx context.Context, req models.CreatePostRequest) (int64, error) {
	return s.repo.CreatePost(ctx, int64(req.UsuarioID), req.Descripcion, req.Foto)
}

// ListPosts returns every post, newest first. The result is unbounded and
// carries each photo payload inline.
func (s *PostService) ListPosts(ctx context.Context) ([]models.Post, error) {
	return s.repo.ListPosts(ctx)
}

func (s *PostService) Like(ctx context.Context, postID, usuarioID int64) error {
	err := s.repo.AddLike(ctx, postID, usuarioID)
	if errors.Is(err, repository.ErrConflict) {
		return ErrAlreadyLiked
	}
	return err
}

// Unlike succeeds whether or not the like existed.
func (s *PostService) Unlike(ctx context.Context, postID, usuarioID int64) error {
	return s.repo.RemoveLike(ctx, postID, usuarioID)
}

func (s *PostService) AddComment(ctx context.Context, postID int64, req models.CreateCommentRequest) (int64, error) {
	return s.repo.CreateComment(ctx, postID, int64(req.UsuarioID), req.Texto)
}

func (s *PostService) ListComments(ctx context.Context, postID int64) ([]models.Comment, error) {
	return s.repo.ListComments(ctx, postID)
}
