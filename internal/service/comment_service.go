package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"blogapi/internal/auth"
	apperrors "blogapi/internal/errors"
	"blogapi/internal/model"
	"blogapi/internal/repository"
)

// CommentService handles comment reads and owner-or-admin mutations.
type CommentService interface {
	ListByPost(ctx context.Context, postID uuid.UUID, offset, limit int) ([]model.Comment, int64, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Comment, error)
	Create(ctx context.Context, postID, authorID uuid.UUID, content string) (*model.Comment, error)
	Update(ctx context.Context, id uuid.UUID, principal *auth.Principal, content string) (*model.Comment, error)
	Delete(ctx context.Context, id uuid.UUID, principal *auth.Principal) error
}

type commentService struct {
	commentRepo repository.CommentRepository
}

// NewCommentService creates a new comment service.
func NewCommentService(commentRepo repository.CommentRepository) CommentService {
	return &commentService{commentRepo: commentRepo}
}

// ListByPost returns one page of a post's comments plus the total count.
func (s *commentService) ListByPost(ctx context.Context, postID uuid.UUID, offset, limit int) ([]model.Comment, int64, error) {
	var (
		comments []model.Comment
		total    int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		comments, err = s.commentRepo.ListByPost(gctx, postID, offset, limit)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.commentRepo.CountByPost(gctx, postID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, 0, fmt.Errorf("list comments: %w", err)
	}

	return comments, total, nil
}

func (s *commentService) Get(ctx context.Context, id uuid.UUID) (*model.Comment, error) {
	comment, err := s.commentRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrCommentNotFound
		}
		return nil, err
	}
	return comment, nil
}

func (s *commentService) Create(ctx context.Context, postID, authorID uuid.UUID, content string) (*model.Comment, error) {
	comment := &model.Comment{
		PostID:   postID,
		AuthorID: authorID,
		Content:  content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return comment, nil
}

// Update rewrites the comment body. Only the author or an admin may do so.
func (s *commentService) Update(ctx context.Context, id uuid.UUID, principal *auth.Principal, content string) (*model.Comment, error) {
	comment, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !auth.CanModify(comment.AuthorID, principal) {
		return nil, apperrors.ErrForbidden
	}

	comment.Content = content
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}
	return comment, nil
}

// Delete removes the comment. Only the author or an admin may do so.
func (s *commentService) Delete(ctx context.Context, id uuid.UUID, principal *auth.Principal) error {
	comment, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if !auth.CanModify(comment.AuthorID, principal) {
		return apperrors.ErrForbidden
	}

	return s.commentRepo.Delete(ctx, comment.ID)
}
