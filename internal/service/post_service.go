package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"blogapi/internal/auth"
	"blogapi/internal/cache"
	apperrors "blogapi/internal/errors"
	"blogapi/internal/model"
	"blogapi/internal/repository"
)

const (
	statsCacheKey = "stats:admin"
	statsCacheTTL = time.Minute
)

// PostUpdate is an explicit optional-field update: nil means "leave as is".
type PostUpdate struct {
	Title   *string
	Content *string
}

// Stats is the admin dashboard summary.
type Stats struct {
	TotalPosts     int64 `json:"totalPosts"`
	DraftPosts     int64 `json:"draftPosts"`
	PublishedPosts int64 `json:"publishedPosts"`
	TotalComments  int64 `json:"totalComments"`
	TotalUsers     int64 `json:"totalUsers"`
}

// PostService handles post reads, mutations and the admin summary.
type PostService interface {
	List(ctx context.Context, principal *auth.Principal, offset, limit int) ([]model.Post, int64, error)
	Get(ctx context.Context, id uuid.UUID, principal *auth.Principal) (*model.Post, error)
	Create(ctx context.Context, authorID uuid.UUID, title, content string) (*model.Post, error)
	Update(ctx context.Context, id uuid.UUID, upd PostUpdate) (*model.Post, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SetPublished(ctx context.Context, id uuid.UUID, published bool) (*model.Post, error)
	Stats(ctx context.Context) (*Stats, error)
}

type postService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	userRepo    repository.UserRepository
	cache       *cache.Client
}

// NewPostService creates a new post service.
func NewPostService(
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	userRepo repository.UserRepository,
	cacheClient *cache.Client,
) PostService {
	return &postService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		userRepo:    userRepo,
		cache:       cacheClient,
	}
}

// List returns one page of posts plus the total matching count. Anonymous and
// USER-role callers see published posts only; admins also see drafts.
func (s *postService) List(ctx context.Context, principal *auth.Principal, offset, limit int) ([]model.Post, int64, error) {
	publishedOnly := !principal.IsAdmin()

	var (
		posts []model.Post
		total int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		posts, err = s.postRepo.List(gctx, publishedOnly, offset, limit)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.postRepo.Count(gctx, publishedOnly)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, 0, fmt.Errorf("list posts: %w", err)
	}

	return posts, total, nil
}

// Get loads a post with its comments. An unpublished post is reported as not
// found to everyone but admins, its author included.
func (s *postService) Get(ctx context.Context, id uuid.UUID, principal *auth.Principal) (*model.Post, error) {
	post, err := s.postRepo.FindByIDWithComments(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, err
	}

	if !post.Published && !principal.IsAdmin() {
		return nil, apperrors.ErrPostNotFound
	}

	return post, nil
}

// Create inserts a draft post. Title (after trimming) and content must be
// non-empty.
func (s *postService) Create(ctx context.Context, authorID uuid.UUID, title, content string) (*model.Post, error) {
	if strings.TrimSpace(title) == "" || content == "" {
		return nil, apperrors.ErrTitleContentRequired
	}

	post := &model.Post{
		AuthorID: authorID,
		Title:    title,
		Content:  content,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return post, nil
}

func (s *postService) Update(ctx context.Context, id uuid.UUID, upd PostUpdate) (*model.Post, error) {
	post, err := s.findPost(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Title != nil {
		post.Title = *upd.Title
	}
	if upd.Content != nil {
		post.Content = *upd.Content
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	return post, nil
}

func (s *postService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.postRepo.Delete(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrPostNotFound
		}
		return err
	}
	return nil
}

// SetPublished flips the draft flag in either direction.
func (s *postService) SetPublished(ctx context.Context, id uuid.UUID, published bool) (*model.Post, error) {
	post, err := s.findPost(ctx, id)
	if err != nil {
		return nil, err
	}

	post.Published = published
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("set published: %w", err)
	}
	return post, nil
}

// Stats runs the five count queries in parallel. Results are cached briefly;
// the cache is fail-safe so a dead redis only costs the extra queries.
func (s *postService) Stats(ctx context.Context) (*Stats, error) {
	if data, _ := s.cache.Get(ctx, statsCacheKey); data != nil {
		var cached Stats
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	var stats Stats
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.TotalPosts, err = s.postRepo.Count(gctx, false)
		return err
	})
	g.Go(func() (err error) {
		stats.DraftPosts, err = s.postRepo.CountByPublished(gctx, false)
		return err
	})
	g.Go(func() (err error) {
		stats.PublishedPosts, err = s.postRepo.CountByPublished(gctx, true)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalComments, err = s.commentRepo.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalUsers, err = s.userRepo.Count(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load stats: %w", err)
	}

	if data, err := json.Marshal(&stats); err == nil {
		_ = s.cache.Set(ctx, statsCacheKey, data, statsCacheTTL)
	}

	return &stats, nil
}

func (s *postService) findPost(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, err
	}
	return post, nil
}
