package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"blogapi/internal/model"
)

// PostRepository defines post persistence operations.
type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	Update(ctx context.Context, post *model.Post) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error)
	FindByIDWithComments(ctx context.Context, id uuid.UUID) (*model.Post, error)
	List(ctx context.Context, publishedOnly bool, offset, limit int) ([]model.Post, error)
	Count(ctx context.Context, publishedOnly bool) (int64, error)
	CountByPublished(ctx context.Context, published bool) (int64, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository builds a GORM-backed post repository.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) Update(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Omit("Comments").Save(post).Error
}

func (r *postRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.Post{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *postRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	var post model.Post
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// FindByIDWithComments loads the post together with its comments, mirroring
// the single-post read contract.
func (r *postRepository) FindByIDWithComments(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	var post model.Post
	if err := r.db.WithContext(ctx).Preload("Comments").Where("id = ?", id).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context, publishedOnly bool, offset, limit int) ([]model.Post, error) {
	q := r.db.WithContext(ctx).Model(&model.Post{})
	if publishedOnly {
		q = q.Where("published = ?", true)
	}
	var posts []model.Post
	if err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) Count(ctx context.Context, publishedOnly bool) (int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Post{})
	if publishedOnly {
		q = q.Where("published = ?", true)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *postRepository) CountByPublished(ctx context.Context, published bool) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Post{}).
		Where("published = ?", published).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
