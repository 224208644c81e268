package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"blogapi/internal/auth"
	apperrors "blogapi/internal/errors"
	"blogapi/internal/model"
)

func newPostServiceForTest(postRepo *MockPostRepository, commentRepo *MockCommentRepository, userRepo *MockUserRepository) PostService {
	// nil cache degrades to a miss on every call
	return NewPostService(postRepo, commentRepo, userRepo, nil)
}

func TestPostService_List_Visibility(t *testing.T) {
	admin := &auth.Principal{ID: uuid.New(), Role: model.RoleAdmin}
	user := &auth.Principal{ID: uuid.New(), Role: model.RoleUser}

	tests := []struct {
		name              string
		principal         *auth.Principal
		wantPublishedOnly bool
	}{
		{name: "anonymous sees published only", principal: nil, wantPublishedOnly: true},
		{name: "regular user sees published only", principal: user, wantPublishedOnly: true},
		{name: "admin sees drafts too", principal: admin, wantPublishedOnly: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			postRepo := new(MockPostRepository)
			postRepo.On("List", mock.Anything, tt.wantPublishedOnly, 0, 10).
				Return([]model.Post{{Title: "A post"}}, nil)
			postRepo.On("Count", mock.Anything, tt.wantPublishedOnly).Return(int64(1), nil)

			svc := newPostServiceForTest(postRepo, new(MockCommentRepository), new(MockUserRepository))
			posts, total, err := svc.List(context.Background(), tt.principal, 0, 10)

			assert.NoError(t, err)
			assert.Len(t, posts, 1)
			assert.Equal(t, int64(1), total)
			postRepo.AssertExpectations(t)
		})
	}
}

func TestPostService_Get_DraftVisibility(t *testing.T) {
	postID := uuid.New()
	authorID := uuid.New()
	draft := &model.Post{ID: postID, AuthorID: authorID, Title: "Draft", Published: false}

	tests := []struct {
		name          string
		principal     *auth.Principal
		expectedError error
	}{
		{name: "anonymous cannot see draft", principal: nil, expectedError: apperrors.ErrPostNotFound},
		{name: "regular user cannot see draft", principal: &auth.Principal{ID: uuid.New(), Role: model.RoleUser}, expectedError: apperrors.ErrPostNotFound},
		// Ownership grants no draft visibility: only the role matters.
		{name: "non-admin author cannot see own draft", principal: &auth.Principal{ID: authorID, Role: model.RoleUser}, expectedError: apperrors.ErrPostNotFound},
		{name: "admin sees draft", principal: &auth.Principal{ID: uuid.New(), Role: model.RoleAdmin}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			postRepo := new(MockPostRepository)
			postRepo.On("FindByIDWithComments", mock.Anything, postID).Return(draft, nil)

			svc := newPostServiceForTest(postRepo, new(MockCommentRepository), new(MockUserRepository))
			post, err := svc.Get(context.Background(), postID, tt.principal)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, post)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, draft, post)
			}
		})
	}
}

func TestPostService_Get_PublishedVisibleToAnyone(t *testing.T) {
	postID := uuid.New()
	postRepo := new(MockPostRepository)
	postRepo.On("FindByIDWithComments", mock.Anything, postID).
		Return(&model.Post{ID: postID, Published: true}, nil)

	svc := newPostServiceForTest(postRepo, new(MockCommentRepository), new(MockUserRepository))
	post, err := svc.Get(context.Background(), postID, nil)

	assert.NoError(t, err)
	assert.NotNil(t, post)
}

func TestPostService_Create_Validation(t *testing.T) {
	authorID := uuid.New()

	tests := []struct {
		name          string
		title         string
		content       string
		expectedError error
	}{
		{name: "valid post", title: "Title", content: "Content"},
		{name: "empty title", title: "", content: "Content", expectedError: apperrors.ErrTitleContentRequired},
		{name: "whitespace title", title: "   ", content: "Content", expectedError: apperrors.ErrTitleContentRequired},
		{name: "empty content", title: "Title", content: "", expectedError: apperrors.ErrTitleContentRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			postRepo := new(MockPostRepository)
			if tt.expectedError == nil {
				postRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Post")).Return(nil)
			}

			svc := newPostServiceForTest(postRepo, new(MockCommentRepository), new(MockUserRepository))
			post, err := svc.Create(context.Background(), authorID, tt.title, tt.content)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, post)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, authorID, post.AuthorID)
				assert.False(t, post.Published)
			}
			postRepo.AssertExpectations(t)
		})
	}
}

func TestPostService_Delete_MissingIsNotFound(t *testing.T) {
	postID := uuid.New()
	postRepo := new(MockPostRepository)
	postRepo.On("Delete", mock.Anything, postID).Return(gorm.ErrRecordNotFound)

	svc := newPostServiceForTest(postRepo, new(MockCommentRepository), new(MockUserRepository))
	assert.ErrorIs(t, svc.Delete(context.Background(), postID), apperrors.ErrPostNotFound)
}

func TestPostService_SetPublished(t *testing.T) {
	postID := uuid.New()

	t.Run("publishes a draft", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		postRepo.On("FindByID", mock.Anything, postID).
			Return(&model.Post{ID: postID, Published: false}, nil)
		postRepo.On("Update", mock.Anything, mock.MatchedBy(func(p *model.Post) bool {
			return p.Published
		})).Return(nil)

		svc := newPostServiceForTest(postRepo, new(MockCommentRepository), new(MockUserRepository))
		post, err := svc.SetPublished(context.Background(), postID, true)

		assert.NoError(t, err)
		assert.True(t, post.Published)
		postRepo.AssertExpectations(t)
	})

	t.Run("missing post", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		postRepo.On("FindByID", mock.Anything, postID).Return(nil, gorm.ErrRecordNotFound)

		svc := newPostServiceForTest(postRepo, new(MockCommentRepository), new(MockUserRepository))
		post, err := svc.SetPublished(context.Background(), postID, true)

		assert.ErrorIs(t, err, apperrors.ErrPostNotFound)
		assert.Nil(t, post)
	})
}

func TestPostService_Stats(t *testing.T) {
	postRepo := new(MockPostRepository)
	commentRepo := new(MockCommentRepository)
	userRepo := new(MockUserRepository)

	postRepo.On("Count", mock.Anything, false).Return(int64(12), nil)
	postRepo.On("CountByPublished", mock.Anything, false).Return(int64(5), nil)
	postRepo.On("CountByPublished", mock.Anything, true).Return(int64(7), nil)
	commentRepo.On("Count", mock.Anything).Return(int64(40), nil)
	userRepo.On("Count", mock.Anything).Return(int64(9), nil)

	svc := newPostServiceForTest(postRepo, commentRepo, userRepo)
	stats, err := svc.Stats(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, &Stats{
		TotalPosts:     12,
		DraftPosts:     5,
		PublishedPosts: 7,
		TotalComments:  40,
		TotalUsers:     9,
	}, stats)

	postRepo.AssertExpectations(t)
	commentRepo.AssertExpectations(t)
	userRepo.AssertExpectations(t)
}
