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

func TestCommentService_ListByPost(t *testing.T) {
	postID := uuid.New()
	commentRepo := new(MockCommentRepository)
	commentRepo.On("ListByPost", mock.Anything, postID, 10, 10).
		Return([]model.Comment{{PostID: postID}}, nil)
	commentRepo.On("CountByPost", mock.Anything, postID).Return(int64(25), nil)

	svc := NewCommentService(commentRepo)
	comments, total, err := svc.ListByPost(context.Background(), postID, 10, 10)

	assert.NoError(t, err)
	assert.Len(t, comments, 1)
	assert.Equal(t, int64(25), total)
	commentRepo.AssertExpectations(t)
}

func TestCommentService_Create(t *testing.T) {
	postID := uuid.New()
	authorID := uuid.New()

	commentRepo := new(MockCommentRepository)
	commentRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Comment")).Return(nil)

	svc := NewCommentService(commentRepo)
	comment, err := svc.Create(context.Background(), postID, authorID, "nice post")

	assert.NoError(t, err)
	assert.Equal(t, postID, comment.PostID)
	assert.Equal(t, authorID, comment.AuthorID)
	assert.Equal(t, "nice post", comment.Content)
	commentRepo.AssertExpectations(t)
}

func TestCommentService_Update_Ownership(t *testing.T) {
	commentID := uuid.New()
	authorID := uuid.New()
	existing := &model.Comment{ID: commentID, AuthorID: authorID, Content: "original"}

	tests := []struct {
		name          string
		principal     *auth.Principal
		expectedError error
	}{
		{name: "author may update", principal: &auth.Principal{ID: authorID, Role: model.RoleUser}},
		{name: "admin may update", principal: &auth.Principal{ID: uuid.New(), Role: model.RoleAdmin}},
		{name: "other user is forbidden", principal: &auth.Principal{ID: uuid.New(), Role: model.RoleUser}, expectedError: apperrors.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			commentRepo := new(MockCommentRepository)
			commentRepo.On("FindByID", mock.Anything, commentID).
				Return(&model.Comment{ID: commentID, AuthorID: authorID, Content: existing.Content}, nil)
			if tt.expectedError == nil {
				commentRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Comment")).Return(nil)
			}

			svc := NewCommentService(commentRepo)
			comment, err := svc.Update(context.Background(), commentID, tt.principal, "rewritten")

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, comment)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "rewritten", comment.Content)
			}
			// On the forbidden path Update must never be reached.
			commentRepo.AssertExpectations(t)
		})
	}
}

func TestCommentService_Delete_Ownership(t *testing.T) {
	commentID := uuid.New()
	authorID := uuid.New()

	tests := []struct {
		name          string
		principal     *auth.Principal
		expectedError error
	}{
		{name: "author may delete", principal: &auth.Principal{ID: authorID, Role: model.RoleUser}},
		{name: "admin may delete", principal: &auth.Principal{ID: uuid.New(), Role: model.RoleAdmin}},
		{name: "other user is forbidden", principal: &auth.Principal{ID: uuid.New(), Role: model.RoleUser}, expectedError: apperrors.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			commentRepo := new(MockCommentRepository)
			commentRepo.On("FindByID", mock.Anything, commentID).
				Return(&model.Comment{ID: commentID, AuthorID: authorID}, nil)
			if tt.expectedError == nil {
				commentRepo.On("Delete", mock.Anything, commentID).Return(nil)
			}

			svc := NewCommentService(commentRepo)
			err := svc.Delete(context.Background(), commentID, tt.principal)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
			commentRepo.AssertExpectations(t)
		})
	}
}

func TestCommentService_Get_Missing(t *testing.T) {
	commentID := uuid.New()
	commentRepo := new(MockCommentRepository)
	commentRepo.On("FindByID", mock.Anything, commentID).Return(nil, gorm.ErrRecordNotFound)

	svc := NewCommentService(commentRepo)
	comment, err := svc.Get(context.Background(), commentID)

	assert.ErrorIs(t, err, apperrors.ErrCommentNotFound)
	assert.Nil(t, comment)
}
