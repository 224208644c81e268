package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"blogapi/internal/auth"
	apperrors "blogapi/internal/errors"
	"blogapi/internal/model"
	"blogapi/internal/repository"
)

// UserUpdate is an explicit optional-field update: nil means "leave as is".
type UserUpdate struct {
	Name     *string
	Password *string
}

// UserService handles registration, login and user management.
type UserService interface {
	Register(ctx context.Context, email, password, name string) (*model.User, error)
	Login(ctx context.Context, email, password string) (token string, user *model.User, err error)
	Get(ctx context.Context, id uuid.UUID) (*model.User, error)
	Update(ctx context.Context, id uuid.UUID, upd UserUpdate) (*model.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]model.User, error)
}

type userService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
}

// NewUserService creates a new user service.
func NewUserService(userRepo repository.UserRepository, jwtService *auth.JWTService) UserService {
	return &userService{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// Register creates a new USER-role account with a hashed password.
// Emails are normalized to lowercase before storage.
func (s *userService) Register(ctx context.Context, email, password, name string) (*model.User, error) {
	email = strings.ToLower(email)

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, apperrors.ErrEmailTaken
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:        email,
		Name:         name,
		PasswordHash: hashed,
		Role:         model.RoleUser,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// Unique index backstop for concurrent registrations.
		if err == gorm.ErrDuplicatedKey {
			return nil, apperrors.ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Login authenticates a user and issues a signed token carrying id and role.
func (s *userService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Role)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}

	return token, user, nil
}

func (s *userService) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// Update applies the provided fields; a new password is re-hashed.
func (s *userService) Update(ctx context.Context, id uuid.UUID, upd UserUpdate) (*model.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		user.Name = *upd.Name
	}
	if upd.Password != nil && *upd.Password != "" {
		hashed, err := auth.HashPassword(*upd.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = hashed
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

func (s *userService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrUserNotFound
		}
		return err
	}
	return nil
}

func (s *userService) List(ctx context.Context) ([]model.User, error) {
	return s.userRepo.List(ctx)
}
