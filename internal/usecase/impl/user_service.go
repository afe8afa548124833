package impl

import (
	"context"
	"fmt"
	"time"

	"lunchlog/internal/domain/entity"
	domainerrors "lunchlog/internal/domain/errors"
	"lunchlog/internal/domain/repository"
	"lunchlog/internal/domain/service"
	"lunchlog/internal/errors"
	"lunchlog/internal/usecase"

	"github.com/google/uuid"
)

type userService struct {
	userRepo repository.UserRepository
	hasher   service.PasswordHasher
	tokenSvc service.TokenService
}

// NewUserService creates a new user service instance.
func NewUserService(
	userRepo repository.UserRepository,
	hasher service.PasswordHasher,
	tokenSvc service.TokenService,
) usecase.UserUsecase {
	return &userService{
		userRepo: userRepo,
		hasher:   hasher,
		tokenSvc: tokenSvc,
	}
}

// Register creates a new account and signs the user in immediately.
func (s *userService) Register(ctx context.Context, input usecase.RegisterUserInput) (*usecase.AuthOutput, error) {
	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		ID:           uuid.New(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		var appErr domainerrors.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}

		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.issueTokens(user)
}

// Login authenticates by username or email. A missing user and a wrong
// password produce the same error.
func (s *userService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.AuthOutput, error) {
	user, err := s.userRepo.FindByLogin(ctx, input.Login)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}

		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !s.hasher.Check(input.Password, user.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	return s.issueTokens(user)
}

func (s *userService) issueTokens(user *entity.User) (*usecase.AuthOutput, error) {
	access, refresh, err := s.tokenSvc.GenerateTokens(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	return &usecase.AuthOutput{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         user,
	}, nil
}
