package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/d60-Lab/minipost/internal/model"
	"github.com/d60-Lab/minipost/internal/repository"
	"github.com/d60-Lab/minipost/pkg/jwtauth"
	"github.com/d60-Lab/minipost/pkg/logger"
)

// AuthService 注册/登录。注册不发 token，登录才发。
type AuthService interface {
	Signup(ctx context.Context, email, password string) error
	Login(ctx context.Context, email, password string) (string, error)
}

type authService struct {
	userRepo repository.UserRepository
	tokens   *jwtauth.Service
}

func NewAuthService(userRepo repository.UserRepository, tokens *jwtauth.Service) AuthService {
	return &authService{userRepo: userRepo, tokens: tokens}
}

func (s *authService) Signup(ctx context.Context, email, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user := &model.User{Email: email, PasswordHash: string(hash)}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	logger.Info("user registered", zap.Uint64("user_id", user.ID))
	return nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// 内部区分 not found 与密码错，对外只有一种失败
			logger.Debug("login: unknown email")
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.Debug("login: password mismatch", zap.Uint64("user_id", user.ID))
		return "", ErrInvalidCredentials
	}
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}
