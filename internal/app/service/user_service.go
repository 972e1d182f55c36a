package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tasktree/internal/core/domain"
	"tasktree/internal/core/ports"
)

const usernameMaxLength = 50

type UserService struct {
	userRepository ports.UserRepository
	hasher         ports.PasswordHasher
	tokens         ports.TokenIssuer
}

func NewUserService(userRepository ports.UserRepository, hasher ports.PasswordHasher, tokens ports.TokenIssuer) *UserService {
	return &UserService{userRepository: userRepository, hasher: hasher, tokens: tokens}
}

func (s *UserService) Register(ctx context.Context, credentials domain.Credentials) (domain.User, error) {
	username := strings.TrimSpace(credentials.Username)
	if username == "" || len(username) > usernameMaxLength || credentials.Password == "" {
		return domain.User{}, domain.ErrInvalidUserPayload
	}

	_, err := s.userRepository.FindByUsername(ctx, username)
	switch {
	case err == nil:
		return domain.User{}, domain.ErrUserAlreadyExists
	case !errors.Is(err, domain.ErrUserNotFound):
		return domain.User{}, err
	}

	hash, err := s.hasher.Hash(credentials.Password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	return s.userRepository.Create(ctx, username, hash)
}

// Login returns a signed access token. Unknown users and wrong passwords both
// yield ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, credentials domain.Credentials) (string, error) {
	user, err := s.userRepository.FindByUsername(ctx, strings.TrimSpace(credentials.Username))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	if err := s.hasher.Compare(user.PasswordHash, credentials.Password); err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return "", err
		}
		return "", fmt.Errorf("compare password: %w", err)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}

func (s *UserService) Profile(ctx context.Context, userID uint64) (domain.User, error) {
	if userID == 0 {
		return domain.User{}, domain.ErrUnauthorized
	}
	return s.userRepository.FindByID(ctx, userID)
}

var _ ports.UserService = (*UserService)(nil)
