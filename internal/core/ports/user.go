package ports

import (
	"context"

	"tasktree/internal/core/domain"
)

type UserRepository interface {
	FindByID(ctx context.Context, id uint64) (domain.User, error)
	FindByUsername(ctx context.Context, username string) (domain.User, error)
	Create(ctx context.Context, username, passwordHash string) (domain.User, error)
}

type UserService interface {
	Register(ctx context.Context, credentials domain.Credentials) (domain.User, error)
	Login(ctx context.Context, credentials domain.Credentials) (string, error)
	Profile(ctx context.Context, userID uint64) (domain.User, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

type TokenIssuer interface {
	Issue(userID uint64) (string, error)
}

type TokenVerifier interface {
	Verify(token string) (uint64, error)
}
