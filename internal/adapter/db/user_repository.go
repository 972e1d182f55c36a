package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"tasktree/internal/core/domain"
	"tasktree/internal/core/ports"
)

const (
	userColumns             = `id, username, password_hash, created_at, updated_at`
	findUserByIDQuery       = `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	findUserByUsernameQuery = `SELECT ` + userColumns + ` FROM users WHERE username = ?`
	insertUserQuery         = `INSERT INTO users (username, password_hash, created_at, updated_at) VALUES (?, ?, ?, ?)`
)

type UserRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

type userRow struct {
	ID           uint64    `db:"id"`
	Username     string    `db:"username"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

var _ ports.UserRepository = (*UserRepository)(nil)

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db, now: utcNow}
}

func (r *UserRepository) FindByID(ctx context.Context, id uint64) (domain.User, error) {
	return r.getUser(ctx, findUserByIDQuery, id)
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	return r.getUser(ctx, findUserByUsernameQuery, username)
}

func (r *UserRepository) Create(ctx context.Context, username, passwordHash string) (domain.User, error) {
	now := r.now()
	id, err := insertReturningID(ctx, r.db, insertUserQuery, username, passwordHash, now, now)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.User{}, domain.ErrUserAlreadyExists
		}
		return domain.User{}, fmt.Errorf("insert user: %w", err)
	}

	return r.FindByID(ctx, id)
}

func (r *UserRepository) getUser(ctx context.Context, query string, args ...any) (domain.User, error) {
	var row userRow
	if err := r.db.GetContext(ctx, &row, r.db.Rebind(query), args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("get user: %w", err)
	}

	return domain.User{
		ID:           row.ID,
		Username:     row.Username,
		PasswordHash: row.PasswordHash,
		CreatedAt:    row.CreatedAt.UTC(),
		UpdatedAt:    row.UpdatedAt.UTC(),
	}, nil
}
