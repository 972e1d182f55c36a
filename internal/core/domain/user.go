package domain

import "time"

type User struct {
	ID           uint64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Credentials struct {
	Username string
	Password string
}
