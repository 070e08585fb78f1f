package domain

//go:generate mockgen -destination=../../mocks/mock_user_repository.go -package=mocks github.com/yudhapratama/auth-service/internal/auth/domain UserRepository
//go:generate mockgen -destination=../../mocks/mock_session_store.go -package=mocks github.com/yudhapratama/auth-service/internal/auth/domain SessionStore
//go:generate mockgen -destination=../../mocks/mock_notifier.go -package=mocks github.com/yudhapratama/auth-service/internal/auth/domain Notifier

import (
	"context"
	"time"
)

// UserRepository is the durable user store. Lookups return (nil, nil) when no
// row matches; Create reports an AlreadyExists error on a duplicate email.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	UpdateLastLogin(ctx context.Context, id string) error
}

// SessionStore is the ephemeral key-value store backing refresh-token
// registration and reset tokens. The backing cache enforces TTL expiry
// itself; Get and GetDel return ("", nil) for absent or expired keys, and
// only connectivity failures are errors.
type SessionStore interface {
	Put(ctx context.Context, key, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	GetDel(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

// Notifier delivers a freshly minted reset token to the user out of band.
type Notifier interface {
	SendPasswordReset(ctx context.Context, email, token string) error
}
