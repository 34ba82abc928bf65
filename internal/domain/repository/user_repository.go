package repository

//go:generate mockgen -source=user_repository.go -destination=mocks/user_repository_mock.go -package=mocks

import (
	"context"
	"time"

	"github.com/oksasatya/campus-social/internal/domain/entity"
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	MarkVerified(ctx context.Context, id string) error
	// DeleteUnverifiedBefore removes accounts that never completed verification
	// and were created before cutoff. It returns the number removed.
	DeleteUnverifiedBefore(ctx context.Context, cutoff time.Time) (int64, error)
	GetSummaries(ctx context.Context, ids []string) (map[string]entity.UserSummary, error)
}
