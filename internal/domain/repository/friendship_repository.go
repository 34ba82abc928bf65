package repository

//go:generate mockgen -source=friendship_repository.go -destination=mocks/friendship_repository_mock.go -package=mocks

import (
	"context"
	"time"

	"github.com/oksasatya/campus-social/internal/domain/entity"
)

type FriendshipRepository interface {
	// Create inserts a pending edge. A duplicate (requester, target) pair is a conflict.
	Create(ctx context.Context, requesterID, targetID string) (*entity.Friendship, error)
	Get(ctx context.Context, requesterID, targetID string) (*entity.Friendship, error)
	// Accept activates the edge requester -> target. Accepting an active edge is a no-op.
	Accept(ctx context.Context, requesterID, targetID string, at time.Time) (*entity.Friendship, error)
	// DeleteBetween removes the edge between a and b in either direction.
	DeleteBetween(ctx context.Context, a, b string) (int64, error)
	// ConfirmedFriendIDs returns users with a confirmed edge to or from userID.
	ConfirmedFriendIDs(ctx context.Context, userID string) ([]string, error)
	// ListPendingFor returns unaccepted edges whose target is userID.
	ListPendingFor(ctx context.Context, userID string) ([]*entity.Friendship, error)
	ListFriends(ctx context.Context, userID string) ([]entity.UserSummary, error)
}
