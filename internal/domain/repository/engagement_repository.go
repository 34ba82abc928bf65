package repository

//go:generate mockgen -source=engagement_repository.go -destination=mocks/engagement_repository_mock.go -package=mocks

import (
	"context"

	"github.com/oksasatya/campus-social/internal/domain/entity"
	"github.com/oksasatya/campus-social/pkg/pagination"
)

type LikeRepository interface {
	// Toggle flips the like of userID on postID and reports the resulting state.
	Toggle(ctx context.Context, userID, postID string) (bool, error)
	Count(ctx context.Context, postID string) (int64, error)
	Exists(ctx context.Context, userID, postID string) (bool, error)
	CountByPosts(ctx context.Context, postIDs []string) (map[string]int64, error)
	// LikedByUser returns the subset of postIDs liked by userID.
	LikedByUser(ctx context.Context, userID string, postIDs []string) (map[string]bool, error)
}

type CommentRepository interface {
	Create(ctx context.Context, c *entity.Comment) error
	GetByID(ctx context.Context, id string) (*entity.Comment, error)
	// ListByPost returns comments newest first. It reads at most q.Fetch() rows.
	ListByPost(ctx context.Context, postID string, q pagination.Query) ([]*entity.Comment, error)
	Count(ctx context.Context, postID string) (int64, error)
	CountByPosts(ctx context.Context, postIDs []string) (map[string]int64, error)
}
