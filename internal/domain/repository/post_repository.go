package repository

//go:generate mockgen -source=post_repository.go -destination=mocks/post_repository_mock.go -package=mocks

import (
	"context"

	"github.com/oksasatya/campus-social/internal/domain/entity"
	"github.com/oksasatya/campus-social/pkg/pagination"
)

type PostRepository interface {
	Create(ctx context.Context, p *entity.Post) error
	GetByID(ctx context.Context, id string) (*entity.Post, error)
	// ListByAuthors returns posts by any of authorIDs ordered by created_at DESC, id DESC.
	// It reads at most q.Fetch() rows.
	ListByAuthors(ctx context.Context, authorIDs []string, q pagination.Query) ([]*entity.Post, error)
	Update(ctx context.Context, p *entity.Post) error
	// Delete removes the post if authorID owns it. Likes and comments cascade.
	Delete(ctx context.Context, id, authorID string) error
}
