package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/campus-social/internal/domain/entity"
	"github.com/oksasatya/campus-social/internal/domain/repository"
	"github.com/oksasatya/campus-social/pkg/apperror"
	"github.com/oksasatya/campus-social/pkg/pagination"
)

type CommentRepository struct {
	pool *pgxpool.Pool
}

func NewCommentRepository(pool *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{pool: pool}
}

const commentSelect = `
	SELECT c.id, c.post_id, c.author_id, u.user_name, u.avatar_url, c.content, c.parent_id, c.created_at, c.updated_at
	FROM comments c
	JOIN users u ON u.id = c.author_id`

func scanComment(row pgx.Row) (*entity.Comment, error) {
	c := &entity.Comment{}
	if err := row.Scan(&c.ID, &c.PostID, &c.AuthorID, &c.Author.UserName, &c.Author.AvatarURL,
		&c.Content, &c.ParentID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	c.Author.ID = c.AuthorID
	return c, nil
}

func (r *CommentRepository) Create(ctx context.Context, c *entity.Comment) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO comments (post_id, author_id, content, parent_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, c.PostID, c.AuthorID, c.Content, c.ParentID).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if constraintOf(err) == "fk_comments_parent_same_post" {
			return apperror.Field("parent_id", "must reference a comment on the same post")
		}
		return translate(err, "post")
	}
	return nil
}

func (r *CommentRepository) GetByID(ctx context.Context, id string) (*entity.Comment, error) {
	c, err := scanComment(r.pool.QueryRow(ctx, commentSelect+` WHERE c.id = $1`, id))
	if err != nil {
		return nil, translate(err, "comment")
	}
	return c, nil
}

func (r *CommentRepository) ListByPost(ctx context.Context, postID string, q pagination.Query) ([]*entity.Comment, error) {
	var (
		afterAt *time.Time
		afterID *string
	)
	if q.After != nil {
		afterAt, afterID = &q.After.CreatedAt, &q.After.ID
	}
	rows, err := r.pool.Query(ctx, commentSelect+`
		WHERE c.post_id = $1
		  AND ($2::timestamptz IS NULL OR (c.created_at, c.id) < ($2::timestamptz, $3::uuid))
		ORDER BY c.created_at DESC, c.id DESC
		LIMIT $4 OFFSET $5`, postID, afterAt, afterID, q.Fetch(), q.Offset)
	if err != nil {
		return nil, translate(err, "post")
	}
	defer rows.Close()

	out := make([]*entity.Comment, 0, q.Fetch())
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CommentRepository) Count(ctx context.Context, postID string) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM comments WHERE post_id = $1`, postID).Scan(&n)
	return n, translate(err, "post")
}

func (r *CommentRepository) CountByPosts(ctx context.Context, postIDs []string) (map[string]int64, error) {
	return countGrouped(ctx, r.pool, `
		SELECT post_id, count(*) FROM comments
		WHERE post_id = ANY($1::uuid[])
		GROUP BY post_id`, postIDs)
}

var _ repository.CommentRepository = (*CommentRepository)(nil)
