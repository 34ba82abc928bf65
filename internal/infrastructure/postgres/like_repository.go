package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/campus-social/internal/domain/repository"
)

// toggleAttempts bounds how often Toggle retries when a concurrent toggle
// of the same pair made both its delete and insert miss.
const toggleAttempts = 3

var ErrToggleContention = errors.New("like toggle lost too many races")

type LikeRepository struct {
	pool *pgxpool.Pool
}

func NewLikeRepository(pool *pgxpool.Pool) *LikeRepository {
	return &LikeRepository{pool: pool}
}

// Toggle removes the like if present, otherwise adds it. Each step is a
// single conditional statement so concurrent toggles never double count.
func (r *LikeRepository) Toggle(ctx context.Context, userID, postID string) (bool, error) {
	for attempt := 0; attempt < toggleAttempts; attempt++ {
		var id string
		err := r.pool.QueryRow(ctx, `
			DELETE FROM likes WHERE user_id = $1 AND post_id = $2
			RETURNING id`, userID, postID).Scan(&id)
		if err == nil {
			return false, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return false, translate(err, "post")
		}

		err = r.pool.QueryRow(ctx, `
			INSERT INTO likes (user_id, post_id) VALUES ($1, $2)
			ON CONFLICT (user_id, post_id) DO NOTHING
			RETURNING id`, userID, postID).Scan(&id)
		if err == nil {
			return true, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return false, translate(err, "post")
		}
	}
	return false, ErrToggleContention
}

func (r *LikeRepository) Count(ctx context.Context, postID string) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM likes WHERE post_id = $1`, postID).Scan(&n)
	return n, translate(err, "post")
}

func (r *LikeRepository) Exists(ctx context.Context, userID, postID string) (bool, error) {
	var ok bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM likes WHERE user_id = $1 AND post_id = $2)`, userID, postID).Scan(&ok)
	return ok, translate(err, "post")
}

func (r *LikeRepository) CountByPosts(ctx context.Context, postIDs []string) (map[string]int64, error) {
	return countGrouped(ctx, r.pool, `
		SELECT post_id, count(*) FROM likes
		WHERE post_id = ANY($1::uuid[])
		GROUP BY post_id`, postIDs)
}

func (r *LikeRepository) LikedByUser(ctx context.Context, userID string, postIDs []string) (map[string]bool, error) {
	out := make(map[string]bool, len(postIDs))
	if len(postIDs) == 0 || userID == "" {
		return out, nil
	}
	rows, err := r.pool.Query(ctx, `
		SELECT post_id FROM likes
		WHERE user_id = $1 AND post_id = ANY($2::uuid[])`, userID, postIDs)
	if err != nil {
		return nil, err
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}

// countGrouped runs a (post_id, count) query over ids.
func countGrouped(ctx context.Context, pool *pgxpool.Pool, sql string, ids []string) (map[string]int64, error) {
	out := make(map[string]int64, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := pool.Query(ctx, sql, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			id string
			n  int64
		)
		if err := rows.Scan(&id, &n); err != nil {
			return nil, err
		}
		out[id] = n
	}
	return out, rows.Err()
}

var _ repository.LikeRepository = (*LikeRepository)(nil)
