package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/campus-social/internal/domain/entity"
	"github.com/oksasatya/campus-social/internal/domain/repository"
	"github.com/oksasatya/campus-social/pkg/apperror"
)

type FriendshipRepository struct {
	pool *pgxpool.Pool
}

func NewFriendshipRepository(pool *pgxpool.Pool) *FriendshipRepository {
	return &FriendshipRepository{pool: pool}
}

const friendshipColumns = `id, requester_id, target_id, created_at, accepted_at, is_active`

// confirmedFriendsSQL yields the ids of users with a confirmed edge touching $1.
const confirmedFriendsSQL = `
	SELECT target_id AS friend_id FROM friendships
	WHERE requester_id = $1 AND is_active AND accepted_at IS NOT NULL
	UNION
	SELECT requester_id FROM friendships
	WHERE target_id = $1 AND is_active AND accepted_at IS NOT NULL`

func scanFriendship(row pgx.Row) (*entity.Friendship, error) {
	f := &entity.Friendship{}
	if err := row.Scan(&f.ID, &f.RequesterID, &f.TargetID, &f.CreatedAt, &f.AcceptedAt, &f.IsActive); err != nil {
		return nil, err
	}
	return f, nil
}

func (r *FriendshipRepository) Create(ctx context.Context, requesterID, targetID string) (*entity.Friendship, error) {
	f, err := scanFriendship(r.pool.QueryRow(ctx, `
		INSERT INTO friendships (requester_id, target_id)
		VALUES ($1, $2)
		RETURNING `+friendshipColumns, requesterID, targetID))
	if err != nil {
		if constraintOf(err) == "uq_friendships_pair" {
			return nil, apperror.Conflict("friend request already exists", err)
		}
		return nil, translate(err, "user")
	}
	return f, nil
}

func (r *FriendshipRepository) Get(ctx context.Context, requesterID, targetID string) (*entity.Friendship, error) {
	f, err := scanFriendship(r.pool.QueryRow(ctx, `
		SELECT `+friendshipColumns+` FROM friendships
		WHERE requester_id = $1 AND target_id = $2`, requesterID, targetID))
	if err != nil {
		return nil, translate(err, "friend request")
	}
	return f, nil
}

func (r *FriendshipRepository) Accept(ctx context.Context, requesterID, targetID string, at time.Time) (*entity.Friendship, error) {
	f, err := scanFriendship(r.pool.QueryRow(ctx, `
		UPDATE friendships
		SET is_active = TRUE, accepted_at = COALESCE(accepted_at, $3)
		WHERE requester_id = $1 AND target_id = $2
		RETURNING `+friendshipColumns, requesterID, targetID, at))
	if err != nil {
		return nil, translate(err, "friend request")
	}
	return f, nil
}

func (r *FriendshipRepository) DeleteBetween(ctx context.Context, a, b string) (int64, error) {
	res, err := r.pool.Exec(ctx, `
		DELETE FROM friendships
		WHERE (requester_id = $1 AND target_id = $2) OR (requester_id = $2 AND target_id = $1)`, a, b)
	if err != nil {
		return 0, translate(err, "friendship")
	}
	return res.RowsAffected(), nil
}

func (r *FriendshipRepository) ConfirmedFriendIDs(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.pool.Query(ctx, confirmedFriendsSQL, userID)
	if err != nil {
		return nil, err
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *FriendshipRepository) ListPendingFor(ctx context.Context, userID string) ([]*entity.Friendship, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT f.id, f.requester_id, f.target_id, f.created_at, f.accepted_at, f.is_active,
		       u.id, u.user_name, u.avatar_url
		FROM friendships f
		JOIN users u ON u.id = f.requester_id
		WHERE f.target_id = $1 AND f.accepted_at IS NULL
		ORDER BY f.created_at DESC, f.id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.Friendship
	for rows.Next() {
		f := &entity.Friendship{}
		if err := rows.Scan(&f.ID, &f.RequesterID, &f.TargetID, &f.CreatedAt, &f.AcceptedAt, &f.IsActive,
			&f.Requester.ID, &f.Requester.UserName, &f.Requester.AvatarURL); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *FriendshipRepository) ListFriends(ctx context.Context, userID string) ([]entity.UserSummary, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT u.id, u.user_name, u.avatar_url
		FROM users u
		JOIN (`+confirmedFriendsSQL+`) f ON f.friend_id = u.id
		ORDER BY u.user_name`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []entity.UserSummary{}
	for rows.Next() {
		var s entity.UserSummary
		if err := rows.Scan(&s.ID, &s.UserName, &s.AvatarURL); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

var _ repository.FriendshipRepository = (*FriendshipRepository)(nil)
