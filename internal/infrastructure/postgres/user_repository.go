package postgres

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/campus-social/internal/domain/entity"
	"github.com/oksasatya/campus-social/internal/domain/repository"
	"github.com/oksasatya/campus-social/pkg/apperror"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, email, user_name, password_hash, first_name, last_name, department, about,
	avatar_url, is_verified, is_active, created_at, updated_at`

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	err := row.Scan(&u.ID, &u.Email, &u.UserName, &u.Password, &u.FirstName, &u.LastName,
		&u.Department, &u.About, &u.AvatarURL, &u.IsVerified, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (email, user_name, password_hash, first_name, last_name, department, about, avatar_url, is_verified, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`, u.Email, u.UserName, u.Password, u.FirstName, u.LastName, u.Department, u.About, u.AvatarURL, u.IsVerified, u.IsActive)

	err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil && strings.Contains(constraintOf(err), "user_name") {
		return apperror.Conflict("user name already taken", err)
	}
	if err != nil && strings.Contains(constraintOf(err), "email") {
		return apperror.Conflict("email already registered", err)
	}
	return translate(err, "user")
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return nil, translate(err, "user")
	}
	return u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email))
	if err != nil {
		return nil, translate(err, "user")
	}
	return u, nil
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	u.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET user_name = $1, first_name = $2, last_name = $3, department = $4, about = $5, avatar_url = $6, updated_at = $7
		WHERE id = $8
	`, u.UserName, u.FirstName, u.LastName, u.Department, u.About, u.AvatarURL, u.UpdatedAt, u.ID)
	if err != nil {
		if strings.Contains(constraintOf(err), "user_name") {
			return apperror.Conflict("user name already taken", err)
		}
		return translate(err, "user")
	}
	if res.RowsAffected() == 0 {
		return apperror.NotFound("user")
	}
	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	res, err := r.pool.Exec(ctx, `UPDATE users SET password_hash = $1, updated_at = now() WHERE id = $2`, passwordHash, id)
	if err != nil {
		return translate(err, "user")
	}
	if res.RowsAffected() == 0 {
		return apperror.NotFound("user")
	}
	return nil
}

func (r *UserRepository) MarkVerified(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `UPDATE users SET is_verified = TRUE, is_active = TRUE, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return translate(err, "user")
	}
	if res.RowsAffected() == 0 {
		return apperror.NotFound("user")
	}
	return nil
}

func (r *UserRepository) DeleteUnverifiedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.pool.Exec(ctx, `DELETE FROM users WHERE NOT is_verified AND created_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected(), nil
}

func (r *UserRepository) GetSummaries(ctx context.Context, ids []string) (map[string]entity.UserSummary, error) {
	out := make(map[string]entity.UserSummary, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := r.pool.Query(ctx, `SELECT id, user_name, avatar_url FROM users WHERE id = ANY($1::uuid[])`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var s entity.UserSummary
		if err := rows.Scan(&s.ID, &s.UserName, &s.AvatarURL); err != nil {
			return nil, err
		}
		out[s.ID] = s
	}
	return out, rows.Err()
}

var _ repository.UserRepository = (*UserRepository)(nil)
