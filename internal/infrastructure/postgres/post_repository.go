package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/campus-social/internal/domain/entity"
	"github.com/oksasatya/campus-social/internal/domain/repository"
	"github.com/oksasatya/campus-social/pkg/apperror"
	"github.com/oksasatya/campus-social/pkg/pagination"
)

type PostRepository struct {
	pool *pgxpool.Pool
}

func NewPostRepository(pool *pgxpool.Pool) *PostRepository {
	return &PostRepository{pool: pool}
}

const postSelect = `
	SELECT p.id, p.author_id, u.user_name, u.avatar_url, p.post_type, p.caption,
	       p.content, p.image_url, p.video_url, p.duration_seconds,
	       p.link_url, p.link_title, p.link_description, p.created_at, p.updated_at
	FROM posts p
	JOIN users u ON u.id = p.author_id`

// postColumns is the flat column view of a payload. Exactly the columns of
// the post's own variant are non-nil.
type postColumns struct {
	content         *string
	imageURL        *string
	videoURL        *string
	durationSeconds *int
	linkURL         *string
	linkTitle       *string
	linkDescription *string
}

func columnsOf(payload entity.PostPayload) (postColumns, error) {
	var c postColumns
	switch p := payload.(type) {
	case entity.TextPayload:
		c.content = &p.Content
	case entity.PhotoPayload:
		c.imageURL = &p.Image
	case entity.VideoPayload:
		c.videoURL = &p.Video
		c.durationSeconds = p.Duration
	case entity.LinkPayload:
		c.linkURL = &p.URL
		c.linkTitle = &p.Title
		c.linkDescription = p.Description
	default:
		return c, fmt.Errorf("unsupported post payload %T", payload)
	}
	return c, nil
}

func (c postColumns) payload(t entity.PostType) (entity.PostPayload, error) {
	deref := func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	}
	switch t {
	case entity.PostTypeText:
		return entity.TextPayload{Content: deref(c.content)}, nil
	case entity.PostTypePhoto:
		return entity.PhotoPayload{Image: deref(c.imageURL)}, nil
	case entity.PostTypeVideo:
		return entity.VideoPayload{Video: deref(c.videoURL), Duration: c.durationSeconds}, nil
	case entity.PostTypeLink:
		return entity.LinkPayload{URL: deref(c.linkURL), Title: deref(c.linkTitle), Description: c.linkDescription}, nil
	}
	return nil, fmt.Errorf("unknown post type %q", t)
}

func scanPost(row pgx.Row) (*entity.Post, error) {
	p := &entity.Post{}
	var (
		c       postColumns
		rawType string
	)
	err := row.Scan(&p.ID, &p.AuthorID, &p.Author.UserName, &p.Author.AvatarURL, &rawType, &p.Caption,
		&c.content, &c.imageURL, &c.videoURL, &c.durationSeconds,
		&c.linkURL, &c.linkTitle, &c.linkDescription, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.Author.ID = p.AuthorID
	p.Type = entity.PostType(rawType)
	if p.Payload, err = c.payload(p.Type); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PostRepository) Create(ctx context.Context, p *entity.Post) error {
	c, err := columnsOf(p.Payload)
	if err != nil {
		return err
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO posts (author_id, post_type, caption, content, image_url, video_url, duration_seconds,
		                   link_url, link_title, link_description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`, p.AuthorID, string(p.Type), p.Caption, c.content, c.imageURL, c.videoURL, c.durationSeconds,
		c.linkURL, c.linkTitle, c.linkDescription)
	if err := row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return translate(err, "post")
	}
	return nil
}

func (r *PostRepository) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	p, err := scanPost(r.pool.QueryRow(ctx, postSelect+` WHERE p.id = $1`, id))
	if err != nil {
		return nil, translate(err, "post")
	}
	return p, nil
}

func (r *PostRepository) ListByAuthors(ctx context.Context, authorIDs []string, q pagination.Query) ([]*entity.Post, error) {
	if len(authorIDs) == 0 {
		return []*entity.Post{}, nil
	}
	var (
		afterAt *time.Time
		afterID *string
	)
	if q.After != nil {
		afterAt, afterID = &q.After.CreatedAt, &q.After.ID
	}
	rows, err := r.pool.Query(ctx, postSelect+`
		WHERE p.author_id = ANY($1::uuid[])
		  AND ($2::timestamptz IS NULL OR (p.created_at, p.id) < ($2::timestamptz, $3::uuid))
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT $4 OFFSET $5`, authorIDs, afterAt, afterID, q.Fetch(), q.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*entity.Post, 0, q.Fetch())
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostRepository) Update(ctx context.Context, p *entity.Post) error {
	c, err := columnsOf(p.Payload)
	if err != nil {
		return err
	}
	err = r.pool.QueryRow(ctx, `
		UPDATE posts
		SET caption = $1, content = $2, image_url = $3, video_url = $4, duration_seconds = $5,
		    link_url = $6, link_title = $7, link_description = $8, updated_at = now()
		WHERE id = $9 AND author_id = $10
		RETURNING updated_at
	`, p.Caption, c.content, c.imageURL, c.videoURL, c.durationSeconds,
		c.linkURL, c.linkTitle, c.linkDescription, p.ID, p.AuthorID).Scan(&p.UpdatedAt)
	return translate(err, "post")
}

func (r *PostRepository) Delete(ctx context.Context, id, authorID string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1 AND author_id = $2`, id, authorID)
	if err != nil {
		return translate(err, "post")
	}
	if res.RowsAffected() == 0 {
		return apperror.NotFound("post")
	}
	return nil
}

var _ repository.PostRepository = (*PostRepository)(nil)
