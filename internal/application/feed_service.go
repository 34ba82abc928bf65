package application

import (
	"context"
	"encoding/json"
	"time"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/oksasatya/campus-social/internal/domain/entity"
	repo "github.com/oksasatya/campus-social/internal/domain/repository"
	"github.com/oksasatya/campus-social/pkg/apperror"
	"github.com/oksasatya/campus-social/pkg/metrics"
	"github.com/oksasatya/campus-social/pkg/pagination"
)

// AuthorResolver answers whose posts a viewer may see.
type AuthorResolver interface {
	VisibleAuthorSet(ctx context.Context, viewerID string) ([]string, error)
}

// FeedService assembles pages of decorated posts.
type FeedService struct {
	Authors        AuthorResolver
	Users          repo.UserRepository
	Posts          repo.PostRepository
	Likes          repo.LikeRepository
	Comments       repo.CommentRepository
	FeedPages      pagination.PageSizeConfig
	UserPostsPages pagination.PageSizeConfig
	Logger         *logrus.Logger
}

type FeedServiceConfig struct {
	FeedPages      pagination.PageSizeConfig
	UserPostsPages pagination.PageSizeConfig
}

func NewFeedService(authors AuthorResolver, users repo.UserRepository, posts repo.PostRepository, likes repo.LikeRepository, comments repo.CommentRepository, cfg FeedServiceConfig, logger *logrus.Logger) *FeedService {
	return &FeedService{
		Authors:        authors,
		Users:          users,
		Posts:          posts,
		Likes:          likes,
		Comments:       comments,
		FeedPages:      cfg.FeedPages,
		UserPostsPages: cfg.UserPostsPages,
		Logger:         logger,
	}
}

// DecoratedPost is a post with its engagement figures relative to one viewer.
type DecoratedPost struct {
	Post          *entity.Post
	LikesCount    int64
	CommentsCount int64
	IsLiked       bool
}

type decoratedBase struct {
	ID            string             `json:"id"`
	Author        entity.UserSummary `json:"author"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
	PostType      entity.PostType    `json:"post_type"`
	Caption       *string            `json:"caption"`
	LikesCount    int64              `json:"likes_count"`
	CommentsCount int64              `json:"comments_count"`
	IsLiked       bool               `json:"is_liked"`
}

// MarshalJSON flattens the payload so that only the post's own variant
// fields appear next to the common ones.
func (d DecoratedPost) MarshalJSON() ([]byte, error) {
	p := d.Post
	base := decoratedBase{
		ID:            p.ID,
		Author:        p.Author,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
		PostType:      p.Type,
		Caption:       p.Caption,
		LikesCount:    d.LikesCount,
		CommentsCount: d.CommentsCount,
		IsLiked:       d.IsLiked,
	}
	switch pl := p.Payload.(type) {
	case entity.TextPayload:
		return json.Marshal(struct {
			decoratedBase
			Content string `json:"content"`
		}{base, pl.Content})
	case entity.PhotoPayload:
		return json.Marshal(struct {
			decoratedBase
			ImageURL string `json:"image_url"`
		}{base, pl.Image})
	case entity.VideoPayload:
		return json.Marshal(struct {
			decoratedBase
			VideoURL string `json:"video_url"`
			Duration *int   `json:"duration"`
		}{base, pl.Video, pl.Duration})
	case entity.LinkPayload:
		return json.Marshal(struct {
			decoratedBase
			URL         string  `json:"url"`
			Title       string  `json:"title"`
			Description *string `json:"description"`
		}{base, pl.URL, pl.Title, pl.Description})
	default:
		return json.Marshal(base)
	}
}

// GetFeed returns the viewer's posts and those of their confirmed friends.
func (s *FeedService) GetFeed(ctx context.Context, viewerID string, req pagination.Request) (pagination.Page[DecoratedPost], error) {
	q, err := pagination.Resolve(req, s.FeedPages)
	if err != nil {
		return pagination.Page[DecoratedPost]{}, err
	}
	authors, err := s.Authors.VisibleAuthorSet(ctx, viewerID)
	if err != nil {
		return pagination.Page[DecoratedPost]{}, err
	}
	metrics.FeedAuthors.Observe(float64(len(authors)))
	metrics.FeedPages.WithLabelValues("feed").Inc()
	return s.page(ctx, viewerID, authors, q)
}

// GetUserPosts returns one user's posts. Likes are reported relative to viewerID.
func (s *FeedService) GetUserPosts(ctx context.Context, ownerID, viewerID string, req pagination.Request) (pagination.Page[DecoratedPost], error) {
	q, err := pagination.Resolve(req, s.UserPostsPages)
	if err != nil {
		return pagination.Page[DecoratedPost]{}, err
	}
	if s.Users != nil {
		owner, err := s.Users.GetByID(ctx, ownerID)
		if err != nil {
			return pagination.Page[DecoratedPost]{}, err
		}
		if !owner.IsActive && owner.ID != viewerID {
			return pagination.Page[DecoratedPost]{}, apperror.NotFound("user")
		}
	}
	metrics.FeedPages.WithLabelValues("user_posts").Inc()
	return s.page(ctx, viewerID, []string{ownerID}, q)
}

func (s *FeedService) page(ctx context.Context, viewerID string, authors []string, q pagination.Query) (pagination.Page[DecoratedPost], error) {
	rows, err := s.Posts.ListByAuthors(ctx, authors, q)
	if err != nil {
		return pagination.Page[DecoratedPost]{}, err
	}
	page := pagination.Build(rows, q, func(p *entity.Post) pagination.Cursor {
		return pagination.Cursor{CreatedAt: p.CreatedAt, ID: p.ID}
	})
	decorated, err := s.Decorate(ctx, viewerID, page.Items)
	if err != nil {
		return pagination.Page[DecoratedPost]{}, err
	}
	return pagination.Page[DecoratedPost]{
		Items:      decorated,
		NextCursor: page.NextCursor,
		HasMore:    page.HasMore,
		Page:       page.Page,
		PageSize:   page.PageSize,
	}, nil
}

// Decorate attaches like counts, comment counts and the viewer's like state.
// The three lookups run concurrently and fail together.
func (s *FeedService) Decorate(ctx context.Context, viewerID string, posts []*entity.Post) ([]DecoratedPost, error) {
	out := make([]DecoratedPost, len(posts))
	if len(posts) == 0 {
		return out, nil
	}
	ids := lo.Map(posts, func(p *entity.Post, _ int) string { return p.ID })

	var (
		likes    map[string]int64
		comments map[string]int64
		liked    map[string]bool
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		likes, err = s.Likes.CountByPosts(gctx, ids)
		return err
	})
	g.Go(func() error {
		var err error
		comments, err = s.Comments.CountByPosts(gctx, ids)
		return err
	})
	g.Go(func() error {
		var err error
		liked, err = s.Likes.LikedByUser(gctx, viewerID, ids)
		return err
	})
	if err := g.Wait(); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("posts", len(ids)).Error("decorate posts failed")
		}
		return nil, err
	}

	for i, p := range posts {
		out[i] = DecoratedPost{
			Post:          p,
			LikesCount:    likes[p.ID],
			CommentsCount: comments[p.ID],
			IsLiked:       liked[p.ID],
		}
	}
	return out, nil
}

// DecoratePost decorates a single post for viewerID.
func (s *FeedService) DecoratePost(ctx context.Context, viewerID string, p *entity.Post) (DecoratedPost, error) {
	out, err := s.Decorate(ctx, viewerID, []*entity.Post{p})
	if err != nil {
		return DecoratedPost{}, err
	}
	return out[0], nil
}

// GetPost loads and decorates one post. Any authenticated user may read a post by id.
func (s *FeedService) GetPost(ctx context.Context, viewerID, postID string) (DecoratedPost, error) {
	p, err := s.Posts.GetByID(ctx, postID)
	if err != nil {
		return DecoratedPost{}, err
	}
	return s.DecoratePost(ctx, viewerID, p)
}
