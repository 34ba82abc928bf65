package application

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/campus-social/internal/domain/entity"
	repo "github.com/oksasatya/campus-social/internal/domain/repository"
	"github.com/oksasatya/campus-social/pkg/apperror"
	"github.com/oksasatya/campus-social/pkg/metrics"
	"github.com/oksasatya/campus-social/pkg/pagination"
)

const maxCommentLen = 2000

// EngagementService owns likes and comments on posts.
type EngagementService struct {
	Posts        repo.PostRepository
	Likes        repo.LikeRepository
	Comments     repo.CommentRepository
	CommentPages pagination.PageSizeConfig
	Logger       *logrus.Logger
}

func NewEngagementService(posts repo.PostRepository, likes repo.LikeRepository, comments repo.CommentRepository, pages pagination.PageSizeConfig, logger *logrus.Logger) *EngagementService {
	return &EngagementService{Posts: posts, Likes: likes, Comments: comments, CommentPages: pages, Logger: logger}
}

// ToggleLike flips the user's like on the post and returns the new state.
// Toggling twice leaves the post as it was.
func (s *EngagementService) ToggleLike(ctx context.Context, userID, postID string) (bool, error) {
	liked, err := s.Likes.Toggle(ctx, userID, postID)
	if err != nil {
		metrics.LikeToggles.WithLabelValues("error").Inc()
		if _, known := apperror.KindOf(err); !known && s.Logger != nil {
			s.Logger.WithError(err).WithFields(logrus.Fields{"user_id": userID, "post_id": postID}).Error("toggle like failed")
		}
		return false, err
	}
	if liked {
		metrics.LikeToggles.WithLabelValues("liked").Inc()
	} else {
		metrics.LikeToggles.WithLabelValues("unliked").Inc()
	}
	return liked, nil
}

func (s *EngagementService) LikeCount(ctx context.Context, postID string) (int64, error) {
	return s.Likes.Count(ctx, postID)
}

func (s *EngagementService) CommentCount(ctx context.Context, postID string) (int64, error) {
	return s.Comments.Count(ctx, postID)
}

func (s *EngagementService) IsLikedBy(ctx context.Context, userID, postID string) (bool, error) {
	return s.Likes.Exists(ctx, userID, postID)
}

type CreateCommentInput struct {
	Content  string
	ParentID *string
}

// CreateComment adds a comment, optionally as a reply. A reply must point at a
// comment on the same post.
func (s *EngagementService) CreateComment(ctx context.Context, postID, authorID string, in CreateCommentInput) (*entity.Comment, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, apperror.Field("content", "is required")
	}
	if len([]rune(content)) > maxCommentLen {
		return nil, apperror.Field("content", "is too long")
	}
	if _, err := s.Posts.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	var parentID *string
	if in.ParentID != nil && strings.TrimSpace(*in.ParentID) != "" {
		id := strings.TrimSpace(*in.ParentID)
		parent, err := s.Comments.GetByID(ctx, id)
		if apperror.Is(err, apperror.KindNotFound) {
			return nil, apperror.Field("parent_id", "does not exist")
		}
		if err != nil {
			return nil, err
		}
		if parent.PostID != postID {
			return nil, apperror.Field("parent_id", "must reference a comment on the same post")
		}
		parentID = &id
	}

	c := &entity.Comment{PostID: postID, AuthorID: authorID, Content: content, ParentID: parentID}
	if err := s.Comments.Create(ctx, c); err != nil {
		return nil, err
	}
	return s.Comments.GetByID(ctx, c.ID)
}

// ListComments pages through a post's comments, newest first.
func (s *EngagementService) ListComments(ctx context.Context, postID string, req pagination.Request) (pagination.Page[*entity.Comment], error) {
	q, err := pagination.Resolve(req, s.CommentPages)
	if err != nil {
		return pagination.Page[*entity.Comment]{}, err
	}
	if _, err := s.Posts.GetByID(ctx, postID); err != nil {
		return pagination.Page[*entity.Comment]{}, err
	}
	rows, err := s.Comments.ListByPost(ctx, postID, q)
	if err != nil {
		return pagination.Page[*entity.Comment]{}, err
	}
	return pagination.Build(rows, q, func(c *entity.Comment) pagination.Cursor {
		return pagination.Cursor{CreatedAt: c.CreatedAt, ID: c.ID}
	}), nil
}
