package application

import (
	"context"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/campus-social/internal/domain/entity"
	"github.com/oksasatya/campus-social/internal/domain/port"
	repo "github.com/oksasatya/campus-social/internal/domain/repository"
	"github.com/oksasatya/campus-social/pkg/apperror"
	"github.com/oksasatya/campus-social/pkg/validation"
)

const maxCaptionLen = 2200

// PostService creates and maintains posts. Reads for display go through FeedService.
type PostService struct {
	Repo   repo.PostRepository
	Assets port.AssetStore
	Logger *logrus.Logger
}

func NewPostService(posts repo.PostRepository, assets port.AssetStore, logger *logrus.Logger) *PostService {
	return &PostService{Repo: posts, Assets: assets, Logger: logger}
}

// MediaUpload is a photo or video file sent along with a post.
type MediaUpload struct {
	Reader      io.Reader
	Filename    string
	ContentType string
}

// CreatePostInput is the flat request shape. Only the fields of the chosen
// variant are read.
type CreatePostInput struct {
	Type        string
	Caption     *string
	Content     string
	Image       string
	Video       string
	Duration    *int
	URL         string
	Title       string
	Description *string
	Media       *MediaUpload
}

// CreatePost validates the variant payload and stores tag and payload together.
func (s *PostService) CreatePost(ctx context.Context, authorID string, in CreatePostInput) (*entity.Post, error) {
	t, ok := entity.ParsePostType(strings.ToLower(strings.TrimSpace(in.Type)))
	if !ok {
		return nil, apperror.Field("post_type", "must be one of: text, photo, video, link")
	}
	if err := checkCaption(in.Caption); err != nil {
		return nil, err
	}
	if in.Media != nil && (t == entity.PostTypePhoto || t == entity.PostTypeVideo) {
		url, err := s.upload(ctx, authorID, t, in.Media)
		if err != nil {
			return nil, err
		}
		if t == entity.PostTypePhoto {
			in.Image = url
		} else {
			in.Video = url
		}
	}

	var payload entity.PostPayload
	switch t {
	case entity.PostTypeText:
		payload = entity.TextPayload{Content: in.Content}
	case entity.PostTypePhoto:
		payload = entity.PhotoPayload{Image: in.Image}
	case entity.PostTypeVideo:
		payload = entity.VideoPayload{Video: in.Video, Duration: in.Duration}
	case entity.PostTypeLink:
		payload = entity.LinkPayload{URL: strings.TrimSpace(in.URL), Title: in.Title, Description: in.Description}
	}
	if err := validatePayload(payload); err != nil {
		return nil, err
	}

	p, err := entity.NewPost(authorID, t, in.Caption, payload)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, p); err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"post_id": p.ID, "post_type": t}).Debug("post created")
	}
	return s.Repo.GetByID(ctx, p.ID)
}

func (s *PostService) GetPost(ctx context.Context, id string) (*entity.Post, error) {
	return s.Repo.GetByID(ctx, id)
}

// UpdatePostInput carries optional changes. Payload fields must belong to the
// post's own variant; the variant itself cannot change.
type UpdatePostInput struct {
	Caption     *string
	Content     *string
	Image       *string
	Video       *string
	Duration    *int
	URL         *string
	Title       *string
	Description *string
}

func (s *PostService) UpdatePost(ctx context.Context, id, requesterID string, in UpdatePostInput) (*entity.Post, error) {
	p, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.AuthorID != requesterID {
		return nil, apperror.Permission("only the author can edit this post")
	}
	if in.Caption != nil {
		if err := checkCaption(in.Caption); err != nil {
			return nil, err
		}
		p.Caption = in.Caption
	}

	foreign := map[string]string{}
	reject := func(field string, set bool) {
		if set {
			foreign[field] = "not allowed for " + string(p.Type) + " posts"
		}
	}
	switch pl := p.Payload.(type) {
	case entity.TextPayload:
		reject("image", in.Image != nil)
		reject("video", in.Video != nil)
		reject("duration", in.Duration != nil)
		reject("url", in.URL != nil)
		reject("title", in.Title != nil)
		reject("description", in.Description != nil)
		if in.Content != nil {
			pl.Content = *in.Content
		}
		p.Payload = pl
	case entity.PhotoPayload:
		reject("content", in.Content != nil)
		reject("video", in.Video != nil)
		reject("duration", in.Duration != nil)
		reject("url", in.URL != nil)
		reject("title", in.Title != nil)
		reject("description", in.Description != nil)
		if in.Image != nil {
			pl.Image = *in.Image
		}
		p.Payload = pl
	case entity.VideoPayload:
		reject("content", in.Content != nil)
		reject("image", in.Image != nil)
		reject("url", in.URL != nil)
		reject("title", in.Title != nil)
		reject("description", in.Description != nil)
		if in.Video != nil {
			pl.Video = *in.Video
		}
		if in.Duration != nil {
			pl.Duration = in.Duration
		}
		p.Payload = pl
	case entity.LinkPayload:
		reject("content", in.Content != nil)
		reject("image", in.Image != nil)
		reject("video", in.Video != nil)
		reject("duration", in.Duration != nil)
		if in.URL != nil {
			pl.URL = strings.TrimSpace(*in.URL)
		}
		if in.Title != nil {
			pl.Title = *in.Title
		}
		if in.Description != nil {
			pl.Description = in.Description
		}
		p.Payload = pl
	}
	if len(foreign) > 0 {
		return nil, apperror.Validation("invalid post update", foreign)
	}
	if err := validatePayload(p.Payload); err != nil {
		return nil, err
	}
	if err := s.Repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// DeletePost removes a post owned by requester. Likes and comments go with it.
func (s *PostService) DeletePost(ctx context.Context, id, requesterID string) error {
	p, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p.AuthorID != requesterID {
		return apperror.Permission("only the author can delete this post")
	}
	return s.Repo.Delete(ctx, id, requesterID)
}

func (s *PostService) upload(ctx context.Context, authorID string, t entity.PostType, m *MediaUpload) (string, error) {
	field, prefix := "image", "image/"
	if t == entity.PostTypeVideo {
		field, prefix = "video", "video/"
	}
	if !strings.HasPrefix(m.ContentType, prefix) {
		return "", apperror.Field(field, "must be a "+field+" file")
	}
	if s.Assets == nil {
		return "", apperror.Field(field, "uploads are not available")
	}
	objectPath := path.Join("posts", authorID, uuid.NewString()+strings.ToLower(filepath.Ext(m.Filename)))
	url, err := s.Assets.Upload(ctx, objectPath, m.ContentType, m.Reader)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("object", objectPath).Error("media upload failed")
		}
		return "", err
	}
	return url, nil
}

func validatePayload(payload entity.PostPayload) error {
	if fields := validation.Struct(payload); len(fields) > 0 {
		return apperror.Validation("invalid "+string(payload.PostType())+" post", fields)
	}
	return nil
}

func checkCaption(caption *string) error {
	if caption != nil && len([]rune(*caption)) > maxCaptionLen {
		return apperror.Field("caption", "is too long")
	}
	return nil
}
