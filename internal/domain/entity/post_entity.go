package entity

import (
	"fmt"
	"time"
)

type PostType string

const (
	PostTypeText  PostType = "text"
	PostTypePhoto PostType = "photo"
	PostTypeVideo PostType = "video"
	PostTypeLink  PostType = "link"
)

// ParsePostType returns the tag for s, or false if s names no variant.
func ParsePostType(s string) (PostType, bool) {
	switch PostType(s) {
	case PostTypeText, PostTypePhoto, PostTypeVideo, PostTypeLink:
		return PostType(s), true
	default:
		return "", false
	}
}

// PostPayload is the variant-specific body of a post. The set of
// implementations is closed to this package.
type PostPayload interface {
	PostType() PostType
	isPostPayload()
}

type TextPayload struct {
	Content string `json:"content" validate:"nonblank"`
}

type PhotoPayload struct {
	Image string `json:"image" validate:"nonblank,http_url,max=2048"`
}

type VideoPayload struct {
	Video string `json:"video" validate:"nonblank,http_url,max=2048"`
	// Duration in seconds, when known.
	Duration *int `json:"duration" validate:"omitempty,gte=0"`
}

type LinkPayload struct {
	URL         string  `json:"url" validate:"nonblank,http_url,max=2048"`
	Title       string  `json:"title" validate:"nonblank,max=255"`
	Description *string `json:"description"`
}

func (TextPayload) PostType() PostType  { return PostTypeText }
func (PhotoPayload) PostType() PostType { return PostTypePhoto }
func (VideoPayload) PostType() PostType { return PostTypeVideo }
func (LinkPayload) PostType() PostType  { return PostTypeLink }

func (TextPayload) isPostPayload()  {}
func (PhotoPayload) isPostPayload() {}
func (VideoPayload) isPostPayload() {}
func (LinkPayload) isPostPayload()  {}

type Post struct {
	ID        string
	AuthorID  string
	Author    UserSummary
	Type      PostType
	Caption   *string
	Payload   PostPayload
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewPost builds an unsaved post. The tag must agree with the payload.
func NewPost(authorID string, t PostType, caption *string, payload PostPayload) (*Post, error) {
	if payload == nil {
		return nil, fmt.Errorf("post payload is required")
	}
	if payload.PostType() != t {
		return nil, fmt.Errorf("post type %q does not match %q payload", t, payload.PostType())
	}
	return &Post{AuthorID: authorID, Type: t, Caption: caption, Payload: payload}, nil
}
