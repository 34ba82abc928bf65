package handlers

//go:generate mockgen -source=services.go -destination=mocks/services_mock.go -package=mocks

import (
	"context"
	"io"

	"github.com/oksasatya/campus-social/internal/application"
	"github.com/oksasatya/campus-social/internal/domain/entity"
	"github.com/oksasatya/campus-social/pkg/pagination"
)

// The handlers depend on these narrow views of the application services.

type AccountService interface {
	Register(ctx context.Context, in application.RegisterInput) (*entity.User, error)
	ResendOTP(ctx context.Context, email, clientIP string) error
	VerifyOTP(ctx context.Context, email, code string) (*entity.User, error)
	RequestPasswordReset(ctx context.Context, email, clientIP string) error
	ResetPassword(ctx context.Context, email, code, newPassword string) error
}

type UserService interface {
	Login(ctx context.Context, email, password string) (*application.LoginResponse, application.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (application.TokenPair, string, error)
	Logout(ctx context.Context, userID string)
	GetProfile(ctx context.Context, userID string) (*entity.User, error)
	GetUser(ctx context.Context, id string) (*entity.User, error)
	UpdateProfile(ctx context.Context, userID string, in application.UpdateProfileInput) (*entity.User, error)
	UploadAvatar(ctx context.Context, userID string, r io.Reader, filename, contentType string) (string, error)
	SearchUsers(ctx context.Context, q string, size int) ([]entity.UserSummary, error)
}

type FriendshipService interface {
	Request(ctx context.Context, requesterID, targetID string) (*entity.Friendship, error)
	Accept(ctx context.Context, requesterID, callerID string) (*entity.Friendship, error)
	Remove(ctx context.Context, userID, otherID string) error
	ListFriends(ctx context.Context, userID string) ([]entity.UserSummary, error)
	ListPending(ctx context.Context, userID string) ([]*entity.Friendship, error)
}

type PostService interface {
	CreatePost(ctx context.Context, authorID string, in application.CreatePostInput) (*entity.Post, error)
	UpdatePost(ctx context.Context, id, requesterID string, in application.UpdatePostInput) (*entity.Post, error)
	DeletePost(ctx context.Context, id, requesterID string) error
}

type FeedService interface {
	GetFeed(ctx context.Context, viewerID string, req pagination.Request) (pagination.Page[application.DecoratedPost], error)
	GetUserPosts(ctx context.Context, ownerID, viewerID string, req pagination.Request) (pagination.Page[application.DecoratedPost], error)
	GetPost(ctx context.Context, viewerID, postID string) (application.DecoratedPost, error)
	DecoratePost(ctx context.Context, viewerID string, p *entity.Post) (application.DecoratedPost, error)
}

type EngagementService interface {
	ToggleLike(ctx context.Context, userID, postID string) (bool, error)
	CreateComment(ctx context.Context, postID, authorID string, in application.CreateCommentInput) (*entity.Comment, error)
	ListComments(ctx context.Context, postID string, req pagination.Request) (pagination.Page[*entity.Comment], error)
}

var (
	_ AccountService    = (*application.AccountService)(nil)
	_ UserService       = (*application.UserService)(nil)
	_ FriendshipService = (*application.FriendshipService)(nil)
	_ PostService       = (*application.PostService)(nil)
	_ FeedService       = (*application.FeedService)(nil)
	_ EngagementService = (*application.EngagementService)(nil)
)
