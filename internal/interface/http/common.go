package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/campus-social/internal/domain/entity"
	"github.com/oksasatya/campus-social/internal/interface/middleware"
	"github.com/oksasatya/campus-social/pkg/pagination"
	"github.com/oksasatya/campus-social/pkg/response"
	"github.com/oksasatya/campus-social/pkg/validation"
)

// CtxUserIDKey is set by the auth middleware.
const CtxUserIDKey = "userID"

func currentUser(c *gin.Context) string {
	return c.GetString(CtxUserIDKey)
}

func clientIP(c *gin.Context) string {
	if ip := c.GetString(middleware.CtxRealIPKey); ip != "" {
		return ip
	}
	return c.ClientIP()
}

func badPayload(c *gin.Context, err error) {
	response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
}

// bindPage reads cursor, page and page_size from the query string.
func bindPage(c *gin.Context) (pagination.Request, bool) {
	var req pagination.Request
	if err := c.ShouldBindQuery(&req); err != nil {
		badPayload(c, err)
		return req, false
	}
	return req, true
}

type profileResponse struct {
	ID         string    `json:"id"`
	Email      string    `json:"email,omitempty"`
	UserName   string    `json:"user_name"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Department string    `json:"department"`
	About      string    `json:"about"`
	AvatarURL  string    `json:"avatar_url"`
	IsVerified bool      `json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// toProfile renders a user. The email is only included for the owner.
func toProfile(u *entity.User, self bool) profileResponse {
	p := profileResponse{
		ID:         u.ID,
		UserName:   u.UserName,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Department: u.Department,
		About:      u.About,
		AvatarURL:  u.AvatarURL,
		IsVerified: u.IsVerified,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
	if self {
		p.Email = u.Email
	}
	return p
}

type commentResponse struct {
	ID        string             `json:"id"`
	PostID    string             `json:"post_id"`
	Author    entity.UserSummary `json:"author"`
	Content   string             `json:"content"`
	ParentID  *string            `json:"parent_id"`
	CreatedAt time.Time          `json:"created_at"`
}

func toComment(c *entity.Comment) commentResponse {
	return commentResponse{
		ID:        c.ID,
		PostID:    c.PostID,
		Author:    c.Author,
		Content:   c.Content,
		ParentID:  c.ParentID,
		CreatedAt: c.CreatedAt,
	}
}

type friendRequestResponse struct {
	ID          string              `json:"id"`
	RequesterID string              `json:"requester_id"`
	TargetID    string              `json:"target_id"`
	Requester   *entity.UserSummary `json:"requester,omitempty"`
	Accepted    bool                `json:"accepted"`
	CreatedAt   time.Time           `json:"created_at"`
	AcceptedAt  *time.Time          `json:"accepted_at,omitempty"`
}

func toFriendRequest(f *entity.Friendship) friendRequestResponse {
	out := friendRequestResponse{
		ID:          f.ID,
		RequesterID: f.RequesterID,
		TargetID:    f.TargetID,
		Accepted:    f.Confirmed(),
		CreatedAt:   f.CreatedAt,
		AcceptedAt:  f.AcceptedAt,
	}
	if f.Requester.ID != "" {
		r := f.Requester
		out.Requester = &r
	}
	return out
}
