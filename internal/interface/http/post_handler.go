package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/campus-social/internal/application"
	"github.com/oksasatya/campus-social/internal/domain/entity"
	"github.com/oksasatya/campus-social/pkg/pagination"
	"github.com/oksasatya/campus-social/pkg/response"
)

const maxMediaBytes = 64 << 20

// PostHandler serves posts and the likes and comments attached to them.
type PostHandler struct {
	Posts      PostService
	Feed       FeedService
	Engagement EngagementService
}

func NewPostHandler(posts PostService, feed FeedService, engagement EngagementService) *PostHandler {
	return &PostHandler{Posts: posts, Feed: feed, Engagement: engagement}
}

// createPostRequest binds from JSON or from a multipart form. Photo and video
// posts sent as multipart carry the file in an "image" or "video" part.
type createPostRequest struct {
	PostType    string  `json:"post_type" form:"post_type" binding:"required"`
	Caption     *string `json:"caption" form:"caption"`
	Content     string  `json:"content" form:"content"`
	Image       string  `json:"image" form:"image"`
	Video       string  `json:"video" form:"video"`
	Duration    *int    `json:"duration" form:"duration"`
	URL         string  `json:"url" form:"url"`
	Title       string  `json:"title" form:"title"`
	Description *string `json:"description" form:"description"`
}

type updatePostRequest struct {
	Caption     *string `json:"caption"`
	Content     *string `json:"content"`
	Image       *string `json:"image"`
	Video       *string `json:"video"`
	Duration    *int    `json:"duration"`
	URL         *string `json:"url"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

type createCommentRequest struct {
	Content  string  `json:"content" binding:"nonblank,max=2000"`
	ParentID *string `json:"parent_id" binding:"omitempty,uuid"`
}

type likeResponse struct {
	Liked bool                      `json:"liked"`
	Post  application.DecoratedPost `json:"post"`
}

func (h *PostHandler) Create(c *gin.Context) {
	multipartBody := strings.HasPrefix(c.ContentType(), gin.MIMEMultipartPOSTForm)
	if multipartBody {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxMediaBytes)
	}
	var req createPostRequest
	if err := c.ShouldBind(&req); err != nil {
		badPayload(c, err)
		return
	}
	in := application.CreatePostInput{
		Type:        req.PostType,
		Caption:     req.Caption,
		Content:     req.Content,
		Image:       req.Image,
		Video:       req.Video,
		Duration:    req.Duration,
		URL:         req.URL,
		Title:       req.Title,
		Description: req.Description,
	}

	if multipartBody {
		part := strings.ToLower(req.PostType)
		if part == string(entity.PostTypePhoto) {
			part = "image"
		}
		if fh, err := c.FormFile(part); err == nil {
			f, err := fh.Open()
			if err != nil {
				response.FromError(c, err)
				return
			}
			defer f.Close()
			in.Media = &application.MediaUpload{Reader: f, Filename: fh.Filename, ContentType: fh.Header.Get("Content-Type")}
		}
	}

	uid := currentUser(c)
	p, err := h.Posts.CreatePost(c.Request.Context(), uid, in)
	if err != nil {
		response.FromError(c, err)
		return
	}
	out, err := h.Feed.DecoratePost(c.Request.Context(), uid, p)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, out, "post created", nil)
}

func (h *PostHandler) Get(c *gin.Context) {
	out, err := h.Feed.GetPost(c.Request.Context(), currentUser(c), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, out, "post", nil)
}

func (h *PostHandler) Update(c *gin.Context) {
	var req updatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	uid := currentUser(c)
	p, err := h.Posts.UpdatePost(c.Request.Context(), c.Param("id"), uid, application.UpdatePostInput{
		Caption:     req.Caption,
		Content:     req.Content,
		Image:       req.Image,
		Video:       req.Video,
		Duration:    req.Duration,
		URL:         req.URL,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	out, err := h.Feed.DecoratePost(c.Request.Context(), uid, p)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, out, "post updated", nil)
}

func (h *PostHandler) Delete(c *gin.Context) {
	if err := h.Posts.DeletePost(c.Request.Context(), c.Param("id"), currentUser(c)); err != nil {
		response.FromError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ToggleLike flips the caller's like and returns the post as the caller now sees it.
func (h *PostHandler) ToggleLike(c *gin.Context) {
	uid, postID := currentUser(c), c.Param("id")
	liked, err := h.Engagement.ToggleLike(c.Request.Context(), uid, postID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	out, err := h.Feed.GetPost(c.Request.Context(), uid, postID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	msg := "post unliked"
	if liked {
		msg = "post liked"
	}
	response.Success(c, http.StatusOK, likeResponse{Liked: liked, Post: out}, msg, nil)
}

func (h *PostHandler) ListComments(c *gin.Context) {
	req, ok := bindPage(c)
	if !ok {
		return
	}
	page, err := h.Engagement.ListComments(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, pagination.Map(page, toComment), "comments", nil)
}

func (h *PostHandler) CreateComment(c *gin.Context) {
	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	cm, err := h.Engagement.CreateComment(c.Request.Context(), c.Param("id"), currentUser(c), application.CreateCommentInput{
		Content:  req.Content,
		ParentID: req.ParentID,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, toComment(cm), "comment created", nil)
}
