package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/campus-social/pkg/response"
)

type FeedHandler struct {
	Feed FeedService
}

func NewFeedHandler(feed FeedService) *FeedHandler {
	return &FeedHandler{Feed: feed}
}

// GetFeed returns the caller's posts and their friends' posts, newest first.
func (h *FeedHandler) GetFeed(c *gin.Context) {
	req, ok := bindPage(c)
	if !ok {
		return
	}
	page, err := h.Feed.GetFeed(c.Request.Context(), currentUser(c), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, page, "feed", nil)
}

func (h *FeedHandler) GetUserPosts(c *gin.Context) {
	req, ok := bindPage(c)
	if !ok {
		return
	}
	page, err := h.Feed.GetUserPosts(c.Request.Context(), c.Param("id"), currentUser(c), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, page, "user posts", nil)
}
