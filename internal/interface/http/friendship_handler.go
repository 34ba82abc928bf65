package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"github.com/oksasatya/campus-social/internal/domain/entity"
	"github.com/oksasatya/campus-social/pkg/response"
)

type FriendshipHandler struct {
	Friends FriendshipService
}

func NewFriendshipHandler(friends FriendshipService) *FriendshipHandler {
	return &FriendshipHandler{Friends: friends}
}

type friendRequestRequest struct {
	UserID string `json:"user_id" binding:"required,uuid"`
}

func (h *FriendshipHandler) Request(c *gin.Context) {
	var req friendRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	f, err := h.Friends.Request(c.Request.Context(), currentUser(c), req.UserID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, toFriendRequest(f), "friend request sent", nil)
}

// ListPending returns requests waiting for the caller's answer.
func (h *FriendshipHandler) ListPending(c *gin.Context) {
	reqs, err := h.Friends.ListPending(c.Request.Context(), currentUser(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	out := lo.Map(reqs, func(f *entity.Friendship, _ int) friendRequestResponse { return toFriendRequest(f) })
	response.Success(c, http.StatusOK, out, "pending friend requests", nil)
}

// Accept confirms the request sent by :userID to the caller.
func (h *FriendshipHandler) Accept(c *gin.Context) {
	f, err := h.Friends.Accept(c.Request.Context(), c.Param("userID"), currentUser(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toFriendRequest(f), "friend request accepted", nil)
}

func (h *FriendshipHandler) Remove(c *gin.Context) {
	if err := h.Friends.Remove(c.Request.Context(), currentUser(c), c.Param("userID")); err != nil {
		response.FromError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *FriendshipHandler) List(c *gin.Context) {
	friends, err := h.Friends.ListFriends(c.Request.Context(), currentUser(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	if friends == nil {
		friends = []entity.UserSummary{}
	}
	response.Success(c, http.StatusOK, friends, "friends", nil)
}
