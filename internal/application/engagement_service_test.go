package application

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/campus-social/internal/domain/entity"
	"github.com/oksasatya/campus-social/internal/domain/repository/mocks"
	"github.com/oksasatya/campus-social/pkg/apperror"
	"github.com/oksasatya/campus-social/pkg/metrics"
	"github.com/oksasatya/campus-social/pkg/pagination"
)

func TestToggleLike_IsItsOwnInverse(t *testing.T) {
	s := newScenario()
	ctx := context.Background()
	a := s.store.addUser("alice")
	p := s.text(t, a, "hi")
	before := testutil.ToFloat64(metrics.LikeToggles.WithLabelValues("liked"))

	for i, want := range []bool{true, false, true, false} {
		liked, err := s.engagement.ToggleLike(ctx, a.ID, p.ID)
		require.NoError(t, err)
		assert.Equal(t, want, liked, "toggle %d", i)
		isLiked, err := s.engagement.IsLikedBy(ctx, a.ID, p.ID)
		require.NoError(t, err)
		assert.Equal(t, want, isLiked)
	}
	assert.Equal(t, before+2, testutil.ToFloat64(metrics.LikeToggles.WithLabelValues("liked")))
}

func TestToggleLike_MissingPost(t *testing.T) {
	ctrl := gomock.NewController(t)
	likes := mocks.NewMockLikeRepository(ctrl)
	likes.EXPECT().Toggle(gomock.Any(), "u1", "nope").Return(false, apperror.NotFound("post"))

	s := NewEngagementService(nil, likes, nil, pagination.PageSizeConfig{}, nil)
	_, err := s.ToggleLike(context.Background(), "u1", "nope")
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestCreateComment(t *testing.T) {
	s := newScenario()
	ctx := context.Background()
	a := s.store.addUser("alice")
	p1 := s.text(t, a, "one")
	p2 := s.text(t, a, "two")

	root, err := s.engagement.CreateComment(ctx, p1.ID, a.ID, CreateCommentInput{Content: "  root  "})
	require.NoError(t, err)
	assert.Equal(t, "root", root.Content)
	assert.False(t, root.IsReply())
	assert.Equal(t, "alice", root.Author.UserName)

	reply, err := s.engagement.CreateComment(ctx, p1.ID, a.ID, CreateCommentInput{Content: "reply", ParentID: &root.ID})
	require.NoError(t, err)
	assert.True(t, reply.IsReply())

	_, err = s.engagement.CreateComment(ctx, p2.ID, a.ID, CreateCommentInput{Content: "cross", ParentID: &root.ID})
	assert.Contains(t, fieldsOf(t, err), "parent_id")

	_, err = s.engagement.CreateComment(ctx, p1.ID, a.ID, CreateCommentInput{Content: "ghost", ParentID: strPtr("comment-999")})
	assert.Contains(t, fieldsOf(t, err), "parent_id")

	_, err = s.engagement.CreateComment(ctx, "post-missing", a.ID, CreateCommentInput{Content: "x"})
	assert.True(t, apperror.Is(err, apperror.KindNotFound))

	_, err = s.engagement.CreateComment(ctx, p1.ID, a.ID, CreateCommentInput{Content: " "})
	assert.Contains(t, fieldsOf(t, err), "content")

	n, err := s.engagement.CommentCount(ctx, p1.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}

func TestListComments_NewestFirstWithCursor(t *testing.T) {
	s := newScenario()
	ctx := context.Background()
	a := s.store.addUser("alice")
	p := s.text(t, a, "thread")
	var ids []string
	for _, body := range []string{"c1", "c2", "c3"} {
		c, err := s.engagement.CreateComment(ctx, p.ID, a.ID, CreateCommentInput{Content: body})
		require.NoError(t, err)
		ids = append([]string{c.ID}, ids...)
	}

	first, err := s.engagement.ListComments(ctx, p.ID, pagination.Request{PageSize: 2})
	require.NoError(t, err)
	require.Len(t, first.Items, 2)
	assert.True(t, first.HasMore)
	assert.Equal(t, ids[0], first.Items[0].ID)

	second, err := s.engagement.ListComments(ctx, p.ID, pagination.Request{PageSize: 2, Cursor: first.NextCursor})
	require.NoError(t, err)
	require.Len(t, second.Items, 1)
	assert.Equal(t, ids[2], second.Items[0].ID)
	assert.False(t, second.HasMore)
}

func TestListComments_MissingPost(t *testing.T) {
	ctrl := gomock.NewController(t)
	posts := mocks.NewMockPostRepository(ctrl)
	posts.EXPECT().GetByID(gomock.Any(), "p1").Return(nil, apperror.NotFound("post"))

	s := NewEngagementService(posts, nil, mocks.NewMockCommentRepository(ctrl), pagination.PageSizeConfig{Default: 10, Max: 50}, nil)
	_, err := s.ListComments(context.Background(), "p1", pagination.Request{})
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestListComments_ClampsPageSize(t *testing.T) {
	ctrl := gomock.NewController(t)
	posts := mocks.NewMockPostRepository(ctrl)
	comments := mocks.NewMockCommentRepository(ctrl)
	posts.EXPECT().GetByID(gomock.Any(), "p1").Return(&entity.Post{ID: "p1"}, nil)
	comments.EXPECT().ListByPost(gomock.Any(), "p1", pagination.Query{Limit: 50, Page: 1}).Return(nil, nil)

	s := NewEngagementService(posts, nil, comments, pagination.PageSizeConfig{Default: 10, Max: 50}, nil)
	page, err := s.ListComments(context.Background(), "p1", pagination.Request{PageSize: 500})
	require.NoError(t, err)
	assert.NotNil(t, page.Items)
	assert.Equal(t, 50, page.PageSize)
}
