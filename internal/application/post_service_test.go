package application

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/campus-social/internal/domain/entity"
	portmocks "github.com/oksasatya/campus-social/internal/domain/port/mocks"
	"github.com/oksasatya/campus-social/internal/domain/repository/mocks"
	"github.com/oksasatya/campus-social/pkg/apperror"
)

func strPtr(s string) *string { return &s }

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	var ae *apperror.Error
	require.True(t, errors.As(err, &ae), "expected *apperror.Error, got %v", err)
	return ae.Fields
}

func TestCreatePost_ValidationNamesTheField(t *testing.T) {
	cases := []struct {
		name  string
		in    CreatePostInput
		field string
	}{
		{"unknown type", CreatePostInput{Type: "poll"}, "post_type"},
		{"blank text", CreatePostInput{Type: "text", Content: "   "}, "content"},
		{"photo without image", CreatePostInput{Type: "photo"}, "image"},
		{"video without video", CreatePostInput{Type: "video"}, "video"},
		{"link without title", CreatePostInput{Type: "link", URL: "https://example.com"}, "title"},
		{"link without url", CreatePostInput{Type: "link", Title: "t"}, "url"},
		{"link with bad url", CreatePostInput{Type: "link", URL: "not a url", Title: "t"}, "url"},
		{"link with script url", CreatePostInput{Type: "link", URL: "javascript:alert(document.cookie)", Title: "t"}, "url"},
		{"link with data url", CreatePostInput{Type: "link", URL: "data:text/html,<script>alert(1)</script>", Title: "t"}, "url"},
		{"photo with script url", CreatePostInput{Type: "photo", Image: "javascript:alert(1)"}, "image"},
		{"negative duration", CreatePostInput{Type: "video", Video: "https://cdn/x.mp4", Duration: intPtr(-1)}, "duration"},
		{"long caption", CreatePostInput{Type: "text", Content: "x", Caption: strPtr(strings.Repeat("a", maxCaptionLen+1))}, "caption"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			s := NewPostService(mocks.NewMockPostRepository(ctrl), nil, nil)

			_, err := s.CreatePost(context.Background(), "u1", tc.in)
			require.Error(t, err)
			assert.True(t, apperror.Is(err, apperror.KindValidation))
			assert.Contains(t, fieldsOf(t, err), tc.field)
		})
	}
}

func intPtr(i int) *int { return &i }

func TestCreatePost_StoresTagAndPayload(t *testing.T) {
	ctrl := gomock.NewController(t)
	posts := mocks.NewMockPostRepository(ctrl)
	s := NewPostService(posts, nil, nil)

	posts.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p *entity.Post) error {
		assert.Equal(t, entity.PostTypeLink, p.Type)
		assert.Equal(t, entity.LinkPayload{URL: "https://example.com", Title: "Example"}, p.Payload)
		p.ID = "p1"
		return nil
	})
	posts.EXPECT().GetByID(gomock.Any(), "p1").Return(&entity.Post{ID: "p1", Type: entity.PostTypeLink}, nil)

	p, err := s.CreatePost(context.Background(), "u1", CreatePostInput{Type: "LINK", URL: " https://example.com ", Title: "Example", Content: "ignored"})
	require.NoError(t, err)
	assert.Equal(t, "p1", p.ID)
}

func TestCreatePost_UploadsMedia(t *testing.T) {
	ctrl := gomock.NewController(t)
	posts := mocks.NewMockPostRepository(ctrl)
	assets := portmocks.NewMockAssetStore(ctrl)
	s := NewPostService(posts, assets, nil)

	assets.EXPECT().Upload(gomock.Any(), gomock.Any(), "image/png", gomock.Any()).
		DoAndReturn(func(_ context.Context, objectPath, _ string, _ any) (string, error) {
			assert.True(t, strings.HasPrefix(objectPath, "posts/u1/"))
			assert.True(t, strings.HasSuffix(objectPath, ".png"))
			return "https://storage.googleapis.com/bucket/" + objectPath, nil
		})
	posts.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p *entity.Post) error {
		img := p.Payload.(entity.PhotoPayload).Image
		assert.True(t, strings.HasPrefix(img, "https://storage.googleapis.com/bucket/posts/u1/"))
		p.ID = "p2"
		return nil
	})
	posts.EXPECT().GetByID(gomock.Any(), "p2").Return(&entity.Post{ID: "p2"}, nil)

	_, err := s.CreatePost(context.Background(), "u1", CreatePostInput{
		Type:  "photo",
		Media: &MediaUpload{Reader: strings.NewReader("png"), Filename: "Cat.PNG", ContentType: "image/png"},
	})
	require.NoError(t, err)
}

func TestCreatePost_RejectsWrongMediaType(t *testing.T) {
	ctrl := gomock.NewController(t)
	s := NewPostService(mocks.NewMockPostRepository(ctrl), portmocks.NewMockAssetStore(ctrl), nil)

	_, err := s.CreatePost(context.Background(), "u1", CreatePostInput{
		Type:  "video",
		Media: &MediaUpload{Reader: strings.NewReader("x"), Filename: "a.png", ContentType: "image/png"},
	})
	assert.Contains(t, fieldsOf(t, err), "video")
}

func TestUpdatePost(t *testing.T) {
	existing := func() *entity.Post {
		return &entity.Post{ID: "p1", AuthorID: "u1", Type: entity.PostTypeText, Payload: entity.TextPayload{Content: "old"}}
	}

	t.Run("author edits content", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		posts := mocks.NewMockPostRepository(ctrl)
		posts.EXPECT().GetByID(gomock.Any(), "p1").Return(existing(), nil)
		posts.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

		p, err := NewPostService(posts, nil, nil).UpdatePost(context.Background(), "p1", "u1", UpdatePostInput{Content: strPtr("new"), Caption: strPtr("c")})
		require.NoError(t, err)
		assert.Equal(t, entity.TextPayload{Content: "new"}, p.Payload)
		assert.Equal(t, "c", *p.Caption)
	})

	t.Run("other user", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		posts := mocks.NewMockPostRepository(ctrl)
		posts.EXPECT().GetByID(gomock.Any(), "p1").Return(existing(), nil)

		_, err := NewPostService(posts, nil, nil).UpdatePost(context.Background(), "p1", "u2", UpdatePostInput{Content: strPtr("new")})
		assert.True(t, apperror.Is(err, apperror.KindPermission))
	})

	t.Run("field of another variant", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		posts := mocks.NewMockPostRepository(ctrl)
		posts.EXPECT().GetByID(gomock.Any(), "p1").Return(existing(), nil)

		_, err := NewPostService(posts, nil, nil).UpdatePost(context.Background(), "p1", "u1", UpdatePostInput{Title: strPtr("t")})
		assert.Contains(t, fieldsOf(t, err), "title")
	})
}

func TestDeletePost(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		posts := mocks.NewMockPostRepository(ctrl)
		posts.EXPECT().GetByID(gomock.Any(), "p1").Return(nil, apperror.NotFound("post"))

		err := NewPostService(posts, nil, nil).DeletePost(context.Background(), "p1", "u1")
		assert.True(t, apperror.Is(err, apperror.KindNotFound))
	})

	t.Run("not the author", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		posts := mocks.NewMockPostRepository(ctrl)
		posts.EXPECT().GetByID(gomock.Any(), "p1").Return(&entity.Post{ID: "p1", AuthorID: "u1"}, nil)

		err := NewPostService(posts, nil, nil).DeletePost(context.Background(), "p1", "u2")
		assert.True(t, apperror.Is(err, apperror.KindPermission))
	})

	t.Run("author", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		posts := mocks.NewMockPostRepository(ctrl)
		posts.EXPECT().GetByID(gomock.Any(), "p1").Return(&entity.Post{ID: "p1", AuthorID: "u1"}, nil)
		posts.EXPECT().Delete(gomock.Any(), "p1", "u1").Return(nil)

		require.NoError(t, NewPostService(posts, nil, nil).DeletePost(context.Background(), "p1", "u1"))
	})
}

func TestDeletePost_CascadesEngagement(t *testing.T) {
	s := newScenario()
	ctx := context.Background()
	a, b := s.store.addUser("alice"), s.store.addUser("bob")
	p := s.text(t, a, "bye")
	_, err := s.engagement.ToggleLike(ctx, b.ID, p.ID)
	require.NoError(t, err)
	c, err := s.engagement.CreateComment(ctx, p.ID, b.ID, CreateCommentInput{Content: "first"})
	require.NoError(t, err)

	require.NoError(t, s.posts.DeletePost(ctx, p.ID, a.ID))

	_, err = s.posts.GetPost(ctx, p.ID)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
	_, err = memComments{s.store}.GetByID(ctx, c.ID)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
	n, err := s.engagement.LikeCount(ctx, p.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
}
