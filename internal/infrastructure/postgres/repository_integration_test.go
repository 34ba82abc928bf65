package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/campus-social/internal/domain/entity"
	"github.com/oksasatya/campus-social/pkg/apperror"
	"github.com/oksasatya/campus-social/pkg/pagination"
)

// These tests need a disposable database: TEST_DATABASE_URL=postgres://... go test ./...
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	require.NoError(t, RunMigrations(dsn, "../../../db/migrations", nil))

	ctx := context.Background()
	pool, err := NewPool(ctx, PoolConfig{DSN: dsn, MaxConns: 4, MinConns: 1, MaxConnLifetime: time.Hour})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, `TRUNCATE comments, likes, posts, friendships, users CASCADE`)
	require.NoError(t, err)
	return pool
}

func createUser(t *testing.T, repo *UserRepository, name string) *entity.User {
	t.Helper()
	u := &entity.User{Email: name + "@isbstudent.comsats.edu.pk", UserName: name, Password: "x", IsVerified: true, IsActive: true}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func TestUserRepository_Conflicts(t *testing.T) {
	pool := testPool(t)
	users := NewUserRepository(pool)
	ctx := context.Background()

	createUser(t, users, "alice")
	err := users.Create(ctx, &entity.User{Email: "alice@isbstudent.comsats.edu.pk", UserName: "alice2", Password: "x"})
	assert.True(t, apperror.Is(err, apperror.KindConflict))

	_, err = users.GetByID(ctx, "not-a-uuid")
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestFriendshipRepository_Lifecycle(t *testing.T) {
	pool := testPool(t)
	users := NewUserRepository(pool)
	friends := NewFriendshipRepository(pool)
	ctx := context.Background()

	a := createUser(t, users, "a")
	b := createUser(t, users, "b")

	_, err := friends.Create(ctx, a.ID, b.ID)
	require.NoError(t, err)
	_, err = friends.Create(ctx, a.ID, b.ID)
	assert.True(t, apperror.Is(err, apperror.KindConflict))
	_, err = friends.Create(ctx, b.ID, a.ID)
	assert.True(t, apperror.Is(err, apperror.KindConflict), "reverse direction is the same pair")

	ids, err := friends.ConfirmedFriendIDs(ctx, b.ID)
	require.NoError(t, err)
	assert.Empty(t, ids)

	pending, err := friends.ListPendingFor(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "a", pending[0].Requester.UserName)

	f, err := friends.Accept(ctx, a.ID, b.ID, time.Now())
	require.NoError(t, err)
	assert.True(t, f.Confirmed())

	ids, err = friends.ConfirmedFriendIDs(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{a.ID}, ids)
	ids, err = friends.ConfirmedFriendIDs(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{b.ID}, ids)

	_, err = friends.Accept(ctx, b.ID, a.ID, time.Now())
	assert.True(t, apperror.Is(err, apperror.KindNotFound))

	n, err := friends.DeleteBetween(ctx, b.ID, a.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestPostRepository_KeysetAndCascade(t *testing.T) {
	pool := testPool(t)
	users := NewUserRepository(pool)
	posts := NewPostRepository(pool)
	likes := NewLikeRepository(pool)
	comments := NewCommentRepository(pool)
	ctx := context.Background()

	a := createUser(t, users, "author")
	title := "Go"
	for i := 0; i < 5; i++ {
		p, err := entity.NewPost(a.ID, entity.PostTypeLink, nil, entity.LinkPayload{URL: "https://go.dev", Title: title})
		require.NoError(t, err)
		require.NoError(t, posts.Create(ctx, p))
	}

	q := pagination.Query{Limit: 2}
	seen := map[string]bool{}
	for {
		rows, err := posts.ListByAuthors(ctx, []string{a.ID}, q)
		require.NoError(t, err)
		page := pagination.Build(rows, q, func(p *entity.Post) pagination.Cursor {
			return pagination.Cursor{CreatedAt: p.CreatedAt, ID: p.ID}
		})
		for _, p := range page.Items {
			assert.False(t, seen[p.ID], "duplicate across pages")
			seen[p.ID] = true
			assert.Equal(t, "author", p.Author.UserName)
		}
		if !page.HasMore {
			break
		}
		cur, err := pagination.Decode(page.NextCursor)
		require.NoError(t, err)
		q.After = &cur
	}
	assert.Len(t, seen, 5)

	var target string
	for id := range seen {
		target = id
		break
	}
	liked, err := likes.Toggle(ctx, a.ID, target)
	require.NoError(t, err)
	assert.True(t, liked)
	liked, err = likes.Toggle(ctx, a.ID, target)
	require.NoError(t, err)
	assert.False(t, liked)
	_, err = likes.Toggle(ctx, a.ID, target)
	require.NoError(t, err)

	root := &entity.Comment{PostID: target, AuthorID: a.ID, Content: "first"}
	require.NoError(t, comments.Create(ctx, root))
	reply := &entity.Comment{PostID: target, AuthorID: a.ID, Content: "reply", ParentID: &root.ID}
	require.NoError(t, comments.Create(ctx, reply))

	require.NoError(t, posts.Delete(ctx, target, a.ID))

	n, err := likes.Count(ctx, target)
	require.NoError(t, err)
	assert.Zero(t, n)
	n, err = comments.Count(ctx, target)
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = likes.Toggle(ctx, a.ID, target)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestPosts_PayloadColumnsOfOtherVariantsStayNull(t *testing.T) {
	pool := testPool(t)
	users := NewUserRepository(pool)
	ctx := context.Background()
	a := createUser(t, users, "writer")

	stray := []struct {
		name, postType, sql string
	}{
		{"text with link title", "text", `INSERT INTO posts (author_id, post_type, content, link_title) VALUES ($1, $2, 'hi', 'Go')`},
		{"photo with duration", "photo", `INSERT INTO posts (author_id, post_type, image_url, duration_seconds) VALUES ($1, $2, 'https://x/a.png', 5)`},
		{"video with link description", "video", `INSERT INTO posts (author_id, post_type, video_url, link_description) VALUES ($1, $2, 'https://x/a.mp4', 'd')`},
		{"link with duration", "link", `INSERT INTO posts (author_id, post_type, link_url, link_title, duration_seconds) VALUES ($1, $2, 'https://go.dev', 'Go', 5)`},
	}
	for _, tc := range stray {
		t.Run(tc.name, func(t *testing.T) {
			_, err := pool.Exec(ctx, tc.sql, a.ID, tc.postType)
			require.Error(t, err)
			assert.Equal(t, "ck_posts_payload", constraintOf(err))
		})
	}

	_, err := pool.Exec(ctx, `INSERT INTO posts (author_id, post_type, video_url, duration_seconds) VALUES ($1, 'video', 'https://x/a.mp4', 5)`, a.ID)
	require.NoError(t, err)
}

func TestCommentRepository_ParentOnOtherPost(t *testing.T) {
	pool := testPool(t)
	users := NewUserRepository(pool)
	posts := NewPostRepository(pool)
	comments := NewCommentRepository(pool)
	ctx := context.Background()

	a := createUser(t, users, "c")
	p1, _ := entity.NewPost(a.ID, entity.PostTypeText, nil, entity.TextPayload{Content: "one"})
	p2, _ := entity.NewPost(a.ID, entity.PostTypeText, nil, entity.TextPayload{Content: "two"})
	require.NoError(t, posts.Create(ctx, p1))
	require.NoError(t, posts.Create(ctx, p2))

	parent := &entity.Comment{PostID: p1.ID, AuthorID: a.ID, Content: "on p1"}
	require.NoError(t, comments.Create(ctx, parent))

	err := comments.Create(ctx, &entity.Comment{PostID: p2.ID, AuthorID: a.ID, Content: "x", ParentID: &parent.ID})
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}
