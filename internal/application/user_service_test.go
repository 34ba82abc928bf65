package application

import (
	"context"
	"errors"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/campus-social/internal/domain/entity"
	portmocks "github.com/oksasatya/campus-social/internal/domain/port/mocks"
	"github.com/oksasatya/campus-social/pkg/apperror"
	"github.com/oksasatya/campus-social/pkg/helpers"
)

func newUserScenario(t *testing.T) (*memStore, *UserService, *entity.User) {
	t.Helper()
	m := newMemStore()
	u := m.addUser("alice")
	hash, err := helpers.HashPassword("secret123")
	require.NoError(t, err)
	u.Password = hash
	jwt := helpers.NewJWTManager("access", "refresh", time.Minute, time.Hour)
	return m, NewUserService(memUsers{m}, jwt, nil, nil, nil, nil), u
}

func TestLogin(t *testing.T) {
	_, s, u := newUserScenario(t)
	ctx := context.Background()

	resp, pair, err := s.Login(ctx, strings.ToUpper(u.Email), "secret123")
	require.NoError(t, err)
	assert.Equal(t, u.ID, resp.UserID)
	claims, err := s.JWT.ParseAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.NotEmpty(t, claims.SessionID)

	_, _, err = s.Login(ctx, u.Email, "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = s.Login(ctx, "nobody@example.edu", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnverifiedAccount(t *testing.T) {
	m, s, u := newUserScenario(t)
	m.users[u.ID].IsActive = false

	_, _, err := s.Login(context.Background(), u.Email, "secret123")
	assert.True(t, apperror.Is(err, apperror.KindPermission))
}

func TestLogin_UpgradesWeakHash(t *testing.T) {
	m, s, u := newUserScenario(t)
	weak, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	m.users[u.ID].Password = string(weak)

	_, _, err = s.Login(context.Background(), u.Email, "secret123")
	require.NoError(t, err)
	cost, err := bcrypt.Cost([]byte(m.users[u.ID].Password))
	require.NoError(t, err)
	assert.Equal(t, helpers.PasswordCost, cost)
	assert.True(t, helpers.CompareHashAndPassword(m.users[u.ID].Password, "secret123"))
}

func TestRefresh_RotatesSession(t *testing.T) {
	_, s, u := newUserScenario(t)
	ctx := context.Background()
	_, pair, err := s.Login(ctx, u.Email, "secret123")
	require.NoError(t, err)

	next, uid, err := s.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID, uid)
	before, _ := s.JWT.ParseRefreshToken(pair.RefreshToken)
	after, _ := s.JWT.ParseRefreshToken(next.RefreshToken)
	assert.NotEqual(t, before.SessionID, after.SessionID)

	_, _, err = s.Refresh(ctx, pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

// sessionHook answers HGETALL with a fixed session and fails pipelines with
// execErr, so no Redis server is needed.
type sessionHook struct {
	sid     string
	execErr error
}

func (h *sessionHook) DialHook(redis.DialHook) redis.DialHook {
	return func(context.Context, string, string) (net.Conn, error) {
		return nil, errors.New("no redis in tests")
	}
}

func (h *sessionHook) ProcessHook(redis.ProcessHook) redis.ProcessHook {
	return func(_ context.Context, cmd redis.Cmder) error {
		if c, ok := cmd.(*redis.MapStringStringCmd); ok {
			c.SetVal(map[string]string{"sid": h.sid})
		}
		return nil
	}
}

func (h *sessionHook) ProcessPipelineHook(redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(context.Context, []redis.Cmder) error {
		return h.execErr
	}
}

func TestRefresh_FailsWhenSessionCannotBeStored(t *testing.T) {
	_, s, u := newUserScenario(t)
	ctx := context.Background()
	pair, err := s.sign(u.ID, "sid-1")
	require.NoError(t, err)

	hook := &sessionHook{sid: "sid-1"}
	rdb := redis.NewClient(&redis.Options{Addr: "localhost:0"})
	rdb.AddHook(hook)
	t.Cleanup(func() { _ = rdb.Close() })
	s.Redis = rdb

	next, uid, err := s.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID, uid)
	assert.NotEmpty(t, next.AccessToken)

	hook.execErr = errors.New("connection reset")
	next, uid, err = s.Refresh(ctx, pair.RefreshToken)
	require.Error(t, err)
	assert.ErrorIs(t, err, hook.execErr)
	assert.Empty(t, uid)
	assert.Empty(t, next.AccessToken)
}

func TestUpdateProfile(t *testing.T) {
	_, s, u := newUserScenario(t)
	ctx := context.Background()

	got, err := s.UpdateProfile(ctx, u.ID, UpdateProfileInput{Department: strPtr(" CS "), About: strPtr("hi")})
	require.NoError(t, err)
	assert.Equal(t, "CS", got.Department)
	assert.Equal(t, "alice", got.UserName)

	_, err = s.UpdateProfile(ctx, u.ID, UpdateProfileInput{UserName: strPtr("  ")})
	assert.Contains(t, fieldsOf(t, err), "user_name")
}

func TestUploadAvatar(t *testing.T) {
	ctrl := gomock.NewController(t)
	m, s, u := newUserScenario(t)
	assets := portmocks.NewMockAssetStore(ctrl)
	s.Assets = assets
	assets.EXPECT().Upload(gomock.Any(), gomock.Any(), "image/jpeg", gomock.Any()).Return("https://cdn/avatars/a.jpg", nil)

	url, err := s.UploadAvatar(context.Background(), u.ID, strings.NewReader("jpg"), "me.jpg", "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn/avatars/a.jpg", url)
	assert.Equal(t, url, m.users[u.ID].AvatarURL)

	_, err = s.UploadAvatar(context.Background(), u.ID, strings.NewReader("pdf"), "cv.pdf", "application/pdf")
	assert.Contains(t, fieldsOf(t, err), "avatar")
}

func TestGetUser_HidesInactive(t *testing.T) {
	m, s, u := newUserScenario(t)
	m.users[u.ID].IsActive = false

	_, err := s.GetUser(context.Background(), u.ID)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestSearchUsers(t *testing.T) {
	ctrl := gomock.NewController(t)
	_, s, _ := newUserScenario(t)
	dir := portmocks.NewMockUserDirectory(ctrl)
	s.Directory = dir
	dir.EXPECT().SearchUsers(gomock.Any(), "ali", 5).Return([]entity.UserSummary{{ID: "u1", UserName: "alice"}}, nil)

	got, err := s.SearchUsers(context.Background(), " ali ", 5)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	_, err = s.SearchUsers(context.Background(), "", 5)
	assert.Contains(t, fieldsOf(t, err), "q")
}
