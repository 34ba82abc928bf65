package application

import (
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/campus-social/internal/domain/entity"
	"github.com/oksasatya/campus-social/internal/domain/port"
	repo "github.com/oksasatya/campus-social/internal/domain/repository"
	"github.com/oksasatya/campus-social/pkg/apperror"
	"github.com/oksasatya/campus-social/pkg/helpers"
)

var (
	ErrInvalidCredentials = apperror.Unauthorized("invalid credentials")
	ErrAccountInactive    = apperror.Permission("account is not verified")
)

const sessionTTL = 24 * time.Hour

// UserService handles login sessions and profiles.
type UserService struct {
	Repo      repo.UserRepository
	JWT       *helpers.JWTManager
	Assets    port.AssetStore
	Redis     *redis.Client
	Logger    *logrus.Logger
	Directory port.UserDirectory
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

// SessionKey is the Redis hash holding the live session of a user.
func SessionKey(userID string) string {
	return "user:session:" + userID
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

func NewUserService(repo repo.UserRepository, jwt *helpers.JWTManager, assets port.AssetStore, rdb *redis.Client, logger *logrus.Logger, dir port.UserDirectory) *UserService {
	return &UserService{
		Repo:      repo,
		JWT:       jwt,
		Assets:    assets,
		Redis:     rdb,
		Logger:    logger,
		Directory: dir,
	}
}

type LoginResponse struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	UserName string `json:"user_name"`
}

// Authenticate validates email/password and returns the user without issuing tokens.
// Accounts that have not completed verification cannot log in.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.Repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil || u == nil {
		return nil, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	if !u.IsActive {
		return nil, ErrAccountInactive
	}
	if helpers.NeedsRehash(u.Password) {
		s.rehash(ctx, u, password)
	}
	return u, nil
}

// rehash upgrades a stored hash to the current cost. Failures only cost a
// retry on the next login.
func (s *UserService) rehash(ctx context.Context, u *entity.User, password string) {
	hash, err := helpers.HashPassword(password)
	if err == nil {
		err = s.Repo.UpdatePassword(ctx, u.ID, hash)
	}
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("password rehash failed")
		}
		return
	}
	u.Password = hash
}

// IssueTokens generates access/refresh tokens and records a session in Redis.
func (s *UserService) IssueTokens(ctx context.Context, u *entity.User) (TokenPair, error) {
	sid := uuid.NewString()
	pair, err := s.sign(u.ID, sid)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate tokens failed")
		}
		return TokenPair{}, err
	}

	if s.Redis != nil {
		fields := map[string]any{
			"user_id":    u.ID,
			"email":      u.Email,
			"user_name":  u.UserName,
			"avatar_url": u.AvatarURL,
			"sid":        sid,
			"created_at": nowRFC3339(),
		}
		key := SessionKey(u.ID)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, fields)
		pipe.Expire(ctx, key, sessionTTL)
		if _, rErr := pipe.Exec(ctx); rErr != nil && s.Logger != nil {
			s.Logger.WithError(rErr).WithField("key", key).Warn("redis pipeline failed")
		}
	}
	return pair, nil
}

func (s *UserService) sign(userID, sid string) (TokenPair, error) {
	access, aexp, err := s.JWT.GenerateAccessToken(userID, sid)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(userID, sid)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

func (s *UserService) Login(ctx context.Context, email, password string) (*LoginResponse, TokenPair, error) {
	u, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, TokenPair{}, err
	}
	pair, err := s.IssueTokens(ctx, u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return &LoginResponse{UserID: u.ID, Email: u.Email, UserName: u.UserName}, pair, nil
}

// Refresh rotates the session id and both tokens.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (TokenPair, string, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, "", ErrInvalidCredentials
	}
	u, err := s.Repo.GetByID(ctx, claims.UserID)
	if err != nil || u == nil || !u.IsActive {
		return TokenPair{}, "", ErrInvalidCredentials
	}
	if s.Redis != nil {
		data, rErr := s.Redis.HGetAll(ctx, SessionKey(u.ID)).Result()
		if rErr != nil || len(data) == 0 || data["sid"] != claims.SessionID {
			return TokenPair{}, "", ErrInvalidCredentials
		}
	}
	sid := uuid.NewString()
	pair, err := s.sign(u.ID, sid)
	if err != nil {
		return TokenPair{}, "", err
	}
	if s.Redis != nil {
		key := SessionKey(u.ID)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, map[string]any{
			"sid":        sid,
			"updated_at": nowRFC3339(),
		})
		pipe.Expire(ctx, key, sessionTTL)
		if _, rErr := pipe.Exec(ctx); rErr != nil {
			if s.Logger != nil {
				s.Logger.WithError(rErr).WithField("key", key).Warn("redis pipeline failed")
			}
			return TokenPair{}, "", fmt.Errorf("store session: %w", rErr)
		}
	}
	return pair, u.ID, nil
}

// Logout drops the Redis session so outstanding access tokens stop working.
func (s *UserService) Logout(ctx context.Context, userID string) {
	if s.Redis == nil || userID == "" {
		return
	}
	if err := s.Redis.Del(ctx, SessionKey(userID)).Err(); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", userID).Warn("delete session failed")
	}
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	return s.Repo.GetByID(ctx, userID)
}

// GetUser returns another user's account. Unverified accounts are not visible.
func (s *UserService) GetUser(ctx context.Context, id string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !u.IsActive {
		return nil, apperror.NotFound("user")
	}
	return u, nil
}

// UpdateProfileInput holds optional profile changes; nil fields are left alone.
type UpdateProfileInput struct {
	UserName   *string
	FirstName  *string
	LastName   *string
	Department *string
	About      *string
}

func (s *UserService) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if in.UserName != nil {
		name := strings.TrimSpace(*in.UserName)
		if name == "" {
			return nil, apperror.Field("user_name", "is required")
		}
		u.UserName = name
	}
	if in.FirstName != nil {
		u.FirstName = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		u.LastName = strings.TrimSpace(*in.LastName)
	}
	if in.Department != nil {
		u.Department = strings.TrimSpace(*in.Department)
	}
	if in.About != nil {
		u.About = *in.About
	}
	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, err
	}
	s.touchSession(ctx, u)
	s.index(ctx, u)
	return u, nil
}

// UploadAvatar stores the image in the asset store and points the profile at it.
func (s *UserService) UploadAvatar(ctx context.Context, userID string, r io.Reader, filename, contentType string) (string, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return "", apperror.Field("avatar", "must be an image")
	}
	if s.Assets == nil {
		return "", apperror.Field("avatar", "uploads are not available")
	}
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	objectPath := path.Join("avatars", userID, uuid.NewString()+strings.ToLower(filepath.Ext(filename)))
	url, err := s.Assets.Upload(ctx, objectPath, contentType, r)
	if err != nil {
		return "", err
	}
	u.AvatarURL = url
	if err := s.Repo.Update(ctx, u); err != nil {
		return "", err
	}
	s.touchSession(ctx, u)
	s.index(ctx, u)
	return url, nil
}

// SearchUsers looks users up in the directory index.
func (s *UserService) SearchUsers(ctx context.Context, q string, size int) ([]entity.UserSummary, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, apperror.Field("q", "is required")
	}
	if s.Directory == nil {
		return []entity.UserSummary{}, nil
	}
	return s.Directory.SearchUsers(ctx, q, size)
}

// touchSession mirrors profile fields into the session hash, keeping its TTL.
func (s *UserService) touchSession(ctx context.Context, u *entity.User) {
	if s.Redis == nil {
		return
	}
	key := SessionKey(u.ID)
	ttl, tErr := s.Redis.TTL(ctx, key).Result()
	if tErr != nil || ttl <= 0 {
		return
	}
	pipe := s.Redis.Pipeline()
	pipe.HSet(ctx, key, map[string]any{
		"user_name":  u.UserName,
		"avatar_url": u.AvatarURL,
		"updated_at": nowRFC3339(),
	})
	pipe.Expire(ctx, key, ttl)
	if _, pErr := pipe.Exec(ctx); pErr != nil && s.Logger != nil {
		s.Logger.WithError(pErr).WithField("key", key).Warn("redis pipeline failed")
	}
}

func (s *UserService) index(ctx context.Context, u *entity.User) {
	if s.Directory == nil {
		return
	}
	if err := s.Directory.IndexUser(ctx, u); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("index user failed")
	}
}
