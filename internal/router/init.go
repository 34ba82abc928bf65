package router

import (
	"github.com/oksasatya/campus-social/internal/application"
	"github.com/oksasatya/campus-social/internal/container"
	"github.com/oksasatya/campus-social/internal/domain/port"
	"github.com/oksasatya/campus-social/internal/infrastructure/notify"
	pginfra "github.com/oksasatya/campus-social/internal/infrastructure/postgres"
	"github.com/oksasatya/campus-social/internal/infrastructure/redisstore"
	"github.com/oksasatya/campus-social/internal/infrastructure/search"
	"github.com/oksasatya/campus-social/internal/infrastructure/storage"
	handlers "github.com/oksasatya/campus-social/internal/interface/http"
	"github.com/oksasatya/campus-social/internal/router/modules"
	"github.com/oksasatya/campus-social/pkg/pagination"
)

// Handlers groups the HTTP handlers built from the container.
type Handlers struct {
	Auth       *handlers.AuthHandler
	User       *handlers.UserHandler
	Friendship *handlers.FriendshipHandler
	Post       *handlers.PostHandler
	Feed       *handlers.FeedHandler
}

func buildHandlers() Handlers {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	users := pginfra.NewUserRepository(pool)
	friendRepo := pginfra.NewFriendshipRepository(pool)
	posts := pginfra.NewPostRepository(pool)
	likes := pginfra.NewLikeRepository(pool)
	comments := pginfra.NewCommentRepository(pool)

	var dir port.UserDirectory
	if es := container.GetES(); es != nil {
		dir = search.NewUserDirectory(es, cfg.ESUsersIndex, logger)
	}
	var assets port.AssetStore
	if gcs := container.GetGCS(); gcs != nil {
		assets = storage.NewGCSStore(gcs, cfg.GCSBucket)
	}
	var notifier port.Notifier = notify.LogNotifier{Logger: logger}
	if pub := container.GetRabbitPub(); pub != nil && cfg.MailSendEnabled {
		notifier = notify.NewQueueNotifier(pub, logger)
	}

	accounts := application.NewAccountService(
		users,
		redisstore.NewOTPStore(container.GetRedis()),
		notifier,
		dir,
		application.AccountPolicy{
			AllowedDomain:  cfg.AllowedEmailDomain,
			OTPTTL:         cfg.OTPTTL,
			OTPMaxRequests: cfg.OTPMaxRequests,
			OTPWindow:      cfg.OTPRequestWindow,
		},
		logger,
	)
	userSvc := application.NewUserService(users, container.GetJWT(), assets, container.GetRedis(), logger, dir)
	friendSvc := application.NewFriendshipService(friendRepo, users, logger)
	postSvc := application.NewPostService(posts, assets, logger)
	engagement := application.NewEngagementService(posts, likes, comments,
		pagination.PageSizeConfig{Default: cfg.CommentPageSize, Max: cfg.CommentMaxPageSize}, logger)
	feed := application.NewFeedService(friendSvc, users, posts, likes, comments, application.FeedServiceConfig{
		FeedPages:      pagination.PageSizeConfig{Default: cfg.FeedPageSize, Max: cfg.FeedMaxPageSize},
		UserPostsPages: pagination.PageSizeConfig{Default: cfg.UserPostsPageSize, Max: cfg.UserPostsMaxPageSize},
	}, logger)

	return Handlers{
		Auth:       handlers.NewAuthHandler(accounts),
		User:       handlers.NewUserHandler(userSvc, cfg.CookieDomain, cfg.CookieSecure),
		Friendship: handlers.NewFriendshipHandler(friendSvc),
		Post:       handlers.NewPostHandler(postSvc, feed, engagement),
		Feed:       handlers.NewFeedHandler(feed),
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	h := buildHandlers()
	jwt := container.GetJWT()
	rdb := container.GetRedis()

	r.Add(modules.NewHealthModule(container.GetPGPool(), rdb))
	r.Add(modules.NewAuthModule(h.Auth, rdb))
	r.Add(modules.NewUserModule(h.User, rdb, jwt))
	r.Add(modules.NewFriendshipModule(h.Friendship, rdb, jwt))
	r.Add(modules.NewPostModule(h.Post, rdb, jwt))
	r.Add(modules.NewFeedModule(h.Feed, rdb, jwt))
	if container.GetConfig().DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(rdb))
	}
}
