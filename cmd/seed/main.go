package main

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/oksasatya/campus-social/config"
	"github.com/oksasatya/campus-social/internal/application"
	"github.com/oksasatya/campus-social/internal/domain/entity"
	pginfra "github.com/oksasatya/campus-social/internal/infrastructure/postgres"
	"github.com/oksasatya/campus-social/pkg/apperror"
	"github.com/oksasatya/campus-social/pkg/helpers"
)

type seedUser struct {
	userName   string
	firstName  string
	department string
}

var seedUsers = []seedUser{
	{"ayesha", "Ayesha", "Computer Science"},
	{"bilal", "Bilal", "Electrical Engineering"},
	{"sana", "Sana", "Management Sciences"},
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env, cfg.LogLevel)
	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, pginfra.PoolConfigFrom(cfg))
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	password := "password123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	ids := make([]string, 0, len(seedUsers))
	for _, u := range seedUsers {
		id, err := upsertUser(ctx, pool, u, u.userName+"@"+cfg.AllowedEmailDomain, hash)
		if err != nil {
			log.Fatalf("failed to seed user %s: %v", u.userName, err)
		}
		ids = append(ids, id)
		logger.Infof("seeded user: id=%s user_name=%s password=%s", id, u.userName, password)
	}

	users := pginfra.NewUserRepository(pool)
	friends := application.NewFriendshipService(pginfra.NewFriendshipRepository(pool), users, logger)

	// ayesha and bilal are friends; sana has a pending request to ayesha.
	befriend(ctx, friends, ids[0], ids[1], true)
	befriend(ctx, friends, ids[2], ids[0], false)

	posts := pginfra.NewPostRepository(pool)
	var existing int
	if err := pool.QueryRow(ctx, `SELECT count(*) FROM posts WHERE author_id = ANY($1::uuid[])`, ids).Scan(&existing); err != nil {
		log.Fatalf("failed to count posts: %v", err)
	}
	if existing > 0 {
		logger.Info("posts already seeded")
		return
	}

	caption := "first week on campus"
	duration := 42
	desc := "Semester timetable"
	samples := []struct {
		author  string
		t       entity.PostType
		caption *string
		payload entity.PostPayload
	}{
		{ids[0], entity.PostTypeText, nil, entity.TextPayload{Content: "Hello from the CS lab!"}},
		{ids[1], entity.PostTypePhoto, &caption, entity.PhotoPayload{Image: "https://storage.googleapis.com/campus-social-demo/posts/library.jpg"}},
		{ids[1], entity.PostTypeVideo, nil, entity.VideoPayload{Video: "https://storage.googleapis.com/campus-social-demo/posts/robotics.mp4", Duration: &duration}},
		{ids[2], entity.PostTypeLink, nil, entity.LinkPayload{URL: "https://example.edu/timetable", Title: "Timetable", Description: &desc}},
	}
	for _, s := range samples {
		p, err := entity.NewPost(s.author, s.t, s.caption, s.payload)
		if err != nil {
			log.Fatalf("failed to build post: %v", err)
		}
		if err := posts.Create(ctx, p); err != nil {
			log.Fatalf("failed to seed post: %v", err)
		}
	}
	logger.Infof("seeded %d posts", len(samples))
}

func upsertUser(ctx context.Context, pool *pgxpool.Pool, u seedUser, email, hash string) (string, error) {
	var id string
	err := pool.QueryRow(ctx, `
		INSERT INTO users (email, user_name, password_hash, first_name, department, is_verified, is_active)
		VALUES ($1, $2, $3, $4, $5, TRUE, TRUE)
		ON CONFLICT (email) DO UPDATE SET first_name = EXCLUDED.first_name, updated_at = now()
		RETURNING id
	`, email, u.userName, hash, u.firstName, u.department).Scan(&id)
	return id, err
}

func befriend(ctx context.Context, friends *application.FriendshipService, from, to string, accept bool) {
	if _, err := friends.Request(ctx, from, to); err != nil && !apperror.Is(err, apperror.KindConflict) {
		log.Fatalf("failed to send friend request: %v", err)
	}
	if !accept {
		return
	}
	if _, err := friends.Accept(ctx, from, to); err != nil {
		log.Fatalf("failed to accept friend request: %v", err)
	}
}
