package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()
	require.NotNil(t, cfg)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "isbstudent.comsats.edu.pk", cfg.AllowedEmailDomain)
	assert.Equal(t, 10, cfg.OTPMaxRequests)
	assert.Equal(t, 5*time.Hour, cfg.OTPRequestWindow)
	assert.Equal(t, 4, cfg.FeedPageSize)
	assert.Equal(t, 50, cfg.CommentMaxPageSize)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("ALLOWED_EMAIL_DOMAIN", "  Example.EDU ")
	t.Setenv("OTP_MAX_REQUESTS", "100")
	t.Setenv("OTP_TTL", "2m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, ,http://b.test")

	cfg := Load()

	assert.Equal(t, "example.edu", cfg.AllowedEmailDomain)
	assert.Equal(t, 100, cfg.OTPMaxRequests)
	assert.Equal(t, 2*time.Minute, cfg.OTPTTL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins())
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Config{DBUser: "u", DBPassword: "p", DBHost: "h", DBPort: "5432", DBName: "d", DBSSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@h:5432/d?sslmode=disable", cfg.PostgresDSN())
}
