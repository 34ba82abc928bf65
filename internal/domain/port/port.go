// Package port declares the outbound collaborators the application layer depends on.
package port

//go:generate mockgen -source=port.go -destination=mocks/port_mock.go -package=mocks

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/oksasatya/campus-social/internal/domain/entity"
)

type OTPPurpose string

const (
	OTPVerify OTPPurpose = "verify"
	OTPReset  OTPPurpose = "reset"
)

// ErrOTPNotFound is returned by OTPStore.GetOTP when no live code exists.
var ErrOTPNotFound = errors.New("otp not found")

// OTPStore keeps one-time codes and per-email request counters with expiry.
type OTPStore interface {
	SaveOTP(ctx context.Context, purpose OTPPurpose, email, code string, ttl time.Duration) error
	GetOTP(ctx context.Context, purpose OTPPurpose, email string) (string, error)
	DeleteOTP(ctx context.Context, purpose OTPPurpose, email string) error
	// IncrRequests bumps the request counter for email and returns the new
	// value. The window starts on the first request.
	IncrRequests(ctx context.Context, email string, window time.Duration) (int64, error)
}

// Notice is an outbound message rendered by the email worker.
type Notice struct {
	Template string
	Subject  string
	Data     map[string]any
}

// Notifier dispatches notices without waiting for delivery. Failures are
// logged by the implementation and never surface to the caller.
type Notifier interface {
	Notify(ctx context.Context, to string, n Notice)
}

// AssetStore persists uploaded media and returns its public URL.
type AssetStore interface {
	Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error)
}

// UserDirectory is the search index for user discovery.
type UserDirectory interface {
	IndexUser(ctx context.Context, u *entity.User) error
	SearchUsers(ctx context.Context, q string, size int) ([]entity.UserSummary, error)
}
