package application

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/campus-social/internal/domain/entity"
	"github.com/oksasatya/campus-social/internal/domain/port"
	repo "github.com/oksasatya/campus-social/internal/domain/repository"
	"github.com/oksasatya/campus-social/pkg/apperror"
	"github.com/oksasatya/campus-social/pkg/helpers"
	"github.com/oksasatya/campus-social/pkg/metrics"
)

// Email templates rendered by the email worker.
const (
	TemplateVerifyOTP = "verify_otp"
	TemplateResetOTP  = "reset_otp"
)

// AccountPolicy holds the registration and OTP rules.
type AccountPolicy struct {
	AllowedDomain  string
	OTPTTL         time.Duration
	OTPMaxRequests int
	OTPWindow      time.Duration
}

// AccountService owns registration, email verification and password reset.
type AccountService struct {
	Users     repo.UserRepository
	OTP       port.OTPStore
	Notifier  port.Notifier
	Directory port.UserDirectory
	Policy    AccountPolicy
	Logger    *logrus.Logger

	// GenerateCode and Now are replaceable in tests.
	GenerateCode func() (string, error)
	Now          func() time.Time
}

func NewAccountService(users repo.UserRepository, otp port.OTPStore, notifier port.Notifier, dir port.UserDirectory, policy AccountPolicy, logger *logrus.Logger) *AccountService {
	return &AccountService{
		Users:        users,
		OTP:          otp,
		Notifier:     notifier,
		Directory:    dir,
		Policy:       policy,
		Logger:       logger,
		GenerateCode: helpers.GenOTPCode,
		Now:          time.Now,
	}
}

type RegisterInput struct {
	Email      string
	UserName   string
	Password   string
	FirstName  string
	LastName   string
	Department string
	About      string
	// ClientIP is where the request came from; the email shows its location.
	ClientIP string
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// checkDomain accepts only addresses under the configured domain, case-insensitively.
func (s *AccountService) checkDomain(email string) error {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return apperror.Field("email", "must be a valid email address")
	}
	if s.Policy.AllowedDomain != "" && email[at+1:] != s.Policy.AllowedDomain {
		return apperror.Field("email", "must be an @"+s.Policy.AllowedDomain+" address")
	}
	return nil
}

// Register creates an inactive, unverified account and sends a verification code.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	email := normalizeEmail(in.Email)
	if err := s.checkDomain(email); err != nil {
		return nil, err
	}
	if err := s.countRequest(ctx, email); err != nil {
		return nil, err
	}
	hash, err := hashPassword("password", in.Password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		Email:      email,
		UserName:   strings.TrimSpace(in.UserName),
		Password:   hash,
		FirstName:  strings.TrimSpace(in.FirstName),
		LastName:   strings.TrimSpace(in.LastName),
		Department: strings.TrimSpace(in.Department),
		About:      in.About,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		return nil, err
	}
	if err := s.issueCode(ctx, port.OTPVerify, u, in.ClientIP); err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.WithField("user_id", u.ID).Info("user registered")
	}
	return u, nil
}

// ResendOTP issues a fresh verification code for an unverified account.
func (s *AccountService) ResendOTP(ctx context.Context, email, clientIP string) error {
	email = normalizeEmail(email)
	if err := s.checkDomain(email); err != nil {
		return err
	}
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if u.IsVerified {
		return apperror.Conflict("account already verified", nil)
	}
	if err := s.countRequest(ctx, email); err != nil {
		return err
	}
	return s.issueCode(ctx, port.OTPVerify, u, clientIP)
}

// VerifyOTP activates the account when code matches the live verification code.
func (s *AccountService) VerifyOTP(ctx context.Context, email, code string) (*entity.User, error) {
	email = normalizeEmail(email)
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if err := s.checkCode(ctx, port.OTPVerify, email, code); err != nil {
		return nil, err
	}
	if err := s.Users.MarkVerified(ctx, u.ID); err != nil {
		return nil, err
	}
	u.IsVerified, u.IsActive = true, true
	if err := s.OTP.DeleteOTP(ctx, port.OTPVerify, email); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("delete otp failed")
	}
	if s.Directory != nil {
		if err := s.Directory.IndexUser(ctx, u); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("index user failed")
		}
	}
	return u, nil
}

// RequestPasswordReset sends a reset code to an existing account.
func (s *AccountService) RequestPasswordReset(ctx context.Context, email, clientIP string) error {
	email = normalizeEmail(email)
	if err := s.checkDomain(email); err != nil {
		return err
	}
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if err := s.countRequest(ctx, email); err != nil {
		return err
	}
	return s.issueCode(ctx, port.OTPReset, u, clientIP)
}

// ResetPassword replaces the password when code matches the live reset code.
func (s *AccountService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	email = normalizeEmail(email)
	if err := s.checkDomain(email); err != nil {
		return err
	}
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if err := s.checkCode(ctx, port.OTPReset, email, code); err != nil {
		return err
	}
	hash, err := hashPassword("new_password", newPassword)
	if err != nil {
		return err
	}
	if err := s.Users.UpdatePassword(ctx, u.ID, hash); err != nil {
		return err
	}
	if err := s.OTP.DeleteOTP(ctx, port.OTPReset, email); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("delete reset otp failed")
	}
	return nil
}

// PurgeUnverified deletes accounts that stayed unverified for longer than olderThan.
func (s *AccountService) PurgeUnverified(ctx context.Context, olderThan time.Duration) (int64, error) {
	n, err := s.Users.DeleteUnverifiedBefore(ctx, s.Now().Add(-olderThan))
	if err != nil {
		return 0, err
	}
	if s.Logger != nil {
		s.Logger.WithField("deleted", n).Info("purged unverified users")
	}
	return n, nil
}

// countRequest bumps the per-email OTP counter and rejects requests above the threshold.
func (s *AccountService) countRequest(ctx context.Context, email string) error {
	if s.Policy.OTPMaxRequests <= 0 {
		return nil
	}
	n, err := s.OTP.IncrRequests(ctx, email, s.Policy.OTPWindow)
	if err != nil {
		return err
	}
	if n > int64(s.Policy.OTPMaxRequests) {
		return apperror.RateLimited("too many code requests, try again later")
	}
	return nil
}

func (s *AccountService) issueCode(ctx context.Context, purpose port.OTPPurpose, u *entity.User, clientIP string) error {
	code, err := s.GenerateCode()
	if err != nil {
		return err
	}
	if err := s.OTP.SaveOTP(ctx, purpose, u.Email, code, s.Policy.OTPTTL); err != nil {
		return err
	}
	metrics.OTPIssued.WithLabelValues(string(purpose)).Inc()

	tpl := TemplateVerifyOTP
	if purpose == port.OTPReset {
		tpl = TemplateResetOTP
	}
	data := map[string]any{
		"Name":      u.FirstName,
		"UserName":  u.UserName,
		"Code":      code,
		"ExpiresAt": s.Now().Add(s.Policy.OTPTTL).UTC().Format(time.RFC3339),
	}
	if clientIP != "" {
		data["IP"] = clientIP
	}
	s.Notifier.Notify(ctx, u.Email, port.Notice{Template: tpl, Data: data})
	return nil
}

func (s *AccountService) checkCode(ctx context.Context, purpose port.OTPPurpose, email, code string) error {
	want, err := s.OTP.GetOTP(ctx, purpose, email)
	if errors.Is(err, port.ErrOTPNotFound) {
		return apperror.Field("otp", "wrong or expired code")
	}
	if err != nil {
		return err
	}
	if subtle.ConstantTimeCompare([]byte(want), []byte(strings.TrimSpace(code))) != 1 {
		return apperror.Field("otp", "wrong or expired code")
	}
	return nil
}

func hashPassword(field, plain string) (string, error) {
	hash, err := helpers.HashPassword(plain)
	if errors.Is(err, helpers.ErrPasswordTooLong) {
		return "", apperror.Field(field, "must be at most 72 bytes")
	}
	return hash, err
}
