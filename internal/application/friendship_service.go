package application

import (
	"context"
	"time"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/campus-social/internal/domain/entity"
	repo "github.com/oksasatya/campus-social/internal/domain/repository"
	"github.com/oksasatya/campus-social/pkg/apperror"
)

// FriendshipService manages the friendship graph and answers visibility questions.
type FriendshipService struct {
	Repo   repo.FriendshipRepository
	Users  repo.UserRepository
	Logger *logrus.Logger
	Now    func() time.Time
}

func NewFriendshipService(friends repo.FriendshipRepository, users repo.UserRepository, logger *logrus.Logger) *FriendshipService {
	return &FriendshipService{Repo: friends, Users: users, Logger: logger, Now: time.Now}
}

// Request creates a pending edge from requester to target.
func (s *FriendshipService) Request(ctx context.Context, requesterID, targetID string) (*entity.Friendship, error) {
	if requesterID == targetID {
		return nil, apperror.Field("user_id", "cannot befriend yourself")
	}
	target, err := s.Users.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if !target.IsActive {
		return nil, apperror.NotFound("user")
	}
	// One edge per pair: a request the other way round must be accepted instead.
	_, err = s.Repo.Get(ctx, targetID, requesterID)
	switch {
	case err == nil:
		return nil, apperror.Conflict("friend request already exists", nil)
	case !apperror.Is(err, apperror.KindNotFound):
		return nil, err
	}
	return s.Repo.Create(ctx, requesterID, targetID)
}

// Accept confirms the edge requester -> caller. Only the target of a request
// can accept it, so the caller is always the target.
func (s *FriendshipService) Accept(ctx context.Context, requesterID, callerID string) (*entity.Friendship, error) {
	f, err := s.Repo.Accept(ctx, requesterID, callerID, s.Now().UTC())
	if err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"requester_id": requesterID, "target_id": callerID}).Info("friendship accepted")
	}
	return f, nil
}

// Remove deletes the edge between the two users in whichever direction it exists.
// It also withdraws or declines pending requests.
func (s *FriendshipService) Remove(ctx context.Context, userID, otherID string) error {
	n, err := s.Repo.DeleteBetween(ctx, userID, otherID)
	if err != nil {
		return err
	}
	if n == 0 {
		return apperror.NotFound("friendship")
	}
	return nil
}

func (s *FriendshipService) ListFriends(ctx context.Context, userID string) ([]entity.UserSummary, error) {
	return s.Repo.ListFriends(ctx, userID)
}

// ListPending returns incoming requests awaiting the user's answer.
func (s *FriendshipService) ListPending(ctx context.Context, userID string) ([]*entity.Friendship, error) {
	return s.Repo.ListPendingFor(ctx, userID)
}

// VisibleAuthorSet is the viewer plus every confirmed friend in either direction.
// The viewer always comes first.
func (s *FriendshipService) VisibleAuthorSet(ctx context.Context, viewerID string) ([]string, error) {
	friends, err := s.Repo.ConfirmedFriendIDs(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	return lo.Uniq(append([]string{viewerID}, friends...)), nil
}
