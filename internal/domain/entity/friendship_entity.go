package entity

import "time"

// Friendship is a directed edge from RequesterID to TargetID.
// It grants visibility in both directions once confirmed.
type Friendship struct {
	ID          string
	RequesterID string
	TargetID    string
	CreatedAt   time.Time
	AcceptedAt  *time.Time
	IsActive    bool
	// Requester is filled when edges are listed for the target.
	Requester UserSummary
}

// Confirmed reports whether the edge has been accepted and is still active.
func (f *Friendship) Confirmed() bool {
	return f.IsActive && f.AcceptedAt != nil
}

// Other returns the user on the opposite side of the edge from userID.
func (f *Friendship) Other(userID string) string {
	if f.RequesterID == userID {
		return f.TargetID
	}
	return f.RequesterID
}
