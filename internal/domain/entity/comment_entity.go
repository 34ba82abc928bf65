package entity

import "time"

type Comment struct {
	ID        string
	PostID    string
	AuthorID  string
	Author    UserSummary
	Content   string
	ParentID  *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c *Comment) IsReply() bool { return c.ParentID != nil }
