package pagination

import (
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/campus-social/pkg/apperror"
)

// Cursor marks the last row of a page in (created_at DESC, id DESC) order.
type Cursor struct {
	CreatedAt time.Time `json:"t"`
	ID        string    `json:"id"`
}

// Encode returns the opaque URL-safe form of c.
func (c Cursor) Encode() string {
	b, _ := json.Marshal(c)
	return base64.RawURLEncoding.EncodeToString(b)
}

// Decode parses a cursor produced by Encode.
func Decode(s string) (Cursor, error) {
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return Cursor{}, apperror.Field("cursor", "is malformed")
	}
	var c Cursor
	if err := json.Unmarshal(raw, &c); err != nil || c.CreatedAt.IsZero() {
		return Cursor{}, apperror.Field("cursor", "is malformed")
	}
	if _, err := uuid.Parse(c.ID); err != nil {
		return Cursor{}, apperror.Field("cursor", "is malformed")
	}
	return c, nil
}
