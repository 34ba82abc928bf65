// Package search indexes users in Elasticsearch for discovery.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/campus-social/internal/domain/entity"
	"github.com/oksasatya/campus-social/internal/domain/port"
)

const (
	defaultSearchSize = 10
	maxSearchSize     = 50
	requestTimeout    = 3 * time.Second
)

type UserDirectory struct {
	ES     *elasticsearch.Client
	Index  string
	Logger *logrus.Logger
}

func NewUserDirectory(es *elasticsearch.Client, index string, logger *logrus.Logger) *UserDirectory {
	return &UserDirectory{ES: es, Index: index, Logger: logger}
}

type userDoc struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	UserName   string `json:"user_name"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Department string `json:"department"`
	AvatarURL  string `json:"avatar_url"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

func (d *UserDirectory) enabled() bool {
	return d != nil && d.ES != nil && d.Index != ""
}

func (d *UserDirectory) IndexUser(ctx context.Context, u *entity.User) error {
	if !d.enabled() {
		return nil
	}
	doc := userDoc{
		ID:         u.ID,
		Email:      u.Email,
		UserName:   u.UserName,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Department: u.Department,
		AvatarURL:  u.AvatarURL,
		CreatedAt:  u.CreatedAt.Format(time.RFC3339Nano),
		UpdatedAt:  u.UpdatedAt.Format(time.RFC3339Nano),
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: d.Index, DocumentID: u.ID, Body: bytes.NewReader(b), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, d.ES)
	if err != nil {
		if d.Logger != nil {
			d.Logger.WithError(err).WithField("user_id", u.ID).Warn("es index failed")
		}
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		if d.Logger != nil {
			d.Logger.WithField("status", res.Status()).WithField("user_id", u.ID).Warn("es index response error")
		}
		return fmt.Errorf("es index: %s", res.Status())
	}
	return nil
}

// SearchUsers runs a multi_match over handle, names, department and email.
func (d *UserDirectory) SearchUsers(ctx context.Context, q string, size int) ([]entity.UserSummary, error) {
	if !d.enabled() {
		return []entity.UserSummary{}, nil
	}
	if size <= 0 || size > maxSearchSize {
		size = defaultSearchSize
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     q,
				"fields":    []string{"user_name^3", "first_name^2", "last_name^2", "department", "email"},
				"fuzziness": "AUTO",
			},
		},
		"size": size,
	}
	b, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	res, err := d.ES.Search(d.ES.Search.WithContext(c), d.ES.Search.WithIndex(d.Index), d.ES.Search.WithBody(bytes.NewReader(b)))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("es search: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source userDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]entity.UserSummary, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, entity.UserSummary{ID: h.Source.ID, UserName: h.Source.UserName, AvatarURL: h.Source.AvatarURL})
	}
	return out, nil
}

var _ port.UserDirectory = (*UserDirectory)(nil)
