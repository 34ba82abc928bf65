package application

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/oksasatya/campus-social/internal/domain/entity"
	"github.com/oksasatya/campus-social/pkg/apperror"
	"github.com/oksasatya/campus-social/pkg/pagination"
)

// memStore is an in-memory stand-in for the Postgres repositories, used by
// scenario tests that exercise several services together.
type memStore struct {
	mu       sync.Mutex
	seq      int
	clock    time.Time
	users    map[string]*entity.User
	edges    []*entity.Friendship
	posts    map[string]*entity.Post
	likes    map[[2]string]bool
	comments map[string]*entity.Comment
}

func newMemStore() *memStore {
	return &memStore{
		clock:    time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		users:    map[string]*entity.User{},
		posts:    map[string]*entity.Post{},
		likes:    map[[2]string]bool{},
		comments: map[string]*entity.Comment{},
	}
}

// next hands out ordered UUID-shaped ids so they survive cursor decoding.
func (m *memStore) next(_ string) (string, time.Time) {
	m.seq++
	m.clock = m.clock.Add(time.Minute)
	return fmt.Sprintf("00000000-0000-4000-8000-%012d", m.seq), m.clock
}

func (m *memStore) addUser(name string) *entity.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, at := m.next("user")
	u := &entity.User{ID: id, UserName: name, Email: name + "@example.edu", IsActive: true, IsVerified: true, CreatedAt: at}
	m.users[id] = u
	return u
}

type memUsers struct{ *memStore }

func (r memUsers) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u.ID, u.CreatedAt = r.next("user")
	r.users[u.ID] = u
	return nil
}

func (r memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, apperror.NotFound("user")
	}
	cp := *u
	return &cp, nil
}

func (r memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperror.NotFound("user")
}

func (r memUsers) Update(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r memUsers) UpdatePassword(_ context.Context, id, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[id].Password = hash
	return nil
}

func (r memUsers) MarkVerified(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[id].IsVerified, r.users[id].IsActive = true, true
	return nil
}

func (r memUsers) DeleteUnverifiedBefore(_ context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, u := range r.users {
		if !u.IsVerified && u.CreatedAt.Before(cutoff) {
			delete(r.users, id)
			n++
		}
	}
	return n, nil
}

func (r memUsers) GetSummaries(_ context.Context, ids []string) (map[string]entity.UserSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := map[string]entity.UserSummary{}
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out[id] = u.Summary()
		}
	}
	return out, nil
}

type memFriends struct{ *memStore }

func (r memFriends) find(requesterID, targetID string) *entity.Friendship {
	for _, e := range r.edges {
		if e.RequesterID == requesterID && e.TargetID == targetID {
			return e
		}
	}
	return nil
}

func (r memFriends) Create(_ context.Context, requesterID, targetID string) (*entity.Friendship, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.find(requesterID, targetID) != nil {
		return nil, apperror.Conflict("friend request already exists", nil)
	}
	id, at := r.next("edge")
	f := &entity.Friendship{ID: id, RequesterID: requesterID, TargetID: targetID, CreatedAt: at}
	r.edges = append(r.edges, f)
	cp := *f
	return &cp, nil
}

func (r memFriends) Get(_ context.Context, requesterID, targetID string) (*entity.Friendship, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f := r.find(requesterID, targetID)
	if f == nil {
		return nil, apperror.NotFound("friend request")
	}
	cp := *f
	return &cp, nil
}

func (r memFriends) Accept(_ context.Context, requesterID, targetID string, at time.Time) (*entity.Friendship, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f := r.find(requesterID, targetID)
	if f == nil {
		return nil, apperror.NotFound("friend request")
	}
	f.IsActive = true
	if f.AcceptedAt == nil {
		f.AcceptedAt = &at
	}
	cp := *f
	return &cp, nil
}

func (r memFriends) DeleteBetween(_ context.Context, a, b string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	kept := r.edges[:0]
	for _, e := range r.edges {
		if (e.RequesterID == a && e.TargetID == b) || (e.RequesterID == b && e.TargetID == a) {
			n++
			continue
		}
		kept = append(kept, e)
	}
	r.edges = kept
	return n, nil
}

func (r memFriends) ConfirmedFriendIDs(_ context.Context, userID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, e := range r.edges {
		if !e.Confirmed() {
			continue
		}
		if e.RequesterID == userID || e.TargetID == userID {
			out = append(out, e.Other(userID))
		}
	}
	return out, nil
}

func (r memFriends) ListPendingFor(_ context.Context, userID string) ([]*entity.Friendship, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Friendship
	for _, e := range r.edges {
		if e.TargetID == userID && e.AcceptedAt == nil {
			cp := *e
			cp.Requester = r.users[e.RequesterID].Summary()
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r memFriends) ListFriends(ctx context.Context, userID string) ([]entity.UserSummary, error) {
	ids, _ := r.ConfirmedFriendIDs(ctx, userID)
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.UserSummary, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.users[id].Summary())
	}
	return out, nil
}

type memPosts struct{ *memStore }

func (r memPosts) Create(_ context.Context, p *entity.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[p.AuthorID]; !ok {
		return apperror.NotFound("user")
	}
	p.ID, p.CreatedAt = r.next("post")
	p.UpdatedAt = p.CreatedAt
	cp := *p
	r.posts[p.ID] = &cp
	return nil
}

func (r memPosts) GetByID(_ context.Context, id string) (*entity.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, apperror.NotFound("post")
	}
	cp := *p
	cp.Author = r.users[p.AuthorID].Summary()
	return &cp, nil
}

func (r memPosts) ListByAuthors(_ context.Context, authorIDs []string, q pagination.Query) ([]*entity.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	allowed := map[string]bool{}
	for _, id := range authorIDs {
		allowed[id] = true
	}
	var all []*entity.Post
	for _, p := range r.posts {
		if allowed[p.AuthorID] {
			cp := *p
			cp.Author = r.users[p.AuthorID].Summary()
			all = append(all, &cp)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID > all[j].ID
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	start := q.Offset
	if q.After != nil {
		start = len(all)
		for i, p := range all {
			if p.CreatedAt.Before(q.After.CreatedAt) || (p.CreatedAt.Equal(q.After.CreatedAt) && p.ID < q.After.ID) {
				start = i
				break
			}
		}
	}
	if start > len(all) {
		start = len(all)
	}
	end := start + q.Fetch()
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], nil
}

func (r memPosts) Update(_ context.Context, p *entity.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.posts[p.ID] = &cp
	return nil
}

func (r memPosts) Delete(_ context.Context, id, authorID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok || p.AuthorID != authorID {
		return apperror.NotFound("post")
	}
	delete(r.posts, id)
	for k := range r.likes {
		if k[1] == id {
			delete(r.likes, k)
		}
	}
	for cid, c := range r.comments {
		if c.PostID == id {
			delete(r.comments, cid)
		}
	}
	return nil
}

type memLikes struct{ *memStore }

func (r memLikes) Toggle(_ context.Context, userID, postID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[postID]; !ok {
		return false, apperror.NotFound("post")
	}
	k := [2]string{userID, postID}
	if r.likes[k] {
		delete(r.likes, k)
		return false, nil
	}
	r.likes[k] = true
	return true, nil
}

func (r memLikes) Count(_ context.Context, postID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for k := range r.likes {
		if k[1] == postID {
			n++
		}
	}
	return n, nil
}

func (r memLikes) Exists(_ context.Context, userID, postID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.likes[[2]string{userID, postID}], nil
}

func (r memLikes) CountByPosts(_ context.Context, postIDs []string) (map[string]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := map[string]int64{}
	for _, id := range postIDs {
		for k := range r.likes {
			if k[1] == id {
				out[id]++
			}
		}
	}
	return out, nil
}

func (r memLikes) LikedByUser(_ context.Context, userID string, postIDs []string) (map[string]bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := map[string]bool{}
	for _, id := range postIDs {
		if r.likes[[2]string{userID, id}] {
			out[id] = true
		}
	}
	return out, nil
}

type memComments struct{ *memStore }

func (r memComments) Create(_ context.Context, c *entity.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[c.PostID]; !ok {
		return apperror.NotFound("post")
	}
	c.ID, c.CreatedAt = r.next("comment")
	c.UpdatedAt = c.CreatedAt
	cp := *c
	r.comments[c.ID] = &cp
	return nil
}

func (r memComments) GetByID(_ context.Context, id string) (*entity.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.comments[id]
	if !ok {
		return nil, apperror.NotFound("comment")
	}
	cp := *c
	cp.Author = r.users[c.AuthorID].Summary()
	return &cp, nil
}

func (r memComments) ListByPost(_ context.Context, postID string, q pagination.Query) ([]*entity.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []*entity.Comment
	for _, c := range r.comments {
		if c.PostID == postID {
			cp := *c
			all = append(all, &cp)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	start := q.Offset
	if q.After != nil {
		start = len(all)
		for i, c := range all {
			if c.CreatedAt.Before(q.After.CreatedAt) {
				start = i
				break
			}
		}
	}
	if start > len(all) {
		start = len(all)
	}
	end := start + q.Fetch()
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], nil
}

func (r memComments) Count(_ context.Context, postID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, c := range r.comments {
		if c.PostID == postID {
			n++
		}
	}
	return n, nil
}

func (r memComments) CountByPosts(_ context.Context, postIDs []string) (map[string]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := map[string]int64{}
	want := map[string]bool{}
	for _, id := range postIDs {
		want[id] = true
	}
	for _, c := range r.comments {
		if want[c.PostID] {
			out[c.PostID]++
		}
	}
	return out, nil
}
