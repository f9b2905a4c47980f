package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"inkwell/internal/auth"
	"inkwell/internal/posts"
)

// Memory is an in-process implementation of auth.UserStore and posts.Store,
// used by tests and local development without a database. Safe for
// concurrent use.
type Memory struct {
	mu      sync.RWMutex
	users   map[string]*auth.User // by id
	byEmail map[string]string     // email -> id
	posts   map[string]*posts.Post
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		users:   make(map[string]*auth.User),
		byEmail: make(map[string]string),
		posts:   make(map[string]*posts.Post),
	}
}

func cloneUser(u *auth.User) *auth.User {
	out := *u
	if u.RefreshHash != nil {
		h := *u.RefreshHash
		out.RefreshHash = &h
	}
	return &out
}

func clonePost(p *posts.Post) *posts.Post {
	out := *p
	return &out
}

func (m *Memory) CreateUser(ctx context.Context, u *auth.User) (*auth.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, taken := m.byEmail[u.Email]; taken {
		return nil, auth.ErrDuplicateEmail
	}

	now := time.Now()
	created := cloneUser(u)
	created.ID = uuid.NewString()
	created.CreatedAt = now
	created.UpdatedAt = now

	m.users[created.ID] = created
	m.byEmail[created.Email] = created.ID
	return cloneUser(created), nil
}

func (m *Memory) FindUserByEmail(ctx context.Context, email string) (*auth.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.byEmail[email]
	if !ok {
		return nil, auth.ErrUserNotFound
	}
	return cloneUser(m.users[id]), nil
}

func (m *Memory) FindUserByID(ctx context.Context, id string) (*auth.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[id]
	if !ok {
		return nil, auth.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (m *Memory) UpdateRefreshHash(ctx context.Context, userID string, hash *string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[userID]
	if !ok {
		return auth.ErrUserNotFound
	}
	if hash != nil {
		h := *hash
		u.RefreshHash = &h
	} else {
		u.RefreshHash = nil
	}
	u.UpdatedAt = time.Now()
	return nil
}

func (m *Memory) CreatePost(ctx context.Context, p *posts.Post) (*posts.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	created := clonePost(p)
	created.ID = uuid.NewString()
	created.CreatedAt = now
	created.UpdatedAt = now

	m.posts[created.ID] = created
	return clonePost(created), nil
}

func (m *Memory) FindPostByID(ctx context.Context, id string) (*posts.Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.posts[id]
	if !ok {
		return nil, posts.ErrNotFound
	}
	return clonePost(p), nil
}

func (m *Memory) ListPublished(ctx context.Context) ([]*posts.Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*posts.Post, 0, len(m.posts))
	for _, p := range m.posts {
		if p.Published {
			out = append(out, clonePost(p))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *Memory) UpdatePost(ctx context.Context, p *posts.Post) (*posts.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.posts[p.ID]
	if !ok {
		return nil, posts.ErrNotFound
	}
	updated := clonePost(p)
	updated.CreatedAt = stored.CreatedAt
	updated.UpdatedAt = time.Now()
	m.posts[p.ID] = updated
	return clonePost(updated), nil
}

func (m *Memory) DeletePost(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.posts[id]; !ok {
		return posts.ErrNotFound
	}
	delete(m.posts, id)
	return nil
}
