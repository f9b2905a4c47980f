// Package posts implements blog post CRUD with ownership checks. It reads
// the acting user's id and role from already-verified token claims passed in
// by the HTTP layer; it performs no authentication itself.
package posts

import (
	"context"
	"errors"
	"time"

	"inkwell/internal/auth"
)

var (
	// ErrNotFound is returned for lookups of unknown post ids.
	ErrNotFound = errors.New("post not found")
	// ErrNotAllowed is returned when the actor is neither the author nor
	// an admin.
	ErrNotAllowed = errors.New("not allowed")
)

// Post is a blog entry. Unpublished posts are drafts visible through direct
// lookup but excluded from the public listing.
type Post struct {
	ID        string
	Title     string
	Content   string
	Published bool
	AuthorID  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Store is the persistence collaborator. Implementations return ErrNotFound
// on lookup misses and wrap transport failures with auth.ErrStoreUnavailable.
type Store interface {
	CreatePost(ctx context.Context, p *Post) (*Post, error)
	FindPostByID(ctx context.Context, id string) (*Post, error)
	ListPublished(ctx context.Context) ([]*Post, error)
	UpdatePost(ctx context.Context, p *Post) (*Post, error)
	DeletePost(ctx context.Context, id string) error
}

// CreateInput is a validated post creation request.
type CreateInput struct {
	Title     string
	Content   string
	Published bool
}

// UpdateInput is a partial update; nil fields are left unchanged.
type UpdateInput struct {
	Title     *string
	Content   *string
	Published *bool
}

// Service wraps Store with ownership rules.
type Service struct {
	store Store
}

// NewService returns a Service over the given store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Create stores a new post owned by authorID.
func (s *Service) Create(ctx context.Context, authorID string, in CreateInput) (*Post, error) {
	return s.store.CreatePost(ctx, &Post{
		Title:     in.Title,
		Content:   in.Content,
		Published: in.Published,
		AuthorID:  authorID,
	})
}

// ListPublished returns published posts, newest first.
func (s *Service) ListPublished(ctx context.Context) ([]*Post, error) {
	return s.store.ListPublished(ctx)
}

// Get returns a post by id, drafts included.
func (s *Service) Get(ctx context.Context, id string) (*Post, error) {
	return s.store.FindPostByID(ctx, id)
}

// Update applies a partial update. Only the author or an admin may modify a
// post.
func (s *Service) Update(ctx context.Context, id, actorID string, actorRole auth.Role, in UpdateInput) (*Post, error) {
	post, err := s.store.FindPostByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != actorID && actorRole != auth.RoleAdmin {
		return nil, ErrNotAllowed
	}

	if in.Title != nil {
		post.Title = *in.Title
	}
	if in.Content != nil {
		post.Content = *in.Content
	}
	if in.Published != nil {
		post.Published = *in.Published
	}
	return s.store.UpdatePost(ctx, post)
}

// Delete removes a post. Only the author or an admin may delete it.
func (s *Service) Delete(ctx context.Context, id, actorID string, actorRole auth.Role) error {
	post, err := s.store.FindPostByID(ctx, id)
	if err != nil {
		return err
	}
	if post.AuthorID != actorID && actorRole != auth.RoleAdmin {
		return ErrNotAllowed
	}
	return s.store.DeletePost(ctx, id)
}
