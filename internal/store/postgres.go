package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"

	"inkwell/internal/auth"
	"inkwell/internal/posts"
)

const uniqueViolation = "23505"

// Postgres implements auth.UserStore and posts.Store over database/sql with
// the pgx stdlib driver. All failures other than not-found and duplicate
// email are wrapped with auth.ErrStoreUnavailable.
type Postgres struct {
	db *sql.DB
}

// OpenPostgres opens a connection pool for the given DSN.
func OpenPostgres(dsn string) (*Postgres, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("store: open: %w", err)
	}
	return &Postgres{db: db}, nil
}

// NewPostgres wraps an existing pool, e.g. one shared with the migrator.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// DB exposes the underlying pool for migrations and health checks.
func (p *Postgres) DB() *sql.DB { return p.db }

// Close releases the pool.
func (p *Postgres) Close() error { return p.db.Close() }

// Ping verifies connectivity.
func (p *Postgres) Ping(ctx context.Context) error {
	if err := p.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", auth.ErrStoreUnavailable, err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func (p *Postgres) CreateUser(ctx context.Context, u *auth.User) (*auth.User, error) {
	query := `
		INSERT INTO users (email, name, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	created := *u
	err := p.db.QueryRowContext(ctx, query, u.Email, u.Name, u.PasswordHash, string(u.Role)).
		Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, auth.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("%w: %v", auth.ErrStoreUnavailable, err)
	}
	return &created, nil
}

func (p *Postgres) FindUserByEmail(ctx context.Context, email string) (*auth.User, error) {
	return p.findUser(ctx, `WHERE email = $1`, email)
}

func (p *Postgres) FindUserByID(ctx context.Context, id string) (*auth.User, error) {
	return p.findUser(ctx, `WHERE id = $1`, id)
}

func (p *Postgres) findUser(ctx context.Context, where string, arg any) (*auth.User, error) {
	query := `
		SELECT id, email, name, password_hash, role, hashed_rt, created_at, updated_at
		FROM users ` + where

	var (
		u    auth.User
		role string
		rt   sql.NullString
	)
	err := p.db.QueryRowContext(ctx, query, arg).
		Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &role, &rt, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, auth.ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: %v", auth.ErrStoreUnavailable, err)
	}
	u.Role = auth.Role(role)
	if rt.Valid {
		u.RefreshHash = &rt.String
	}
	return &u, nil
}

func (p *Postgres) UpdateRefreshHash(ctx context.Context, userID string, hash *string) error {
	query := `
		UPDATE users SET hashed_rt = $2, updated_at = now()
		WHERE id = $1
	`
	var value sql.NullString
	if hash != nil {
		value = sql.NullString{String: *hash, Valid: true}
	}
	res, err := p.db.ExecContext(ctx, query, userID, value)
	if err != nil {
		return fmt.Errorf("%w: %v", auth.ErrStoreUnavailable, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return auth.ErrUserNotFound
	}
	return nil
}

func (p *Postgres) CreatePost(ctx context.Context, post *posts.Post) (*posts.Post, error) {
	query := `
		INSERT INTO posts (title, content, published, author_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	created := *post
	err := p.db.QueryRowContext(ctx, query, post.Title, post.Content, post.Published, post.AuthorID).
		Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", auth.ErrStoreUnavailable, err)
	}
	return &created, nil
}

func (p *Postgres) FindPostByID(ctx context.Context, id string) (*posts.Post, error) {
	query := `
		SELECT id, title, content, published, author_id, created_at, updated_at
		FROM posts WHERE id = $1
	`
	var post posts.Post
	err := p.db.QueryRowContext(ctx, query, id).
		Scan(&post.ID, &post.Title, &post.Content, &post.Published, &post.AuthorID, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, posts.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", auth.ErrStoreUnavailable, err)
	}
	return &post, nil
}

func (p *Postgres) ListPublished(ctx context.Context) ([]*posts.Post, error) {
	query := `
		SELECT id, title, content, published, author_id, created_at, updated_at
		FROM posts WHERE published ORDER BY created_at DESC
	`
	rows, err := p.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", auth.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var out []*posts.Post
	for rows.Next() {
		var post posts.Post
		if err := rows.Scan(&post.ID, &post.Title, &post.Content, &post.Published, &post.AuthorID, &post.CreatedAt, &post.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%w: %v", auth.ErrStoreUnavailable, err)
		}
		out = append(out, &post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", auth.ErrStoreUnavailable, err)
	}
	return out, nil
}

func (p *Postgres) UpdatePost(ctx context.Context, post *posts.Post) (*posts.Post, error) {
	query := `
		UPDATE posts SET title = $2, content = $3, published = $4, updated_at = now()
		WHERE id = $1
		RETURNING created_at, updated_at
	`
	updated := *post
	err := p.db.QueryRowContext(ctx, query, post.ID, post.Title, post.Content, post.Published).
		Scan(&updated.CreatedAt, &updated.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, posts.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", auth.ErrStoreUnavailable, err)
	}
	return &updated, nil
}

func (p *Postgres) DeletePost(ctx context.Context, id string) error {
	res, err := p.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: %v", auth.ErrStoreUnavailable, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return posts.ErrNotFound
	}
	return nil
}
