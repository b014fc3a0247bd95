package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/artpar/postshop/domain/post"
	"github.com/artpar/postshop/ports"
)

// PostStore implements ports.PostStore using SQLite.
type PostStore struct {
	db *DB
}

// NewPostStore creates a new SQLite post store.
func NewPostStore(db *DB) *PostStore {
	return &PostStore{db: db}
}

const postColumns = `id, title, content, author, published, created_at, updated_at`

// Get retrieves a post by ID.
func (s *PostStore) Get(ctx context.Context, id string) (post.Post, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+postColumns+`
		FROM posts
		WHERE id = ?
	`, id)
	return scanPost(row)
}

// List returns posts newest first.
func (s *PostStore) List(ctx context.Context, limit, offset int) ([]post.Post, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+postColumns+`
		FROM posts
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []post.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// Count returns total post count.
func (s *PostStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM posts`).Scan(&n)
	return n, err
}

// Create stores a new post.
func (s *PostStore) Create(ctx context.Context, p post.Post) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO posts (`+postColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, p.ID, p.Title, p.Content, nullStringVal(p.Author), p.Published, p.CreatedAt, p.UpdatedAt)
	return translate(err)
}

// Update modifies an existing post.
func (s *PostStore) Update(ctx context.Context, p post.Post) error {
	return s.db.execOne(ctx, `
		UPDATE posts
		SET title = ?, content = ?, author = ?, published = ?, updated_at = ?
		WHERE id = ?
	`, p.Title, p.Content, nullStringVal(p.Author), p.Published, p.UpdatedAt, p.ID)
}

// Delete removes a post.
func (s *PostStore) Delete(ctx context.Context, id string) error {
	return s.db.execOne(ctx, `DELETE FROM posts WHERE id = ?`, id)
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (post.Post, error) {
	var p post.Post
	var author sql.NullString

	err := row.Scan(&p.ID, &p.Title, &p.Content, &author, &p.Published, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return post.Post{}, ErrNotFound
	}
	if err != nil {
		return post.Post{}, err
	}

	p.Author = author.String
	return p, nil
}

// Ensure interface compliance.
var _ ports.PostStore = (*PostStore)(nil)
