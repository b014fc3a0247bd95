package memory

import (
	"context"
	"sync"
	"time"

	"github.com/artpar/postshop/domain/post"
	"github.com/artpar/postshop/ports"
)

// PostStore is an in-memory implementation of ports.PostStore.
type PostStore struct {
	mu    sync.RWMutex
	posts map[string]post.Post
}

// NewPostStore creates a new in-memory post store.
func NewPostStore() *PostStore {
	return &PostStore{posts: make(map[string]post.Post)}
}

// Get retrieves a post by ID.
func (s *PostStore) Get(ctx context.Context, id string) (post.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.posts[id]
	if !ok {
		return post.Post{}, ErrNotFound
	}
	return p, nil
}

// List returns posts newest first.
func (s *PostStore) List(ctx context.Context, limit, offset int) ([]post.Post, error) {
	s.mu.RLock()
	all := make([]post.Post, 0, len(s.posts))
	for _, p := range s.posts {
		all = append(all, p)
	}
	s.mu.RUnlock()

	return page(all,
		func(p post.Post) time.Time { return p.CreatedAt },
		func(p post.Post) string { return p.ID },
		limit, offset), nil
}

// Count returns total post count.
func (s *PostStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.posts), nil
}

// Create stores a new post.
func (s *PostStore) Create(ctx context.Context, p post.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.posts[p.ID]; exists {
		return ports.ErrConflict
	}
	s.posts[p.ID] = p
	return nil
}

// Update modifies an existing post.
func (s *PostStore) Update(ctx context.Context, p post.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[p.ID]; !ok {
		return ErrNotFound
	}
	s.posts[p.ID] = p
	return nil
}

// Delete removes a post.
func (s *PostStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[id]; !ok {
		return ErrNotFound
	}
	delete(s.posts, id)
	return nil
}

// Ensure interface compliance.
var _ ports.PostStore = (*PostStore)(nil)
