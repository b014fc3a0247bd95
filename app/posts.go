package app

import (
	"context"
	"fmt"

	"github.com/artpar/postshop/domain/post"
	"github.com/artpar/postshop/ports"
)

// PostService runs the post actions.
type PostService struct {
	store ports.PostStore
	deps  Deps
	act   actions
}

// NewPostService creates a new post service.
func NewPostService(store ports.PostStore, deps Deps) *PostService {
	return &PostService{
		store: store,
		deps:  deps,
		act:   newActions("post", post.ListTag, post.ItemTag, deps),
	}
}

// List returns one page of posts, newest first.
func (s *PostService) List(ctx context.Context, number, size int) (Page[post.Post], error) {
	number, size = normalizePage(number, size)

	total, err := s.store.Count(ctx)
	if err != nil {
		return Page[post.Post]{}, fmt.Errorf("count posts: %w", err)
	}
	items, err := s.store.List(ctx, size, (number-1)*size)
	if err != nil {
		return Page[post.Post]{}, fmt.Errorf("list posts: %w", err)
	}
	return Page[post.Post]{Items: items, Number: number, Size: size, Total: total}, nil
}

// Get returns a post by ID.
func (s *PostService) Get(ctx context.Context, id string) (post.Post, error) {
	p, err := s.store.Get(ctx, id)
	if err != nil {
		return post.Post{}, fmt.Errorf("get post %s: %w", id, err)
	}
	return p, nil
}

// Create validates the form and stores a new post.
func (s *PostService) Create(ctx context.Context, form map[string]string) (post.Post, error) {
	in, result := post.ParseInput(s.sanitize(form))
	if !result.Valid {
		return post.Post{}, s.act.invalid("create", result, form)
	}

	p := post.New(s.deps.IDs.New(), in, s.deps.Clock.Now())
	if err := s.store.Create(ctx, p); err != nil {
		return post.Post{}, s.act.failed("create", p.ID, err)
	}

	s.act.done(ctx, "create", p.ID)
	return p, nil
}

// Update validates the form and replaces the editable fields of a post.
func (s *PostService) Update(ctx context.Context, id string, form map[string]string) (post.Post, error) {
	existing, err := s.store.Get(ctx, id)
	if err != nil {
		return post.Post{}, s.act.failed("update", id, err)
	}

	in, result := post.ParseInput(s.sanitize(form))
	if !result.Valid {
		return post.Post{}, s.act.invalid("update", result, form)
	}

	p := existing.Apply(in, s.deps.Clock.Now())
	if err := s.store.Update(ctx, p); err != nil {
		return post.Post{}, s.act.failed("update", id, err)
	}

	s.act.done(ctx, "update", id)
	return p, nil
}

// Delete removes a post.
func (s *PostService) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return s.act.failed("delete", id, err)
	}
	s.act.done(ctx, "delete", id)
	return nil
}

// sanitize strips markup from plain fields and unsafe markup from content.
func (s *PostService) sanitize(form map[string]string) map[string]string {
	out := copyForm(form)
	out["title"] = s.deps.Sanitizer.Text(out["title"])
	out["author"] = s.deps.Sanitizer.Text(out["author"])
	out["content"] = s.deps.Sanitizer.Markup(out["content"])
	return out
}
