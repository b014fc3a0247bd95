// Package ports defines interfaces (contracts) between layers.
// These interfaces enable dependency injection and testability.
// Implementations live in adapters/.
package ports

import (
	"context"
	"errors"
	"time"

	"github.com/artpar/postshop/domain/post"
	"github.com/artpar/postshop/domain/product"
)

// ErrNotFound is returned by stores when no record matches.
// Adapters return it (or wrap it) so callers can use errors.Is.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned by stores when a unique field is already taken.
var ErrConflict = errors.New("conflict")

// -----------------------------------------------------------------------------
// Infrastructure Ports
// -----------------------------------------------------------------------------

// Clock abstracts time for testability.
type Clock interface {
	Now() time.Time
}

// IDGenerator generates unique identifiers.
type IDGenerator interface {
	New() string
}

// Sanitizer strips unsafe markup from user input.
type Sanitizer interface {
	// Text removes all markup.
	Text(s string) string

	// Markup keeps a small set of safe formatting elements.
	Markup(s string) string
}

// PageCache stores rendered responses indexed by tag.
type PageCache interface {
	// Get returns a cached body, or ok=false on a miss.
	Get(ctx context.Context, key string) (body []byte, ok bool)

	// Version returns a token to take before reading the data a page is
	// rendered from.
	Version(ctx context.Context) uint64

	// Set stores a body under key, associated with the given tags. The body
	// is dropped if any of its tags was invalidated after since was taken.
	Set(ctx context.Context, key string, tags []string, body []byte, since uint64)

	// Invalidate removes every entry carrying any of the tags.
	// It returns the number of entries removed.
	Invalidate(ctx context.Context, tags ...string) int
}

// -----------------------------------------------------------------------------
// Data Store Ports
// -----------------------------------------------------------------------------

// PostStore persists posts.
type PostStore interface {
	// Get retrieves a post by ID.
	Get(ctx context.Context, id string) (post.Post, error)

	// List returns posts newest first.
	List(ctx context.Context, limit, offset int) ([]post.Post, error)

	// Count returns total post count.
	Count(ctx context.Context) (int, error)

	// Create stores a new post.
	Create(ctx context.Context, p post.Post) error

	// Update modifies an existing post.
	Update(ctx context.Context, p post.Post) error

	// Delete removes a post.
	Delete(ctx context.Context, id string) error
}

// ProductStore persists products.
type ProductStore interface {
	// Get retrieves a product by ID.
	Get(ctx context.Context, id string) (product.Product, error)

	// List returns products newest first.
	List(ctx context.Context, limit, offset int) ([]product.Product, error)

	// Count returns total product count.
	Count(ctx context.Context) (int, error)

	// Create stores a new product.
	Create(ctx context.Context, p product.Product) error

	// Update modifies an existing product.
	Update(ctx context.Context, p product.Product) error

	// Delete removes a product.
	Delete(ctx context.Context, id string) error
}
