package memory

import (
	"context"
	"sync"
	"time"

	"github.com/artpar/postshop/domain/product"
	"github.com/artpar/postshop/ports"
)

// ProductStore is an in-memory implementation of ports.ProductStore.
type ProductStore struct {
	mu       sync.RWMutex
	products map[string]product.Product
	bySKU    map[string]string // sku -> ID
}

// NewProductStore creates a new in-memory product store.
func NewProductStore() *ProductStore {
	return &ProductStore{
		products: make(map[string]product.Product),
		bySKU:    make(map[string]string),
	}
}

// Get retrieves a product by ID.
func (s *ProductStore) Get(ctx context.Context, id string) (product.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return product.Product{}, ErrNotFound
	}
	return p, nil
}

// List returns products newest first.
func (s *ProductStore) List(ctx context.Context, limit, offset int) ([]product.Product, error) {
	s.mu.RLock()
	all := make([]product.Product, 0, len(s.products))
	for _, p := range s.products {
		all = append(all, p)
	}
	s.mu.RUnlock()

	return page(all,
		func(p product.Product) time.Time { return p.CreatedAt },
		func(p product.Product) string { return p.ID },
		limit, offset), nil
}

// Count returns total product count.
func (s *ProductStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products), nil
}

// Create stores a new product.
func (s *ProductStore) Create(ctx context.Context, p product.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[p.ID]; exists {
		return ports.ErrConflict
	}
	if s.skuTaken(p.SKU, p.ID) {
		return ports.ErrConflict
	}

	s.products[p.ID] = p
	if p.SKU != "" {
		s.bySKU[p.SKU] = p.ID
	}
	return nil
}

// Update modifies an existing product.
func (s *ProductStore) Update(ctx context.Context, p product.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.products[p.ID]
	if !ok {
		return ErrNotFound
	}
	if s.skuTaken(p.SKU, p.ID) {
		return ports.ErrConflict
	}

	if old.SKU != "" {
		delete(s.bySKU, old.SKU)
	}
	s.products[p.ID] = p
	if p.SKU != "" {
		s.bySKU[p.SKU] = p.ID
	}
	return nil
}

// Delete removes a product.
func (s *ProductStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return ErrNotFound
	}
	delete(s.products, id)
	if p.SKU != "" {
		delete(s.bySKU, p.SKU)
	}
	return nil
}

// skuTaken reports whether sku belongs to a product other than id.
// Caller must hold the lock.
func (s *ProductStore) skuTaken(sku, id string) bool {
	if sku == "" {
		return false
	}
	owner, ok := s.bySKU[sku]
	return ok && owner != id
}

// Ensure interface compliance.
var _ ports.ProductStore = (*ProductStore)(nil)
