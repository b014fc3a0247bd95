package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/artpar/postshop/domain/product"
	"github.com/artpar/postshop/domain/schema"
	"github.com/artpar/postshop/ports"
)

// ProductService runs the product actions.
type ProductService struct {
	store ports.ProductStore
	deps  Deps
	act   actions
}

// NewProductService creates a new product service.
func NewProductService(store ports.ProductStore, deps Deps) *ProductService {
	return &ProductService{
		store: store,
		deps:  deps,
		act:   newActions("product", product.ListTag, product.ItemTag, deps),
	}
}

// List returns one page of products, newest first.
func (s *ProductService) List(ctx context.Context, number, size int) (Page[product.Product], error) {
	number, size = normalizePage(number, size)

	total, err := s.store.Count(ctx)
	if err != nil {
		return Page[product.Product]{}, fmt.Errorf("count products: %w", err)
	}
	items, err := s.store.List(ctx, size, (number-1)*size)
	if err != nil {
		return Page[product.Product]{}, fmt.Errorf("list products: %w", err)
	}
	return Page[product.Product]{Items: items, Number: number, Size: size, Total: total}, nil
}

// Get returns a product by ID.
func (s *ProductService) Get(ctx context.Context, id string) (product.Product, error) {
	p, err := s.store.Get(ctx, id)
	if err != nil {
		return product.Product{}, fmt.Errorf("get product %s: %w", id, err)
	}
	return p, nil
}

// Create validates the form and stores a new product.
func (s *ProductService) Create(ctx context.Context, form map[string]string) (product.Product, error) {
	in, result := product.ParseInput(s.sanitize(form))
	if !result.Valid {
		return product.Product{}, s.act.invalid("create", result, form)
	}

	p := product.New(s.deps.IDs.New(), in, s.deps.Clock.Now())
	if err := s.store.Create(ctx, p); err != nil {
		if errors.Is(err, ports.ErrConflict) {
			return product.Product{}, s.act.invalid("create", skuTaken(p.SKU), form)
		}
		return product.Product{}, s.act.failed("create", p.ID, err)
	}

	s.act.done(ctx, "create", p.ID)
	return p, nil
}

// Update validates the form and replaces the editable fields of a product.
func (s *ProductService) Update(ctx context.Context, id string, form map[string]string) (product.Product, error) {
	existing, err := s.store.Get(ctx, id)
	if err != nil {
		return product.Product{}, s.act.failed("update", id, err)
	}

	in, result := product.ParseInput(s.sanitize(form))
	if !result.Valid {
		return product.Product{}, s.act.invalid("update", result, form)
	}

	p := existing.Apply(in, s.deps.Clock.Now())
	if err := s.store.Update(ctx, p); err != nil {
		if errors.Is(err, ports.ErrConflict) {
			return product.Product{}, s.act.invalid("update", skuTaken(p.SKU), form)
		}
		return product.Product{}, s.act.failed("update", id, err)
	}

	s.act.done(ctx, "update", id)
	return p, nil
}

// Delete removes a product.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return s.act.failed("delete", id, err)
	}
	s.act.done(ctx, "delete", id)
	return nil
}

// sanitize strips all markup and upper-cases the SKU.
func (s *ProductService) sanitize(form map[string]string) map[string]string {
	out := copyForm(form)
	for _, f := range []string{"name", "description", "sku"} {
		out[f] = s.deps.Sanitizer.Text(out[f])
	}
	out["sku"] = strings.ToUpper(out["sku"])
	return out
}

func skuTaken(sku string) schema.ValidationResult {
	var r schema.ValidationResult
	r.AddError("sku", "unique", sku, "is already in use")
	return r
}
