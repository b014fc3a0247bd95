package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/artpar/postshop/domain/product"
	"github.com/artpar/postshop/ports"
)

// ProductStore implements ports.ProductStore using SQLite.
type ProductStore struct {
	db *DB
}

// NewProductStore creates a new SQLite product store.
func NewProductStore(db *DB) *ProductStore {
	return &ProductStore{db: db}
}

const productColumns = `id, name, description, sku, price_cents, stock, created_at, updated_at`

// Get retrieves a product by ID.
func (s *ProductStore) Get(ctx context.Context, id string) (product.Product, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE id = ?
	`, id)
	return scanProduct(row)
}

// List returns products newest first.
func (s *ProductStore) List(ctx context.Context, limit, offset int) ([]product.Product, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+productColumns+`
		FROM products
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []product.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// Count returns total product count.
func (s *ProductStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&n)
	return n, err
}

// Create stores a new product.
func (s *ProductStore) Create(ctx context.Context, p product.Product) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO products (`+productColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, p.ID, p.Name, nullStringVal(p.Description), nullStringVal(p.SKU), p.PriceCents, p.Stock,
		p.CreatedAt, p.UpdatedAt)
	return translate(err)
}

// Update modifies an existing product.
func (s *ProductStore) Update(ctx context.Context, p product.Product) error {
	return s.db.execOne(ctx, `
		UPDATE products
		SET name = ?, description = ?, sku = ?, price_cents = ?, stock = ?, updated_at = ?
		WHERE id = ?
	`, p.Name, nullStringVal(p.Description), nullStringVal(p.SKU), p.PriceCents, p.Stock,
		p.UpdatedAt, p.ID)
}

// Delete removes a product.
func (s *ProductStore) Delete(ctx context.Context, id string) error {
	return s.db.execOne(ctx, `DELETE FROM products WHERE id = ?`, id)
}

func scanProduct(row rowScanner) (product.Product, error) {
	var p product.Product
	var description, sku sql.NullString

	err := row.Scan(&p.ID, &p.Name, &description, &sku, &p.PriceCents, &p.Stock, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return product.Product{}, ErrNotFound
	}
	if err != nil {
		return product.Product{}, err
	}

	p.Description = description.String
	p.SKU = sku.String
	return p, nil
}

// Ensure interface compliance.
var _ ports.ProductStore = (*ProductStore)(nil)
