// Package product provides the product value type, its input schema and pure functions.
// This package has NO dependencies on I/O or external packages.
package product

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/artpar/postshop/domain/schema"
)

// Product is a catalog item (immutable value type).
type Product struct {
	ID          string
	Name        string
	Description string
	SKU         string
	PriceCents  int64 // cents
	Stock       int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Input is the user-editable part of a product.
type Input struct {
	Name        string
	Description string
	SKU         string
	PriceCents  int64
	Stock       int64
}

// Schema is the validation schema for product input.
// Price is entered in currency units and stored in cents.
var Schema = schema.Schema{
	Entity: "product",
	Fields: []schema.Field{
		{
			Name: "name", Label: "Name", Type: schema.FieldTypeString, Required: true,
			Constraints: []schema.Constraint{schema.MinLength(2), schema.MaxLength(100)},
		},
		{
			Name: "description", Label: "Description", Type: schema.FieldTypeText,
			Constraints: []schema.Constraint{schema.MaxLength(2000)},
		},
		{
			Name: "sku", Label: "SKU", Type: schema.FieldTypeString,
			Help: "Uppercase letters, digits and dashes.",
			Constraints: []schema.Constraint{
				schema.Pattern(`^[A-Z0-9-]{0,32}$`).WithMessage("must be up to 32 uppercase letters, digits or dashes"),
			},
		},
		{
			Name: "price", Label: "Price", Type: schema.FieldTypeFloat, Required: true,
			Constraints: []schema.Constraint{schema.Min(0.01), schema.Max(1_000_000)},
		},
		{
			Name: "stock", Label: "Stock", Type: schema.FieldTypeInt, Required: true,
			Constraints: []schema.Constraint{schema.Min(0), schema.Max(1_000_000)},
		},
	},
}

// Cache tags. Every mutation invalidates ListTag and the item's tag.
const ListTag = "products"

// ItemTag returns the cache tag of a single product.
func ItemTag(id string) string {
	return "product:" + id
}

// ParseInput validates raw input against Schema.
// This is a PURE function.
func ParseInput(raw map[string]string) (Input, schema.ValidationResult) {
	v, result := Schema.Parse(raw)
	return Input{
		Name:        v.String("name"),
		Description: v.String("description"),
		SKU:         v.String("sku"),
		PriceCents:  ToCents(v.Float("price")),
		Stock:       v.Int("stock"),
	}, result
}

// New builds a product from validated input.
func New(id string, in Input, now time.Time) Product {
	now = now.UTC()
	return Product{
		ID:          id,
		Name:        in.Name,
		Description: in.Description,
		SKU:         in.SKU,
		PriceCents:  in.PriceCents,
		Stock:       in.Stock,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Apply returns a copy of p with the input applied.
func (p Product) Apply(in Input, now time.Time) Product {
	p.Name = in.Name
	p.Description = in.Description
	p.SKU = in.SKU
	p.PriceCents = in.PriceCents
	p.Stock = in.Stock
	p.UpdatedAt = now.UTC()
	return p
}

// Form returns the product as raw form values, for prefilling the edit form.
func (p Product) Form() map[string]string {
	return map[string]string{
		"name":        p.Name,
		"description": p.Description,
		"sku":         p.SKU,
		"price":       FormatPrice(p.PriceCents),
		"stock":       strconv.FormatInt(p.Stock, 10),
	}
}

// InStock reports whether any units are available.
func (p Product) InStock() bool {
	return p.Stock > 0
}

// Price returns the formatted price, e.g. "12.50".
func (p Product) Price() string {
	return FormatPrice(p.PriceCents)
}

// ToCents converts a currency amount to cents, rounding half away from zero.
func ToCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// FormatPrice formats cents as a decimal amount with two places.
func FormatPrice(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
