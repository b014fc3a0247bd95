package main

import (
	"github.com/artpar/postshop/core/formatter"
	"github.com/artpar/postshop/domain/post"
	"github.com/artpar/postshop/domain/product"
	"github.com/spf13/cobra"
)

var (
	postView = formatter.View{
		Name:    "posts",
		Columns: []string{"id", "title", "author", "published", "created_at"},
	}
	productView = formatter.View{
		Name:    "products",
		Columns: []string{"id", "name", "sku", "price", "stock"},
	}

	postDetail    = []string{"id", "title", "author", "published", "content", "created_at", "updated_at"}
	productDetail = []string{"id", "name", "sku", "price", "stock", "description", "created_at", "updated_at"}
)

func postRecord(p post.Post) formatter.Record {
	return formatter.Record{
		"id":         p.ID,
		"title":      p.Title,
		"content":    p.Content,
		"author":     p.Author,
		"published":  p.Published,
		"created_at": p.CreatedAt,
		"updated_at": p.UpdatedAt,
	}
}

func productRecord(p product.Product) formatter.Record {
	return formatter.Record{
		"id":          p.ID,
		"name":        p.Name,
		"description": p.Description,
		"sku":         p.SKU,
		"price":       p.Price(),
		"stock":       p.Stock,
		"created_at":  p.CreatedAt,
		"updated_at":  p.UpdatedAt,
	}
}

func printList(cmd *cobra.Command, opts *cliOptions, view formatter.View, records []formatter.Record) error {
	f, err := formatter.Lookup(opts.output)
	if err != nil {
		return err
	}
	return f.List(cmd.OutOrStdout(), view, records, formatter.Options{MaxWidth: 40})
}

func printRecord(cmd *cobra.Command, opts *cliOptions, view formatter.View, columns []string, record formatter.Record) error {
	f, err := formatter.Lookup(opts.output)
	if err != nil {
		return err
	}
	return f.One(cmd.OutOrStdout(), view, record, formatter.Options{Columns: columns})
}
