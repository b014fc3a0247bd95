package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/artpar/postshop/app"
	"github.com/artpar/postshop/core/formatter"
	"github.com/spf13/cobra"
)

func newProductsCmd(opts *cliOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "products",
		Aliases: []string{"product"},
		Short:   "Manage products",
		Long:    `List, show, create and delete catalogue products in the configured database.`,
	}

	cmd.AddCommand(
		newProductsListCmd(opts),
		newProductsGetCmd(opts),
		newProductsCreateCmd(opts),
		newProductsDeleteCmd(opts),
	)
	return cmd
}

func newProductsListCmd(opts *cliOptions) *cobra.Command {
	var page, perPage int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List products, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Shutdown(cmd.Context())

			if perPage <= 0 {
				perPage = a.Config.Pagination.PerPage
			}
			result, err := a.Products.List(cmd.Context(), page, perPage)
			if err != nil {
				return fmt.Errorf("list products: %w", err)
			}

			records := make([]formatter.Record, 0, len(result.Items))
			for _, p := range result.Items {
				records = append(records, productRecord(p))
			}
			return printList(cmd, opts, productView, records)
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&perPage, "per-page", 0, "products per page (default from config)")
	return cmd
}

func newProductsGetCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Shutdown(cmd.Context())

			p, err := a.Products.Get(cmd.Context(), args[0])
			if errors.Is(err, app.ErrNotFound) {
				return fmt.Errorf("product not found: %s", args[0])
			}
			if err != nil {
				return fmt.Errorf("get product: %w", err)
			}
			return printRecord(cmd, opts, productView, productDetail, productRecord(p))
		},
	}
}

func newProductsCreateCmd(opts *cliOptions) *cobra.Command {
	var name, description, sku, price string
	var stock int64

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a product",
		Long: `Create a product. The price is given in currency units, e.g. 12.50.

Example:
  postshop products create --name "Teapot" --sku TP-1 --price 19.99 --stock 4`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Shutdown(cmd.Context())

			p, err := a.Products.Create(cmd.Context(), map[string]string{
				"name":        name,
				"description": description,
				"sku":         sku,
				"price":       price,
				"stock":       strconv.FormatInt(stock, 10),
			})
			if err != nil {
				return err
			}
			return printRecord(cmd, opts, productView, productDetail, productRecord(p))
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "product name (required)")
	cmd.Flags().StringVar(&description, "description", "", "product description")
	cmd.Flags().StringVar(&sku, "sku", "", "stock keeping unit, unique (required)")
	cmd.Flags().StringVar(&price, "price", "", "unit price, e.g. 12.50 (required)")
	cmd.Flags().Int64Var(&stock, "stock", 0, "units in stock")
	return cmd
}

func newProductsDeleteCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Shutdown(cmd.Context())

			err = a.Products.Delete(cmd.Context(), args[0])
			if errors.Is(err, app.ErrNotFound) {
				return fmt.Errorf("product not found: %s", args[0])
			}
			if err != nil {
				return fmt.Errorf("delete product: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted product %s\n", args[0])
			return nil
		},
	}
}
