package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// cliOptions holds the global flags.
type cliOptions struct {
	cfgFile string
	output  string
	verbose bool
}

// newRootCmd builds the command tree.
func newRootCmd() *cobra.Command {
	opts := &cliOptions{}

	root := &cobra.Command{
		Use:   "postshop",
		Short: "Posts and products, served as HTML and JSON:API",
		Long: `Postshop manages blog posts and a small product catalogue.

Quick start:
  postshop migrate   # Create or upgrade the database
  postshop serve     # Start the web server

Management:
  postshop posts     # List, show, create and delete posts
  postshop products  # List, show, create and delete products`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVarP(&opts.cfgFile, "config", "c", "postshop.yaml", "config file path")
	root.PersistentFlags().StringVarP(&opts.output, "output", "o", "table", "output format: table, json or yaml")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log to stderr from management commands")

	root.AddCommand(
		newServeCmd(opts),
		newMigrateCmd(opts),
		newVersionCmd(),
		newPostsCmd(opts),
		newProductsCmd(opts),
	)
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
