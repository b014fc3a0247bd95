package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/artpar/postshop/app"
	"github.com/artpar/postshop/core/formatter"
	"github.com/spf13/cobra"
)

func newPostsCmd(opts *cliOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "posts",
		Aliases: []string{"post"},
		Short:   "Manage posts",
		Long:    `List, show, create and delete blog posts in the configured database.`,
	}

	cmd.AddCommand(
		newPostsListCmd(opts),
		newPostsGetCmd(opts),
		newPostsCreateCmd(opts),
		newPostsDeleteCmd(opts),
	)
	return cmd
}

func newPostsListCmd(opts *cliOptions) *cobra.Command {
	var page, perPage int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List posts, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Shutdown(cmd.Context())

			if perPage <= 0 {
				perPage = a.Config.Pagination.PerPage
			}
			result, err := a.Posts.List(cmd.Context(), page, perPage)
			if err != nil {
				return fmt.Errorf("list posts: %w", err)
			}

			records := make([]formatter.Record, 0, len(result.Items))
			for _, p := range result.Items {
				records = append(records, postRecord(p))
			}
			return printList(cmd, opts, postView, records)
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&perPage, "per-page", 0, "posts per page (default from config)")
	return cmd
}

func newPostsGetCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Shutdown(cmd.Context())

			p, err := a.Posts.Get(cmd.Context(), args[0])
			if errors.Is(err, app.ErrNotFound) {
				return fmt.Errorf("post not found: %s", args[0])
			}
			if err != nil {
				return fmt.Errorf("get post: %w", err)
			}
			return printRecord(cmd, opts, postView, postDetail, postRecord(p))
		},
	}
}

func newPostsCreateCmd(opts *cliOptions) *cobra.Command {
	var title, content, author string
	var published bool

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a post",
		Long: `Create a post. Input is validated and sanitized exactly as the web form.

Example:
  postshop posts create --title "Hello" --content "First post on the shop." --published`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Shutdown(cmd.Context())

			p, err := a.Posts.Create(cmd.Context(), map[string]string{
				"title":     title,
				"content":   content,
				"author":    author,
				"published": strconv.FormatBool(published),
			})
			if err != nil {
				return err
			}
			return printRecord(cmd, opts, postView, postDetail, postRecord(p))
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "post title (required)")
	cmd.Flags().StringVar(&content, "content", "", "post body (required)")
	cmd.Flags().StringVar(&author, "author", "", "author name")
	cmd.Flags().BoolVar(&published, "published", false, "publish the post")
	return cmd
}

func newPostsDeleteCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Shutdown(cmd.Context())

			err = a.Posts.Delete(cmd.Context(), args[0])
			if errors.Is(err, app.ErrNotFound) {
				return fmt.Errorf("post not found: %s", args[0])
			}
			if err != nil {
				return fmt.Errorf("delete post: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted post %s\n", args[0])
			return nil
		},
	}
}
