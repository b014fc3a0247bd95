package main

import (
	"fmt"

	"github.com/artpar/postshop/adapters/sqlite"
	"github.com/artpar/postshop/config"
	"github.com/spf13/cobra"
)

func newMigrateCmd(opts *cliOptions) *cobra.Command {
	var status bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Long: `Apply the embedded SQL migrations to the configured SQLite database.

Migrations are also applied on every start of "serve"; this command
exists for deploys that upgrade the schema ahead of time.

Examples:
  postshop migrate
  postshop migrate --status`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadWithFallback(opts.cfgFile)
			if err != nil {
				return fmt.Errorf("error loading config: %w", err)
			}
			if cfg.Database.Driver != "sqlite" {
				return fmt.Errorf("migrate needs the sqlite driver, got %q", cfg.Database.Driver)
			}

			db, err := sqlite.Open(cfg.Database.DSN)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer db.Close()

			out := cmd.OutOrStdout()
			if status {
				pending, err := db.Pending(cmd.Context())
				if err != nil {
					return err
				}
				if len(pending) == 0 {
					fmt.Fprintln(out, "Database is up to date.")
					return nil
				}
				fmt.Fprintf(out, "%d pending migration(s):\n", len(pending))
				for _, v := range pending {
					fmt.Fprintf(out, "  %s\n", v)
				}
				return nil
			}

			applied, err := db.Migrate(cmd.Context())
			if err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			if len(applied) == 0 {
				fmt.Fprintln(out, "Database is up to date.")
				return nil
			}
			for _, v := range applied {
				fmt.Fprintf(out, "Applied %s\n", v)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&status, "status", false, "list pending migrations without applying them")
	return cmd
}
