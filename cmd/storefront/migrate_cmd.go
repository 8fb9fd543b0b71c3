package main

import (
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"

	"github.com/docesofia/storefront/pkg/configuration"
)

func newMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "migrate [up|down|status]",
		Short:     "Apply database schema migrations",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"up", "down", "status"},
		RunE: func(cmd *cobra.Command, args []string) error {
			conf := configuration.Use()

			db, err := sql.Open("pgx", conf.Database.Opts)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer func() {
				_ = db.Close()
			}()

			if err := goose.SetDialect("postgres"); err != nil {
				return err
			}

			switch args[0] {
			case "up":
				return goose.Up(db, conf.MigrationsDir)
			case "down":
				return goose.Down(db, conf.MigrationsDir)
			case "status":
				return goose.Status(db, conf.MigrationsDir)
			default:
				return fmt.Errorf("unknown migrate direction %q", args[0])
			}
		},
	}
	return cmd
}
