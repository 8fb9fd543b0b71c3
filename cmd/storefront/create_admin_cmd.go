package main

import (
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/docesofia/storefront/modules/core/domain/aggregates/user"
	"github.com/docesofia/storefront/modules/core/infrastructure/persistence"
	"github.com/docesofia/storefront/pkg/composables"
	"github.com/docesofia/storefront/pkg/configuration"
	"github.com/docesofia/storefront/pkg/logging"
)

func newCreateAdminCommand() *cobra.Command {
	var email, password, role string

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create a back-office user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" || password == "" {
				return fmt.Errorf("both --email and --password are required")
			}
			if !user.ValidRole(role) {
				return fmt.Errorf("role must be %q or %q", user.RoleAdmin, user.RoleSocialMedia)
			}

			conf := configuration.Use()
			pool, err := pgxpool.New(cmd.Context(), conf.Database.Opts)
			if err != nil {
				return err
			}
			defer pool.Close()

			u, err := user.New(email, password, role)
			if err != nil {
				return err
			}

			ctx := composables.WithPool(cmd.Context(), pool)
			created, err := persistence.NewUserRepository().Create(ctx, u)
			if err != nil {
				return err
			}

			logging.ConsoleLogger(logrus.InfoLevel).WithFields(logrus.Fields{
				"id":    created.ID,
				"email": created.Email,
				"role":  created.Role,
			}).Info("user created")
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "login email")
	cmd.Flags().StringVar(&password, "password", "", "login password")
	cmd.Flags().StringVar(&role, "role", user.RoleAdmin, "user role")
	return cmd
}
