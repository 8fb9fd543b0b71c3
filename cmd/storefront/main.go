// Command storefront bundles the operational tooling: schema migrations,
// admin account creation and demo data seeding.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/docesofia/storefront/pkg/configuration"
)

func main() {
	root := &cobra.Command{
		Use:           "storefront",
		Short:         "Operational tooling for the storefront backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newMigrateCommand(),
		newCreateAdminCommand(),
		newSeedCommand(),
	)

	err := root.Execute()
	configuration.Use().Unload()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
