// crudgen compiles a schema document into a TypeGraphQL CRUD API.
//
// Usage:
//
//	crudgen generate --schema schema.yaml --output ./generated
//	crudgen watch
//	crudgen version
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information, set at build time.
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "crudgen",
		Short: "Schema to CRUD API compiler",
		Long: `crudgen reads a schema document describing entities, enums and relations,
and generates a TypeGraphQL CRUD API: models, resolvers, argument and input
classes, with an index module in every directory.

Settings are read from crudgen.yaml in the working directory, CRUDGEN_*
environment variables and command line flags, in increasing priority.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().String("config", "", "Config file (default ./crudgen.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(newGenerateCmd())
	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}
