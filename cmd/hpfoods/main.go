// Command hpfoods runs the API and its database maintenance tasks:
//
//	hpfoods serve             # start HTTP (and gRPC health when GRPC_PORT is set)
//	hpfoods migrate           # apply pending migrations
//	hpfoods migrate:rollback  # undo the last batch
//	hpfoods migrate:status
//	hpfoods seed              # roles and the starter menu
//	hpfoods route:list
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "hpfoods",
	Short:         "HP Foods ordering API",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routeListCmd)

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(migrateRollbackCmd)
	rootCmd.AddCommand(migrateStatusCmd)
	rootCmd.AddCommand(seedCmd)
}
