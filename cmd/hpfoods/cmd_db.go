package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hpfoods/hpfoods-api/config"
	"github.com/hpfoods/hpfoods-api/database/migrations"
	"github.com/hpfoods/hpfoods-api/database/seeders"
	"github.com/hpfoods/hpfoods-api/pkg/database"
	"github.com/hpfoods/hpfoods-api/pkg/migration"
)

// bootDB loads config and opens the database into database.DB.
func bootDB() error {
	if err := config.Load(); err != nil {
		return err
	}
	return database.Connect()
}

func runner() *migration.Runner {
	return migration.New(database.DB, migrations.All()...)
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run all pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		defer database.Close(database.DB)

		ran, err := runner().Run(cmd.Context())
		if err != nil {
			return err
		}
		if len(ran) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "Nothing to migrate.")
		}
		for _, name := range ran {
			fmt.Fprintln(cmd.OutOrStdout(), "Migrated:", name)
		}
		return nil
	},
}

var migrateRollbackCmd = &cobra.Command{
	Use:   "migrate:rollback",
	Short: "Rollback the last batch of migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		defer database.Close(database.DB)

		rolled, err := runner().Rollback(cmd.Context())
		if err != nil {
			return err
		}
		if len(rolled) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "Nothing to rollback.")
		}
		for _, name := range rolled {
			fmt.Fprintln(cmd.OutOrStdout(), "Rolled back:", name)
		}
		return nil
	},
}

var migrateStatusCmd = &cobra.Command{
	Use:   "migrate:status",
	Short: "Show the status of each migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		defer database.Close(database.DB)

		rows, err := runner().Status(cmd.Context())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "RAN?\tMIGRATION\tBATCH")
		for _, row := range rows {
			ran, batch := "No", "-"
			if row.Ran {
				ran, batch = "Yes", fmt.Sprint(row.Batch)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", ran, row.Name, batch)
		}
		return w.Flush()
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed roles and the starter menu",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		defer database.Close(database.DB)

		if err := migrations.Run(cmd.Context(), database.DB); err != nil {
			return err
		}
		if err := seeders.RunAll(cmd.Context(), database.DB); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Database seeded.")
		return nil
	},
}
