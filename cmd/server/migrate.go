package main

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"athletrack/backend/internal/domain"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema and seed shared exercises",
	Long: `Create tables (postgres) or indexes (mongo) and install the shared
exercise library. Running it again is safe: existing objects and exercises
are left untouched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
		defer cancel()

		b, err := openBackend(ctx, cfg.Database)
		if err != nil {
			return err
		}
		defer b.close()

		if b.migrate == nil {
			color.Yellow("Driver %q keeps no schema; only seeding exercises.", cfg.Database.Driver)
		} else {
			if err := b.migrate(ctx); err != nil {
				return fmt.Errorf("apply schema: %w", err)
			}
			color.Green("Schema up to date (%s).", cfg.Database.Driver)
		}

		added, err := b.exercises.SeedShared(ctx, domain.SystemExercises)
		if err != nil {
			return fmt.Errorf("seed shared exercises: %w", err)
		}
		if added == 0 {
			fmt.Println("Shared exercise library already installed.")
		} else {
			color.Green("Installed %d shared exercises.", added)
		}
		return nil
	},
}
