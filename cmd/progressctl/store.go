package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yungbote/ismaspace-backend/internal/app"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update tables and indexes",
		RunE: withCore(func(cmd *cobra.Command, core *app.Core) error {
			// NewCore already migrated.
			fmt.Fprintf(cmd.OutOrStdout(), "migrated (%s)\n", core.Store.Driver())
			return nil
		}),
	}
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the bundled catalog and default user (idempotent)",
		RunE: withCore(func(cmd *cobra.Command, core *app.Core) error {
			if err := core.Seed(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "seeded")
			return nil
		}),
	}
}

func newLessonsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lessons",
		Short: "List published lessons in order",
		RunE: withCore(func(cmd *cobra.Command, core *app.Core) error {
			lessons, err := core.Services.Catalog.ListLessons(cmd.Context(), 0)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, l := range lessons {
				fmt.Fprintf(out, "%d\t%d\t%s\n", l.ID, l.OrderIndex, l.Title)
			}
			return nil
		}),
	}
}
