package main

import (
	"fmt"

	"github.com/Freeeeeet/timetable/internal/app"
	"github.com/Freeeeeet/timetable/migrations"
	"github.com/spf13/cobra"
)

func (c *cli) migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|status|version]",
		Short:     "Manage the database schema",
		Example:   "  timetable migrate up\n  timetable migrate status",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"up", "status", "version"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.setup(); err != nil {
				return err
			}
			defer c.sync()

			ctx := cmd.Context()
			pool, err := c.connect(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator, err := app.NewMigrator(pool, migrations.FS, c.logger)
			if err != nil {
				return err
			}
			defer func() { _ = migrator.Close() }()

			switch args[0] {
			case "up":
				return migrator.Up(ctx)
			case "status":
				statuses, err := migrator.Status(ctx)
				if err != nil {
					return err
				}
				for _, st := range statuses {
					state := "pending"
					if st.Applied {
						state = "applied"
					}
					fmt.Printf("%05d  %-8s %s\n", st.Version, state, st.File)
				}
				return nil
			case "version":
				v, err := migrator.Version(ctx)
				if err != nil {
					return err
				}
				fmt.Println(v)
				return nil
			default:
				return fmt.Errorf("unknown migrate action %q, want up, status or version", args[0])
			}
		},
	}
}
