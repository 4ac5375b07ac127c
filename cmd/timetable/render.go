package main

import (
	"fmt"
	"os"

	"github.com/Freeeeeet/timetable/internal/controller/formatting"
	"github.com/Freeeeeet/timetable/internal/render"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func (c *cli) renderCmd() *cobra.Command {
	var (
		teacherID string
		out       string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a teacher's weekly timetable to PNG",
		Example: `  timetable render --teacher=0b7c6a4e-8d1f-4c5e-9a57-3f1f2d7e9b10
  timetable render --teacher=0b7c6a4e-8d1f-4c5e-9a57-3f1f2d7e9b10 --out=week.png`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := uuid.Parse(teacherID)
			if err != nil {
				return fmt.Errorf("invalid --teacher: %w", err)
			}

			if err := c.setup(); err != nil {
				return err
			}
			defer c.sync()

			ctx := cmd.Context()
			st, err := c.openStores(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			tt, err := c.buildServices(st).schedule.TeacherTimetable(ctx, id)
			if err != nil {
				return fmt.Errorf("loading timetable: %w", err)
			}

			img, err := render.Timetable(tt)
			if err != nil {
				return fmt.Errorf("rendering timetable: %w", err)
			}

			if out == "" {
				out = fmt.Sprintf("timetable-%s.png", id)
			}
			if err := os.WriteFile(out, img, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", out, err)
			}

			fmt.Println(formatting.FormatTimetable(tt))
			fmt.Printf("\nSaved %s (%d bytes)\n", out, len(img))
			return nil
		},
	}

	cmd.Flags().StringVar(&teacherID, "teacher", "", "Teacher id (UUID)")
	cmd.Flags().StringVar(&out, "out", "", "Output file (defaults to timetable-<id>.png)")
	_ = cmd.MarkFlagRequired("teacher")

	return cmd
}
