package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/yungbote/ismaspace-backend/internal/app"
)

func newProgressCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Print a learner's progress records",
		RunE: withCore(func(cmd *cobra.Command, core *app.Core) error {
			userID, _ := cmd.Flags().GetUint("user")
			entries, err := core.Services.Progress.ListProgress(cmd.Context(), userID)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, e := range entries {
				state := "-"
				if e.CompletedAt != nil {
					state = e.CompletedAt.UTC().Format(time.RFC3339)
				}
				fmt.Fprintf(out, "%d\t%s\n", e.LessonID, state)
			}
			return nil
		}),
	}
	cmd.Flags().Uint("user", 1, "User id")
	return cmd
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print completion stats for a learner",
		RunE: withCore(func(cmd *cobra.Command, core *app.Core) error {
			userID, _ := cmd.Flags().GetUint("user")
			st, err := core.Services.Progress.ComputeStats(cmd.Context(), userID)
			if err != nil {
				return err
			}
			raw, err := json.Marshal(st)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(raw))
			return nil
		}),
	}
	cmd.Flags().Uint("user", 1, "User id")
	return cmd
}

func newToggleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "toggle",
		Short: "Flip a lesson's completion for a learner",
		RunE: withCore(func(cmd *cobra.Command, core *app.Core) error {
			userID, _ := cmd.Flags().GetUint("user")
			lessonID, _ := cmd.Flags().GetUint("lesson")
			completed, err := core.Services.Progress.ToggleCompletion(cmd.Context(), userID, lessonID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "lesson %d completed=%t\n", lessonID, completed)
			return nil
		}),
	}
	cmd.Flags().Uint("user", 1, "User id")
	cmd.Flags().Uint("lesson", 0, "Lesson id")
	_ = cmd.MarkFlagRequired("lesson")
	return cmd
}
