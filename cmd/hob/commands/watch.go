package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/hob/internal/app"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [task]",
		Short: "Run a task whenever watched files change",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_ = cmd.Help()
				return nil
			}

			paths, _ := cmd.Flags().GetStringArray("path")
			debounce, _ := cmd.Flags().GetDuration("debounce")

			return c.app.Watch(cmd.Context(), args[0], app.WatchOptions{
				Paths:    paths,
				Debounce: debounce,
			})
		},
	}
	cmd.Flags().StringArrayP("path", "p", nil, "Watch this path instead of the task's configured paths, resolved against the current directory (repeatable)")
	cmd.Flags().DurationP("debounce", "d", 0, "Debounce window for coalescing file events (e.g. 300ms)")
	return cmd
}
