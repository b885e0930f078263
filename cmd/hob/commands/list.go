package commands

import (
	"fmt"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"go.trai.ch/hob/internal/ui/output"
	"go.trai.ch/hob/internal/ui/style"
)

func (c *CLI) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all configured tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tasks, err := c.app.List(cmd.Context())
			if err != nil {
				return err
			}

			out := output.New(cmd.OutOrStdout())
			if len(tasks) == 0 {
				_, _ = out.WriteString("no tasks configured\n")
				return nil
			}

			for _, task := range tasks {
				name := out.String(style.Dot + " " + task.Name).
					Foreground(termenv.RGBColor(string(style.Iris))).
					Bold()

				summary := fmt.Sprintf("%d command(s)", len(task.Commands))
				if len(task.Commands) > 0 {
					summary = task.Commands[0].Line
					if len(task.Commands) > 1 {
						summary = fmt.Sprintf("%s (+%d more)", summary, len(task.Commands)-1)
					}
				}
				detail := out.String(summary).
					Foreground(termenv.RGBColor(string(style.Slate)))

				_, _ = out.WriteString(name.String() + "  " + detail.String() + "\n")
			}
			return nil
		},
	}
}
