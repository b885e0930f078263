package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/hob/internal/core/domain"
	"go.trai.ch/zerr"
)

// Exit codes for failed runs. A command failure propagates the command's own
// exit code instead.
const (
	exitCodeSpawnFailure = 127
	exitCodeCancelled    = 130
)

func (c *CLI) newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run [task]",
		Short: "Run a task once",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				// Display command usage help without returning an error
				_ = cmd.Help()
				return nil
			}

			result, err := c.app.Run(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if result.Outcome != domain.OutcomeSuccess {
				c.exitCode = exitCodeFor(result)
				return zerr.Wrap(domain.ErrTaskExecutionFailed, "task "+result.Task+" did not succeed")
			}
			return nil
		},
	}
}

func exitCodeFor(result domain.RunResult) int {
	switch result.Outcome {
	case domain.OutcomeCommandFailure:
		if result.ExitCode > 0 {
			return result.ExitCode
		}
		return 1
	case domain.OutcomeSpawnFailure:
		return exitCodeSpawnFailure
	case domain.OutcomeCancelled:
		return exitCodeCancelled
	default:
		return 0
	}
}
