package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/connector/internal/app"
)

func (c *CLI) newIndexCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index [dirs...]",
		Short: "Build the ccls index of the projects holding the directories",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"."}
			}
			watch, _ := cmd.Flags().GetBool("watch")
			return c.app.Index(cmd.Context(), args, app.IndexOptions{
				Watch:  watch,
				Stdout: cmd.OutOrStdout(),
				Stderr: cmd.ErrOrStderr(),
			})
		},
	}
	cmd.Flags().BoolP("watch", "w", false, "Re-index when project files change")
	return cmd
}
