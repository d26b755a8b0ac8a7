package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"fixtura.dev/pkg/fixtura/internal/controller"
	"fixtura.dev/pkg/fixtura/internal/domain"
)

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <root>",
		Short: "List the fixture items created under a root path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWorkflow(cmd, controller.WithBrowseMode(), func(ctx context.Context, wf domain.Workflow) error {
				return wf.ListFixtureItems(ctx, args[0])
			})
		},
	}
}

func init() {
	rootCmd.AddCommand(listCmd)
}
