package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"fixtura.dev/pkg/fixtura/internal/controller"
	"fixtura.dev/pkg/fixtura/internal/domain"
)

// showCmd represents the show command.
var showCmd = newShowCmd()

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <root> <Type[#name]>",
		Short: "Show the effective configuration of a fixture item",
		Long: `Show the effective configuration of a fixture item: the defaults derived from
the type catalog with the overrides of the open session applied.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseItemRef(args[0], args[1])
			if err != nil {
				return err
			}

			return runWorkflow(cmd, controller.WithBrowseMode(), func(ctx context.Context, wf domain.Workflow) error {
				return wf.ShowConfiguration(ctx, id)
			})
		},
	}
}

// historyCmd represents the history command.
var historyCmd = newHistoryCmd()

func newHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history <root>",
		Short: "Show the recorded events of a root path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWorkflow(cmd, controller.WithBrowseMode(), func(ctx context.Context, wf domain.Workflow) error {
				return wf.ShowHistory(ctx, args[0])
			})
		},
	}
}

func init() {
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(historyCmd)
}
