package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"fixtura.dev/pkg/fixtura/internal/controller"
	"fixtura.dev/pkg/fixtura/internal/domain"
	m "fixtura.dev/pkg/fixtura/internal/model"
)

const (
	projectFlagName  = "project"
	documentFlagName = "document"
	spanFlagName     = "span"
)

// startCmd represents the start command.
var startCmd = newStartCmd()

func newStartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start <root>",
		Short: "Open the configuration session of a root path",
		Long: `Open the configuration session of a root path. Member changes are only
accepted while the session of their root is open; they are attributed to the
document given here.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			project, _ := cmd.Flags().GetString(projectFlagName)
			document, _ := cmd.Flags().GetString(documentFlagName)
			spanValue, _ := cmd.Flags().GetString(spanFlagName)

			var span m.InvocationSpan

			if spanValue != "" {
				parsed, err := m.ParseInvocationSpan(spanValue)
				if err != nil {
					return err
				}

				span = parsed
			}

			return runWorkflow(cmd, controller.WithCommandMode(), func(ctx context.Context, wf domain.Workflow) error {
				return wf.StartSession(ctx, domain.StartSessionArgs{
					RootPath:         args[0],
					ProjectName:      project,
					DocumentFilePath: document,
					Span:             span,
				})
			})
		},
	}

	cmd.Flags().String(projectFlagName, "", "project the root path belongs to")
	cmd.Flags().String(documentFlagName, "", "document that holds the configuration call")
	cmd.Flags().String(spanFlagName, "", "location of the configuration call as start:length")

	return cmd
}

// endCmd represents the end command.
var endCmd = newEndCmd()

func newEndCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "end <root>",
		Short: "Close the configuration session of a root path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWorkflow(cmd, controller.WithCommandMode(), func(ctx context.Context, wf domain.Workflow) error {
				return wf.EndSession(ctx, args[0])
			})
		},
	}
}

func init() {
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(endCmd)
}
