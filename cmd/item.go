package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"fixtura.dev/pkg/fixtura/internal/controller"
	"fixtura.dev/pkg/fixtura/internal/domain"
	m "fixtura.dev/pkg/fixtura/internal/model"
)

const (
	ensureFlagName    = "ensure"
	paramFlagName     = "param"
	returnsFlagName   = "returns"
	signatureFlagName = "signature"
)

// createCmd represents the create command.
var createCmd = newCreateCmd()

func newCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <root> <Type#name>",
		Short: "Create a named fixture item",
		Long: `Create a named fixture item under a root path. Names are unique per root path;
creating a name twice is rejected and recorded. With --ensure an existing item
is accepted as is.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseItemRef(args[0], args[1])
			if err != nil {
				return err
			}

			ensure, _ := cmd.Flags().GetBool(ensureFlagName)

			return runWorkflow(cmd, controller.WithCommandMode(), func(ctx context.Context, wf domain.Workflow) error {
				if ensure {
					return wf.EnsureFixtureItem(ctx, id)
				}

				return wf.CreateFixtureItem(ctx, id)
			})
		},
	}

	cmd.Flags().Bool(ensureFlagName, false, "succeed without a new event when the item already exists")

	return cmd
}

// setCmd represents the set command.
var setCmd = newSetCmd()

func newSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <root> <Type#name> <member> [spec]",
		Short: "Configure one member of a fixture item",
		Long: `Configure one member of a fixture item in the open session of its root path.
Linked items that do not exist yet are created along with the change.

Use --param name=<spec> (repeatable) with member .ctor to configure constructor
parameters, and --returns <spec> with --signature T1,T2 to configure what a
method returns.

` + memberSpecHelp,
		Args: cobra.RangeArgs(3, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseItemRef(args[0], args[1])
			if err != nil {
				return err
			}

			member, err := memberFromFlags(cmd, args[0], args[2], args[3:])
			if err != nil {
				return err
			}

			return runWorkflow(cmd, controller.WithCommandMode(), func(ctx context.Context, wf domain.Workflow) error {
				return wf.ConfigureMember(ctx, domain.ConfigureMemberArgs{ID: id, Member: member})
			})
		},
	}

	cmd.Flags().StringArray(paramFlagName, nil, "constructor parameter as name=<spec> (repeatable)")
	cmd.Flags().String(returnsFlagName, "", "method return value spec")
	cmd.Flags().String(signatureFlagName, "", "comma separated parameter types of the method")

	return cmd
}

func memberFromFlags(cmd *cobra.Command, rootPath, name string, spec []string) (m.MemberConfiguration, error) {
	params, _ := cmd.Flags().GetStringArray(paramFlagName)
	returns, _ := cmd.Flags().GetString(returnsFlagName)
	signature, _ := cmd.Flags().GetString(signatureFlagName)

	switch {
	case len(params) > 0:
		if name != m.CtorMemberName || len(spec) > 0 || returns != "" {
			return nil, fmt.Errorf("--%s configures member %s only and takes no spec", paramFlagName, m.CtorMemberName)
		}

		return parseCtorSpec(rootPath, params)
	case returns != "":
		if len(spec) > 0 {
			return nil, fmt.Errorf("--%s replaces the member spec", returnsFlagName)
		}

		return parseMethodSpec(rootPath, name, returns, signature)
	case len(spec) == 0:
		return nil, fmt.Errorf("member %q needs a spec", name)
	default:
		return parseMemberSpec(rootPath, name, spec[0])
	}
}

func parseItemRef(rootPath, ref string) (m.FixtureItemID, error) {
	id, ok := m.ParseFixtureItemRef(rootPath, ref)
	if !ok {
		return m.FixtureItemID{}, fmt.Errorf("invalid fixture item %q, expected Type or Type#name", ref)
	}

	return id, nil
}

func init() {
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(setCmd)
}
