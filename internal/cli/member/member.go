// Package member implements the lineage member commands
package member

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/lineage/internal/cli"
	treeservice "github.com/thenoetrevino/lineage/internal/services/tree"
)

// MemberCmd returns the member parent command
func MemberCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "member",
		Short: "Manage family members",
	}

	cmd.AddCommand(AddCmd())
	cmd.AddCommand(EditCmd())
	cmd.AddCommand(RenameCmd())
	cmd.AddCommand(DeleteCmd())
	cmd.AddCommand(ShowCmd())
	cmd.AddCommand(ListCmd())
	cmd.AddCommand(CollapseCmd())
	cmd.AddCommand(ExpandCmd())

	return cmd
}

// openTree initializes the CLI and the user's tree session. The returned
// cleanup must be deferred by the caller.
func openTree(ctx context.Context, formatter *cli.OutputFormatter) (treeservice.Service, func(), error) {
	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return nil, nil, formatter.Fail(err)
	}
	cleanup := func() {
		if err := cliInstance.Close(); err != nil {
			slog.Error("failed to close CLI", "error", err)
		}
	}

	svc, err := cliInstance.Tree(ctx)
	if err != nil {
		cleanup()
		return nil, nil, formatter.Fail(err)
	}
	return svc, cleanup, nil
}
