package member

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/lineage/internal/cli"
)

// CollapseCmd returns the member collapse subcommand
func CollapseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "collapse [name]",
		Short: "Fold a member's descendants in tree output",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFold(cmd, args, true)
		},
	}

	cmd.Flags().Bool("all", false, "Collapse every member except the root")
	cli.AddOutputFlags(cmd)

	return cmd
}

// ExpandCmd returns the member expand subcommand
func ExpandCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expand [name]",
		Short: "Unfold a member's descendants in tree output",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFold(cmd, args, false)
		},
	}

	cmd.Flags().Bool("all", false, "Expand every member")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runFold(cmd *cobra.Command, args []string, collapsed bool) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFromFlags(cmd)
	all, _ := cmd.Flags().GetBool("all")

	if all == (len(args) == 1) {
		return formatter.Fail(cli.Usagef("give either a member name or --all"))
	}

	svc, cleanup, err := openTree(ctx, formatter)
	if err != nil {
		return err
	}
	defer cleanup()

	target := "all members"
	switch {
	case all && collapsed:
		err = svc.CollapseAll(ctx)
	case all:
		err = svc.ExpandAll(ctx)
	default:
		target = args[0]
		err = svc.SetCollapsed(ctx, args[0], collapsed)
	}
	if err != nil {
		return formatter.Fail(err)
	}

	if formatter.Quiet {
		return nil
	}

	if formatter.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success":   true,
			"target":    target,
			"collapsed": collapsed,
		})
	}

	verb := "Expanded"
	if collapsed {
		verb = "Collapsed"
	}
	fmt.Printf("✓ %s %s\n", verb, target)
	return nil
}
