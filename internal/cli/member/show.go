package member

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/lineage/internal/cli"
	"github.com/thenoetrevino/lineage/internal/cli/styles"
)

// ShowCmd returns the member show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Show a family member's details",
		Args:  cobra.ExactArgs(1),
		RunE:  runShow,
	}

	cli.AddOutputFlags(cmd)

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFromFlags(cmd)

	svc, cleanup, err := openTree(ctx, formatter)
	if err != nil {
		return err
	}
	defer cleanup()

	m, err := svc.Member(ctx, args[0])
	if err != nil {
		return formatter.FailWithSuggestion(err, "List existing members with: lineage member list")
	}

	if formatter.JSON || formatter.Quiet {
		return formatter.Success(m)
	}

	fmt.Println(styles.RenderMemberCard(m))
	return nil
}
