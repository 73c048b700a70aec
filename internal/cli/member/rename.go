package member

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/lineage/internal/cli"
	"github.com/thenoetrevino/lineage/internal/cli/styles"
)

// RenameCmd returns the member rename subcommand
func RenameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename <old-name> <new-name>",
		Short: "Rename a family member",
		Long:  "Rename a family member. Children and the root reference follow the new name.",
		Args:  cobra.ExactArgs(2),
		RunE:  runRename,
	}

	cli.AddOutputFlags(cmd)

	return cmd
}

func runRename(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFromFlags(cmd)
	oldName, newName := args[0], args[1]

	svc, cleanup, err := openTree(ctx, formatter)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := svc.RenameMember(ctx, oldName, newName); err != nil {
		return formatter.Fail(err)
	}

	m, err := svc.Member(ctx, newName)
	if err != nil {
		return formatter.Fail(err)
	}

	if formatter.Quiet {
		return formatter.Success(m)
	}

	if formatter.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success":  true,
			"old_name": oldName,
			"data":     m,
		})
	}

	fmt.Printf("%s Renamed %s to %s\n", styles.EditStyle.Render("✓"), oldName, m.Name)
	return nil
}
