package member

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/lineage/internal/cli"
	"github.com/thenoetrevino/lineage/internal/cli/styles"
	treeservice "github.com/thenoetrevino/lineage/internal/services/tree"
)

// EditCmd returns the member edit subcommand
func EditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <name>",
		Short: "Edit a family member",
		Long: `Rename, move or update a family member in one step.
Only the flags given are changed. --root makes the member the root.`,
		Args: cobra.ExactArgs(1),
		RunE: runEdit,
	}

	cmd.Flags().String("name", "", "New name")
	cmd.Flags().String("parent", "", "Move beneath this member")
	cmd.Flags().Bool("root", false, "Make this member the root")
	cmd.Flags().String("relationship", "", "Relationship label")
	cmd.Flags().String("birth-date", "", "Birth date, e.g. 1950-01-15")
	cmd.Flags().String("notes", "", "Free-form notes (markdown)")
	cmd.MarkFlagsMutuallyExclusive("parent", "root")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runEdit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFromFlags(cmd)

	svc, cleanup, err := openTree(ctx, formatter)
	if err != nil {
		return err
	}
	defer cleanup()

	current, err := svc.Member(ctx, args[0])
	if err != nil {
		return formatter.FailWithSuggestion(err, "List existing members with: lineage member list")
	}

	req := treeservice.EditMemberRequest{
		Name:         current.Name,
		Parent:       current.Parent,
		Relationship: current.Relationship,
		BirthDate:    current.BirthDate,
		Notes:        current.Notes,
	}

	flags := cmd.Flags()
	if flags.Changed("name") {
		req.NewName, _ = flags.GetString("name")
	}
	if flags.Changed("parent") {
		req.Parent, _ = flags.GetString("parent")
		if req.Parent == "" {
			return formatter.Fail(cli.Usagef("--parent cannot be empty, use --root to make %q the root", current.Name))
		}
	}
	if root, _ := flags.GetBool("root"); root {
		req.Parent = ""
	}
	if flags.Changed("relationship") {
		req.Relationship, _ = flags.GetString("relationship")
	}
	if flags.Changed("birth-date") {
		req.BirthDate, _ = flags.GetString("birth-date")
	}
	if flags.Changed("notes") {
		req.Notes, _ = flags.GetString("notes")
	}

	m, err := svc.EditMember(ctx, req)
	if err != nil {
		return formatter.Fail(err)
	}

	if formatter.JSON || formatter.Quiet {
		return formatter.Success(m)
	}

	fmt.Printf("%s Updated %s\n", styles.EditStyle.Render("✓"), m.Name)
	return nil
}
