package member

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/lineage/internal/cli"
	"github.com/thenoetrevino/lineage/internal/cli/styles"
	treeservice "github.com/thenoetrevino/lineage/internal/services/tree"
)

// AddCmd returns the member add subcommand
func AddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a family member",
		Long: `Add a family member under an existing parent.
Without --parent the member becomes the root and the current root
is moved beneath it.`,
		Args: cobra.ExactArgs(1),
		RunE: runAdd,
	}

	cmd.Flags().String("parent", "", "Name of the parent member")
	cmd.Flags().String("relationship", "Child", "Relationship label (Spouse, Child, Sibling, Parent, Other)")
	cmd.Flags().String("birth-date", "", "Birth date, e.g. 1950-01-15")
	cmd.Flags().String("notes", "", "Free-form notes (markdown)")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFromFlags(cmd)

	parent, _ := cmd.Flags().GetString("parent")
	relationship, _ := cmd.Flags().GetString("relationship")
	birthDate, _ := cmd.Flags().GetString("birth-date")
	notes, _ := cmd.Flags().GetString("notes")

	svc, cleanup, err := openTree(ctx, formatter)
	if err != nil {
		return err
	}
	defer cleanup()

	m, err := svc.AddMember(ctx, treeservice.AddMemberRequest{
		Name:         args[0],
		Parent:       parent,
		Relationship: relationship,
		BirthDate:    birthDate,
		Notes:        notes,
	})
	if err != nil {
		return formatter.FailWithSuggestion(err, "List existing members with: lineage member list")
	}

	if formatter.JSON || formatter.Quiet {
		return formatter.Success(m)
	}

	if m.IsRoot() {
		fmt.Printf("%s %s is now the root of the tree\n", styles.CreateStyle.Render("✓"), m.Name)
		return nil
	}
	fmt.Printf("%s Added %s under %s\n", styles.CreateStyle.Render("✓"), m.Name, m.Parent)
	return nil
}
