package member

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/lineage/internal/cli"
	"github.com/thenoetrevino/lineage/internal/cli/styles"
	"github.com/thenoetrevino/lineage/internal/models"
)

// ListCmd returns the member list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List family members",
		Long:  "List family members in the order they were added.",
		Args:  cobra.NoArgs,
		RunE:  runList,
	}

	cmd.Flags().Bool("orphans", false, "Only list members that cannot be reached from the root")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFromFlags(cmd)
	orphansOnly, _ := cmd.Flags().GetBool("orphans")

	svc, cleanup, err := openTree(ctx, formatter)
	if err != nil {
		return err
	}
	defer cleanup()

	members := svc.Members(ctx)
	if orphansOnly {
		orphans := make(map[string]struct{})
		for _, name := range svc.Orphans(ctx) {
			orphans[name] = struct{}{}
		}
		filtered := make([]*models.Member, 0, len(orphans))
		for _, m := range members {
			if _, ok := orphans[m.Name]; ok {
				filtered = append(filtered, m)
			}
		}
		members = filtered
	}

	// Output in appropriate format
	if formatter.Quiet {
		for _, m := range members {
			fmt.Println(m.Name)
		}
		return nil
	}

	if formatter.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success": true,
			"members": members,
		})
	}

	// Human-readable output
	if len(members) == 0 {
		fmt.Println("No members found")
		return nil
	}

	fmt.Printf("Found %d members:\n\n", len(members))
	for _, m := range members {
		parent := m.Parent
		if parent == "" {
			parent = "root"
		}
		fmt.Printf("  %s %s %s\n",
			styles.TitleStyle.Render(m.Name),
			styles.RelationshipStyle.Render("("+m.Relationship+")"),
			styles.SubtitleStyle.Render("← "+parent))
	}

	return nil
}
