package member

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/lineage/internal/cli"
	"github.com/thenoetrevino/lineage/internal/cli/styles"
)

// DeleteCmd returns the member delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a family member and their descendants",
		Long: `Delete a family member together with everyone below them.
Deleting the root clears the whole tree. Requires confirmation unless
--force, --quiet or --json is given.`,
		Args: cobra.ExactArgs(1),
		RunE: runDelete,
	}

	cmd.Flags().Bool("force", false, "Skip confirmation")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFromFlags(cmd)
	force, _ := cmd.Flags().GetBool("force")

	svc, cleanup, err := openTree(ctx, formatter)
	if err != nil {
		return err
	}
	defer cleanup()

	m, err := svc.Member(ctx, args[0])
	if err != nil {
		return formatter.FailWithSuggestion(err, "List existing members with: lineage member list")
	}

	// Ask for confirmation unless force, quiet or JSON mode
	if !force && !formatter.Quiet && !formatter.JSON {
		prompt := fmt.Sprintf("Delete %s and all of their descendants?", m.Name)
		if m.IsRoot() {
			prompt = fmt.Sprintf("%s is the root. Delete the entire tree?", m.Name)
		}
		fmt.Printf("%s (y/N): ", prompt)

		response, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		response = strings.ToLower(strings.TrimSpace(response))
		if response != "y" && response != "yes" {
			fmt.Println("Cancelled")
			return nil
		}
	}

	removed, err := svc.DeleteMember(ctx, m.Name)
	if err != nil {
		return formatter.Fail(err)
	}

	if formatter.Quiet {
		fmt.Println(removed)
		return nil
	}

	if formatter.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success": true,
			"name":    m.Name,
			"removed": removed,
		})
	}

	fmt.Printf("%s Deleted %s (%d member(s) removed)\n", styles.DeleteStyle.Render("✓"), m.Name, removed)
	return nil
}
