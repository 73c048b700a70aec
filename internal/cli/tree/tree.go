// Package tree implements the commands that work on the whole family tree
package tree

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/lineage/internal/cli"
	"github.com/thenoetrevino/lineage/internal/cli/styles"
	"github.com/thenoetrevino/lineage/internal/models"
)

// TreeCmd returns the tree command
func TreeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Display the family tree",
		Long: `Display the family tree from the root down.
Collapsed members are shown with the number of hidden descendants.`,
		Args: cobra.NoArgs,
		RunE: runTree,
	}

	cmd.Flags().Bool("json", false, "Output the nested tree as JSON")
	cmd.Flags().Bool("quiet", false, "Minimal output (names indented by generation)")

	return cmd
}

func runTree(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFromFlags(cmd)

	cliInstance, err := openSession(ctx, formatter)
	if err != nil {
		return err
	}
	defer closeCLI(cliInstance)

	svc, err := cliInstance.Tree(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	root := svc.Hierarchy(ctx)

	// Handle empty tree
	if root == nil {
		if formatter.Quiet {
			return nil
		}
		if formatter.JSON {
			return json.NewEncoder(os.Stdout).Encode(map[string]any{
				"success": true,
				"tree":    nil,
			})
		}
		fmt.Println("No members found")
		return nil
	}

	if formatter.Quiet {
		outputQuietTree(root, 0)
		return nil
	}

	if formatter.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success": true,
			"tree":    root,
		})
	}

	fmt.Println(styles.RenderTree(root))
	if orphans := svc.Orphans(ctx); len(orphans) > 0 {
		fmt.Println()
		fmt.Println(styles.WarningStyle.Render(fmt.Sprintf("%d member(s) not connected to the root:", len(orphans))))
		fmt.Println("  " + strings.Join(orphans, ", "))
	}
	return nil
}

// outputQuietTree prints one name per line, indented two spaces per generation
func outputQuietTree(node *models.MemberNode, depth int) {
	fmt.Printf("%s%s\n", strings.Repeat("  ", depth), node.Name)
	for _, child := range node.Children {
		outputQuietTree(child, depth+1)
	}
}

func closeCLI(c *cli.CLI) {
	if err := c.Close(); err != nil {
		slog.Error("failed to close CLI", "error", err)
	}
}

// openSession is used by commands that only need the tree service
func openSession(ctx context.Context, formatter *cli.OutputFormatter) (*cli.CLI, error) {
	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return nil, formatter.Fail(err)
	}
	return cliInstance, nil
}
