package tree

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

// ResetCmd returns the reset command
func ResetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Start the family tree over",
		Long: `Replace the family tree with the placeholder family, or with an
empty tree when --empty is given. --all deletes every stored document of
the user instead: tree, settings and profile.`,
		Args: cobra.NoArgs,
		RunE: runReset,
	}

	cmd.Flags().Bool("empty", false, "Leave an empty tree instead of the placeholder family")
	cmd.Flags().Bool("all", false, "Delete the tree, settings and profile")
	cmd.Flags().Bool("force", false, "Skip confirmation")
	cmd.MarkFlagsMutuallyExclusive("empty", "all")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runReset(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFromFlags(cmd)
	empty, _ := cmd.Flags().GetBool("empty")
	all, _ := cmd.Flags().GetBool("all")
	force, _ := cmd.Flags().GetBool("force")

	cliInstance, err := openSession(ctx, formatter)
	if err != nil {
		return err
	}
	defer closeCLI(cliInstance)

	if !force && !formatter.Quiet && !formatter.JSON {
		fmt.Printf("This discards the family tree of %s. This action cannot be undone. Continue? (y/N): ", cliInstance.UID)
		response, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		response = strings.ToLower(strings.TrimSpace(response))
		if response != "y" && response != "yes" {
			fmt.Println("Cancelled")
			return nil
		}
	}

	if all {
		err = cliInstance.App.DeleteUserData(ctx, cliInstance.UID)
	} else {
		err = resetTree(cmd, cliInstance, !empty)
	}
	if err != nil {
		return formatter.Fail(err)
	}

	if formatter.Quiet {
		return nil
	}

	if formatter.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success": true,
			"uid":     cliInstance.UID,
			"all":     all,
		})
	}

	fmt.Printf("%s Reset data of %s\n", styles.DeleteStyle.Render("✓"), cliInstance.UID)
	return nil
}

func resetTree(cmd *cobra.Command, c *cli.CLI, seeded bool) error {
	svc, err := c.Tree(cmd.Context())
	if err != nil {
		return err
	}
	return svc.Reset(cmd.Context(), seeded)
}
