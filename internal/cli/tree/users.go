package tree

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/lineage/internal/cli"
	"github.com/thenoetrevino/lineage/internal/cli/styles"
)

// UsersCmd returns the users command
func UsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "List the users that have a saved family tree",
		Args:  cobra.NoArgs,
		RunE:  runUsers,
	}

	cli.AddOutputFlags(cmd)

	return cmd
}

func runUsers(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFromFlags(cmd)

	cliInstance, err := openSession(ctx, formatter)
	if err != nil {
		return err
	}
	defer closeCLI(cliInstance)

	users, err := cliInstance.App.Users(ctx)
	if err != nil {
		return formatter.Fail(err)
	}

	if formatter.Quiet {
		for _, uid := range users {
			fmt.Println(uid)
		}
		return nil
	}

	if formatter.JSON {
		return formatter.Success(users)
	}

	if len(users) == 0 {
		fmt.Println("No saved family trees")
		return nil
	}

	fmt.Println(styles.TitleStyle.Render("Saved family trees"))
	for _, uid := range users {
		marker := "  "
		if uid == cliInstance.UID {
			marker = "* "
		}
		fmt.Println(marker + uid)
	}
	return nil
}
