package tree

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/lineage/internal/cli"
	"github.com/thenoetrevino/lineage/internal/cli/styles"
)

// StatsCmd returns the stats command
func StatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show family tree statistics",
		Args:  cobra.NoArgs,
		RunE:  runStats,
	}

	cli.AddOutputFlags(cmd)

	return cmd
}

func runStats(cmd *cobra.Command, args []string) error {
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
	stats := svc.Stats(ctx)

	if formatter.Quiet {
		fmt.Printf("%d %d\n", stats.TotalMembers, stats.Generations)
		return nil
	}

	if formatter.JSON {
		return formatter.Success(stats)
	}

	lastUpdated := "never saved"
	if !stats.LastUpdated.IsZero() {
		lastUpdated = stats.LastUpdated.Local().Format("2006-01-02 15:04")
	}

	fmt.Println(styles.TitleStyle.Render("Family tree of " + cliInstance.UID))
	fmt.Printf("%s %d\n", styles.LabelStyle.Render("Members:"), stats.TotalMembers)
	fmt.Printf("%s %d\n", styles.LabelStyle.Render("Generations:"), stats.Generations)
	fmt.Printf("%s %s\n", styles.LabelStyle.Render("Last updated:"), lastUpdated)
	return nil
}
