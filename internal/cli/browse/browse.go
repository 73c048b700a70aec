// Package browse implements lineage browse, the interactive tree editor
package browse

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/thenoetrevino/lineage/internal/cli"
	"github.com/thenoetrevino/lineage/internal/config"
	"github.com/thenoetrevino/lineage/internal/logging"
	treeservice "github.com/thenoetrevino/lineage/internal/services/tree"
	"github.com/thenoetrevino/lineage/internal/tui"
)

// Replaced in tests
var (
	runBrowser = func(ctx context.Context, svc treeservice.Service, colors config.ColorScheme) error {
		return tui.Run(ctx, svc, colors, logging.Logger)
	}
	isTerminal = func() bool {
		return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
	}
)

// BrowseCmd returns the browse command
func BrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse and edit the family tree interactively",
		Long: `Open the family tree in a full-screen view.

Keys:
  j/k, arrows   move
  enter, space  fold or unfold the selected member
  E / C         expand or collapse every member
  a             add a child of the selected member
  e             edit the selected member
  d             delete the selected member and its descendants
  q             quit

In forms, ctrl+s saves and esc cancels.`,
		Args: cobra.NoArgs,
		RunE: runBrowse,
	}
}

func runBrowse(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := &cli.OutputFormatter{}

	if !isTerminal() {
		return formatter.Fail(cli.Usagef("browse needs an interactive terminal"))
	}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			slog.Error("failed to close CLI", "error", err)
		}
	}()

	svc, err := cliInstance.Tree(ctx)
	if err != nil {
		return formatter.Fail(err)
	}

	if err := runBrowser(ctx, svc, cliInstance.Config.ColorScheme); err != nil {
		return formatter.Fail(err)
	}
	return nil
}
