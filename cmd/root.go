// Package cmd assembles the lineage command tree
package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/lineage/internal/cli"
	"github.com/thenoetrevino/lineage/internal/cli/browse"
	"github.com/thenoetrevino/lineage/internal/cli/member"
	"github.com/thenoetrevino/lineage/internal/cli/profile"
	"github.com/thenoetrevino/lineage/internal/cli/serve"
	"github.com/thenoetrevino/lineage/internal/cli/settings"
	"github.com/thenoetrevino/lineage/internal/cli/tree"
)

// Version is set at build time with -ldflags "-X .../cmd.Version=..."
var Version = "dev"

// NewRootCmd builds the lineage root command with every subcommand attached
func NewRootCmd() *cobra.Command {
	var opts cli.Options

	rootCmd := &cobra.Command{
		Use:   "lineage",
		Short: "Lineage - a family tree manager",
		Long: `Lineage keeps a family tree per user: add, edit, rename and remove
members, print the tree, and serve it over HTTP.`,
		Version:       Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(cli.WithOptions(cmd.Context(), opts))
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.User, "user", "", "User whose data to use (default: $LINEAGE_UID or the OS user)")
	rootCmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "Config file (default: $LINEAGE_CONFIG or ~/.config/lineage/config.yaml)")

	rootCmd.AddCommand(member.MemberCmd())
	rootCmd.AddCommand(tree.TreeCmd())
	rootCmd.AddCommand(tree.StatsCmd())
	rootCmd.AddCommand(tree.ResetCmd())
	rootCmd.AddCommand(tree.UsersCmd())
	rootCmd.AddCommand(settings.SettingsCmd())
	rootCmd.AddCommand(profile.ProfileCmd())
	rootCmd.AddCommand(serve.ServeCmd())
	rootCmd.AddCommand(browse.BrowseCmd())

	return rootCmd
}

// Execute runs the root command
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}
