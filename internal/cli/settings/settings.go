// Package settings implements the lineage settings commands
package settings

import (
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

// SettingsCmd returns the settings parent command
func SettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "View and change preferences",
	}

	cmd.AddCommand(ShowCmd())
	cmd.AddCommand(SetCmd())
	cmd.AddCommand(ExportCmd())

	return cmd
}

// ShowCmd returns the settings show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show current settings",
		Args:  cobra.NoArgs,
		RunE:  runShow,
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFromFlags(cmd)

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer closeCLI(cliInstance)

	s, err := cliInstance.App.SettingsService.Get(ctx, cliInstance.UID)
	if err != nil {
		return formatter.Fail(err)
	}

	if formatter.JSON {
		return formatter.Success(s)
	}

	printSettings(s, formatter.Quiet)
	return nil
}

// SetCmd returns the settings set subcommand
func SetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <key>=<value>...",
		Short: "Change one or more settings",
		Long: `Change settings by their JSON names, for example:

  lineage settings set seatPreference=aisle flightUpdates=false`,
		Args: cobra.MinimumNArgs(1),
		RunE: runSet,
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

func runSet(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFromFlags(cmd)

	type assignment struct{ key, value string }
	assignments := make([]assignment, 0, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return formatter.Fail(cli.Usagef("expected key=value, got %q", arg))
		}
		assignments = append(assignments, assignment{key, value})
	}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer closeCLI(cliInstance)

	var s models.Settings
	for _, a := range assignments {
		if s, err = cliInstance.App.SettingsService.Set(ctx, cliInstance.UID, a.key, a.value); err != nil {
			return formatter.FailWithSuggestion(err, "See valid keys with: lineage settings show --json")
		}
	}

	if formatter.Quiet {
		return nil
	}
	if formatter.JSON {
		return formatter.Success(s)
	}

	fmt.Printf("%s Updated %d setting(s)\n", styles.EditStyle.Render("✓"), len(assignments))
	return nil
}

// ExportCmd returns the settings export subcommand
func ExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export settings as JSON",
		Args:  cobra.NoArgs,
		RunE:  runExport,
	}
	cmd.Flags().StringP("output", "o", "", "Write the export to this file instead of stdout")
	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := &cli.OutputFormatter{}
	outputPath, _ := cmd.Flags().GetString("output")

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer closeCLI(cliInstance)

	data, err := cliInstance.App.SettingsService.Export(ctx, cliInstance.UID)
	if err != nil {
		return formatter.Fail(err)
	}

	if outputPath == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(outputPath, append(data, '\n'), 0o644); err != nil {
		return formatter.Fail(fmt.Errorf("failed to write export: %w", err))
	}
	fmt.Printf("✓ Exported settings to %s\n", outputPath)
	return nil
}

func printSettings(s models.Settings, quiet bool) {
	raw, _ := json.Marshal(s)
	var fields map[string]any
	_ = json.Unmarshal(raw, &fields)

	for _, key := range settingKeys {
		if quiet {
			fmt.Printf("%s=%v\n", key, fields[key])
			continue
		}
		fmt.Printf("%s %v\n", styles.LabelStyle.Render(fmt.Sprintf("%-18s", key+":")), fields[key])
	}
}

// settingKeys is the display order of settings
var settingKeys = []string{
	"preferredAirline", "seatPreference", "mealPreference", "classPreference",
	"flightUpdates", "baggageAlerts", "checkinReminders",
	"dataSharing", "twoFactor",
	"theme", "units", "language",
}

func closeCLI(c *cli.CLI) {
	if err := c.Close(); err != nil {
		slog.Error("failed to close CLI", "error", err)
	}
}
