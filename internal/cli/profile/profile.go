// Package profile implements the lineage profile commands
package profile

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/lineage/internal/cli"
	"github.com/thenoetrevino/lineage/internal/cli/styles"
	"github.com/thenoetrevino/lineage/internal/models"
	profilesvc "github.com/thenoetrevino/lineage/internal/services/profile"
)

// ProfileCmd returns the profile parent command
func ProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "View and update account details",
	}

	cmd.AddCommand(ShowCmd())
	cmd.AddCommand(UpdateCmd())

	return cmd
}

// ShowCmd returns the profile show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the profile",
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

	p, err := cliInstance.App.ProfileService.Get(ctx, cliInstance.UID)
	if err != nil {
		return formatter.Fail(err)
	}

	if formatter.JSON {
		return formatter.Success(p)
	}
	printProfile(p, formatter.Quiet)
	return nil
}

// UpdateCmd returns the profile update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update profile fields",
		Long: `Update profile fields. Only the flags you pass are changed;
pass an empty value to clear a field.`,
		Args: cobra.NoArgs,
		RunE: runUpdate,
	}

	cmd.Flags().String("first-name", "", "First name")
	cmd.Flags().String("last-name", "", "Last name")
	cmd.Flags().String("username", "", "Username (letters and digits, 3-32 characters)")
	cmd.Flags().String("email", "", "Email address")
	cmd.Flags().String("phone", "", "Phone number in E.164 form, e.g. +15551234567")

	cli.AddOutputFlags(cmd)
	return cmd
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFromFlags(cmd)

	changed := func(flag string) *string {
		if !cmd.Flags().Changed(flag) {
			return nil
		}
		value, _ := cmd.Flags().GetString(flag)
		return &value
	}
	req := profilesvc.UpdateProfileRequest{
		FirstName: changed("first-name"),
		LastName:  changed("last-name"),
		Username:  changed("username"),
		Email:     changed("email"),
		Phone:     changed("phone"),
	}
	if req.IsEmpty() {
		return formatter.Fail(cli.Usagef("at least one field flag is required"))
	}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer closeCLI(cliInstance)

	p, err := cliInstance.App.ProfileService.Update(ctx, cliInstance.UID, req)
	if err != nil {
		return formatter.Fail(err)
	}

	if formatter.Quiet {
		return nil
	}
	if formatter.JSON {
		return formatter.Success(p)
	}

	fmt.Printf("%s Profile updated\n", styles.EditStyle.Render("✓"))
	return nil
}

func printProfile(p models.Profile, quiet bool) {
	fields := []struct{ key, label, value string }{
		{"firstName", "First name", p.FirstName},
		{"lastName", "Last name", p.LastName},
		{"username", "Username", p.Username},
		{"email", "Email", p.Email},
		{"phone", "Phone", p.Phone},
	}
	for _, f := range fields {
		if quiet {
			fmt.Printf("%s=%s\n", f.key, f.value)
			continue
		}
		value := f.value
		if value == "" {
			value = styles.SubtitleStyle.Render("(not set)")
		}
		fmt.Printf("%s %s\n", styles.LabelStyle.Render(fmt.Sprintf("%-11s", f.label+":")), value)
	}
}

func closeCLI(c *cli.CLI) {
	if err := c.Close(); err != nil {
		slog.Error("failed to close CLI", "error", err)
	}
}
