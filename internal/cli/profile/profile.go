// Package profile implements the profile subcommands against the external
// profile service.
package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tranvq/pipeboard/internal/cli"
	"github.com/tranvq/pipeboard/internal/directory"
)

// ProfileCmd returns the profile parent command
func ProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "View and edit your profile",
	}

	cmd.AddCommand(ShowCmd())
	cmd.AddCommand(UpdateCmd())
	cmd.AddCommand(LogsCmd())

	return cmd
}

// ShowCmd returns the profile show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show your profile",
		RunE:  runShow,
	}
	addOutputFlags(cmd)
	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	formatter := formatterFor(cmd)

	c, err := cli.NewCLI(ctx)
	if err != nil {
		_ = formatter.Error("INITIALIZATION_ERROR", err.Error())
		return err
	}
	defer func() { _ = c.Close() }()

	p, err := c.App.Directory.MyProfile(ctx)
	if err != nil {
		_ = formatter.ErrorWithSuggestion("PROFILE_ERROR", err.Error(),
			"Log in first with 'pipeboard login --login=<name>'")
		os.Exit(cli.ExitError)
	}

	if formatter.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success": true,
			"profile": p,
		})
	}
	fmt.Printf("Name:   %s %s\n", p.FirstName, p.LastName)
	if p.Phone != "" {
		fmt.Printf("Phone:  %s\n", p.Phone)
	}
	if p.AvatarURL != "" {
		fmt.Printf("Avatar: %s\n", p.AvatarURL)
	}
	return nil
}

// UpdateCmd returns the profile update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update profile fields",
		RunE:  runUpdate,
	}

	cmd.Flags().String("first-name", "", "First name")
	cmd.Flags().String("last-name", "", "Last name")
	cmd.Flags().String("phone", "", "Phone number")
	cmd.Flags().String("avatar-url", "", "Avatar URL")
	addOutputFlags(cmd)
	return cmd
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	formatter := formatterFor(cmd)

	var patch directory.ProfilePatch
	if cmd.Flags().Changed("first-name") {
		v, _ := cmd.Flags().GetString("first-name")
		patch.FirstName = &v
	}
	if cmd.Flags().Changed("last-name") {
		v, _ := cmd.Flags().GetString("last-name")
		patch.LastName = &v
	}
	if cmd.Flags().Changed("phone") {
		v, _ := cmd.Flags().GetString("phone")
		patch.Phone = &v
	}
	if cmd.Flags().Changed("avatar-url") {
		v, _ := cmd.Flags().GetString("avatar-url")
		patch.AvatarURL = &v
	}

	c, err := cli.NewCLI(ctx)
	if err != nil {
		_ = formatter.Error("INITIALIZATION_ERROR", err.Error())
		return err
	}
	defer func() { _ = c.Close() }()

	p, err := c.App.Directory.UpdateMyProfile(ctx, patch)
	if err != nil {
		_ = formatter.Error("PROFILE_UPDATE_ERROR", err.Error())
		os.Exit(cli.ExitError)
	}

	if formatter.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success": true,
			"profile": p,
		})
	}
	if !formatter.Quiet {
		fmt.Println("Profile updated")
	}
	return nil
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output")
}

func formatterFor(cmd *cobra.Command) *cli.OutputFormatter {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")
	return &cli.OutputFormatter{JSON: jsonOutput, Quiet: quietMode}
}
