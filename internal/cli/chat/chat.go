// Package chat implements the project chat subcommands.
package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tranvq/pipeboard/internal/cli"
	"github.com/tranvq/pipeboard/internal/sidechannel"
)

// ChatCmd returns the chat parent command
func ChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Project chat",
	}

	cmd.AddCommand(ShowCmd())
	cmd.AddCommand(PostCmd())

	return cmd
}

// ShowCmd returns the chat show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the project chat, newest first",
		RunE:  runShow,
	}
	addFlags(cmd)
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

	projectID, err := resolveProjectID(ctx, cmd, c)
	if err != nil {
		_ = formatter.Error("PROJECT_NOT_FOUND", err.Error())
		os.Exit(cli.ExitNotFound)
	}

	messages, err := c.App.ChatFor(projectID).Messages(ctx)
	if err != nil {
		_ = formatter.Error("CHAT_LOAD_ERROR", err.Error())
		return err
	}

	if formatter.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success":  true,
			"messages": messages,
		})
	}
	for _, m := range messages {
		fmt.Printf("%s  %s: %s\n", m.At, m.By, m.Text)
	}
	return nil
}

// PostCmd returns the chat post subcommand
func PostCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "post <text>",
		Short: "Post a chat message",
		Args:  cobra.ExactArgs(1),
		RunE:  runPost,
	}
	cmd.Flags().String("by", "", "Author name (defaults to the logged-in user)")
	addFlags(cmd)
	return cmd
}

func runPost(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	formatter := formatterFor(cmd)

	c, err := cli.NewCLI(ctx)
	if err != nil {
		_ = formatter.Error("INITIALIZATION_ERROR", err.Error())
		return err
	}
	defer func() { _ = c.Close() }()

	projectID, err := resolveProjectID(ctx, cmd, c)
	if err != nil {
		_ = formatter.Error("PROJECT_NOT_FOUND", err.Error())
		os.Exit(cli.ExitNotFound)
	}

	by, _ := cmd.Flags().GetString("by")
	if by == "" {
		if user, whoErr := c.App.Directory.WhoAmI(ctx); whoErr == nil {
			by = user.DisplayName()
		} else if name := os.Getenv("USER"); name != "" {
			by = name
		} else {
			by = "me"
		}
	}

	msg, err := c.App.ChatFor(projectID).Post(ctx, by, args[0])
	if err != nil {
		if err == sidechannel.ErrEmptyText {
			_ = formatter.Error("EMPTY_TEXT", "message text must not be blank")
			os.Exit(cli.ExitValidation)
		}
		_ = formatter.Error("CHAT_POST_ERROR", err.Error())
		return err
	}

	if formatter.Quiet {
		fmt.Println(msg.ID)
		return nil
	}
	if formatter.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success": true,
			"message": msg,
		})
	}
	fmt.Println("Message posted")
	return nil
}

func resolveProjectID(ctx context.Context, cmd *cobra.Command, c *cli.CLI) (string, error) {
	ref, _ := cmd.Flags().GetString("project")
	list, err := c.App.Projects.List(ctx)
	if err != nil {
		return "", err
	}
	for _, p := range list {
		if p.ID == ref || strings.EqualFold(p.Name, ref) {
			return p.ID, nil
		}
	}
	return "", fmt.Errorf("project %q not found", ref)
}

func addFlags(cmd *cobra.Command) {
	cmd.Flags().String("project", "", "Project id or name (required)")
	_ = cmd.MarkFlagRequired("project")
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output")
}

func formatterFor(cmd *cobra.Command) *cli.OutputFormatter {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")
	return &cli.OutputFormatter{JSON: jsonOutput, Quiet: quietMode}
}
